package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/heritagegraph/dashboard-gateway/backend"
	"github.com/heritagegraph/dashboard-gateway/internal/errors"
	"github.com/heritagegraph/dashboard-gateway/session"
)

const contentTypeJSON = "application/json; charset=utf-8"

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeBridgeError maps a backend-bridge failure onto a recoverable JSON
// response: upstream status codes pass through, transport failures become
// 502. Nothing here is allowed to crash the page.
func (s *Server) writeBridgeError(w http.ResponseWriter, err error) {
	var apiErr *backend.APIError
	switch {
	case errors.As(err, &apiErr):
		if apiErr.IsNotFound() {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeError(w, apiErr.Status, "backend request failed")
	case errors.Is(err, errors.ErrBackendUnavailable):
		writeError(w, http.StatusBadGateway, "backend unavailable, try again")
	default:
		s.logger.Error().Err(err).Msg("unexpected bridge error")
		writeError(w, http.StatusInternalServerError, "unexpected error")
	}
}

// sessionView returns the request's view, or an empty signed-out view so
// bridge calls always have a non-nil shape to read the bearer from.
func sessionView(r *http.Request) *session.View {
	if view, ok := viewFromRequest(r); ok {
		return view
	}
	return &session.View{}
}

func pageParams(r *http.Request) backend.PageParams {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	return backend.PageParams{Limit: limit, Offset: offset}
}

// LeaderboardHandler relays the contributor leaderboard.
func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, err := s.backend.Leaderboard(r.Context(), sessionView(r))
		if err != nil {
			s.writeBridgeError(w, err)
			return
		}
		writeRaw(w, http.StatusOK, board)
	}
}

// PersonalStatsHandler relays the signed-in user's contribution stats.
func (s *Server) PersonalStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.backend.PersonalStats(r.Context(), sessionView(r))
		if err != nil {
			s.writeBridgeError(w, err)
			return
		}
		writeRaw(w, http.StatusOK, stats)
	}
}

// CreateEntityHandler validates and submits a cultural-entity contribution.
func (s *Server) CreateEntityHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in backend.EntityInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		if err := in.Validate(); err != nil {
			if errors.Is(err, errors.ErrUnknownCategory) {
				writeError(w, http.StatusBadRequest, "unknown category")
				return
			}
			writeError(w, http.StatusBadRequest, "name and description are required")
			return
		}

		created, err := s.backend.CreateEntity(r.Context(), sessionView(r), in)
		if err != nil {
			s.writeBridgeError(w, err)
			return
		}
		writeRaw(w, http.StatusCreated, created)
	}
}

// NotificationsHandler relays the user's notification list.
func (s *Server) NotificationsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := s.backend.ListNotifications(r.Context(), sessionView(r), pageParams(r))
		if err != nil {
			s.writeBridgeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

// cidocList builds a list handler for a CIDOC collection.
func (s *Server) cidocList(list func(*http.Request) (*backend.Page, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := list(r)
		if err != nil {
			s.writeBridgeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

// cidocGet builds a detail handler for a CIDOC resource.
func (s *Server) cidocGet(get func(*http.Request, string) (json.RawMessage, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := get(r, r.PathValue("id"))
		if err != nil {
			s.writeBridgeError(w, err)
			return
		}
		writeRaw(w, http.StatusOK, result)
	}
}

// cidocWrite builds a create/update handler for a CIDOC resource. The body
// is relayed verbatim; the gateway does not interpret the data model.
func (s *Server) cidocWrite(status int, write func(*http.Request, json.RawMessage) (json.RawMessage, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := readRawBody(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		result, err := write(r, payload)
		if err != nil {
			s.writeBridgeError(w, err)
			return
		}
		writeRaw(w, status, result)
	}
}

func readRawBody(r *http.Request) (json.RawMessage, error) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if !json.Valid(raw) {
		return nil, errors.ErrInvalidRequest
	}
	return json.RawMessage(raw), nil
}

func writeRaw(w http.ResponseWriter, status int, body json.RawMessage) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if len(body) == 0 {
		_, _ = w.Write([]byte("null"))
		return
	}
	_, _ = w.Write(body)
}
