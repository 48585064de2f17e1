package server

import (
	"encoding/json"
	"net/http"

	"github.com/heritagegraph/dashboard-gateway/backend"
)

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET /", s.IndexHandler())

	// SIGN-IN FLOW
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginHandler(), s.PageMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteCallback, ChainMiddleware(s.CallbackHandler(), s.PageMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteCallback, ChainMiddleware(s.CallbackHandler(), s.PageMiddleware()...)) // For form_post response mode
	s.RegisterRouteHandler("GET "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.PageMiddleware()...))

	// SESSION
	s.RegisterRouteHandler("GET "+RouteAPISession, ChainMiddleware(s.SessionHandler(), s.APIMiddleware()...))

	// Preflight for cross-origin API access; method patterns on the mux mean
	// OPTIONS needs its own registrations.
	s.registerPreflight(RouteAPISession, RouteAPILeaderboard, RouteAPIPersonalStats,
		RouteAPIEntities, RouteAPINotifications)

	// DASHBOARD DATA (read access is public, mutations need a session)
	s.RegisterRouteHandler("GET "+RouteAPILeaderboard, ChainMiddleware(s.LeaderboardHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPIPersonalStats, ChainMiddleware(s.PersonalStatsHandler(), s.APIMiddleware(s.RequireSession)...))
	s.RegisterRouteHandler("POST "+RouteAPIEntities, ChainMiddleware(s.CreateEntityHandler(), s.APIMiddleware(s.RequireSession)...))
	s.RegisterRouteHandler("GET "+RouteAPINotifications, ChainMiddleware(s.NotificationsHandler(), s.APIMiddleware(s.RequireSession)...))

	// CIDOC resources
	s.registerCidocRoutes(RouteAPILocations, cidocHandlers{
		list:   func(r *http.Request) (*backend.Page, error) { return s.backend.ListLocations(r.Context(), sessionView(r), pageParams(r)) },
		get:    func(r *http.Request, id string) (json.RawMessage, error) { return s.backend.GetLocation(r.Context(), sessionView(r), id) },
		create: func(r *http.Request, body json.RawMessage) (json.RawMessage, error) { return s.backend.CreateLocation(r.Context(), sessionView(r), body) },
		update: func(r *http.Request, body json.RawMessage) (json.RawMessage, error) { return s.backend.UpdateLocation(r.Context(), sessionView(r), r.PathValue("id"), body) },
	})
	s.registerCidocRoutes(RouteAPIEvents, cidocHandlers{
		list:   func(r *http.Request) (*backend.Page, error) { return s.backend.ListEvents(r.Context(), sessionView(r), pageParams(r)) },
		get:    func(r *http.Request, id string) (json.RawMessage, error) { return s.backend.GetEvent(r.Context(), sessionView(r), id) },
		create: func(r *http.Request, body json.RawMessage) (json.RawMessage, error) { return s.backend.CreateEvent(r.Context(), sessionView(r), body) },
		update: func(r *http.Request, body json.RawMessage) (json.RawMessage, error) { return s.backend.UpdateEvent(r.Context(), sessionView(r), r.PathValue("id"), body) },
	})

	// CONTRIBUTION PAGES
	s.RegisterRouteHandler("GET "+RouteEntityRevise, ChainMiddleware(s.ReviseEntityHandler(), s.PageMiddleware()...))
}

type cidocHandlers struct {
	list   func(*http.Request) (*backend.Page, error)
	get    func(*http.Request, string) (json.RawMessage, error)
	create func(*http.Request, json.RawMessage) (json.RawMessage, error)
	update func(*http.Request, json.RawMessage) (json.RawMessage, error)
}

func (s *Server) registerCidocRoutes(base string, h cidocHandlers) {
	s.RegisterRouteHandler("GET "+base, ChainMiddleware(s.cidocList(h.list), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+base+"/{id}", ChainMiddleware(s.cidocGet(h.get), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+base, ChainMiddleware(s.cidocWrite(http.StatusCreated, h.create), s.APIMiddleware(s.RequireSession)...))
	s.RegisterRouteHandler("PUT "+base+"/{id}", ChainMiddleware(s.cidocWrite(http.StatusOK, h.update), s.APIMiddleware(s.RequireSession)...))
	s.registerPreflight(base, base+"/{id}")
}

// registerPreflight routes OPTIONS through the CORS middleware, which answers
// the preflight itself. Same-origin OPTIONS falls through to a bare 204.
func (s *Server) registerPreflight(patterns ...string) {
	handler := ChainMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, s.CorsMiddleware)
	for _, pattern := range patterns {
		s.RegisterRouteHandler("OPTIONS "+pattern, handler)
	}
}

// IndexHandler reports the service identity; rendering belongs to the
// frontend, not the gateway.
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"service": s.config.GetAppName(),
			"env":     s.env,
			"signIn":  RouteLogin,
			"session": RouteAPISession,
		})
	}
}
