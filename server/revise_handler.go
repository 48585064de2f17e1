package server

import (
	"encoding/json"
	"net/http"
	"net/url"
)

// entityParam is the entity payload carried in the revise page's URL. Only
// the fields the form pre-fills are read here; everything else stays opaque.
type entityParam struct {
	EntityID    string          `json:"entity_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Revision    json.RawMessage `json:"current_revision"`
}

// ReviseEntityHandler loads an entity revision form from the `entity` URL
// parameter. Malformed JSON never renders a blank form: the user is sent
// back to the entity list view with an error notification.
func (s *Server) ReviseEntityHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawParam := r.URL.Query().Get("entity")
		if rawParam == "" {
			// Fresh contribution, nothing to pre-fill
			writeJSON(w, http.StatusOK, map[string]any{"mode": "new"})
			return
		}

		decoded, err := url.QueryUnescape(rawParam)
		if err != nil {
			s.redirectEntityListError(w, r, "failed to load entity data")
			return
		}

		var entity entityParam
		if err := json.Unmarshal([]byte(decoded), &entity); err != nil {
			s.logger.Warn().Err(err).Msg("malformed entity parameter")
			s.redirectEntityListError(w, r, "failed to load entity data")
			return
		}

		mode := r.URL.Query().Get("mode")
		if mode == "" {
			mode = "revise"
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"mode":   mode,
			"entity": entity,
		})
	}
}

func (s *Server) redirectEntityListError(w http.ResponseWriter, r *http.Request, message string) {
	http.Redirect(w, r, RouteEntityList+"?error="+url.QueryEscape(message), http.StatusSeeOther)
}
