package server

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/heritagegraph/dashboard-gateway/server/authflow"
	"github.com/heritagegraph/dashboard-gateway/session"
)

// sessionCookieName is the cookie carrying the signed session token
const sessionCookieName = "hg_session"

// generateRandomString creates a random base64url string
func generateRandomString(length int) string {
	b := make([]byte, length)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

func (s *Server) setSessionCookie(w http.ResponseWriter, r *http.Request, signed string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.pipeline.Store().TTL().Seconds()),
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// LoginHandler starts the sign-in handshake: it records state and nonce for
// the callback and redirects the browser to the identity provider.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// After a failed sign-in the user lands back here with an error
		// parameter; show the failure and a fresh sign-in link instead of
		// bouncing straight back to the provider.
		if errMsg := r.URL.Query().Get("error"); errMsg != "" {
			writeJSON(w, http.StatusOK, map[string]string{
				"error":  errMsg,
				"signIn": RouteLogin,
			})
			return
		}

		state := generateRandomString(32)
		nonce := uuid.New().String()

		returnURL := sanitizeReturnURL(r.URL.Query().Get("callbackUrl"))

		if err := s.authState.Upsert(state, &authflow.State{
			Nonce:     nonce,
			ReturnURL: returnURL,
			CreatedAt: time.Now(),
		}); err != nil {
			s.logger.Error().Err(err).Msg("failed to store auth state")
			http.Error(w, "Failed to start sign-in", http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, s.idp.AuthCodeURL(state, nonce), http.StatusFound)
	}
}

// CallbackHandler completes the handshake. Any failure before token issuance
// aborts the sign-in and sends the user back to the login route - a denied
// sign-in, never a partial session.
func (s *Server) CallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// r.FormValue covers both GET query params and form_post response mode
		state := r.FormValue("state")
		code := r.FormValue("code")
		errorParam := r.FormValue("error")

		if errorParam != "" {
			s.logger.Warn().Str("error", errorParam).Str("description", r.FormValue("error_description")).Msg("provider returned authorization error")
			s.redirectSignInFailed(w, r, "authorization failed")
			return
		}

		if code == "" || state == "" {
			s.redirectSignInFailed(w, r, "missing code or state parameter")
			return
		}

		authState, err := s.authState.Get(state)
		if err != nil || authState == nil {
			s.redirectSignInFailed(w, r, "invalid state parameter")
			return
		}

		// State is single-use
		if err := s.authState.Delete(state); err != nil {
			s.logger.Error().Err(err).Msg("failed to delete auth state")
		}

		if authState.Expired(s.config.GetAuthStateTTL(), time.Now()) {
			s.redirectSignInFailed(w, r, "sign-in took too long, try again")
			return
		}

		result, err := s.idp.Exchange(r.Context(), code, authState.Nonce)
		if err != nil {
			s.logger.Warn().Err(err).Msg("authorization exchange failed")
			s.redirectSignInFailed(w, r, "sign-in failed")
			return
		}

		if !s.pipeline.SignIn(r.Context(), result.Profile, result.Credentials) {
			s.redirectSignInFailed(w, r, "sign-in denied")
			return
		}

		tok := s.pipeline.IssueToken(session.Token{}, &result.Profile, &result.Credentials)

		signed, err := s.pipeline.Store().Issue(tok)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to sign session token")
			s.redirectSignInFailed(w, r, "sign-in failed")
			return
		}

		s.setSessionCookie(w, r, signed)

		returnURL := authState.ReturnURL
		if returnURL == "" || returnURL == "/" {
			returnURL = RouteDashboard
		}
		http.Redirect(w, r, returnURL, http.StatusSeeOther)
	}
}

// LogoutHandler destroys the session by clearing the cookie; there is no
// server-side state to remove.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.clearSessionCookie(w, r)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// SessionHandler returns the materialized client session view. Signed-out
// requests get an empty object rather than an error, so UI code can always
// decode the same shape.
func (s *Server) SessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, ok := viewFromRequest(r)
		if !ok {
			writeJSON(w, http.StatusOK, struct{}{})
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func (s *Server) redirectSignInFailed(w http.ResponseWriter, r *http.Request, reason string) {
	http.Redirect(w, r, RouteLogin+"?error="+url.QueryEscape(reason), http.StatusSeeOther)
}

// sanitizeReturnURL keeps redirects on-site: only rooted paths survive.
func sanitizeReturnURL(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return ""
	}
	return raw
}
