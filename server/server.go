package server

import (
	"context"
	"net/http"

	"github.com/heritagegraph/dashboard-gateway/backend"
	"github.com/heritagegraph/dashboard-gateway/identity"
	"github.com/heritagegraph/dashboard-gateway/internal/config"
	"github.com/heritagegraph/dashboard-gateway/server/authflow"
	"github.com/heritagegraph/dashboard-gateway/session"
	"github.com/rs/zerolog"
)

// IdentityProvider is the slice of the identity adapter the server needs.
// *identity.Adapter satisfies it; tests substitute a fake.
type IdentityProvider interface {
	AuthCodeURL(state, nonce string) string
	Exchange(ctx context.Context, code, nonce string) (*identity.AuthResult, error)
}

type Server struct {
	env       string // Environment (e.g., "DEV", "production")
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	idp       IdentityProvider
	pipeline  *session.Pipeline
	backend   *backend.Client
	authState authflow.Repo
	logger    zerolog.Logger
}

func New(cfg config.Config, idp IdentityProvider, pipeline *session.Pipeline, backendClient *backend.Client, authStateRepo authflow.Repo, logger zerolog.Logger) *Server {
	s := &Server{
		mux:       http.NewServeMux(),
		config:    cfg,
		idp:       idp,
		pipeline:  pipeline,
		backend:   backendClient,
		authState: authStateRepo,
		logger:    logger,
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		s.logger.Debug().Str("route", route).Msg("registered")
	}
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
