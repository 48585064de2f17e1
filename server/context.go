package server

import (
	"context"
	"net/http"

	"github.com/heritagegraph/dashboard-gateway/session"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeySession stores the materialized client session view
const ContextKeySession ContextKey = "session_view"

// ViewFromContext returns the session view placed by the session middleware.
// The second return is false on requests with no active session.
func ViewFromContext(ctx context.Context) (*session.View, bool) {
	view, ok := ctx.Value(ContextKeySession).(*session.View)
	return view, ok && view != nil
}

// viewFromRequest is ViewFromContext for handlers; it never returns nil when
// ok is true.
func viewFromRequest(r *http.Request) (*session.View, bool) {
	return ViewFromContext(r.Context())
}
