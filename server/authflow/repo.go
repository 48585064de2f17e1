package authflow

import "time"

// State tracks one sign-in handshake between the redirect to the identity
// provider and the callback. It is transient, keyed by the opaque state
// parameter, and distinct from sessions, which live only in the signed
// cookie.
type State struct {
	Nonce     string
	ReturnURL string
	CreatedAt time.Time
}

// Expired reports whether the handshake outlived its allowed window.
func (s *State) Expired(ttl time.Duration, now time.Time) bool {
	return now.Sub(s.CreatedAt) > ttl
}

type Repo interface {
	Upsert(state string, authState *State) error
	Get(state string) (*State, error)
	Delete(state string) error
}
