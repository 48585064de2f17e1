package identity

import (
	"time"

	"github.com/heritagegraph/dashboard-gateway/internal/errors"
)

// Profile is the typed identity claim set extracted from the provider's
// verified ID token. Subject is the only required field.
type Profile struct {
	Subject           string `json:"sub"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	PreferredUsername string `json:"preferred_username"`
	Picture           string `json:"picture"`
}

// DisplayName returns the profile's name, falling back to the preferred
// username when the provider did not supply one.
func (p Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.PreferredUsername
}

// Validate checks the required claims. A profile without a subject aborts
// the sign-in.
func (p Profile) Validate() error {
	if p.Subject == "" {
		return errors.ErrMissingSubject
	}
	return nil
}

// Credentials holds the opaque upstream tokens issued by the provider.
type Credentials struct {
	AccessToken string
	IDToken     string
	Expiry      time.Time
}

// AuthResult is the outcome of a completed authorization handshake.
type AuthResult struct {
	Profile     Profile
	Credentials Credentials
}
