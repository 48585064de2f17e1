package session

import "time"

// UserView is the identity part of the client session view.
type UserView struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Picture  string `json:"image,omitempty"`
}

// View is the read-only projection of the session token handed to UI code.
// It never contains the signing key and is regenerated on every session
// read. Its AccessToken is written only from the session token's access
// token, so the bearer the UI forwards can never silently diverge from the
// credentials most recently stored at sign-in.
type View struct {
	User        UserView  `json:"user"`
	AccessToken string    `json:"accessToken,omitempty"`
	IDToken     string    `json:"idToken,omitempty"`
	Expires     time.Time `json:"expires"`
}

// SignedIn reports whether the view belongs to an authenticated user.
func (v *View) SignedIn() bool {
	if v == nil {
		return false
	}
	return v.User.Username != "" || v.AccessToken != ""
}

// Bearer returns the token to attach to backend calls, empty when signed out.
func (v *View) Bearer() string {
	if v == nil {
		return ""
	}
	return v.AccessToken
}
