package session

import "github.com/golang-jwt/jwt/v5"

// Token is the claim set carried by the signed session cookie: identity
// claims plus the upstream credentials. It is created on sign-in, re-signed
// on every read and never persisted server-side.
type Token struct {
	Subject  string
	Name     string
	Email    string
	Username string
	Picture  string

	// Upstream credentials issued by the identity provider
	AccessToken string
	IDToken     string
}

// IsZero reports whether the token carries no identity at all.
func (t Token) IsZero() bool {
	return t.Subject == "" && t.AccessToken == "" && t.Email == ""
}

// tokenClaims is the JWT wire shape of a Token.
type tokenClaims struct {
	jwt.RegisteredClaims
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	Username    string `json:"preferred_username,omitempty"`
	Picture     string `json:"picture,omitempty"`
	AccessToken string `json:"access_token,omitempty"`
	IDToken     string `json:"id_token,omitempty"`
}

func (c tokenClaims) token() Token {
	return Token{
		Subject:     c.Subject,
		Name:        c.Name,
		Email:       c.Email,
		Username:    c.Username,
		Picture:     c.Picture,
		AccessToken: c.AccessToken,
		IDToken:     c.IDToken,
	}
}
