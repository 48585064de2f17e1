package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/heritagegraph/dashboard-gateway/internal/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Store signs and verifies the stateless session token. The signed string is
// the only session artifact; nothing is kept on the server between requests.
type Store struct {
	signer Signer
	ttl    time.Duration
}

// NewStore creates a token store with the given signer and session lifetime.
func NewStore(signer Signer, ttl time.Duration) *Store {
	return &Store{
		signer: signer,
		ttl:    ttl,
	}
}

// TTL returns the configured session lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Issue signs the token claims into a compact JWT. Each call re-stamps
// iat/exp, which is what gives the cookie its sliding expiry.
func (s *Store) Issue(tok Token) (string, error) {
	now := NowTimeFunc()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   tok.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.New().String(),
		},
		Name:        tok.Name,
		Email:       tok.Email,
		Username:    tok.Username,
		Picture:     tok.Picture,
		AccessToken: tok.AccessToken,
		IDToken:     tok.IDToken,
	}

	signed, err := s.signer.Sign(claims)
	if err != nil {
		return "", errors.Wrapf(err, "session Issue")
	}
	return signed, nil
}

// Decode verifies the signature and expiry of a signed token and rebuilds
// the claim set. Every field written by Issue survives the round trip.
func (s *Store) Decode(raw string) (Token, error) {
	var claims tokenClaims

	parsed, err := jwt.ParseWithClaims(raw, &claims, s.signer.GetVerificationKey,
		jwt.WithValidMethods([]string{s.signer.GetSigningMethod().Alg()}),
		jwt.WithTimeFunc(func() time.Time { return NowTimeFunc() }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Token{}, errors.ErrTokenExpired
		}
		return Token{}, errors.Wrapf(errors.ErrInvalidToken, "session Decode (%v)", err)
	}

	if !parsed.Valid {
		return Token{}, errors.ErrInvalidToken
	}

	return claims.token(), nil
}
