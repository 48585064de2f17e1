package session_test

import (
	"testing"
	"time"

	interrors "github.com/heritagegraph/dashboard-gateway/internal/errors"
	"github.com/heritagegraph/dashboard-gateway/session"
	"github.com/stretchr/testify/require"
)

const (
	secretStr = "test-signing-secret"
	tokenTTL  = time.Hour
)

func newStore() *session.Store {
	return session.NewStore(session.NewHMACSigner(secretStr), tokenTTL)
}

func fullToken() session.Token {
	return session.Token{
		Subject:     "u1",
		Name:        "Alice Example",
		Email:       "a@x.com",
		Username:    "alice",
		Picture:     "https://idp.example/alice.png",
		AccessToken: "AT1",
		IDToken:     "IDT1",
	}
}

func TestIssueDecodeRoundTrip(t *testing.T) {
	store := newStore()

	signed, err := store.Issue(fullToken())
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	decoded, err := store.Decode(signed)
	require.NoError(t, err)
	require.Equal(t, fullToken(), decoded)
}

func TestDecodeRejectsTamperedToken(t *testing.T) {
	store := newStore()

	signed, err := store.Issue(fullToken())
	require.NoError(t, err)

	tampered := signed[:len(signed)-2] + "xx"
	_, err = store.Decode(tampered)
	require.Error(t, err)
	require.ErrorIs(t, err, interrors.ErrInvalidToken)
}

func TestDecodeRejectsWrongSecret(t *testing.T) {
	signed, err := newStore().Issue(fullToken())
	require.NoError(t, err)

	other := session.NewStore(session.NewHMACSigner("a-different-secret"), tokenTTL)
	_, err = other.Decode(signed)
	require.ErrorIs(t, err, interrors.ErrInvalidToken)
}

func TestDecodeRejectsExpiredToken(t *testing.T) {
	store := newStore()

	issuedAt := time.Now()
	session.NowTimeFunc = func() time.Time { return issuedAt }
	defer func() { session.NowTimeFunc = time.Now }()

	signed, err := store.Issue(fullToken())
	require.NoError(t, err)

	session.NowTimeFunc = func() time.Time { return issuedAt.Add(tokenTTL + time.Minute) }
	_, err = store.Decode(signed)
	require.ErrorIs(t, err, interrors.ErrTokenExpired)
}

func TestReissueSlidesExpiry(t *testing.T) {
	store := newStore()

	issuedAt := time.Now()
	session.NowTimeFunc = func() time.Time { return issuedAt }
	defer func() { session.NowTimeFunc = time.Now }()

	signed, err := store.Issue(fullToken())
	require.NoError(t, err)

	// Re-issue shortly before expiry, then read well after the original
	// deadline: the re-signed token must still verify.
	session.NowTimeFunc = func() time.Time { return issuedAt.Add(tokenTTL - time.Minute) }
	tok, err := store.Decode(signed)
	require.NoError(t, err)

	resigned, err := store.Issue(tok)
	require.NoError(t, err)

	session.NowTimeFunc = func() time.Time { return issuedAt.Add(tokenTTL + time.Minute) }
	decoded, err := store.Decode(resigned)
	require.NoError(t, err)
	require.Equal(t, fullToken(), decoded)
}
