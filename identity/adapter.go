package identity

import (
	"context"
	"fmt"
	"slices"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/heritagegraph/dashboard-gateway/internal/errors"
	"golang.org/x/oauth2"
)

// Config captures the provider registration for the dashboard client.
type Config struct {
	IssuerURL    string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// Adapter wraps the OIDC discovery document, the oauth2 client configuration
// and the ID token verifier for a single provider.
type Adapter struct {
	provider *oidc.Provider
	oauth    oauth2.Config
	verifier *oidc.IDTokenVerifier
}

// New performs OIDC discovery against the issuer. An unreachable provider is
// a constructor error; the caller must not continue without an adapter.
func New(ctx context.Context, cfg Config) (*Adapter, error) {
	if cfg.IssuerURL == "" || cfg.ClientID == "" {
		return nil, fmt.Errorf("identity.New: issuer URL and client ID are required")
	}

	provider, err := oidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrProviderUnreachable, "identity.New: discovery for %q failed (%v)", cfg.IssuerURL, err)
	}

	scopes := cfg.Scopes
	if !slices.Contains(scopes, oidc.ScopeOpenID) {
		scopes = append([]string{oidc.ScopeOpenID}, scopes...)
	}

	return &Adapter{
		provider: provider,
		oauth: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       scopes,
		},
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

// AuthCodeURL builds the provider redirect that starts the handshake.
func (a *Adapter) AuthCodeURL(state, nonce string) string {
	return a.oauth.AuthCodeURL(state, oidc.Nonce(nonce))
}

// Exchange swaps the authorization code for tokens, verifies the ID token
// (signature, audience and nonce) and maps the provider claims onto a typed
// Profile. Any failure here propagates as a denied sign-in.
func (a *Adapter) Exchange(ctx context.Context, code, nonce string) (*AuthResult, error) {
	oauth2Token, err := a.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("identity.Exchange: token exchange failed: %w", err)
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		return nil, fmt.Errorf("identity.Exchange: no ID token in provider response")
	}

	idToken, err := a.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("identity.Exchange: ID token verification failed: %w", err)
	}

	var claims struct {
		Nonce string `json:"nonce"`
		Profile
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("identity.Exchange: failed to extract claims: %w", err)
	}

	if nonce != "" && claims.Nonce != nonce {
		return nil, errors.ErrInvalidNonce
	}

	if err := claims.Profile.Validate(); err != nil {
		return nil, err
	}

	return &AuthResult{
		Profile: claims.Profile,
		Credentials: Credentials{
			AccessToken: oauth2Token.AccessToken,
			IDToken:     rawIDToken,
			Expiry:      oauth2Token.Expiry,
		},
	}, nil
}
