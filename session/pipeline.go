package session

import (
	"context"

	"github.com/heritagegraph/dashboard-gateway/identity"
	"github.com/rs/zerolog"
)

// Notifier is the best-effort backend call made during sign-in. Failures are
// logged and swallowed; sign-in never waits on backend availability.
type Notifier interface {
	Ping(ctx context.Context, accessToken string) error
}

// Pipeline is the ordered set of hooks run during sign-in, token issuance
// and session materialization. For any given request, IssueToken always runs
// before Materialize, and no stage is skipped even when its inputs are
// empty: downstream code unconditionally reads the resulting shapes.
//
// Stages never panic or return errors past the pipeline boundary; they
// produce a (possibly partial) token or view so the sign-in redirect chain
// stays intact.
type Pipeline struct {
	store    *Store
	notifier Notifier
	logger   zerolog.Logger
}

// NewPipeline wires the pipeline with its token store, the backend notifier
// used by the sign-in stage and a logger.
func NewPipeline(store *Store, notifier Notifier, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// Store exposes the token store the pipeline signs with.
func (p *Pipeline) Store() *Store {
	return p.store
}

// SignIn fires once per authorization. It pings the backend with the freshly
// obtained access token so the backend can provision the user; the ping is
// one attempt with no retry and its failure never blocks the sign-in.
// The only way sign-in is refused here is a profile without a subject.
func (p *Pipeline) SignIn(ctx context.Context, profile identity.Profile, creds identity.Credentials) bool {
	if err := profile.Validate(); err != nil {
		p.logger.Error().Err(err).Msg("sign-in refused")
		return false
	}

	if p.notifier != nil && creds.AccessToken != "" {
		if err := p.notifier.Ping(ctx, creds.AccessToken); err != nil {
			p.logger.Warn().Err(err).Str("sub", profile.Subject).Msg("sign-in backend ping failed")
		}
	}

	return true
}

// IssueToken fires whenever the signed token is created or re-validated.
// Right after sign-in the fresh profile and credentials are copied into the
// token; on ordinary page loads both are nil and the existing fields pass
// through unchanged, never overwritten with empty values.
func (p *Pipeline) IssueToken(tok Token, profile *identity.Profile, creds *identity.Credentials) Token {
	if profile != nil {
		tok.Subject = profile.Subject
		tok.Name = profile.DisplayName()
		tok.Email = profile.Email
		tok.Username = profile.PreferredUsername
		tok.Picture = profile.Picture
	}

	if creds != nil {
		tok.AccessToken = creds.AccessToken
		tok.IDToken = creds.IDToken
	}

	return tok
}

// Materialize fires whenever a page asks who is logged in. The User object
// always exists, even for an empty token, so callers can assign or read
// nested fields without a nil check. The view's bearer token comes from the
// session token's access token and from nowhere else.
func (p *Pipeline) Materialize(tok Token) *View {
	return &View{
		User: UserView{
			Name:     tok.Name,
			Email:    tok.Email,
			Username: tok.Username,
			Picture:  tok.Picture,
		},
		AccessToken: tok.AccessToken,
		IDToken:     tok.IDToken,
		Expires:     NowTimeFunc().Add(p.store.TTL()),
	}
}
