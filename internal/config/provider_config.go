package config

import "strings"

// ProviderConfig describes the external OpenID Connect identity provider.
// All values are environment-sourced; the client secret has no default and
// startup fails without it.
type ProviderConfig interface {
	GetIssuerURL() string
	GetClientID() string
	GetClientSecret() string
	GetRedirectURL() string
	GetScopes() []string
}

type Provider struct{}

var _ ProviderConfig = Provider{}

func (Provider) GetIssuerURL() string {
	return GetEnv("OIDC_ISSUER", "")
}

func (Provider) GetClientID() string {
	return GetEnv("OIDC_CLIENT_ID", "")
}

func (Provider) GetClientSecret() string {
	return GetEnv("OIDC_CLIENT_SECRET", "")
}

func (p Provider) GetRedirectURL() string {
	redirect := GetEnv("OIDC_REDIRECT_URL", "")
	if redirect != "" {
		return redirect
	}
	return EnvVars{}.GetBaseURL() + "/auth/callback"
}

func (Provider) GetScopes() []string {
	scopes := GetEnv("OIDC_SCOPES", "openid profile email")
	return strings.Fields(scopes)
}
