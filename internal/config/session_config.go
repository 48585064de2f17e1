package config

import "time"

type SessionConfig interface {
	GetSessionSecret() string
	GetSessionTTL() time.Duration
	GetAuthStateTTL() time.Duration
}

type Session struct{}

var _ SessionConfig = Session{}

// GetSessionSecret returns the HMAC signing secret for session tokens.
// There is deliberately no default value.
func (Session) GetSessionSecret() string {
	return GetEnv("SESSION_SECRET", "")
}

func (Session) GetSessionTTL() time.Duration {
	return getDurationEnv("SESSION_TTL", 24*time.Hour)
}

// GetAuthStateTTL bounds how long a sign-in handshake may take between the
// redirect to the provider and the callback.
func (Session) GetAuthStateTTL() time.Duration {
	return getDurationEnv("AUTH_STATE_TTL", 15*time.Minute)
}

func getDurationEnv(envVar string, defaultValue time.Duration) time.Duration {
	value := GetEnv(envVar, "")
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
