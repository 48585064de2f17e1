package config

type Config interface {
	EnvConfig
	CorsConfig
	ProviderConfig
	SessionConfig
	BackendConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetBaseURL() string
	GetEnv() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	Provider
	Session
	Backend
}

func New() Config {
	return mainConfig{}
}
