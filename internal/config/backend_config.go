package config

import "time"

// BackendConfig points the gateway at the knowledge-graph backend API.
type BackendConfig interface {
	GetBackendBaseURL() string
	GetBackendTimeout() time.Duration
}

type Backend struct{}

var _ BackendConfig = Backend{}

func (Backend) GetBackendBaseURL() string {
	return GetEnv("BACKEND_BASE_URL", "http://127.0.0.1:8000")
}

func (Backend) GetBackendTimeout() time.Duration {
	return getDurationEnv("BACKEND_TIMEOUT", 10*time.Second)
}
