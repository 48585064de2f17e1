package backend

import "fmt"

// APIError is a non-2xx response from the backend API. It is always returned
// to the caller as a recoverable error, never panicked.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend responded %d: %s", e.Status, e.Body)
}

// IsNotFound reports whether the backend answered 404.
func (e *APIError) IsNotFound() bool {
	return e.Status == 404
}
