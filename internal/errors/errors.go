package errors

import (
	"errors"
	"fmt"
)

// Common error types for the dashboard gateway
var (
	// Sign-in errors
	ErrSignInDenied        = errors.New("sign-in denied")
	ErrMissingSubject      = errors.New("identity profile has no subject")
	ErrProviderUnreachable = errors.New("identity provider unreachable")
	ErrInvalidState        = errors.New("invalid state parameter")
	ErrInvalidNonce        = errors.New("invalid nonce")

	// Session token errors
	ErrInvalidToken = errors.New("invalid session token")
	ErrTokenExpired = errors.New("session token expired")
	ErrNoSession    = errors.New("no active session")

	// Backend errors
	ErrBackendUnavailable = errors.New("backend unavailable")

	// Request errors
	ErrInvalidRequest  = errors.New("invalid request")
	ErrMalformedEntity = errors.New("malformed entity data")
	ErrUnknownCategory = errors.New("unknown entity category")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
