package usecase

import (
	"errors"
	"fmt"
)

// Handlers map these to status codes; wrap them with %w.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// unavailable keeps both the sentinel and the storage/provider cause in the
// chain.
func unavailable(err error, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %w", ErrDependencyUnavailable, fmt.Sprintf(format, args...), err)
}
