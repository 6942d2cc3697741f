package domain

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrUnsupportedToken     = errors.New("unsupported token")
	ErrUnsupportedTimeframe = errors.New("unsupported timeframe")
	ErrNoChainSupport       = errors.New("token is not available on any requested chain")
	ErrMissingField         = errors.New("missing required field")
	ErrInvalidInput         = errors.New("invalid input")
	ErrUpstreamUnavailable  = errors.New("market data upstream unavailable")
	ErrContextDone          = errors.New("context cancelled")
	ErrLockHeld             = errors.New("lock already held")
)

// IsClientInput reports whether err represents a caller mistake (bad token,
// bad chain set, missing field) rather than an upstream or internal fault.
// Handlers use this to choose between 400, 503, and 500 responses.
func IsClientInput(err error) bool {
	return errors.Is(err, ErrUnsupportedToken) ||
		errors.Is(err, ErrUnsupportedTimeframe) ||
		errors.Is(err, ErrNoChainSupport) ||
		errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrInvalidInput)
}
