package config

import "errors"

// Configuration validation errors.
//
// Design decision: Package-level sentinel errors rather than ad-hoc
// fmt.Errorf values, so callers can branch with errors.Is while users
// still get a readable message.
var (
	// ErrNoInput is returned when no identifier source is configured:
	// no positional addresses, no --list file, no --random count.
	ErrNoInput = errors.New("no input: provide MAC addresses, --list, or --random")

	// ErrNoEndpoint is returned when the activation endpoint is empty.
	ErrNoEndpoint = errors.New("no activation endpoint configured")

	// ErrInvalidTimeout is returned when the per-attempt timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidRetries is returned when the attempt budget is not positive.
	ErrInvalidRetries = errors.New("invalid retries: must be positive")

	// ErrInvalidBackoff is returned when the backoff is negative.
	// Use 0 for no wait between attempts.
	ErrInvalidBackoff = errors.New("invalid backoff: must be non-negative")

	// ErrInvalidConcurrency is returned when the concurrency ceiling is
	// not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidRandomCount is returned when the random generation count
	// is negative.
	ErrInvalidRandomCount = errors.New("invalid random count: must be non-negative")

	// ErrNoProxyFile is returned when proxy routing is enabled without a
	// proxy list file.
	ErrNoProxyFile = errors.New("proxy routing enabled but no proxy file given")
)
