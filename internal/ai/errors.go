package ai

import "errors"

var (
	// ErrUnavailable means the provider is not configured (missing key).
	ErrUnavailable = errors.New("ai provider not configured")
	// ErrProvider wraps any upstream failure: timeout, rate limit, auth.
	ErrProvider = errors.New("ai provider request failed")
)
