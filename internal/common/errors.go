// Package common defines shared constants and sentinel errors used across the
// client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// ErrUnauthorized covers authorization failures the gateway could not
	// recover from (expired or revoked credentials).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnavailable indicates the server could not be reached at all.
	ErrUnavailable = errors.New("server unavailable")

	// ErrNotFound maps HTTP 404 responses.
	ErrNotFound = errors.New("not found")
)
