// Package common defines shared constants and sentinel errors used across
// the cursorpool client layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Auth errors. ErrUnauthorized is returned after the backend rejects
	// the bearer token (HTTP 401); ErrNoToken means no credential is
	// stored locally at all.
	ErrUnauthorized = errors.New("unauthorized")
	ErrNoToken      = errors.New("no token")

	// ErrCacheKeyMismatch is returned when the locally cached account data
	// cannot be opened with the current token's derived key.
	ErrCacheKeyMismatch = errors.New("cache key mismatch")
)
