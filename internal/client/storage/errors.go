package storage

import "errors"

// Common client storage errors
var (
	// ErrSessionNotFound indicates that the user is not logged in
	ErrSessionNotFound = errors.New("session not found")
)
