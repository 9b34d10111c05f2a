package model

import "errors"

// Sentinel errors for pipeline operations.
var (
	// ErrUnknownGame is returned when a game identifier does not map to any
	// supported backend.
	ErrUnknownGame = errors.New("unknown game")
)
