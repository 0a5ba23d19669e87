package model

import "errors"

// Sentinel errors shared across packages.
var (
	// ErrCancelled is returned when the user dismisses an interactive step.
	ErrCancelled = errors.New("cancelled by user")
	// ErrBinaryNotFound is returned when a required external tool cannot be located.
	ErrBinaryNotFound = errors.New("required executable not found")
)
