package service

import (
	"errors"
)

// Sentinel kinds for pipeline errors.
var (
	// ErrUnexpected wraps a panic recovered inside a pipeline run.
	ErrUnexpected = errors.New("unexpected pipeline failure")
)
