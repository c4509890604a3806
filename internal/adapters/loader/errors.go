package loader

import (
	"errors"
	"fmt"
)

// Sentinel kinds for loader errors. ErrMissingColumns also matches ErrLoad.
var (
	ErrNotFound       = errors.New("input file not found")
	ErrLoad           = errors.New("load listings failed")
	ErrMissingColumns = fmt.Errorf("%w: missing required columns", ErrLoad)
)
