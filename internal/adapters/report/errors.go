package report

import (
	"errors"
)

// Sentinel kinds for report errors.
var (
	ErrEncode = errors.New("encode report failed")
	ErrWrite  = errors.New("write report failed")
)
