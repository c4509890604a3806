// Package loader reads listing tables (CSV or XLSX) into domain listings.
package loader

import "github.com/okian/rentyield/pkg/logger"

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// WithSheet selects the worksheet read from XLSX workbooks. The first sheet is
// used when unset.
func WithSheet(name string) Option {
	return func(ld *Loader) {
		ld.sheet = name
	}
}
