// Package report writes analysis reports as indented JSON documents.
package report

import "github.com/okian/rentyield/pkg/logger"

// Option applies a configuration option to the Writer.
type Option func(*Writer)

// WithIndent sets the number of spaces per nesting level. Zero writes compact JSON.
func WithIndent(spaces int) Option {
	return func(w *Writer) {
		if spaces >= 0 {
			w.indent = spaces
		}
	}
}

// WithLogger sets the logger used for write diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(w *Writer) {
		if l != nil {
			w.logger = l
		}
	}
}
