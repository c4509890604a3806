package listinggen

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/rentyield/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0o600
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// SetupLogging initializes the global logger on stderr and, when logFile is
// set, on that file as well.
func SetupLogging(logFile string, verbose bool) (io.Closer, error) {
	var (
		w      io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
		if err != nil {
			return nil, fmt.Errorf("failed to create log file: %w", err)
		}
		w = io.MultiWriter(os.Stderr, file)
		closer = file
	}

	if err := logger.InitWith(w, logger.FormatText); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}
	return closer, nil
}

// ShowHelp prints usage information for the generate-listings tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Listing Generator
=================

Writes a synthetic property listings table for the rental-yield analyzer.

Usage:
  go run ./cmd/generate-listings [options]

Options:
  -rows int
        Number of listings to generate (default 1000000)
  -output string
        Output CSV file (default "data/listings.csv")
  -seed uint
        Random seed; 0 picks a random one (default 0)
  -log string
        Also write logs to this file
  -verbose
        Enable debug logging
  -help
        Show this help message

Examples:
  # One million listings in data/listings.csv
  go run ./cmd/generate-listings

  # A small reproducible table
  go run ./cmd/generate-listings -rows 1000 -seed 42 -output testdata/small.csv
`)
}
