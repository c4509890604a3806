// Package listinggen writes synthetic listing tables for exercising the analyzer
// at realistic scale.
package listinggen

import "time"

// Config holds configuration for one generation run.
type Config struct {
	NumRows       int    // Number of listings to write
	OutputFile    string // Destination CSV path; parent directories are created
	Seed          uint64 // Random seed; zero picks a fresh one
	ProgressEvery int    // Log progress every N rows; zero disables it
}

// Stats summarises a finished generation run.
type Stats struct {
	RowsWritten int
	Seed        uint64
	OutputFile  string
	Duration    time.Duration
}
