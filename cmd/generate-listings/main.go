package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/rentyield/internal/listinggen"
)

func main() {
	var (
		numRows    = flag.Int("rows", listinggen.DefaultNumRows, "Number of listings to generate")
		outputFile = flag.String("output", listinggen.DefaultOutputFile, "Output CSV file")
		seed       = flag.Uint64("seed", 0, "Random seed; 0 picks a random one")
		logFile    = flag.String("log", "", "Also write logs to this file")
		verbose    = flag.Bool("verbose", false, "Enable debug logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		listinggen.ShowHelp(os.Stdout)
		return
	}

	config := &listinggen.Config{
		NumRows:       *numRows,
		OutputFile:    *outputFile,
		Seed:          *seed,
		ProgressEvery: listinggen.DefaultProgressEvery,
	}
	if err := run(config, *logFile, *verbose); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func run(config *listinggen.Config, logFile string, verbose bool) error {
	closer, err := listinggen.SetupLogging(logFile, verbose)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer func() { _ = closer.Close() }()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stats, err := listinggen.Generate(ctx, config)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}
	fmt.Printf("Successfully created '%s' (%d rows, seed %d)\n", stats.OutputFile, stats.RowsWritten, stats.Seed)
	return nil
}
