package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/rentyield/internal/adapters/loader"
	app "github.com/okian/rentyield/internal/app"
	"github.com/okian/rentyield/internal/config"
	"github.com/okian/rentyield/pkg/logger"
	"github.com/okian/rentyield/pkg/metrics"
)

// Process exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

const usage = "Usage: rentyield <input_file_path> <output_file_path>"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one analysis and returns the process exit code. Operator
// messages go to stdout and stderr; structured logs go to stderr.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(stderr, "Error: Invalid arguments.")
		fmt.Fprintln(stderr, usage)
		return exitUsage
	}
	in, out := args[0], args[1]

	// Load configuration (defaults -> .env -> optional file -> env)
	cfg, err := config.Load()
	if err != nil {
		// Use fmt for initialization errors since logger isn't available yet
		fmt.Fprintln(stderr, "failed to load config: "+err.Error())
		return exitFailure
	}

	if err := logger.InitWith(stderr, cfg.LogFormat); err != nil {
		fmt.Fprintln(stderr, "failed to initialize logging: "+err.Error())
		return exitFailure
	}
	defer func() { _ = logger.Sync() }()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		_ = logger.SetLevelString("info")
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc := app.New(
		app.WithLogger(logger.Named("pipeline")),
		app.WithYieldThreshold(cfg.YieldThreshold),
		app.WithTopN(cfg.TopN),
		app.WithRoundPlaces(cfg.RoundPlaces),
		app.WithIndent(cfg.JSONIndent),
	)

	res, runErr := svc.Run(ctx, in, out)
	writeMetrics(ctx, cfg.MetricsFile)

	if runErr != nil {
		fmt.Fprintln(stderr, describe(in, runErr))
		return exitFailure
	}

	fmt.Fprintf(stdout, "Loaded %d records.\n", res.Loaded)
	fmt.Fprintf(stdout, "Analysis complete in %.2f ms.\n", float64(res.Summary.Elapsed.Microseconds())/1000)
	fmt.Fprintf(stdout, "Peak heap usage: %.2f MB\n", float64(res.Summary.PeakHeapBytes)/(1<<20))
	fmt.Fprintf(stdout, "Successfully wrote report to %s\n", out)
	return exitOK
}

// describe turns a pipeline error into the operator message.
func describe(in string, err error) string {
	switch {
	case errors.Is(err, loader.ErrNotFound):
		return fmt.Sprintf("Error: The file '%s' was not found.", in)
	case errors.Is(err, app.ErrUnexpected):
		return "An unexpected error occurred: " + err.Error()
	case errors.Is(err, context.Canceled):
		return "Error: interrupted; no report was written."
	default:
		return "Error: " + err.Error()
	}
}

// writeMetrics persists the run's metrics when a textfile path is configured.
func writeMetrics(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := metrics.WriteTextfile(path); err != nil {
		logger.Get().Warn(ctx, "metrics textfile not written", logger.String("path", path), logger.Error(err))
	}
}
