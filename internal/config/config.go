// Package config defines the application configuration and its resolution
// chain (highest priority first):
//  1. CLI flags
//  2. Environment variables (ORDERCALC_*)
//  3. Adaptive hardware estimation (workers.go)
//  4. Static defaults in this file
package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	apperrors "github.com/agbru/ordercalc/internal/errors"
)

// Default output paths and limits.
const (
	// DefaultDetailFile is the path of the per-order detail report.
	DefaultDetailFile = "order_details.txt"
	// DefaultSummaryFile is the path of the cross-order summary report.
	DefaultSummaryFile = "order_summary.txt"
	// DefaultTimeout bounds a full aggregation run.
	DefaultTimeout = 5 * time.Minute
)

// AppConfig holds the resolved application configuration.
type AppConfig struct {
	// InputFile is the path of the JSON order document (required positional argument).
	InputFile string
	// DetailFile is the path the detail report is written to.
	DetailFile string
	// SummaryFile is the path the summary report is written to.
	SummaryFile string
	// Workers bounds the aggregation fan-out; 0 selects the adaptive estimate.
	Workers int
	// Timeout bounds the whole run.
	Timeout time.Duration
	// Quiet suppresses the banner, progress display and success messages.
	Quiet bool
	// Verbose enables debug logging and post-run memory diagnostics.
	Verbose bool
	// NoColor disables ANSI colors in console output.
	NoColor bool
	// MetricsAddr, when non-empty, exposes Prometheus metrics on this address.
	MetricsAddr string
}

// ParseConfig parses command-line flags and applies environment overrides.
//
// The single positional argument is the input JSON file path; omitting it is
// a configuration error. Flag errors (including -h/--help, reported as
// flag.ErrHelp) are returned to the caller.
//
// Parameters:
//   - programName: The program name used in usage output.
//   - args: The command-line arguments, without the program name.
//   - errWriter: The writer for usage and flag error output.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: A flag parsing error or an apperrors.ConfigError.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := AppConfig{
		DetailFile:  DefaultDetailFile,
		SummaryFile: DefaultSummaryFile,
		Timeout:     DefaultTimeout,
	}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.StringVar(&cfg.DetailFile, "detail-output", cfg.DetailFile, "path of the per-order detail report")
	fs.StringVar(&cfg.SummaryFile, "summary-output", cfg.SummaryFile, "path of the cross-order summary report")
	fs.IntVar(&cfg.Workers, "workers", 0, "number of aggregation workers (0 = auto)")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "maximum duration of the whole run")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "suppress banner and progress output")
	fs.BoolVar(&cfg.Quiet, "q", false, "shorthand for --quiet")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "enable debug logging and run diagnostics")
	fs.BoolVar(&cfg.Verbose, "v", false, "shorthand for --verbose")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "disable colored console output")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "expose Prometheus metrics on this address (e.g. :9090)")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [flags] <input_json_file>\n\n", programName)
		fmt.Fprintf(errWriter, "Reads a JSON array of orders, aggregates per-product quantities and\n")
		fmt.Fprintf(errWriter, "shipped revenue, and writes a detail and a summary report.\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&cfg, fs)

	if fs.NArg() < 1 {
		fs.Usage()
		return AppConfig{}, apperrors.NewConfigError("missing required argument: input JSON file")
	}
	if fs.NArg() > 1 {
		return AppConfig{}, apperrors.NewConfigError("unexpected extra arguments: %v", fs.Args()[1:])
	}
	cfg.InputFile = fs.Arg(0)

	if cfg.Workers < 0 {
		return AppConfig{}, apperrors.NewConfigError("--workers must not be negative, got %d", cfg.Workers)
	}
	if cfg.Timeout <= 0 {
		return AppConfig{}, apperrors.NewConfigError("--timeout must be positive, got %s", cfg.Timeout)
	}
	if cfg.DetailFile == "" || cfg.SummaryFile == "" {
		return AppConfig{}, apperrors.NewConfigError("report output paths cannot be empty")
	}

	return cfg, nil
}
