package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/ordercalc/internal/aggregate"
	"github.com/agbru/ordercalc/internal/cli"
	apperrors "github.com/agbru/ordercalc/internal/errors"
	"github.com/agbru/ordercalc/internal/logging"
	"github.com/agbru/ordercalc/internal/metrics"
	"github.com/agbru/ordercalc/internal/order"
	"github.com/agbru/ordercalc/internal/report"
	"github.com/agbru/ordercalc/internal/server"
)

// runAggregation orchestrates the execution of the aggregation pipeline:
// load, fold, report.
func (a *Application) runAggregation(ctx context.Context, out io.Writer) int {
	logger := a.newLogger()

	orders, code := a.loadOrders(logger)
	if code != apperrors.ExitSuccess {
		return code
	}

	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	runMetrics := a.startMetricsServer(ctx, logger)

	if !a.Config.Quiet {
		cli.PrintRunConfig(a.Config, len(orders), out)
	}

	// Choose progress reporter based on quiet mode
	var progressReporter aggregate.ProgressReporter
	var spinnerReporter *cli.SpinnerProgressReporter
	if a.Config.Quiet {
		progressReporter = aggregate.NullProgressReporter{}
	} else {
		spinnerReporter = cli.NewSpinnerProgressReporter(out)
		progressReporter = spinnerReporter
	}

	collector := metrics.NewMemoryCollector()
	memBefore := collector.Snapshot()

	engine := aggregate.New(a.Config.Workers,
		aggregate.WithProgress(progressReporter),
		aggregate.WithLogger(logger),
	)

	start := time.Now()
	if runMetrics != nil {
		runMetrics.IncrementActiveRuns()
	}
	result, err := engine.Aggregate(ctx, orders)
	elapsed := time.Since(start)
	if runMetrics != nil {
		runMetrics.DecrementActiveRuns()
	}

	if spinnerReporter != nil {
		spinnerReporter.Stop()
	}

	if err != nil {
		if runMetrics != nil {
			runMetrics.RecordRun(runOutcome(err), len(orders), elapsed)
		}
		return a.reportRunError(err, logger)
	}

	if a.Config.Verbose {
		delta := metrics.Delta(memBefore, collector.Snapshot())
		logger.Debug("aggregation memory profile", delta.Fields()...)
	}
	logger.Info("aggregation complete",
		logging.Int("orders", len(orders)),
		logging.Int("products", len(result.ProductQuantities)),
		logging.Float64("total_revenue", result.TotalRevenue),
		logging.String("duration", cli.FormatExecutionDuration(elapsed)),
	)

	detailReport := report.FormatDetailReport(result.OrderDetails)
	summaryReport := report.FormatSummaryReport(result.ProductQuantities, result.TotalRevenue)

	cli.DisplayReports(out, detailReport, summaryReport)

	if err := cli.WriteReportFile(a.Config.DetailFile, detailReport); err != nil {
		logger.Error("cannot write detail report", err)
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorIO
	}
	if err := cli.WriteReportFile(a.Config.SummaryFile, summaryReport); err != nil {
		logger.Error("cannot write summary report", err)
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorIO
	}

	if !a.Config.Quiet {
		cli.DisplaySavedReports(out, a.Config.DetailFile, a.Config.SummaryFile)
	}
	if runMetrics != nil {
		runMetrics.RecordRun("success", len(orders), elapsed)
	}
	return apperrors.ExitSuccess
}

// newLogger builds the run logger. Quiet mode still logs, but only to the
// error stream where it does not interleave with report output.
func (a *Application) newLogger() logging.Logger {
	if a.Config.Verbose {
		return logging.NewLogger(a.ErrWriter, "ordercalc")
	}
	return logging.NewDefaultLogger()
}

// loadOrders validates the input path, then decodes and validates every
// order document. The whole input is rejected on the first invalid entity.
func (a *Application) loadOrders(logger logging.Logger) ([]*order.Order, int) {
	path := a.Config.InputFile

	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: cannot access input file %q: %v\n", path, err)
		return nil, apperrors.ExitErrorConfig
	}
	if !info.Mode().IsRegular() {
		fmt.Fprintf(a.ErrWriter, "Error: input path %q is not a regular file\n", path)
		return nil, apperrors.ExitErrorConfig
	}

	file, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: cannot open input file %q: %v\n", path, err)
		return nil, apperrors.ExitErrorConfig
	}
	defer file.Close()

	orders, err := order.ParseOrders(file)
	if err != nil {
		logger.Error("cannot load orders", err, logging.String("path", path))
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return nil, apperrors.ExitErrorParse
	}

	logger.Debug("orders loaded", logging.Int("count", len(orders)), logging.String("path", path))
	return orders, apperrors.ExitSuccess
}

// startMetricsServer starts the optional Prometheus endpoint. It returns nil
// when no metrics address is configured.
func (a *Application) startMetricsServer(ctx context.Context, logger logging.Logger) *server.Metrics {
	if a.Config.MetricsAddr == "" {
		return nil
	}
	m := server.NewMetrics()
	go func() {
		if err := m.Serve(ctx, a.Config.MetricsAddr, logger); err != nil {
			logger.Warn("metrics server stopped", logging.Err(err))
		}
	}()
	return m
}

// reportRunError maps an aggregation failure to a user message and exit code.
func (a *Application) reportRunError(err error, logger logging.Logger) int {
	var mismatchErr apperrors.PriceMismatchError
	if errors.As(err, &mismatchErr) {
		logger.Error("aggregation aborted", mismatchErr,
			logging.String("product", mismatchErr.Product),
			logging.Float64("found", mismatchErr.Found),
			logging.Float64("previous", mismatchErr.Previous),
		)
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", mismatchErr)
		return apperrors.ExitErrorMismatch
	}

	if errors.Is(err, context.DeadlineExceeded) {
		timeoutErr := apperrors.TimeoutError{Operation: "aggregation", Limit: a.Config.Timeout}
		logger.Error("aggregation timed out", timeoutErr)
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", timeoutErr)
		return apperrors.ExitErrorTimeout
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintf(a.ErrWriter, "Canceled.\n")
		return apperrors.ExitErrorCanceled
	}

	logger.Error("aggregation failed", err)
	fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
	return apperrors.ExitErrorGeneric
}

// runOutcome classifies an aggregation error for the runs_total metric label.
func runOutcome(err error) string {
	var mismatchErr apperrors.PriceMismatchError
	switch {
	case errors.As(err, &mismatchErr):
		return "price_mismatch"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "error"
	}
}
