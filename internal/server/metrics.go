// Package server exposes operational metrics over HTTP. The endpoint is
// optional; it is started only when a metrics address is configured, which
// is useful when the aggregator runs as a scheduled batch job under a
// scrape-based monitoring setup.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/ordercalc/internal/logging"
)

// Metrics holds the Prometheus instrumentation for aggregation runs.
// Each Metrics value owns a private registry, so constructing multiple
// instances (as tests do) never trips duplicate-registration panics.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	runsTotal       *prometheus.CounterVec
	ordersProcessed prometheus.Counter
	activeRuns      prometheus.Gauge
	runDuration     prometheus.Histogram
}

// NewMetrics creates the metric set and registers it together with the
// standard Go runtime and process collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ordercalc_runs_total",
			Help: "Total number of aggregation runs by outcome.",
		}, []string{"outcome"}),
		ordersProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ordercalc_orders_processed_total",
			Help: "Total number of orders processed across all runs.",
		}),
		activeRuns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ordercalc_active_runs",
			Help: "Number of aggregation runs currently in progress.",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ordercalc_run_duration_seconds",
			Help:    "Wall-clock duration of aggregation runs.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	registry.MustRegister(
		m.runsTotal,
		m.ordersProcessed,
		m.activeRuns,
		m.runDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// IncrementActiveRuns marks the start of an aggregation run.
func (m *Metrics) IncrementActiveRuns() {
	m.activeRuns.Inc()
}

// DecrementActiveRuns marks the end of an aggregation run.
func (m *Metrics) DecrementActiveRuns() {
	m.activeRuns.Dec()
}

// RecordRun records the outcome, order count, and duration of a finished run.
// Outcome is a small label set such as "success", "price_mismatch", or
// "error"; callers must not pass unbounded values.
func (m *Metrics) RecordRun(outcome string, orders int, duration time.Duration) {
	m.runsTotal.WithLabelValues(outcome).Inc()
	m.ordersProcessed.Add(float64(orders))
	m.runDuration.Observe(duration.Seconds())
}

// WritePrometheus serves the metrics in Prometheus exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// Serve runs an HTTP server exposing /metrics on addr until ctx is
// canceled. It returns nil on graceful shutdown.
func (m *Metrics) Serve(ctx context.Context, addr string, logger logging.Logger) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", m.WritePrometheus)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics server listening", logging.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
