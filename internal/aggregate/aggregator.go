package aggregate

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/ordercalc/internal/errors"
	"github.com/agbru/ordercalc/internal/logging"
	"github.com/agbru/ordercalc/internal/order"
)

// PriceTolerance is the maximum absolute difference under which two unit
// prices for the same product are considered consistent.
const PriceTolerance = 0.001

// Result encapsulates the outcome of a single aggregation run. It serves as
// the shared domain type between the engine and the presentation layer.
type Result struct {
	// OrderDetails holds the formatted per-order detail strings, re-sequenced
	// to match the original input order regardless of processing order.
	OrderDetails []string
	// ProductQuantities maps each product name to its cumulative quantity
	// across all orders and all items.
	ProductQuantities map[string]int
	// TotalRevenue is the sum of order totals over fulfilled orders only.
	TotalRevenue float64
}

// ProgressReporter receives completion notifications from the engine.
// This interface decouples the engine from the presentation layer; the CLI
// renders a spinner, tests plug in fakes, and quiet mode uses
// NullProgressReporter.
type ProgressReporter interface {
	// OrderCompleted is called after each order finishes processing, with the
	// number of completed orders so far and the total order count. It may be
	// called concurrently from multiple workers.
	OrderCompleted(completed, total int)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
type NullProgressReporter struct{}

// OrderCompleted discards the notification.
func (NullProgressReporter) OrderCompleted(int, int) {}

// Engine performs the concurrent aggregation fold. Construct it with New;
// the zero value is not usable.
type Engine struct {
	workers  int
	reporter ProgressReporter
	logger   logging.Logger
}

// Option configures an Engine during construction.
type Option func(*Engine)

// WithProgress sets the progress reporter notified as orders complete.
func WithProgress(r ProgressReporter) Option {
	return func(e *Engine) {
		if r != nil {
			e.reporter = r
		}
	}
}

// WithLogger sets the structured logger used for run diagnostics.
func WithLogger(l logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an Engine with the given worker bound. A non-positive worker
// count falls back to the number of logical CPUs.
func New(workers int, opts ...Option) *Engine {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	e := &Engine{
		workers:  workers,
		reporter: NullProgressReporter{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Aggregate runs the concurrent fold over orders.
//
// Each order is processed by one worker: its detail string is built, each
// item's price is checked against the shared price registry (first writer
// wins via an atomic insert-if-absent), its quantities are merged into the
// shared per-product counters, and, if the order is fulfilled, its total is
// added to the revenue accumulator.
//
// A price conflict beyond PriceTolerance fails the entire run with an
// apperrors.PriceMismatchError: the error cancels scheduling of remaining
// orders, in-flight workers are allowed to finish, and no partial result is
// returned. Context cancellation or deadline expiry likewise aborts the run.
//
// Parameters:
//   - ctx: The context bounding the run (timeout, SIGINT).
//   - orders: The validated orders, in input order.
//
// Returns:
//   - *Result: The aggregates, nil if the run failed.
//   - error: A PriceMismatchError, or the context's error on cancellation.
func (e *Engine) Aggregate(ctx context.Context, orders []*order.Order) (*Result, error) {
	total := len(orders)
	details := make([]string, total)

	// Shared state, written concurrently by all workers. The price registry
	// and quantity counters rely on sync.Map's LoadOrStore for atomic
	// insert-if-absent; counters are then bumped with atomic adds so
	// concurrent merges for the same key never lose updates.
	var (
		prices     sync.Map // product name -> float64 canonical price
		quantities sync.Map // product name -> *int64 cumulative quantity
		revenue    FloatAdder
		completed  atomic.Int64
	)

	workers := e.workers
	if workers > total {
		workers = total
	}
	if workers < 1 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, ord := range orders {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			detail, orderTotal, err := processOrder(ord, &prices, &quantities)
			if err != nil {
				return err
			}
			details[i] = detail

			if ord.Fulfilled() {
				revenue.Add(orderTotal)
			}

			e.reporter.OrderCompleted(int(completed.Add(1)), total)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if e.logger != nil {
			e.logger.Error("aggregation aborted", err, logging.Int("orders", total))
		}
		return nil, err
	}

	result := &Result{
		OrderDetails:      details,
		ProductQuantities: collectQuantities(&quantities),
		TotalRevenue:      revenue.Sum(),
	}

	if e.logger != nil {
		e.logger.Debug("aggregation complete",
			logging.Int("orders", total),
			logging.Int("products", len(result.ProductQuantities)),
			logging.Float64("revenue", result.TotalRevenue))
	}
	return result, nil
}

// processOrder builds one order's detail string and merges its items into
// the shared registries. The order-local total is accumulated without
// contention and returned for the revenue step.
func processOrder(ord *order.Order, prices, quantities *sync.Map) (string, float64, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Order Id: %s, Customer: %s, Status: %s\n",
		ord.OrderID(), ord.Customer(), ord.Status())

	var orderTotal float64
	for _, item := range ord.Items() {
		product := item.Product()
		price := item.Price()

		// First writer wins: LoadOrStore is a single atomic insert-if-absent,
		// so two workers meeting the same new product resolve to exactly one
		// canonical price and the other is checked against it.
		if prev, loaded := prices.LoadOrStore(product, price); loaded {
			if canonical := prev.(float64); math.Abs(canonical-price) > PriceTolerance {
				return "", 0, apperrors.PriceMismatchError{
					Product:  product,
					Found:    price,
					Previous: canonical,
				}
			}
		}

		counter, _ := quantities.LoadOrStore(product, new(int64))
		atomic.AddInt64(counter.(*int64), int64(item.Quantity()))

		orderTotal += item.LineTotal()
		fmt.Fprintf(&sb, "  Product: %s, Qty: %d, Price: $ %.2f\n",
			product, item.Quantity(), price)
	}

	fmt.Fprintf(&sb, "  Order Total: $ %.2f\n", orderTotal)
	return sb.String(), orderTotal, nil
}

// collectQuantities materializes the concurrent counter map into a plain map
// once all workers have finished.
func collectQuantities(quantities *sync.Map) map[string]int {
	out := make(map[string]int)
	quantities.Range(func(key, value any) bool {
		out[key.(string)] = int(atomic.LoadInt64(value.(*int64)))
		return true
	})
	return out
}
