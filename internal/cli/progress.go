package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"
)

// ProgressRefreshRate defines the refresh frequency of the spinner.
const ProgressRefreshRate = 200 * time.Millisecond

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows for the decoupling of the progress reporter from a specific
// spinner implementation, facilitating easier testing and maintenance.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner wraps spinner.Spinner to implement the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() { rs.s.Start() }

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() { rs.s.Stop() }

// UpdateSuffix sets the text that is displayed after the spinner.
func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

// newSpinner constructs the spinner used for progress display. It is a
// variable so tests can substitute a fake.
var newSpinner = func(out io.Writer) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, spinner.WithWriter(out))
	return &realSpinner{s}
}

// SpinnerProgressReporter renders aggregation progress as a spinner with a
// completed/total suffix. It implements aggregate.ProgressReporter and is
// safe for concurrent notifications from multiple workers.
type SpinnerProgressReporter struct {
	mu      sync.Mutex
	spin    Spinner
	started bool
}

// NewSpinnerProgressReporter creates a reporter writing to out.
func NewSpinnerProgressReporter(out io.Writer) *SpinnerProgressReporter {
	return &SpinnerProgressReporter{spin: newSpinner(out)}
}

// OrderCompleted updates the spinner suffix with the current completion
// ratio. The spinner starts lazily on the first notification.
func (r *SpinnerProgressReporter) OrderCompleted(completed, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started {
		r.spin.Start()
		r.started = true
	}

	percent := 0.0
	if total > 0 {
		percent = float64(completed) / float64(total) * 100
	}
	r.spin.UpdateSuffix(fmt.Sprintf(" Processing orders... %d/%d (%.0f%%)", completed, total, percent))
}

// Stop halts the spinner if it was started. It is safe to call multiple
// times and on a reporter that never received a notification.
func (r *SpinnerProgressReporter) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		r.spin.Stop()
		r.started = false
	}
}
