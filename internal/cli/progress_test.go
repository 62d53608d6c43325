package cli

import (
	"io"
	"strings"
	"sync"
	"testing"
)

// fakeSpinner records calls for assertions without touching the terminal.
type fakeSpinner struct {
	mu       sync.Mutex
	started  int
	stopped  int
	suffixes []string
}

func (f *fakeSpinner) Start() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started++
}

func (f *fakeSpinner) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped++
}

func (f *fakeSpinner) UpdateSuffix(suffix string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.suffixes = append(f.suffixes, suffix)
}

func withFakeSpinner(t *testing.T) *fakeSpinner {
	t.Helper()
	fake := &fakeSpinner{}
	orig := newSpinner
	newSpinner = func(io.Writer) Spinner { return fake }
	t.Cleanup(func() { newSpinner = orig })
	return fake
}

func TestSpinnerProgressReporter_StartsLazily(t *testing.T) {
	fake := withFakeSpinner(t)

	r := NewSpinnerProgressReporter(io.Discard)
	if fake.started != 0 {
		t.Error("spinner should not start before the first notification")
	}

	r.OrderCompleted(1, 10)
	r.OrderCompleted(2, 10)

	if fake.started != 1 {
		t.Errorf("spinner started %d times, want 1", fake.started)
	}
	if len(fake.suffixes) != 2 {
		t.Fatalf("got %d suffix updates, want 2", len(fake.suffixes))
	}
	if !strings.Contains(fake.suffixes[1], "2/10") {
		t.Errorf("suffix = %q, want completion ratio 2/10", fake.suffixes[1])
	}
}

func TestSpinnerProgressReporter_Stop(t *testing.T) {
	fake := withFakeSpinner(t)

	r := NewSpinnerProgressReporter(io.Discard)

	// Stop before any notification is a no-op.
	r.Stop()
	if fake.stopped != 0 {
		t.Error("Stop on an idle reporter should not touch the spinner")
	}

	r.OrderCompleted(1, 1)
	r.Stop()
	r.Stop()

	if fake.stopped != 1 {
		t.Errorf("spinner stopped %d times, want 1", fake.stopped)
	}
}

func TestSpinnerProgressReporter_ConcurrentNotifications(t *testing.T) {
	fake := withFakeSpinner(t)

	r := NewSpinnerProgressReporter(io.Discard)

	const n = 50
	var wg sync.WaitGroup
	for i := 1; i <= n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.OrderCompleted(i, n)
		}(i)
	}
	wg.Wait()
	r.Stop()

	if fake.started != 1 {
		t.Errorf("spinner started %d times, want 1", fake.started)
	}
	if len(fake.suffixes) != n {
		t.Errorf("got %d suffix updates, want %d", len(fake.suffixes), n)
	}
}
