// Package metrics collects runtime memory statistics around an aggregation
// run. In verbose mode the application snapshots memory before and after
// the fold and logs the delta, which makes allocation regressions in the
// per-order processing visible without a profiler.
package metrics

import (
	"runtime"

	"github.com/agbru/ordercalc/internal/logging"
)

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	HeapSys      uint64 // bytes obtained from OS for heap
	Sys          uint64 // total bytes obtained from OS
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
	HeapObjects  uint64 // number of allocated heap objects
}

// MemoryDelta describes the change between two snapshots taken around a run.
type MemoryDelta struct {
	HeapAllocBytes int64
	HeapObjects    int64
	GCCycles       uint32
	GCPauseNs      uint64
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		HeapObjects:  m.HeapObjects,
	}
}

// Delta computes the change from before to after. Heap figures can go
// negative when a GC cycle ran between the snapshots.
func Delta(before, after MemorySnapshot) MemoryDelta {
	return MemoryDelta{
		HeapAllocBytes: int64(after.HeapAlloc) - int64(before.HeapAlloc),
		HeapObjects:    int64(after.HeapObjects) - int64(before.HeapObjects),
		GCCycles:       after.NumGC - before.NumGC,
		GCPauseNs:      after.PauseTotalNs - before.PauseTotalNs,
	}
}

// Fields renders the delta as structured log fields.
func (d MemoryDelta) Fields() []logging.Field {
	return []logging.Field{
		logging.Int64("heap_alloc_delta_bytes", d.HeapAllocBytes),
		logging.Int64("heap_objects_delta", d.HeapObjects),
		logging.Int("gc_cycles", int(d.GCCycles)),
		logging.Uint64("gc_pause_ns", d.GCPauseNs),
	}
}
