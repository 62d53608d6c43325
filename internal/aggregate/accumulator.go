package aggregate

import (
	"math"
	"sync/atomic"
)

// FloatAdder is a concurrency-safe float64 accumulator. Adds are lock-free
// compare-and-swap loops over the value's bit pattern, so concurrent adds
// from many workers never lose updates. Accumulation order is not fixed;
// results carry only standard floating-point accumulation error.
type FloatAdder struct {
	bits atomic.Uint64
}

// Add atomically adds v to the accumulator.
func (a *FloatAdder) Add(v float64) {
	for {
		old := a.bits.Load()
		next := math.Float64bits(math.Float64frombits(old) + v)
		if a.bits.CompareAndSwap(old, next) {
			return
		}
	}
}

// Sum returns the current accumulated value.
func (a *FloatAdder) Sum() float64 {
	return math.Float64frombits(a.bits.Load())
}
