// Package aggregate implements the concurrent fold over an order list into
// shared per-product counters. It is the core of the application: a bounded
// worker fan-out that builds per-order detail text, enforces the cross-order
// price-consistency invariant, and accumulates per-product quantities and
// shipped revenue.
//
// Merge contract: the quantity map and the revenue accumulator are
// commutative, associative accumulations. Any interleaving of workers yields
// identical final aggregates; only the per-order detail slice is ordered, and
// it is indexed by input position rather than completion order. Substituting
// a different concurrency primitive must not change results.
package aggregate
