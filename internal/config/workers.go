package config

import "runtime"

// ApplyAdaptiveWorkers fills in the worker count from hardware
// characteristics when the configuration leaves it at its zero default,
// preserving any user-specified override via flag or environment.
func ApplyAdaptiveWorkers(cfg AppConfig) AppConfig {
	if cfg.Workers == 0 {
		cfg.Workers = EstimateOptimalWorkerCount()
	}
	return cfg
}

// EstimateOptimalWorkerCount provides a heuristic worker count without
// running benchmarks. Aggregation is CPU-bound in-memory work, so the
// estimate tracks the logical CPU count but caps the fan-out: beyond a
// moderate bound the shared-counter contention outweighs extra parallelism.
func EstimateOptimalWorkerCount() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU <= 2:
		return numCPU
	case numCPU <= 16:
		return numCPU
	default:
		return 16
	}
}
