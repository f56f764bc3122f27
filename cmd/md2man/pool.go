package main

import "runtime"

// resolvePoolSize determines the number of build workers.
// Priority: explicit flag or config > GOMAXPROCS-based calculation.
func resolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers.
	// Rendering is CPU-bound, so one worker per available CPU.
	n := runtime.GOMAXPROCS(0)

	// Minimum 1, maximum 8
	if n < 1 {
		return 1
	}
	if n > 8 {
		return 8
	}
	return n
}
