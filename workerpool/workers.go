package workerpool

import "runtime"

// defaultWorkers returns the "all available" worker count when a
// caller configures 0 threads, per spec.md §4.4's "threads to request
// (0 = all available)".
func defaultWorkers() int {
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		return 1
	}
	return n
}
