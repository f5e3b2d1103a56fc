package greedy

import "github.com/cfnopt/cfnopt/solution"

// DefaultEps is the minimal strictly-better improvement a candidate
// move must show to be applied, mirroring the teacher's
// tsp.DefaultEps convention for local-search comparisons.
const DefaultEps = 1e-9

// Options configures a greedy run. Zero value is not meaningful; use
// DefaultOptions() and override fields as needed.
type Options struct {
	// Eps is the minimal strictly-better improvement considered
	// significant; a candidate move with delta >= -Eps does not count
	// as an improving move.
	Eps float64

	// MaxIterationsPerSeed bounds the number of accepted moves per
	// seed's descent. Zero means unlimited.
	MaxIterationsPerSeed int

	// ThrowIfIterationBudgetExceeded, if true, makes Run/DescendFromSeed
	// report ErrIterationBudgetExceeded when MaxIterationsPerSeed is hit
	// while an improving move still exists; if false, the descent simply
	// stops and returns its current (possibly non-locally-optimal)
	// assignment without error.
	ThrowIfIterationBudgetExceeded bool

	// NRandomStartingStates, when no explicit seeds are supplied to
	// Run, is how many uniformly random seed assignments to generate.
	NRandomStartingStates int

	// Workers bounds the number of seeds processed concurrently. Zero
	// means "all available", per spec.md §4.4's thread-count
	// convention (shared across optimizers).
	Workers int

	// StoreCapacity is the best-N bound of the Store Run allocates
	// internally.
	StoreCapacity int

	// StoreMode is the StorageMode of the Store Run allocates. Run
	// offers each seed's final local optimum only, whatever the mode;
	// CheckOnFinalOnly is the default since it names that behavior.
	StoreMode solution.StorageMode

	// Seed is the master RNG seed used to derive per-seed-attempt
	// streams when seeds are randomly generated.
	Seed int64

	// OnAttemptDone, if set, is invoked once per seed as it finishes
	// (successfully or with a contained error), from whichever worker
	// goroutine processed that seed. It is the module's sole
	// observability hook, consistent with logging being an external
	// collaborator's concern, not this package's; callers wire it to
	// their own logger.
	OnAttemptDone func(AttemptReport)
}

// DefaultOptions returns Options with conservative, deterministic
// defaults: Eps=DefaultEps, unlimited iterations, 8 random starting
// states, all available workers, store capacity 16, final-only
// storage, Seed=0.
func DefaultOptions() Options {
	return Options{
		Eps:                   DefaultEps,
		MaxIterationsPerSeed:  0,
		NRandomStartingStates: 8,
		Workers:               0,
		StoreCapacity:         16,
		StoreMode:             solution.CheckOnFinalOnly,
		Seed:                  0,
	}
}
