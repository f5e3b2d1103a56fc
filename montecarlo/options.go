package montecarlo

import (
	"github.com/cfnopt/cfnopt/annealing"
	"github.com/cfnopt/cfnopt/greedy"
	"github.com/cfnopt/cfnopt/solution"
)

// DefaultEps mirrors greedy.DefaultEps: the minimal strictly-better
// improvement used to update an attempt's running best.
const DefaultEps = 1e-9

// Options configures a Monte Carlo / simulated-annealing run, per
// spec.md §4.4.
type Options struct {
	// Schedule is the annealing-schedule template cloned once per
	// attempt; its call_count_final is overridden to Steps on the
	// clone, so the template's own call_count_final is irrelevant.
	Schedule annealing.Schedule

	// Steps is the number of Metropolis proposals per attempt.
	Steps int

	// Attempts is the number of independent attempts (A in spec.md
	// §4.4) run against the problem.
	Attempts int

	// Workers bounds concurrently running attempts. Zero means "all
	// available".
	Workers int

	// StoreMode selects which intermediate states are offered to the
	// store during each attempt.
	StoreMode solution.StorageMode

	// StoreCapacity is the best-N bound of the store Run allocates.
	StoreCapacity int

	// GreedyRefinement, if true, appends a greedy descent attempt
	// seeded from each attempt's x_best, per spec.md §4.4 step 4.
	GreedyRefinement bool

	// GreedyOptions configures the refinement descent when
	// GreedyRefinement is set. Only the iteration-budget fields are
	// consulted: its Eps is replaced by Options.Eps, and workers/store
	// fields are ignored (the refinement runs inline on the attempt's
	// own goroutine).
	GreedyOptions greedy.Options

	// Eps is the minimal strictly-better improvement used to update
	// x_best/S_best within an attempt.
	Eps float64

	// Seed is the master RNG seed; per-attempt streams are derived
	// from (Seed, attempt index).
	Seed int64

	// OnAttemptDone, if set, is invoked once per attempt as it finishes
	// (successfully or with a contained error), from whichever worker
	// goroutine ran that attempt. It is the module's sole observability
	// hook, consistent with logging being an external collaborator's
	// concern, not this package's; callers wire it to their own logger.
	OnAttemptDone func(AttemptReport)
}

// DefaultOptions returns Options with conservative defaults: a
// Logarithmic(10, 0.01) schedule template, 1000 steps, 8 attempts, all
// available workers, check-on-acceptance storage, capacity 16, no
// greedy refinement, Eps=DefaultEps, Seed=0.
func DefaultOptions() (Options, error) {
	sched, err := annealing.NewLogarithmic(10, 0.01, 1)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Schedule:      sched,
		Steps:         1000,
		Attempts:      8,
		Workers:       0,
		StoreMode:     solution.CheckOnAcceptance,
		StoreCapacity: 16,
		Eps:           DefaultEps,
		Seed:          0,
	}, nil
}
