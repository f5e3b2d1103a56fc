// Package montecarlo implements the Metropolis / simulated-annealing
// CFN optimizer of spec.md §4.4: many independent attempts, each
// performing a random-flip Metropolis walk under a cloned annealing
// schedule, optionally refined by a greedy descent from its best
// assignment.
package montecarlo

import (
	"errors"
	"math"
	"math/rand"

	"github.com/cfnopt/cfnopt/cfn"
	"github.com/cfnopt/cfnopt/cfnrand"
	"github.com/cfnopt/cfnopt/greedy"
	"github.com/cfnopt/cfnopt/solution"
	"github.com/cfnopt/cfnopt/workerpool"
)

// AttemptReport summarizes the outcome of one attempt, passed to
// Options.OnAttemptDone once that attempt finishes (successfully or
// not). Assignment and Score are the attempt's reported best; they are
// the zero value when Err is non-nil.
type AttemptReport struct {
	Index      int
	Assignment cfn.Assignment
	Score      float64
	Err        error
}

// pickMove draws a variable node uniformly, then a new choice uniformly
// from that node's choice range excluding its current value. Nodes
// with only one choice can never propose a move, so such a draw is
// repeated; after 4n+4 draws without a node of more than one choice,
// or for an empty assignment, pickMove returns ok=false. Every
// variable node of a finalized Problem has more than one choice, so
// the first draw succeeds there.
func pickMove(problem *cfn.Problem, x cfn.Assignment, rng *rand.Rand) (k, c int, ok bool) {
	n := len(x)
	if n == 0 {
		return 0, 0, false
	}
	for attempt := 0; attempt < 4*n+4; attempt++ {
		k = rng.Intn(n)
		kcount := problem.ChoiceCount(k)
		if kcount <= 1 {
			continue
		}
		c = rng.Intn(kcount - 1)
		if c >= x[k] {
			c++
		}
		return k, c, true
	}
	return 0, 0, false
}

func randomAssignment(problem *cfn.Problem, rng *rand.Rand) cfn.Assignment {
	n := problem.VarNodeCount()
	x := make(cfn.Assignment, n)
	for k := 0; k < n; k++ {
		x[k] = rng.Intn(problem.ChoiceCount(k))
	}
	return x
}

// attempt runs one Metropolis walk of opts.Steps proposals, streaming
// candidates into store according to opts.StoreMode, and returns its
// best (assignment, score) pair. index identifies this attempt among
// Run's opts.Attempts siblings, reported to opts.OnAttemptDone.
func attempt(problem *cfn.Problem, opts Options, rng *rand.Rand, store *solution.Store, index int) (xBest cfn.Assignment, sBest float64, err error) {
	if opts.OnAttemptDone != nil {
		defer func() {
			opts.OnAttemptDone(AttemptReport{Index: index, Assignment: xBest, Score: sBest, Err: err})
		}()
	}

	schedule := opts.Schedule.Clone()
	schedule.SetCallCountFinal(opts.Steps)

	x := randomAssignment(problem, rng)
	score, err := problem.Score(x)
	if err != nil {
		return nil, 0, err
	}
	scratch := problem.NewScratchSpace()

	xBest = append(cfn.Assignment(nil), x...)
	sBest = score

	for step := 0; step < opts.Steps; step++ {
		k, c, ok := pickMove(problem, x, rng)
		if !ok {
			continue
		}
		xNew := append(cfn.Assignment(nil), x...)
		xNew[k] = c

		delta, derr := problem.Delta(x, xNew, scratch)
		if derr != nil {
			return nil, 0, derr
		}

		if opts.StoreMode == solution.CheckEveryStep {
			store.Consider(xNew, score+delta)
		}

		temperature := schedule.Temperature()
		accept := delta <= 0
		if !accept && temperature > 0 {
			accept = rng.Float64() < math.Exp(-delta/temperature)
		}

		if !accept {
			continue
		}

		x = xNew
		score += delta
		scratch.AcceptLastMove()

		if opts.StoreMode == solution.CheckOnAcceptance {
			store.Consider(x, score)
		}

		if score < sBest-opts.Eps {
			sBest = score
			xBest = append(cfn.Assignment(nil), x...)
		}
	}

	if opts.GreedyRefinement {
		refOpts := opts.GreedyOptions
		refOpts.Eps = opts.Eps
		xRef, sRef, rerr := greedy.DescendFromSeed(problem, xBest, refOpts)
		if rerr != nil {
			return nil, 0, rerr
		}
		if sRef < sBest {
			sBest, xBest = sRef, xRef
		}
	}

	store.Consider(xBest, sBest)
	return xBest, sBest, nil
}

// Run executes opts.Attempts independent Metropolis attempts in
// parallel across a worker pool, each owning its own cloned schedule,
// scratch, and RNG stream (derived from (opts.Seed, attempt index) per
// spec.md §5), and returns the shared store every attempt contributed
// to. The immutable problem is shared by reference across attempts, as
// spec.md §5 requires.
func Run(problem *cfn.Problem, opts Options) (*solution.Store, error) {
	store, err := solution.NewStore(opts.StoreCapacity, opts.StoreMode)
	if err != nil {
		return nil, err
	}

	pool := workerpool.NewErrgroupPool(opts.Workers)
	for a := 0; a < opts.Attempts; a++ {
		a := a
		pool.Go(func() error {
			rng := cfnrand.DeriveRNG(opts.Seed, a)
			_, _, aerr := attempt(problem, opts, rng, store, a)
			if aerr != nil {
				// Contained per spec.md §7: this attempt is aborted and
				// its error recorded, but other attempts proceed and Run
				// still reports partial success.
				store.RecordError(aerr)
			}
			return nil
		})
	}
	if err := pool.Wait(); err != nil {
		// attempt's own failures are contained above; a non-nil error
		// here means the pool itself failed to schedule work.
		return store, err
	}
	if errs := store.Errors(); len(errs) > 0 {
		return store, errors.Join(errs...)
	}
	return store, nil
}
