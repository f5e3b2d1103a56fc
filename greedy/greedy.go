// Package greedy implements the parallel single-flip descent CFN
// optimizer of spec.md §4.5: from each seed assignment, repeatedly
// apply the single best-improving (variable, choice) flip until none
// remains, then stop at that local optimum.
package greedy

import (
	"errors"
	"math/rand"

	"github.com/cfnopt/cfnopt/cfn"
	"github.com/cfnopt/cfnopt/cfnrand"
	"github.com/cfnopt/cfnopt/solution"
	"github.com/cfnopt/cfnopt/workerpool"
)

// DescendFromSeed runs single-flip best-improvement descent from seed
// until no improving move remains (a local optimum) or, if
// opts.MaxIterationsPerSeed > 0, until that many moves have been
// applied. seed is not mutated; the returned assignment is a fresh
// slice.
//
// Complexity per accepted move: O(Σ_k K_k) Delta evaluations, each
// itself O(degree(k) + Σ_t term delta cost). Reaching a local optimum
// typically takes O(|V|) accepted moves in practice, though no bound is
// guaranteed.
func DescendFromSeed(problem *cfn.Problem, seed cfn.Assignment, opts Options) (cfn.Assignment, float64, error) {
	x := append(cfn.Assignment(nil), seed...)
	score, err := problem.Score(x)
	if err != nil {
		return nil, 0, err
	}
	scratch := problem.NewScratchSpace()

	n := len(x)
	iterations := 0
	for {
		bestDelta := 0.0
		bestK, bestC := -1, -1
		found := false

		for k := 0; k < n; k++ {
			kcount := problem.ChoiceCount(k)
			for c := 0; c < kcount; c++ {
				if c == x[k] {
					continue
				}
				x2 := append(cfn.Assignment(nil), x...)
				x2[k] = c
				delta, derr := problem.Delta(x, x2, scratch)
				if derr != nil {
					return nil, 0, derr
				}
				if !found || delta < bestDelta {
					bestDelta = delta
					bestK, bestC = k, c
					found = true
				}
			}
		}

		if !found || bestDelta >= -opts.Eps {
			break
		}

		if opts.MaxIterationsPerSeed > 0 && iterations >= opts.MaxIterationsPerSeed {
			if opts.ThrowIfIterationBudgetExceeded {
				return x, score, ErrIterationBudgetExceeded
			}
			break
		}

		x2 := append(cfn.Assignment(nil), x...)
		x2[bestK] = bestC
		delta, derr := problem.Delta(x, x2, scratch)
		if derr != nil {
			return nil, 0, derr
		}
		x = x2
		score += delta
		scratch.AcceptLastMove()
		iterations++
	}

	return x, score, nil
}

// AttemptReport summarizes the outcome of one seed's descent, passed
// to Options.OnAttemptDone once that seed finishes (successfully or
// not). Assignment and Score are the seed's reported local optimum;
// they are the zero value when Err is non-nil.
type AttemptReport struct {
	Index      int
	Assignment cfn.Assignment
	Score      float64
	Err        error
}

// randomAssignment draws an assignment uniformly at random from each
// variable node's own choice range.
func randomAssignment(problem *cfn.Problem, rng *rand.Rand) cfn.Assignment {
	n := problem.VarNodeCount()
	x := make(cfn.Assignment, n)
	for k := 0; k < n; k++ {
		x[k] = rng.Intn(problem.ChoiceCount(k))
	}
	return x
}

// Run processes seeds (or, if seeds is empty, opts.NRandomStartingStates
// randomly generated ones) in parallel across a worker pool, descending
// each to a local optimum and offering every result to the returned
// Store. Per spec.md §4.5, repeated identical local optima are
// coalesced by the store's dedupe table rather than treated as an
// error.
func Run(problem *cfn.Problem, seeds []cfn.Assignment, opts Options) (*solution.Store, error) {
	store, err := solution.NewStore(opts.StoreCapacity, opts.StoreMode)
	if err != nil {
		return nil, err
	}

	if len(seeds) == 0 {
		seeds = make([]cfn.Assignment, opts.NRandomStartingStates)
		for i := range seeds {
			seeds[i] = randomAssignment(problem, cfnrand.DeriveRNG(opts.Seed, i))
		}
	}

	pool := workerpool.NewErrgroupPool(opts.Workers)
	for i, seed := range seeds {
		i, seed := i, seed
		pool.Go(func() error {
			xBest, sBest, derr := DescendFromSeed(problem, seed, opts)
			if derr != nil {
				// Contained per spec.md §7: this seed is aborted and its
				// error recorded, but other seeds proceed and Run still
				// reports partial success.
				store.RecordError(derr)
				if opts.OnAttemptDone != nil {
					opts.OnAttemptDone(AttemptReport{Index: i, Err: derr})
				}
				return nil
			}
			store.Consider(xBest, sBest)
			if opts.OnAttemptDone != nil {
				opts.OnAttemptDone(AttemptReport{Index: i, Assignment: xBest, Score: sBest})
			}
			return nil
		})
	}
	if err := pool.Wait(); err != nil {
		// workerpool goroutines never return a non-nil error themselves
		// (failures are contained above); a non-nil error here means the
		// pool itself failed to schedule work.
		return store, err
	}
	if errs := store.Errors(); len(errs) > 0 {
		return store, errors.Join(errs...)
	}
	return store, nil
}
