package montecarlo_test

import (
	"sync"
	"testing"

	"github.com/cfnopt/cfnopt/annealing"
	"github.com/cfnopt/cfnopt/cfn"
	"github.com/cfnopt/cfnopt/montecarlo"
	"github.com/cfnopt/cfnopt/solution"
	"github.com/stretchr/testify/require"
)

func buildIndependentProblem(t *testing.T) *cfn.Problem {
	t.Helper()
	b := cfn.NewBuilder()
	require.NoError(t, b.SetE1(0, 0, 5))
	require.NoError(t, b.SetE1(0, 1, 1))
	require.NoError(t, b.SetE1(0, 2, 9))
	require.NoError(t, b.SetE1(1, 0, 3))
	require.NoError(t, b.SetE1(1, 1, 8))
	require.NoError(t, b.SetE1(1, 2, 0))
	p, err := b.Finalize()
	require.NoError(t, err)
	return p
}

func defaultTestOptions(t *testing.T) montecarlo.Options {
	t.Helper()
	opts, err := montecarlo.DefaultOptions()
	require.NoError(t, err)
	opts.Steps = 200
	opts.Attempts = 6
	opts.Seed = 42
	return opts
}

func TestRunFindsGlobalOptimum(t *testing.T) {
	p := buildIndependentProblem(t)
	opts := defaultTestOptions(t)

	store, err := montecarlo.Run(p, opts)
	require.NoError(t, err)

	results := store.Results()
	require.NotEmpty(t, results)
	require.InDelta(t, 1.0, results[0].Score, 1e-9)
	require.Equal(t, []int{1, 2}, results[0].Assignment)
}

func TestRunIsDeterministicGivenSeed(t *testing.T) {
	p := buildIndependentProblem(t)
	opts := defaultTestOptions(t)

	store1, err := montecarlo.Run(p, opts)
	require.NoError(t, err)
	store2, err := montecarlo.Run(p, opts)
	require.NoError(t, err)

	require.Equal(t, store1.Results(), store2.Results())
}

func TestRunResultsSortedAscending(t *testing.T) {
	p := buildIndependentProblem(t)
	opts := defaultTestOptions(t)
	opts.StoreCapacity = 32
	opts.StoreMode = solution.CheckEveryStep

	store, err := montecarlo.Run(p, opts)
	require.NoError(t, err)

	results := store.Results()
	for i := 1; i < len(results); i++ {
		require.LessOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestRunWithGreedyRefinement(t *testing.T) {
	p := buildIndependentProblem(t)
	opts := defaultTestOptions(t)
	opts.GreedyRefinement = true
	opts.Steps = 5 // too few steps alone to guarantee convergence

	store, err := montecarlo.Run(p, opts)
	require.NoError(t, err)

	results := store.Results()
	require.NotEmpty(t, results)
	require.InDelta(t, 1.0, results[0].Score, 1e-9, "greedy refinement should reach the global optimum")
}

func TestRunInvokesOnAttemptDoneForEveryAttempt(t *testing.T) {
	p := buildIndependentProblem(t)
	opts := defaultTestOptions(t)

	var reports []montecarlo.AttemptReport
	var mu sync.Mutex
	opts.OnAttemptDone = func(r montecarlo.AttemptReport) {
		mu.Lock()
		defer mu.Unlock()
		reports = append(reports, r)
	}

	store, err := montecarlo.Run(p, opts)
	require.NoError(t, err)
	require.NotEmpty(t, store.Results())

	require.Len(t, reports, opts.Attempts)
	for _, r := range reports {
		require.NoError(t, r.Err)
	}
}

func TestScheduleTemplateUnaffectedByRun(t *testing.T) {
	sched, err := annealing.NewLogarithmic(10, 0.01, 100)
	require.NoError(t, err)
	p := buildIndependentProblem(t)
	opts := defaultTestOptions(t)
	opts.Schedule = sched

	_, err = montecarlo.Run(p, opts)
	require.NoError(t, err)

	// The template itself must never be mutated by attempts cloning
	// it: its own call counter must still read as freshly constructed.
	require.InDelta(t, 10.0, sched.Temperature(), 1e-9)
}
