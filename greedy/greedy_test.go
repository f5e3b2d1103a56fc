package greedy_test

import (
	"testing"

	"github.com/cfnopt/cfnopt/cfn"
	"github.com/cfnopt/cfnopt/greedy"
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

func TestDescendFromSeedReachesGlobalOptimum(t *testing.T) {
	p := buildIndependentProblem(t)
	opts := greedy.DefaultOptions()

	x, score, err := greedy.DescendFromSeed(p, cfn.Assignment{0, 0}, opts)
	require.NoError(t, err)
	require.Equal(t, cfn.Assignment{1, 2}, x)
	require.InDelta(t, 1.0, score, 1e-9)
}

func TestDescendFromSeedIsIdempotentAtLocalOptimum(t *testing.T) {
	p := buildIndependentProblem(t)
	opts := greedy.DefaultOptions()

	x1, s1, err := greedy.DescendFromSeed(p, cfn.Assignment{1, 2}, opts)
	require.NoError(t, err)
	require.Equal(t, cfn.Assignment{1, 2}, x1)
	require.InDelta(t, 1.0, s1, 1e-9)

	// Re-descending from an already-optimal seed must not move at all.
	x2, s2, err := greedy.DescendFromSeed(p, x1, opts)
	require.NoError(t, err)
	require.Equal(t, x1, x2)
	require.Equal(t, s1, s2)
}

func TestDescendFromSeedIterationBudgetExceeded(t *testing.T) {
	p := buildIndependentProblem(t)
	opts := greedy.DefaultOptions()
	opts.MaxIterationsPerSeed = 1
	opts.ThrowIfIterationBudgetExceeded = true

	_, _, err := greedy.DescendFromSeed(p, cfn.Assignment{0, 0}, opts)
	require.ErrorIs(t, err, greedy.ErrIterationBudgetExceeded)
}

func TestDescendFromSeedIterationBudgetBestEffort(t *testing.T) {
	p := buildIndependentProblem(t)
	opts := greedy.DefaultOptions()
	opts.MaxIterationsPerSeed = 1
	opts.ThrowIfIterationBudgetExceeded = false

	x, _, err := greedy.DescendFromSeed(p, cfn.Assignment{0, 0}, opts)
	require.NoError(t, err)
	require.NotEqual(t, cfn.Assignment{1, 2}, x, "should stop before reaching the true optimum")
}

func TestRunReportsPartialSuccessOnSeedError(t *testing.T) {
	p := buildIndependentProblem(t)
	opts := greedy.DefaultOptions()
	opts.StoreCapacity = 8
	opts.MaxIterationsPerSeed = 1
	opts.ThrowIfIterationBudgetExceeded = true

	var reports []greedy.AttemptReport
	opts.OnAttemptDone = func(r greedy.AttemptReport) {
		reports = append(reports, r)
	}

	// One seed is already optimal (budget never binds, succeeds); the
	// other two still have improving moves available and will hit the
	// one-iteration budget.
	seeds := []cfn.Assignment{{1, 2}, {0, 0}, {2, 1}}
	store, err := greedy.Run(p, seeds, opts)

	require.Error(t, err, "partial failure must still be reported")
	require.ErrorIs(t, err, greedy.ErrIterationBudgetExceeded)
	require.NotNil(t, store, "store must not be discarded on partial failure")
	require.NotEmpty(t, store.Results(), "the succeeding seed's result must survive")
	require.Len(t, store.Errors(), 2)
	require.Len(t, reports, 3)
}

func TestRunCoalescesDuplicateLocalOptima(t *testing.T) {
	p := buildIndependentProblem(t)
	opts := greedy.DefaultOptions()
	opts.StoreCapacity = 8
	opts.StoreMode = solution.CheckOnFinalOnly

	seeds := []cfn.Assignment{{0, 0}, {2, 1}, {1, 2}}
	store, err := greedy.Run(p, seeds, opts)
	require.NoError(t, err)

	results := store.Results()
	require.Len(t, results, 1, "every seed converges to the same global optimum")
	require.Equal(t, 3, results[0].TimesSeen)
}
