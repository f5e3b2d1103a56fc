package greedy

import "errors"

// ErrIterationBudgetExceeded is returned by DescendFromSeed (and
// propagated by Run for the offending seed) when a seed's descent
// reaches Options.MaxIterationsPerSeed while still finding improving
// moves and Options.ThrowIfIterationBudgetExceeded is set.
var ErrIterationBudgetExceeded = errors.New("greedy: iteration budget exceeded before reaching a local optimum")
