package cfn_test

import (
	"math"
	"testing"

	"github.com/cfnopt/cfnopt/cfn"
	"github.com/stretchr/testify/require"
)

// buildTrivial builds a one-node, two-choice problem with E1 costs
// {0:1, 1:5} and no terms.
func buildTrivial(t *testing.T) *cfn.Problem {
	t.Helper()
	b := cfn.NewBuilder()
	require.NoError(t, b.SetE1(0, 0, 1.0))
	require.NoError(t, b.SetE1(0, 1, 5.0))
	p, err := b.Finalize()
	require.NoError(t, err)
	return p
}

func TestScoreTrivialOneNode(t *testing.T) {
	p := buildTrivial(t)
	require.Equal(t, 1, p.VarNodeCount())

	s0, err := p.Score(cfn.Assignment{0})
	require.NoError(t, err)
	require.Equal(t, 1.0, s0)

	s1, err := p.Score(cfn.Assignment{1})
	require.NoError(t, err)
	require.Equal(t, 5.0, s1)
}

func TestFoldingInvariance(t *testing.T) {
	// Node 1 is touched with a single choice only (K=1): it must be
	// folded entirely into the constant offset and must not appear as
	// a variable node at all.
	b := cfn.NewBuilder()
	require.NoError(t, b.SetE1(0, 0, 2.0))
	require.NoError(t, b.SetE1(0, 1, 7.0))
	require.NoError(t, b.SetE1(1, 0, 3.0)) // node 1: single choice
	require.NoError(t, b.SetE2(0, 1, 0, 0, 4.0))
	require.NoError(t, b.SetE2(0, 1, 1, 0, 9.0))

	p, err := b.Finalize()
	require.NoError(t, err)
	require.Equal(t, 1, p.VarNodeCount(), "single-choice node must not become a variable node")

	// Node 1's fixed choice is always 0, so its E1 (3.0) is folded into
	// the constant offset and its edge contribution at node0=0 (4.0) or
	// node0=1 (9.0) is folded into node 0's effective E1 row.
	s0, err := p.Score(cfn.Assignment{0})
	require.NoError(t, err)
	require.InDelta(t, 2.0+3.0+4.0, s0, 1e-12)

	s1, err := p.Score(cfn.Assignment{1})
	require.NoError(t, err)
	require.InDelta(t, 7.0+3.0+9.0, s1, 1e-12)
}

// buildTwoVarProblem builds a 3-node problem (all K=2) with a dense
// pairwise structure, for delta-consistency checks.
func buildTwoVarProblem(t *testing.T) *cfn.Problem {
	t.Helper()
	b := cfn.NewBuilder()
	for i := 0; i < 3; i++ {
		require.NoError(t, b.SetE1(i, 0, float64(i+1)))
		require.NoError(t, b.SetE1(i, 1, float64(2*i+1)))
	}
	require.NoError(t, b.SetE2(0, 1, 0, 0, 1.0))
	require.NoError(t, b.SetE2(0, 1, 0, 1, 2.0))
	require.NoError(t, b.SetE2(0, 1, 1, 0, 3.0))
	require.NoError(t, b.SetE2(0, 1, 1, 1, 4.0))
	require.NoError(t, b.SetE2(1, 2, 0, 0, 5.0))
	require.NoError(t, b.SetE2(1, 2, 0, 1, 6.0))
	require.NoError(t, b.SetE2(1, 2, 1, 0, 7.0))
	require.NoError(t, b.SetE2(1, 2, 1, 1, 8.0))
	require.NoError(t, b.SetBackgroundOffset(100.0))
	p, err := b.Finalize()
	require.NoError(t, err)
	return p
}

func TestDeltaConsistencySingleFlip(t *testing.T) {
	p := buildTwoVarProblem(t)
	scratch := p.NewScratchSpace()

	xOld := cfn.Assignment{0, 0, 0}
	xNew := cfn.Assignment{1, 0, 0}

	sOld, err := p.Score(xOld)
	require.NoError(t, err)
	sNew, err := p.Score(xNew)
	require.NoError(t, err)

	delta, err := p.Delta(xOld, xNew, scratch)
	require.NoError(t, err)
	require.InDelta(t, sNew-sOld, delta, 1e-9)
}

func TestDeltaConsistencyMultiFlip(t *testing.T) {
	p := buildTwoVarProblem(t)
	scratch := p.NewScratchSpace()

	cases := []struct{ xOld, xNew cfn.Assignment }{
		{cfn.Assignment{0, 0, 0}, cfn.Assignment{1, 1, 1}},
		{cfn.Assignment{1, 1, 1}, cfn.Assignment{0, 0, 1}},
		{cfn.Assignment{0, 0, 1}, cfn.Assignment{1, 0, 0}},
	}
	for _, c := range cases {
		sOld, err := p.Score(c.xOld)
		require.NoError(t, err)
		sNew, err := p.Score(c.xNew)
		require.NoError(t, err)

		delta, err := p.Delta(c.xOld, c.xNew, scratch)
		require.NoError(t, err)
		require.InDelta(t, sNew-sOld, delta, 1e-9,
			"delta(%v -> %v)", c.xOld, c.xNew)
	}
}

func TestDebugScoreAssignmentFromScratchMatchesScore(t *testing.T) {
	p := buildTwoVarProblem(t)
	x := cfn.Assignment{1, 0, 1}
	want, err := p.Score(x)
	require.NoError(t, err)
	got, err := p.DebugScoreAssignmentFromScratch(x)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestScoreRejectsArityMismatch(t *testing.T) {
	p := buildTwoVarProblem(t)
	_, err := p.Score(cfn.Assignment{0, 0})
	require.ErrorIs(t, err, cfn.ErrArityMismatch)
}

func TestScoreRejectsOutOfRangeChoice(t *testing.T) {
	p := buildTwoVarProblem(t)
	_, err := p.Score(cfn.Assignment{0, 0, 2})
	require.ErrorIs(t, err, cfn.ErrChoiceOutOfRange)
}

// infiniteTerm is a minimal Term stub whose contribution is always
// +Inf, standing in for a misbehaving term (e.g. one dividing by a
// zero-sized component) that produces a non-finite value.
type infiniteTerm struct{}

func (infiniteTerm) Weight() float64                              { return 1.0 }
func (infiniteTerm) Full(x cfn.Assignment) float64                { return math.Inf(1) }
func (infiniteTerm) NewScratch() cfn.Scratch                      { return cfn.NullScratch{} }
func (infiniteTerm) Finalize(varNodes []int) error                { return nil }
func (infiniteTerm) Delta(xOld, xNew cfn.Assignment, scratch cfn.Scratch) float64 {
	return math.Inf(1)
}

func TestScoreRejectsNonFiniteTermContribution(t *testing.T) {
	b := cfn.NewBuilder()
	require.NoError(t, b.SetE1(0, 0, 1.0))
	require.NoError(t, b.SetE1(0, 1, 5.0))
	require.NoError(t, b.AddTerm(infiniteTerm{}))
	p, err := b.Finalize()
	require.NoError(t, err)

	_, err = p.Score(cfn.Assignment{0})
	require.ErrorIs(t, err, cfn.ErrNonFiniteScore)

	scratch := p.NewScratchSpace()
	_, err = p.Delta(cfn.Assignment{0}, cfn.Assignment{1}, scratch)
	require.ErrorIs(t, err, cfn.ErrNonFiniteScore)
}
