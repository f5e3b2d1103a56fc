package costterm_test

import (
	"math"
	"testing"

	"github.com/cfnopt/cfnopt/cfn"
	"github.com/cfnopt/cfnopt/costterm"
	"github.com/stretchr/testify/require"
)

func buildVarOnlyProblem(t *testing.T, nNodes int, term cfn.Term) *cfn.Problem {
	t.Helper()
	b := cfn.NewBuilder()
	for i := 0; i < nNodes; i++ {
		require.NoError(t, b.SetE1(i, 0, 0))
		require.NoError(t, b.SetE1(i, 1, 0))
	}
	require.NoError(t, b.AddTerm(term))
	p, err := b.Finalize()
	require.NoError(t, err)
	return p
}

func TestGraphIslandCountFull(t *testing.T) {
	g := costterm.NewGraphIslandCount(1.0, 2)
	g.AddEdge(0, 0, 1, 0)
	g.AddEdge(1, 0, 2, 0)
	p := buildVarOnlyProblem(t, 3, g)

	cases := []struct {
		x    cfn.Assignment
		want float64
	}{
		{cfn.Assignment{0, 0, 0}, 1}, // one component {0,1,2}, size 3 >= 2
		{cfn.Assignment{0, 0, 1}, 1}, // {0,1} size2 qualifies, {2} isolated doesn't
		{cfn.Assignment{1, 0, 0}, 1}, // {1,2} size2 qualifies, {0} isolated doesn't
		{cfn.Assignment{1, 1, 1}, 0}, // no edges active
	}
	for _, c := range cases {
		got, err := p.Score(c.x)
		require.NoError(t, err)
		require.InDelta(t, c.want, got, 1e-12, "x=%v", c.x)
	}
}

func TestSquareOfGraphIslandCount(t *testing.T) {
	g := costterm.NewSquareOfGraphIslandCount(1.0, 2)
	g.AddEdge(0, 0, 1, 0)
	g.AddEdge(2, 0, 3, 0)
	p := buildVarOnlyProblem(t, 4, g)

	got, err := p.Score(cfn.Assignment{0, 0, 0, 0})
	require.NoError(t, err)
	require.InDelta(t, 4, got, 1e-12) // 2 qualifying components, squared
}

func TestSquareRootOfGraphIslandCountNegates(t *testing.T) {
	g := costterm.NewSquareRootOfGraphIslandCount(1.0, 2)
	g.AddEdge(0, 0, 1, 0)
	g.AddEdge(1, 0, 2, 0)
	p := buildVarOnlyProblem(t, 3, g)

	got, err := p.Score(cfn.Assignment{0, 0, 0})
	require.NoError(t, err)
	require.InDelta(t, -math.Sqrt(2), got, 1e-9) // size 3, threshold 2 -> sqrt(3-2+1)=sqrt(2), negated
}

func TestGraphBasedDeltaConsistency(t *testing.T) {
	g := costterm.NewGraphIslandCount(3.0, 2)
	g.AddEdge(0, 0, 1, 0)
	g.AddEdge(1, 0, 2, 0)
	g.AddEdge(0, 1, 2, 1)
	p := buildVarOnlyProblem(t, 3, g)
	scratch := p.NewScratchSpace()

	cases := []struct{ xOld, xNew cfn.Assignment }{
		{cfn.Assignment{0, 0, 0}, cfn.Assignment{1, 1, 1}},
		{cfn.Assignment{1, 1, 1}, cfn.Assignment{1, 0, 0}},
		{cfn.Assignment{1, 0, 0}, cfn.Assignment{0, 1, 0}},
	}
	for _, c := range cases {
		sOld, err := p.Score(c.xOld)
		require.NoError(t, err)
		sNew, err := p.Score(c.xNew)
		require.NoError(t, err)
		delta, err := p.Delta(c.xOld, c.xNew, scratch)
		require.NoError(t, err)
		require.InDelta(t, sNew-sOld, delta, 1e-9, "xOld=%v xNew=%v", c.xOld, c.xNew)
	}
}

func TestGraphBasedAcceptLastMoveChain(t *testing.T) {
	g := costterm.NewGraphIslandCount(1.0, 2)
	g.AddEdge(0, 0, 1, 0)
	g.AddEdge(1, 0, 2, 0)
	p := buildVarOnlyProblem(t, 3, g)
	scratch := p.NewScratchSpace()

	x := cfn.Assignment{1, 1, 1}
	score, err := p.Score(x)
	require.NoError(t, err)

	moves := []cfn.Assignment{
		{0, 1, 1},
		{0, 0, 1},
		{0, 0, 0},
		{1, 0, 0},
	}
	for _, next := range moves {
		delta, derr := p.Delta(x, next, scratch)
		require.NoError(t, derr)
		score += delta
		scratch.AcceptLastMove()
		x = next

		want, werr := p.Score(x)
		require.NoError(t, werr)
		require.InDelta(t, want, score, 1e-9)
	}
}
