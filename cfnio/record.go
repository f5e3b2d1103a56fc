// Package cfnio provides record-based constructors for cfn.Problem,
// standing in for the various format-specific interpreters a full CFN
// toolkit would otherwise ship (file parsing is out of scope here; see
// SPEC_FULL.md §1). A caller builds one plain ProblemRecord value --
// in memory, from whatever source it likes -- and Build turns it into
// a finalized cfn.Problem via cfn.Builder, exercising exactly the
// Builder API a file-based loader would also use.
package cfnio

import "github.com/cfnopt/cfnopt/cfn"

// E1Entry sets a one-body cost p(node=choice) = Value.
type E1Entry struct {
	Node, Choice int
	Value        float64
}

// E2Entry sets a two-body cost p(nodeI=choiceI, nodeJ=choiceJ) = Value.
// NodeI and NodeJ may be supplied in either order; Build canonicalizes
// them to the i<j order cfn.Builder.SetE2 requires.
type E2Entry struct {
	NodeI, ChoiceI int
	NodeJ, ChoiceJ int
	Value          float64
}

// ProblemRecord is a plain, serialization-agnostic description of a CFN
// problem: node count, one- and two-body cost tables, a background
// offset, and a set of already-constructed cost-function Terms (terms
// carry their own configuration and cannot be represented as plain
// records -- callers build them directly via the costterm package and
// attach them here).
type ProblemRecord struct {
	NodeCount        int
	E1               []E1Entry
	E2               []E2Entry
	BackgroundOffset float64
	Terms            []cfn.Term
}

// Build constructs a cfn.Builder from rec and finalizes it, returning
// the resulting immutable cfn.Problem.
func Build(rec ProblemRecord) (*cfn.Problem, error) {
	b := cfn.NewBuilder()

	if err := b.SetNodeCount(rec.NodeCount); err != nil {
		return nil, err
	}
	for _, e := range rec.E1 {
		if err := b.SetE1(e.Node, e.Choice, e.Value); err != nil {
			return nil, err
		}
	}
	for _, e := range rec.E2 {
		i, ci, j, cj := e.NodeI, e.ChoiceI, e.NodeJ, e.ChoiceJ
		if i > j {
			i, ci, j, cj = j, cj, i, ci
		}
		if err := b.SetE2(i, j, ci, cj, e.Value); err != nil {
			return nil, err
		}
	}
	if err := b.SetBackgroundOffset(rec.BackgroundOffset); err != nil {
		return nil, err
	}
	for _, t := range rec.Terms {
		if err := b.AddTerm(t); err != nil {
			return nil, err
		}
	}

	return b.Finalize()
}
