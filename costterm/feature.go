package costterm

import "github.com/cfnopt/cfnopt/cfn"

// NodeChoice names an absolute node and a required choice on it.
type NodeChoice struct {
	Node   int
	Choice int
}

// FeatureSpec configures one "feature" owned by a (node,choice) pair: a
// count of Connections, each a NodeChoice, that must be satisfied; the
// feature is "unsatisfied" when Offset plus the number of currently
// satisfied connections falls outside [Min,Max].
type FeatureSpec struct {
	Min, Max, Offset int
	Connections      []NodeChoice
}

// varChoice is a NodeChoice resolved to a variable index.
type varChoice struct {
	varIdx int
	choice int
}

// finalFeature is a FeatureSpec after Finalize: connections to folded
// (single-choice) nodes have been removed and absorbed into offset.
type finalFeature struct {
	min, max, offset int
	conns            []varChoice
}

// Feature counts, for every node currently at a choice that owns one or
// more features, how many of those features are unsatisfied (their
// connection count is outside [min,max]), and sums weight times that
// count -- or, with Square set, weight times the square of that count.
// This models the source plugin's FeatureBasedCostFunction and
// SquareOfFeatureBasedCostFunction.
type Feature struct {
	weight float64
	square bool

	raw map[int]map[int][]FeatureSpec // absolute node -> choice -> specs

	varFeatures map[int]map[int][]finalFeature // var -> choice -> finalized features
}

// NewFeature returns an (unsquared) feature-based term with the given
// weight.
func NewFeature(weight float64) *Feature {
	return &Feature{weight: weight, raw: make(map[int]map[int][]FeatureSpec)}
}

// NewSquareOfFeature returns a feature-based term whose contribution is
// weight times the square of the unsatisfied-feature count.
func NewSquareOfFeature(weight float64) *Feature {
	f := NewFeature(weight)
	f.square = true
	return f
}

// AddFeature attaches spec as a feature owned by (node,choice).
func (f *Feature) AddFeature(node, choice int, spec FeatureSpec) {
	row, ok := f.raw[node]
	if !ok {
		row = make(map[int][]FeatureSpec)
		f.raw[node] = row
	}
	row[choice] = append(row[choice], spec)
}

// Weight implements cfn.Term.
func (f *Feature) Weight() float64 { return f.weight }

// Finalize implements cfn.Term.
func (f *Feature) Finalize(varNodes []int) error {
	absToVar := make(map[int]int, len(varNodes))
	for k, abs := range varNodes {
		absToVar[abs] = k
	}

	out := make(map[int]map[int][]finalFeature, len(f.raw))
	for abs, byChoice := range f.raw {
		k, ok := absToVar[abs]
		if !ok {
			// The owning node itself was folded (single choice) and
			// never appears in any assignment. Its features are
			// dropped: they contribute nothing to Full or Delta, even
			// when their connections involve variable nodes.
			continue
		}
		row := make(map[int][]finalFeature, len(byChoice))
		for choice, specs := range byChoice {
			finals := make([]finalFeature, 0, len(specs))
			for _, spec := range specs {
				ff := finalFeature{min: spec.Min, max: spec.Max, offset: spec.Offset}
				for _, conn := range spec.Connections {
					cv, ok := absToVar[conn.Node]
					if !ok {
						// conn.Node was folded to its single choice
						// (always 0, per cfn.Builder's invariant): the
						// connection is permanently satisfied iff that
						// forced choice matches, else never.
						if conn.Choice == 0 {
							ff.offset++
						}
						continue
					}
					ff.conns = append(ff.conns, varChoice{varIdx: cv, choice: conn.Choice})
				}
				finals = append(finals, ff)
			}
			row[choice] = finals
		}
		out[k] = row
	}
	f.varFeatures = out
	return nil
}

// unsatisfiedCount returns the number of currently-unsatisfied features
// under assignment x.
func (f *Feature) unsatisfiedCount(x cfn.Assignment) int {
	count := 0
	for k, byChoice := range f.varFeatures {
		feats, ok := byChoice[x[k]]
		if !ok {
			continue
		}
		for _, ff := range feats {
			n := ff.offset
			for _, c := range ff.conns {
				if x[c.varIdx] == c.choice {
					n++
				}
			}
			if n < ff.min || n > ff.max {
				count++
			}
		}
	}
	return count
}

// Full implements cfn.Term.
func (f *Feature) Full(x cfn.Assignment) float64 {
	n := float64(f.unsatisfiedCount(x))
	if f.square {
		return n * n
	}
	return n
}

// featureScratch caches the last-accepted unsatisfied count.
type featureScratch struct {
	lastCount    int
	hasLast      bool
	pendingCount int
}

// AcceptLastMove implements cfn.Scratch.
func (s *featureScratch) AcceptLastMove() {
	s.lastCount = s.pendingCount
	s.hasLast = true
}

// NewScratch implements cfn.Term.
func (f *Feature) NewScratch() cfn.Scratch { return &featureScratch{} }

// Delta implements cfn.Term. Recomputing unsatisfiedCount from scratch
// for both xOld and xNew is scoped to this term's own configured
// feature set (not the whole CFN problem), so it stays cheap even
// though it is not fine-grained incremental per spec.md §9's allowance
// for non-pairwise terms.
func (f *Feature) Delta(xOld, xNew cfn.Assignment, scratch cfn.Scratch) float64 {
	s := scratch.(*featureScratch)

	oldCount := s.lastCount
	if !s.hasLast {
		oldCount = f.unsatisfiedCount(xOld)
	}
	newCount := f.unsatisfiedCount(xNew)
	s.pendingCount = newCount

	if f.square {
		return float64(newCount*newCount) - float64(oldCount*oldCount)
	}
	return float64(newCount - oldCount)
}
