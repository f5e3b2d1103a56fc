package costterm

import "github.com/cfnopt/cfnopt/cfn"

// ChoicePenaltySum is Σ p[V[k]][x[k]], optionally passed through a
// Transform. With no Transform it is the plain choice-penalty-sum term;
// with SquareTransform it is the square-of-penalty-sum term; with
// TabulatedTransform it is the tabulated-integer-domain term. These
// correspond to the source plugin's ChoicePenaltySumBasedCostFunction,
// SquareOfChoicePenaltySumCostFunction, and
// FunctionOfIntegerPenaltySumCostFunction respectively.
type ChoicePenaltySum struct {
	weight    float64
	transform Transform // nil => identity (plain sum)

	raw map[int]map[int]float64 // absolute node -> choice -> penalty

	penVar []map[int]float64 // variable index -> choice -> penalty (post-Finalize)
}

// NewChoicePenaltySum returns the plain (untransformed) penalty-sum
// term with the given weight.
func NewChoicePenaltySum(weight float64) *ChoicePenaltySum {
	return &ChoicePenaltySum{weight: weight, raw: make(map[int]map[int]float64)}
}

// NewSquareOfChoicePenaltySum returns a penalty-sum term whose
// contribution is (Σp + offset)^2.
func NewSquareOfChoicePenaltySum(weight, offset float64) *ChoicePenaltySum {
	t := NewChoicePenaltySum(weight)
	t.transform = SquareTransform{Offset: offset}
	return t
}

// NewTabulatedIntegerPenaltySum returns a penalty-sum term whose
// contribution is looked up (and, outside the table, tail-fitted) from
// table, treating the raw sum as a signed integer.
func NewTabulatedIntegerPenaltySum(weight float64, table map[int]float64, low, high TailBehavior) *ChoicePenaltySum {
	t := NewChoicePenaltySum(weight)
	t.transform = NewTabulatedTransform(table, low, high)
	return t
}

// SetPenalty sets p[node][choice] = v, creating the entry on demand.
// Later writes overwrite earlier writes at the same (node,choice).
func (c *ChoicePenaltySum) SetPenalty(node, choice int, v float64) {
	row, ok := c.raw[node]
	if !ok {
		row = make(map[int]float64)
		c.raw[node] = row
	}
	row[choice] = v
}

// Weight implements cfn.Term.
func (c *ChoicePenaltySum) Weight() float64 { return c.weight }

// Finalize implements cfn.Term: it builds the variable-indexed penalty
// table from the absolute-indexed one supplied via SetPenalty.
func (c *ChoicePenaltySum) Finalize(varNodes []int) error {
	penVar := make([]map[int]float64, len(varNodes))
	for k, abs := range varNodes {
		m := make(map[int]float64, len(c.raw[abs]))
		for choice, v := range c.raw[abs] {
			m[choice] = v
		}
		penVar[k] = m
	}
	c.penVar = penVar
	return nil
}

// rawSum computes the untransformed Σp[V[k]][x[k]].
func (c *ChoicePenaltySum) rawSum(x cfn.Assignment) float64 {
	s := 0.0
	for k, ch := range x {
		s += c.penVar[k][ch]
	}
	return s
}

// Full implements cfn.Term.
func (c *ChoicePenaltySum) Full(x cfn.Assignment) float64 {
	sum := c.rawSum(x)
	if c.transform == nil {
		return sum
	}
	return c.transform.Apply(sum)
}

// penaltyScratch caches the last-accepted raw sum so Delta only needs
// to apply the deltas at the changed positions, per spec.md §4.2.1.
type penaltyScratch struct {
	lastSum    float64
	hasLast    bool
	pendingSum float64
}

// AcceptLastMove implements cfn.Scratch.
func (s *penaltyScratch) AcceptLastMove() {
	s.lastSum = s.pendingSum
	s.hasLast = true
}

// NewScratch implements cfn.Term.
func (c *ChoicePenaltySum) NewScratch() cfn.Scratch { return &penaltyScratch{} }

// Delta implements cfn.Term.
func (c *ChoicePenaltySum) Delta(xOld, xNew cfn.Assignment, scratch cfn.Scratch) float64 {
	s := scratch.(*penaltyScratch)

	oldSum := s.lastSum
	if !s.hasLast {
		oldSum = c.rawSum(xOld)
	}

	newSum := oldSum
	for k, newC := range xNew {
		oldC := xOld[k]
		if oldC == newC {
			continue
		}
		newSum += c.penVar[k][newC] - c.penVar[k][oldC]
	}
	s.pendingSum = newSum

	if c.transform == nil {
		return newSum - oldSum
	}
	return c.transform.Apply(newSum) - c.transform.Apply(oldSum)
}
