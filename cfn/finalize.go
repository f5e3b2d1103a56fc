package cfn

import (
	"fmt"
	"sort"
)

// neighborRef is an arena-backed reference to one pairwise interaction
// matrix, from the perspective of one of its two endpoints. Instead of
// a raw pointer into a matrix owned by an outer container (the source
// plugin's approach), the Problem owns a single flat arena of float64
// values; neighborRef stores an offset and stride into that arena, and
// a transposed flag so the opposite endpoint can reuse the same
// storage without duplicating the matrix.
type neighborRef struct {
	other      int // variable index of the neighbor
	arenaBase  int // offset of this matrix's first element in the arena
	cols       int // number of columns (choice count of the "row" endpoint's partner)
	transposed bool
}

// Problem is a finalized, read-only Cost Function Network problem. It
// is safe to share by reference across any number of goroutines: no
// method on Problem mutates it.
type Problem struct {
	varNodes    []int // absolute node index, in canonical (ascending) order
	choiceCount []int // K per variable index k
	e1Var       [][]float64
	neighbors   [][]neighborRef
	arena       []float64

	offsetBackground float64
	offsetFixed      float64

	terms []Term
}

// Finalize transitions the Builder into a Problem, performing, in
// order:
//  1. Enumeration of variable nodes (K_i > 1); this fixes the variable
//     index map for the lifetime of the returned Problem.
//  2. Folding of single-choice nodes' contributions: their own E1 and
//     any edge between two single-choice nodes go into the constant
//     offset; an edge with one variable endpoint is added into that
//     endpoint's E1 row.
//  3. Construction of the dense, variable-indexed E1 table.
//  4. Construction of the arena-backed neighbor lists.
//  5. Finalization of every cost-function term with the canonical
//     variable-node absolute-index list.
//
// After Finalize returns successfully, the Builder is consumed: any
// further mutating call on it returns ErrFinalized. Finalize itself may
// only be called once; a second call also returns ErrFinalized.
func (b *Builder) Finalize() (*Problem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.finalized.Load() {
		return nil, ErrFinalized
	}

	n := b.n
	effK := make([]int, n)
	isVar := make([]bool, n)
	for i := 0; i < n; i++ {
		k := b.kcount[i]
		if k < 1 {
			k = 1
		}
		effK[i] = k
		isVar[i] = k > 1
	}

	e1Abs := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, effK[i])
		if m, ok := b.e1[i]; ok {
			for c, v := range m {
				row[c] = v
			}
		}
		e1Abs[i] = row
	}

	keys := make([]pairKey, 0, len(b.e2))
	for k := range b.e2 {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, c int) bool {
		if keys[a].i != keys[c].i {
			return keys[a].i < keys[c].i
		}
		return keys[a].j < keys[c].j
	})

	type denseEdge struct {
		key pairKey
		mat [][]float64
	}
	var remaining []denseEdge
	offsetFixed := 0.0

	for _, key := range keys {
		ki, kj := effK[key.i], effK[key.j]
		mat := make([][]float64, ki)
		for r := range mat {
			mat[r] = make([]float64, kj)
		}
		for pc, v := range b.e2[key] {
			mat[pc.ci][pc.cj] = v
		}

		iVar, jVar := isVar[key.i], isVar[key.j]
		switch {
		case !iVar && !jVar:
			// Both endpoints single-choice: a pure scalar contribution.
			offsetFixed += mat[0][0]
		case iVar && !jVar:
			// j is fixed at choice 0 (its only choice); fold into i's E1.
			for ci := 0; ci < ki; ci++ {
				e1Abs[key.i][ci] += mat[ci][0]
			}
		case !iVar && jVar:
			for cj := 0; cj < kj; cj++ {
				e1Abs[key.j][cj] += mat[0][cj]
			}
		default:
			remaining = append(remaining, denseEdge{key, mat})
		}
	}

	for i := 0; i < n; i++ {
		if !isVar[i] {
			offsetFixed += e1Abs[i][0]
		}
	}

	varNodes := make([]int, 0, n)
	absToVar := make(map[int]int, n)
	for i := 0; i < n; i++ {
		if isVar[i] {
			absToVar[i] = len(varNodes)
			varNodes = append(varNodes, i)
		}
	}

	choiceCount := make([]int, len(varNodes))
	e1Var := make([][]float64, len(varNodes))
	for k, abs := range varNodes {
		choiceCount[k] = effK[abs]
		e1Var[k] = e1Abs[abs]
	}

	var arena []float64
	neighbors := make([][]neighborRef, len(varNodes))
	for _, e := range remaining {
		ki, kj := absToVar[e.key.i], absToVar[e.key.j]
		cols := choiceCount[kj]
		base := len(arena)
		for _, row := range e.mat {
			arena = append(arena, row...)
		}
		neighbors[ki] = append(neighbors[ki], neighborRef{other: kj, arenaBase: base, cols: cols, transposed: false})
		neighbors[kj] = append(neighbors[kj], neighborRef{other: ki, arenaBase: base, cols: cols, transposed: true})
	}

	for i, t := range b.terms {
		if err := t.Finalize(varNodes); err != nil {
			return nil, fmt.Errorf("cfn: term %d: %w: %v", i, ErrTermFinalize, err)
		}
	}

	b.finalized.Store(true)

	return &Problem{
		varNodes:         varNodes,
		choiceCount:      choiceCount,
		e1Var:            e1Var,
		neighbors:        neighbors,
		arena:            arena,
		offsetBackground: b.offset,
		offsetFixed:      offsetFixed,
		terms:            append([]Term(nil), b.terms...),
	}, nil
}

// pairValue reads the interaction value for (cOwn, cOther) from the
// perspective described by ref.
func (p *Problem) pairValue(ref neighborRef, cOwn, cOther int) float64 {
	if !ref.transposed {
		return p.arena[ref.arenaBase+cOwn*ref.cols+cOther]
	}
	return p.arena[ref.arenaBase+cOther*ref.cols+cOwn]
}

// VarNodeCount returns the number of variable nodes (K_i > 1) in the
// canonical order that every Assignment must follow.
func (p *Problem) VarNodeCount() int { return len(p.varNodes) }

// ChoiceCount returns K for variable-node index k.
func (p *Problem) ChoiceCount(k int) int { return p.choiceCount[k] }

// VarNodeAbsoluteIndex returns the original absolute node index that
// variable-node index k corresponds to.
func (p *Problem) VarNodeAbsoluteIndex(k int) int { return p.varNodes[k] }

// validate reports ErrArityMismatch or ErrChoiceOutOfRange for x, or
// nil if x is a valid assignment for this problem.
func (p *Problem) validate(x Assignment) error {
	if len(x) != len(p.varNodes) {
		return ErrArityMismatch
	}
	for k, c := range x {
		if c < 0 || c >= p.choiceCount[k] {
			return ErrChoiceOutOfRange
		}
	}
	return nil
}
