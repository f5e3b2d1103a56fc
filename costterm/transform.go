package costterm

import "math"

// Transform maps a raw penalty sum to the term's actual contribution.
// A nil Transform (used internally by ChoicePenaltySum when none is
// configured) means the identity map.
type Transform interface {
	Apply(sum float64) float64
}

// SquareTransform computes (sum+Offset)^2.
type SquareTransform struct {
	Offset float64
}

// Apply implements Transform.
func (t SquareTransform) Apply(sum float64) float64 {
	v := sum + t.Offset
	return v * v
}

// TailBehavior selects how a TabulatedTransform extrapolates beyond the
// edges of its tabulated integer domain.
type TailBehavior int

const (
	// TailConstant extends the boundary value flat.
	TailConstant TailBehavior = iota
	// TailLinear extends using the slope between the outermost
	// tabulated sample on the relevant side and the key one step
	// inside it; if that key is not tabulated, the tail is flat.
	TailLinear
	// TailQuadratic extends using that same slope plus a curvature term
	// derived from it, so the tail accelerates away from the tabulated
	// domain rather than growing purely linearly.
	TailQuadratic
)

// TabulatedTransform treats the raw sum as a signed integer and looks
// up a real-valued function either from a stored table (inside the
// tabulated domain) or from a constant/linear/quadratic tail function
// fitted to the last one or two tabulated values when outside it. The
// tail fit is deterministic given the behavior and the up-to-two
// boundary samples, per spec.md §4.2.1. A key inside [minKey, maxKey]
// that the table lacks is evaluated with the high-side tail function.
type TabulatedTransform struct {
	table              map[int]float64
	lowBehavior        TailBehavior
	highBehavior       TailBehavior
	minKey, maxKey     int
	hasAny             bool
}

// NewTabulatedTransform builds a TabulatedTransform from a sparse
// integer->value table plus the tail behaviors to use below the
// table's minimum key and above its maximum key respectively.
func NewTabulatedTransform(table map[int]float64, lowBehavior, highBehavior TailBehavior) *TabulatedTransform {
	t := &TabulatedTransform{
		table:        table,
		lowBehavior:  lowBehavior,
		highBehavior: highBehavior,
	}
	first := true
	for k := range table {
		if first || k < t.minKey {
			t.minKey = k
		}
		if first || k > t.maxKey {
			t.maxKey = k
		}
		first = false
	}
	t.hasAny = !first
	return t
}

// Apply implements Transform.
func (t *TabulatedTransform) Apply(sum float64) float64 {
	s := int(math.Round(sum))
	if v, ok := t.table[s]; ok {
		return v
	}
	if !t.hasAny {
		return 0
	}
	if s < t.minKey {
		return t.extrapolate(s, t.minKey, t.lowBehavior, -1)
	}
	return t.extrapolate(s, t.maxKey, t.highBehavior, +1)
}

// extrapolate computes the deterministic closed-form tail value at
// integer sum s, beyond boundary key edge, using up to two boundary
// samples: edge itself, and the adjacent tabulated point one step
// further into the domain (edge-dir).
func (t *TabulatedTransform) extrapolate(s, edge int, behavior TailBehavior, dir int) float64 {
	y0 := t.table[edge]
	if behavior == TailConstant {
		return y0
	}
	inner := edge - dir
	y1, ok := t.table[inner]
	if !ok {
		// Not enough samples to fit a slope; fall back to flat
		// extrapolation rather than guessing.
		return y0
	}
	slope := (y0 - y1) / float64(dir)
	dx := float64(s - edge)
	switch behavior {
	case TailLinear:
		return y0 + slope*dx
	case TailQuadratic:
		curvature := slope / float64(2*dir)
		return y0 + slope*dx + curvature*dx*dx
	default:
		return y0
	}
}
