// Package cfn implements the pairwise-precomputed Cost Function Network
// (CFN) problem representation: a mutable Builder that accumulates
// one-body and two-body cost tables plus pluggable cost-function terms,
// and an immutable, freely-shareable Problem produced by a single
// Finalize call.
//
// Design goals (mirroring the wider module's conventions):
//   - Two-phase construction: a Builder is consumed by Finalize and can
//     no longer be mutated productively afterward; the returned Problem
//     has no mutating methods at all, so "mutation after finalize" bugs
//     are caught by the type system, not by runtime flags alone.
//   - Deterministic: variable-node order is fixed at Finalize time and
//     never reshuffled.
//   - Hot-path discipline: Score and Delta allocate nothing beyond what
//     the caller's ScratchSpace already owns.
package cfn

// Assignment is an ordered sequence of choice indices, one per variable
// node, in the Problem's canonical variable-node order. Assignments are
// values: cheap to copy or swap, never owned by the Problem itself.
type Assignment []int

// Scratch is per-term, thread-local state that a Term uses to cache
// derived quantities for the last-accepted assignment. AcceptLastMove
// is invoked by an optimizer after it accepts a proposed move, signaling
// the term to commit any speculative state into its "last accepted"
// slot.
type Scratch interface {
	AcceptLastMove()
}

// Term is the common contract every cost-function term must satisfy:
// it can score a full assignment, compute the scalar change between an
// old and a new assignment cheaply (given a scratch last used with the
// old assignment), and produce its own scratch type.
type Term interface {
	// Weight returns the scalar multiplier applied uniformly to this
	// term's contribution.
	Weight() float64

	// Full returns this term's contribution to the score of the full
	// assignment x.
	Full(x Assignment) float64

	// Delta returns Full(xNew) - Full(xOld), computed incrementally
	// using scratch (which must have last been used with, or freshly
	// initialized for, xOld).
	Delta(xOld, xNew Assignment, scratch Scratch) float64

	// NewScratch returns a fresh Scratch for this term. Terms with no
	// state to carry may return NullScratch{}.
	NewScratch() Scratch

	// Finalize is invoked once, with the Problem's canonical
	// variable-node absolute-index list, when the owning Problem is
	// finalized. A term may precompute variable-indexed lookup tables
	// of its own here.
	Finalize(varNodes []int) error
}

// NullScratch is the zero-state Scratch for terms that carry nothing
// between calls.
type NullScratch struct{}

// AcceptLastMove is a no-op for NullScratch.
func (NullScratch) AcceptLastMove() {}
