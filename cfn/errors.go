package cfn

import "errors"

// ErrFinalized indicates a mutation (or a second Finalize) was
// attempted on a Builder after Finalize has already run.
var ErrFinalized = errors.New("cfn: builder already finalized")

// ErrNotFinalized indicates an operation that requires a finalized
// Problem was invoked on a Builder that has not been finalized yet.
var ErrNotFinalized = errors.New("cfn: problem not finalized")

// ErrArityMismatch indicates an Assignment's length does not equal the
// number of variable nodes of the Problem it is being scored against.
var ErrArityMismatch = errors.New("cfn: assignment arity mismatch")

// ErrKeyOrderViolation indicates a two-body key (i,j) was supplied with
// i >= j; pairwise keys must satisfy i < j.
var ErrKeyOrderViolation = errors.New("cfn: pairwise key must satisfy i < j")

// ErrChoiceOutOfRange indicates an assignment contains a choice index
// outside [0, K_i) for its node.
var ErrChoiceOutOfRange = errors.New("cfn: choice index out of range")

// ErrInvalidNodeCount indicates a negative or otherwise nonsensical
// node/choice count was supplied to the builder.
var ErrInvalidNodeCount = errors.New("cfn: invalid node or choice count")

// ErrTermFinalize indicates a cost-function term's Finalize hook
// returned an error; the problem's own Finalize aborts and surfaces it.
var ErrTermFinalize = errors.New("cfn: cost term finalize failed")

// ErrNonFiniteScore indicates Score or Delta produced a NaN or
// infinite value, almost always because a Term's Full/Delta computed
// one (e.g. a division by a zero-sized component, or an overflowing
// Transform). Term has no error return of its own — Full and Delta are
// called on every scored assignment, so giving every term an error
// channel would force every caller to check an error on the hot path
// for a condition only a misconfigured term can trigger. Surfacing it
// here, at the one place all term contributions are summed, gives
// callers the same containment point spec.md §7 describes without that
// cost.
var ErrNonFiniteScore = errors.New("cfn: score or delta is not finite")
