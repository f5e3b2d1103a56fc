package cfn

// ScratchSpace bundles one per-term Scratch, parallel to the Problem's
// term vector, with a reusable integer buffer used internally by Delta
// to avoid allocating on every call. ScratchSpace is thread-private:
// exactly one goroutine (one optimizer attempt) may use a given
// instance at a time.
type ScratchSpace struct {
	terms  []Scratch
	curBuf []int
}

// NewScratchSpace allocates a ScratchSpace for this Problem: one
// Scratch per cost-function term, plus a reusable buffer sized to the
// number of variable nodes.
func (p *Problem) NewScratchSpace() *ScratchSpace {
	s := &ScratchSpace{
		terms:  make([]Scratch, len(p.terms)),
		curBuf: make([]int, len(p.varNodes)),
	}
	for i, t := range p.terms {
		s.terms[i] = t.NewScratch()
	}
	return s
}

// AcceptLastMove notifies every term's scratch that the most recently
// proposed move was accepted, so each can commit speculative state into
// its "last accepted" slot.
func (s *ScratchSpace) AcceptLastMove() {
	for _, t := range s.terms {
		t.AcceptLastMove()
	}
}
