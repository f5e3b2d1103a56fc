package annealing

// Constant is the trivial schedule: T(i) = T0 for every i.
type Constant struct {
	base baseState
	t0   float64
}

// NewConstant returns a Constant schedule at temperature t0. Since a
// constant schedule has no meaningful call_count_final, callCountFinal
// only affects SetCallCountFinal bookkeeping exposed via the Schedule
// interface; it does not affect T(i).
func NewConstant(t0 float64, callCountFinal int) (*Constant, error) {
	if callCountFinal <= 0 {
		return nil, ErrInvalidCallCountFinal
	}
	return &Constant{
		base: baseState{callCountFinal: callCountFinal, defaultFinal: callCountFinal},
		t0:   t0,
	}, nil
}

// Temperature implements Schedule.
func (c *Constant) Temperature() float64 {
	c.base.mu.Lock()
	defer c.base.mu.Unlock()
	c.base.nextIndexLocked()
	return c.t0
}

// TemperatureAt implements Schedule.
func (c *Constant) TemperatureAt(i int) float64 { return c.t0 }

// Clone implements Schedule.
func (c *Constant) Clone() Schedule {
	c.base.mu.Lock()
	defer c.base.mu.Unlock()
	return &Constant{
		base: baseState{
			callCount:      c.base.callCount,
			callCountFinal: c.base.callCountFinal,
			defaultFinal:   c.base.defaultFinal,
		},
		t0: c.t0,
	}
}

// Reset implements Schedule.
func (c *Constant) Reset() {
	c.base.mu.Lock()
	defer c.base.mu.Unlock()
	c.base.resetCallCountLocked()
	c.base.callCountFinal = c.base.defaultFinal
}

// ResetCallCount implements Schedule.
func (c *Constant) ResetCallCount() {
	c.base.mu.Lock()
	defer c.base.mu.Unlock()
	c.base.resetCallCountLocked()
}

// SetCallCountFinal implements Schedule.
func (c *Constant) SetCallCountFinal(n int) {
	c.base.mu.Lock()
	defer c.base.mu.Unlock()
	c.base.setCallCountFinalLocked(n)
}
