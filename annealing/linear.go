package annealing

// Linear is T(i) = (1-f)*Tinit + f*Tfinal, f = i/(callCountFinal-1)
// clamped to [0,1].
type Linear struct {
	base          baseState
	tInit, tFinal float64
}

// NewLinear returns a Linear schedule interpolating from tInit to
// tFinal over callCountFinal calls.
func NewLinear(tInit, tFinal float64, callCountFinal int) (*Linear, error) {
	if callCountFinal <= 0 {
		return nil, ErrInvalidCallCountFinal
	}
	return &Linear{
		base:   baseState{callCountFinal: callCountFinal, defaultFinal: callCountFinal},
		tInit:  tInit,
		tFinal: tFinal,
	}, nil
}

// Temperature implements Schedule.
func (l *Linear) Temperature() float64 {
	l.base.mu.Lock()
	defer l.base.mu.Unlock()
	i := l.base.nextIndexLocked()
	return l.at(i, l.base.callCountFinal)
}

// TemperatureAt implements Schedule.
func (l *Linear) TemperatureAt(i int) float64 {
	l.base.mu.Lock()
	final := l.base.callCountFinal
	l.base.mu.Unlock()
	return l.at(i, final)
}

func (l *Linear) at(i, callCountFinal int) float64 {
	f := fraction(i, callCountFinal)
	return (1-f)*l.tInit + f*l.tFinal
}

// Clone implements Schedule.
func (l *Linear) Clone() Schedule {
	l.base.mu.Lock()
	defer l.base.mu.Unlock()
	return &Linear{
		base: baseState{
			callCount:      l.base.callCount,
			callCountFinal: l.base.callCountFinal,
			defaultFinal:   l.base.defaultFinal,
		},
		tInit:  l.tInit,
		tFinal: l.tFinal,
	}
}

// Reset implements Schedule.
func (l *Linear) Reset() {
	l.base.mu.Lock()
	defer l.base.mu.Unlock()
	l.base.resetCallCountLocked()
	l.base.callCountFinal = l.base.defaultFinal
}

// ResetCallCount implements Schedule.
func (l *Linear) ResetCallCount() {
	l.base.mu.Lock()
	defer l.base.mu.Unlock()
	l.base.resetCallCountLocked()
}

// SetCallCountFinal implements Schedule.
func (l *Linear) SetCallCountFinal(n int) {
	l.base.mu.Lock()
	defer l.base.mu.Unlock()
	l.base.setCallCountFinalLocked(n)
}

// LinearRepeat is Linear's sawtooth variant: the base shape is applied
// to f_r = (i mod P)/(P-1), P = ceil(callCountFinal/Repeats).
type LinearRepeat struct {
	Linear
	repeats int
}

// NewLinearRepeat returns a LinearRepeat schedule with repeats
// sawtooth periods over callCountFinal total calls.
func NewLinearRepeat(tInit, tFinal float64, callCountFinal, repeats int) (*LinearRepeat, error) {
	if callCountFinal <= 0 {
		return nil, ErrInvalidCallCountFinal
	}
	if repeats <= 0 {
		repeats = 1
	}
	return &LinearRepeat{
		Linear: Linear{
			base:   baseState{callCountFinal: callCountFinal, defaultFinal: callCountFinal},
			tInit:  tInit,
			tFinal: tFinal,
		},
		repeats: repeats,
	}, nil
}

// Temperature implements Schedule.
func (l *LinearRepeat) Temperature() float64 {
	l.base.mu.Lock()
	defer l.base.mu.Unlock()
	i := l.base.nextIndexLocked()
	f := repeatFraction(i, l.base.callCountFinal, l.repeats)
	return (1-f)*l.tInit + f*l.tFinal
}

// TemperatureAt implements Schedule.
func (l *LinearRepeat) TemperatureAt(i int) float64 {
	l.base.mu.Lock()
	final := l.base.callCountFinal
	l.base.mu.Unlock()
	f := repeatFraction(i, final, l.repeats)
	return (1-f)*l.tInit + f*l.tFinal
}

// Clone implements Schedule.
func (l *LinearRepeat) Clone() Schedule {
	l.base.mu.Lock()
	defer l.base.mu.Unlock()
	return &LinearRepeat{
		Linear: Linear{
			base: baseState{
				callCount:      l.base.callCount,
				callCountFinal: l.base.callCountFinal,
				defaultFinal:   l.base.defaultFinal,
			},
			tInit:  l.tInit,
			tFinal: l.tFinal,
		},
		repeats: l.repeats,
	}
}
