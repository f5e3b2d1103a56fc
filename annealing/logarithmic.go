package annealing

import "math"

// Logarithmic is T(i) = exp((1-f)*ln(Tinit) + f*ln(Tfinal)),
// f = i/(callCountFinal-1) clamped to [0,1]. Both temperatures must be
// strictly positive (ln is undefined otherwise).
type Logarithmic struct {
	base          baseState
	tInit, tFinal float64
}

// NewLogarithmic returns a Logarithmic schedule interpolating from
// tInit to tFinal (both > 0) over callCountFinal calls.
func NewLogarithmic(tInit, tFinal float64, callCountFinal int) (*Logarithmic, error) {
	if callCountFinal <= 0 {
		return nil, ErrInvalidCallCountFinal
	}
	if tInit <= 0 || tFinal <= 0 {
		return nil, ErrNonPositiveTemperature
	}
	return &Logarithmic{
		base:   baseState{callCountFinal: callCountFinal, defaultFinal: callCountFinal},
		tInit:  tInit,
		tFinal: tFinal,
	}, nil
}

// Temperature implements Schedule.
func (g *Logarithmic) Temperature() float64 {
	g.base.mu.Lock()
	defer g.base.mu.Unlock()
	i := g.base.nextIndexLocked()
	return g.at(i, g.base.callCountFinal)
}

// TemperatureAt implements Schedule.
func (g *Logarithmic) TemperatureAt(i int) float64 {
	g.base.mu.Lock()
	final := g.base.callCountFinal
	g.base.mu.Unlock()
	return g.at(i, final)
}

func (g *Logarithmic) at(i, callCountFinal int) float64 {
	f := fraction(i, callCountFinal)
	return math.Exp((1-f)*math.Log(g.tInit) + f*math.Log(g.tFinal))
}

// Clone implements Schedule.
func (g *Logarithmic) Clone() Schedule {
	g.base.mu.Lock()
	defer g.base.mu.Unlock()
	return &Logarithmic{
		base: baseState{
			callCount:      g.base.callCount,
			callCountFinal: g.base.callCountFinal,
			defaultFinal:   g.base.defaultFinal,
		},
		tInit:  g.tInit,
		tFinal: g.tFinal,
	}
}

// Reset implements Schedule.
func (g *Logarithmic) Reset() {
	g.base.mu.Lock()
	defer g.base.mu.Unlock()
	g.base.resetCallCountLocked()
	g.base.callCountFinal = g.base.defaultFinal
}

// ResetCallCount implements Schedule.
func (g *Logarithmic) ResetCallCount() {
	g.base.mu.Lock()
	defer g.base.mu.Unlock()
	g.base.resetCallCountLocked()
}

// SetCallCountFinal implements Schedule.
func (g *Logarithmic) SetCallCountFinal(n int) {
	g.base.mu.Lock()
	defer g.base.mu.Unlock()
	g.base.setCallCountFinalLocked(n)
}

// LogarithmicRepeat is Logarithmic's sawtooth variant.
type LogarithmicRepeat struct {
	Logarithmic
	repeats int
}

// NewLogarithmicRepeat returns a LogarithmicRepeat schedule with
// repeats sawtooth periods over callCountFinal total calls.
func NewLogarithmicRepeat(tInit, tFinal float64, callCountFinal, repeats int) (*LogarithmicRepeat, error) {
	if callCountFinal <= 0 {
		return nil, ErrInvalidCallCountFinal
	}
	if tInit <= 0 || tFinal <= 0 {
		return nil, ErrNonPositiveTemperature
	}
	if repeats <= 0 {
		repeats = 1
	}
	return &LogarithmicRepeat{
		Logarithmic: Logarithmic{
			base:   baseState{callCountFinal: callCountFinal, defaultFinal: callCountFinal},
			tInit:  tInit,
			tFinal: tFinal,
		},
		repeats: repeats,
	}, nil
}

// Temperature implements Schedule.
func (g *LogarithmicRepeat) Temperature() float64 {
	g.base.mu.Lock()
	defer g.base.mu.Unlock()
	i := g.base.nextIndexLocked()
	f := repeatFraction(i, g.base.callCountFinal, g.repeats)
	return math.Exp((1-f)*math.Log(g.tInit) + f*math.Log(g.tFinal))
}

// TemperatureAt implements Schedule.
func (g *LogarithmicRepeat) TemperatureAt(i int) float64 {
	g.base.mu.Lock()
	final := g.base.callCountFinal
	g.base.mu.Unlock()
	f := repeatFraction(i, final, g.repeats)
	return math.Exp((1-f)*math.Log(g.tInit) + f*math.Log(g.tFinal))
}

// Clone implements Schedule.
func (g *LogarithmicRepeat) Clone() Schedule {
	g.base.mu.Lock()
	defer g.base.mu.Unlock()
	return &LogarithmicRepeat{
		Logarithmic: Logarithmic{
			base: baseState{
				callCount:      g.base.callCount,
				callCountFinal: g.base.callCountFinal,
				defaultFinal:   g.base.defaultFinal,
			},
			tInit:  g.tInit,
			tFinal: g.tFinal,
		},
		repeats: g.repeats,
	}
}
