package resonant

import (
	"fmt"
	"math"

	"github.com/gbraad-music/samplecrate-sub003/dsp/core"
)

const (
	// MinQ is the lowest accepted quality factor (heavily damped).
	MinQ = 0.5
	// MaxQ is the resonance ceiling. k = 1/MaxQ stays well above zero, so
	// the loop never reaches the self-oscillation point.
	MaxQ = 12.0

	maxCutoffRatio = 0.45
	minCutoffHz    = 10.0
)

// Lowpass is a mono resonant low-pass filter.
type Lowpass struct {
	cutoffHz   float64
	q          float64
	sampleRate float64

	a1, a2, a3 float64

	band float64
	low  float64
}

// NewLowpass returns a filter with the given cutoff and Q.
func NewLowpass(cutoffHz, q, sampleRate float64) (*Lowpass, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("resonant lowpass sample rate must be > 0 and finite: %f", sampleRate)
	}

	if cutoffHz <= 0 || math.IsNaN(cutoffHz) || math.IsInf(cutoffHz, 0) {
		return nil, fmt.Errorf("resonant lowpass cutoff must be > 0 and finite: %f", cutoffHz)
	}

	f := &Lowpass{}
	f.Set(cutoffHz, q, sampleRate)

	return f, nil
}

// Set updates cutoff, Q and sample rate. Values outside the supported range
// are clamped; coefficients are only recomputed when something changed.
// State is preserved so sweeps stay smooth.
func (f *Lowpass) Set(cutoffHz, q, sampleRate float64) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return
	}

	cutoffHz = clampCutoff(cutoffHz, sampleRate)
	q = clampQ(q)

	if cutoffHz == f.cutoffHz && q == f.q && sampleRate == f.sampleRate {
		return
	}

	f.cutoffHz = cutoffHz
	f.q = q
	f.sampleRate = sampleRate

	g := math.Tan(math.Pi * cutoffHz / sampleRate)
	k := 1 / q

	f.a1 = 1 / (1 + g*(g+k))
	f.a2 = g * f.a1
	f.a3 = g * f.a2
}

// ProcessSample filters one sample and returns the low-pass output.
func (f *Lowpass) ProcessSample(x float64) float64 {
	v3 := x - f.low
	v1 := f.a1*f.band + f.a2*v3
	v2 := f.low + f.a2*f.band + f.a3*v3

	f.band = 2*v1 - f.band
	f.low = 2*v2 - f.low

	return v2
}

// ProcessBlock filters buf in place.
func (f *Lowpass) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = f.ProcessSample(x)
	}

	f.band = core.FlushDenormals(f.band)
	f.low = core.FlushDenormals(f.low)
}

// Reset clears the band-pass and low-pass registers.
func (f *Lowpass) Reset() {
	f.band = 0
	f.low = 0
}

// CutoffHz returns the effective (clamped) cutoff.
func (f *Lowpass) CutoffHz() float64 { return f.cutoffHz }

// Q returns the effective (clamped) quality factor.
func (f *Lowpass) Q() float64 { return f.q }

// State returns the band-pass and low-pass registers.
func (f *Lowpass) State() (band, low float64) { return f.band, f.low }

func clampCutoff(cutoffHz, sampleRate float64) float64 {
	hi := maxCutoffRatio * sampleRate
	if math.IsNaN(cutoffHz) || cutoffHz > hi {
		return hi
	}

	if cutoffHz < minCutoffHz {
		return minCutoffHz
	}

	return cutoffHz
}

func clampQ(q float64) float64 {
	if math.IsNaN(q) || q < MinQ {
		return MinQ
	}

	if q > MaxQ {
		return MaxQ
	}

	return q
}
