package ir

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by IR analysis functions.
var (
	ErrEmptyIR           = errors.New("ir: impulse response is empty")
	ErrInvalidSampleRate = errors.New("ir: sample rate must be positive")
	ErrNoDecay           = errors.New("ir: insufficient decay for RT calculation")
)

const (
	// schroederFloorDB is reported where no energy is left.
	schroederFloorDB = -200.0
	// tailThresholdDB is the level below the peak at which the tail ends.
	tailThresholdDB = -60.0
)

// Metrics describes one channel of an impulse response.
type Metrics struct {
	PeakIndex  int     // sample index of the absolute maximum
	Peak       float64 // absolute maximum
	Onset      int     // first sample within 20 dB of the peak
	RT60       float64 // seconds, from the T30 slope (T20 when T30 is unavailable); 0 if none
	CenterTime float64 // energy centroid in seconds, measured from the peak
	Tail       float64 // seconds from the peak until the last sample above -60 dB
}

// Analyzer computes Metrics at a fixed sample rate.
type Analyzer struct {
	SampleRate float64
}

// NewAnalyzer creates an analyzer for impulse responses at sampleRate.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{SampleRate: sampleRate}
}

func (a *Analyzer) check(ir []float64) error {
	if len(ir) == 0 {
		return ErrEmptyIR
	}

	if a.SampleRate <= 0 || math.IsNaN(a.SampleRate) || math.IsInf(a.SampleRate, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, a.SampleRate)
	}

	return nil
}

// Analyze measures ir. Decay metrics are taken from the peak onward.
func (a *Analyzer) Analyze(ir []float64) (Metrics, error) {
	err := a.check(ir)
	if err != nil {
		return Metrics{}, err
	}

	peakIdx, peak := findPeak(ir)
	m := Metrics{PeakIndex: peakIdx, Peak: peak}

	if peak == 0 {
		return m, nil
	}

	m.Onset = firstAbove(ir, 0.1*peak)

	decay := ir[peakIdx:]
	m.CenterTime = a.centerTime(decay)
	m.Tail = float64(lastAbove(decay, peak*math.Pow(10, tailThresholdDB/20))) / a.SampleRate

	rt, err := a.rt60(Schroeder(decay))
	if err == nil {
		m.RT60 = rt
	}

	return m, nil
}

// RT60 estimates the -60 dB decay time of ir.
func (a *Analyzer) RT60(ir []float64) (float64, error) {
	err := a.check(ir)
	if err != nil {
		return 0, err
	}

	return a.rt60(Schroeder(ir))
}

func (a *Analyzer) rt60(curve []float64) (float64, error) {
	if rt := a.decayTime(curve, -5, -35); rt > 0 {
		return rt, nil
	}

	if rt := a.decayTime(curve, -5, -25); rt > 0 {
		return rt, nil
	}

	return 0, ErrNoDecay
}

// Schroeder returns the backward-integrated energy decay of ir in dB
// relative to the total energy.
func Schroeder(ir []float64) []float64 {
	curve := make([]float64, len(ir))

	var acc float64
	for i := len(ir) - 1; i >= 0; i-- {
		acc += ir[i] * ir[i]
		curve[i] = acc
	}

	if len(curve) == 0 || curve[0] <= 0 {
		return curve
	}

	total := curve[0]
	for i, e := range curve {
		if e <= 0 {
			curve[i] = schroederFloorDB
			continue
		}

		curve[i] = 10 * math.Log10(e/total)
	}

	return curve
}

// decayTime fits a line to the decay curve between fromDB and toDB and
// extrapolates it to -60 dB. It returns 0 when the range is not covered.
func (a *Analyzer) decayTime(curve []float64, fromDB, toDB float64) float64 {
	start, end := -1, -1

	for i, v := range curve {
		if start < 0 && v <= fromDB {
			start = i
		}

		if start >= 0 && v <= toDB {
			end = i
			break
		}
	}

	if start < 0 || end-start < 1 {
		return 0
	}

	var sx, sy, sxx, sxy float64

	n := float64(end - start + 1)
	for i := start; i <= end; i++ {
		x := float64(i - start)
		sx += x
		sy += curve[i]
		sxx += x * x
		sxy += x * curve[i]
	}

	den := n*sxx - sx*sx
	if den == 0 {
		return 0
	}

	slope := (n*sxy - sx*sy) / den * a.SampleRate
	if slope >= 0 {
		return 0
	}

	return -60 / slope
}

func (a *Analyzer) centerTime(ir []float64) float64 {
	var num, den float64

	for i, v := range ir {
		e := v * v
		num += float64(i) * e
		den += e
	}

	if den == 0 {
		return 0
	}

	return num / den / a.SampleRate
}

func findPeak(ir []float64) (int, float64) {
	idx, peak := 0, 0.0

	for i, v := range ir {
		if av := math.Abs(v); av > peak {
			idx, peak = i, av
		}
	}

	return idx, peak
}

func firstAbove(ir []float64, level float64) int {
	for i, v := range ir {
		if math.Abs(v) >= level {
			return i
		}
	}

	return 0
}

func lastAbove(ir []float64, level float64) int {
	for i := len(ir) - 1; i >= 0; i-- {
		if math.Abs(ir[i]) >= level {
			return i
		}
	}

	return 0
}
