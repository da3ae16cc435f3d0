// Package eq provides the three-band equalizer used by the effects chain:
// a low shelf, a mid peak and a high shelf applied in series.
package eq

import (
	"math"

	"github.com/gbraad-music/samplecrate-sub003/dsp/filter/biquad"
	"github.com/gbraad-music/samplecrate-sub003/dsp/filter/design"
)

const (
	// LowFreqHz is the low shelf corner.
	LowFreqHz = 100.0
	// MidFreqHz is the mid peak center.
	MidFreqHz = 1000.0
	// HighFreqHz is the high shelf corner. At low sample rates it is pulled
	// below Nyquist by the designer.
	HighFreqHz = 10000.0

	// MaxGainDB bounds each band to ±MaxGainDB.
	MaxGainDB = 12.0

	midQ = 0.7
)

// Band indexes the three sections.
type Band int

const (
	Low Band = iota
	Mid
	High
	numBands
)

// ThreeBand is a mono three-band equalizer. Each band owns its own biquad
// state; bands never share registers.
type ThreeBand struct {
	sections [numBands]biquad.Section

	gainsDB    [numBands]float64
	sampleRate float64
}

// NewThreeBand returns a flat equalizer.
func NewThreeBand() *ThreeBand {
	e := &ThreeBand{}
	for i := range e.sections {
		e.sections[i].SetCoefficients(biquad.Identity())
	}

	return e
}

// SetGains sets the per-band gains in dB (clamped to ±MaxGainDB) for the
// given sample rate. Coefficients are only redesigned for bands whose gain or
// rate changed. An invalid sample rate leaves the current design in place.
func (e *ThreeBand) SetGains(lowDB, midDB, highDB, sampleRate float64) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return
	}

	gains := [numBands]float64{clampGain(lowDB), clampGain(midDB), clampGain(highDB)}
	rateChanged := sampleRate != e.sampleRate

	for b := Low; b < numBands; b++ {
		if !rateChanged && gains[b] == e.gainsDB[b] {
			continue
		}

		e.sections[b].SetCoefficients(designBand(b, gains[b], sampleRate))
	}

	e.gainsDB = gains
	e.sampleRate = sampleRate
}

// GainDB returns the effective gain of band b.
func (e *ThreeBand) GainDB(b Band) float64 {
	return e.gainsDB[b]
}

// Coefficients returns the current design of band b.
func (e *ThreeBand) Coefficients(b Band) biquad.Coefficients {
	return e.sections[b].Coefficients
}

// ProcessSample runs x through the low, mid and high sections.
func (e *ThreeBand) ProcessSample(x float64) float64 {
	x = e.sections[Low].ProcessSample(x)
	x = e.sections[Mid].ProcessSample(x)

	return e.sections[High].ProcessSample(x)
}

// ProcessBlock equalizes buf in place.
func (e *ThreeBand) ProcessBlock(buf []float64) {
	for b := range e.sections {
		e.sections[b].ProcessBlock(buf)
	}
}

// Reset clears the state of all three sections.
func (e *ThreeBand) Reset() {
	for b := range e.sections {
		e.sections[b].Reset()
	}
}

// MagnitudeDB returns the combined response of the three bands at freqHz.
func (e *ThreeBand) MagnitudeDB(freqHz float64) float64 {
	if e.sampleRate <= 0 {
		return 0
	}

	var db float64
	for b := range e.sections {
		db += e.sections[b].MagnitudeDB(freqHz, e.sampleRate)
	}

	return db
}

func designBand(b Band, gainDB, sampleRate float64) biquad.Coefficients {
	switch b {
	case Low:
		return design.LowShelf(LowFreqHz, gainDB, design.DefaultQ, sampleRate)
	case Mid:
		return design.Peak(MidFreqHz, gainDB, midQ, sampleRate)
	default:
		return design.HighShelf(HighFreqHz, gainDB, design.DefaultQ, sampleRate)
	}
}

func clampGain(db float64) float64 {
	if math.IsNaN(db) {
		return 0
	}

	return math.Max(-MaxGainDB, math.Min(MaxGainDB, db))
}
