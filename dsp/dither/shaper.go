package dither

import (
	"fmt"
	"math"

	"github.com/gbraad-music/samplecrate-sub003/dsp/filter/biquad"
	"github.com/gbraad-music/samplecrate-sub003/dsp/filter/design"
)

const (
	shelfGainDB = -5.0
	shelfQ      = 0.707
)

// NoiseShaper applies spectral shaping to quantization error via feedback
// filtering. The usage cycle per sample is:
//  1. shaped := shaper.Shape(input)
//  2. quantized := round(shaped + dither)
//  3. shaper.RecordError(float64(quantized) - shaped)
type NoiseShaper interface {
	Shape(input float64) float64
	RecordError(quantizationError float64)
	Reset()
}

type flatShaper struct{}

func (flatShaper) Shape(input float64) float64 { return input }
func (flatShaper) RecordError(float64)         {}
func (flatShaper) Reset()                      {}

// ShelfShaper filters the previous quantization error through a low shelf
// and subtracts it from the next input.
type ShelfShaper struct {
	filter    *biquad.Section
	lastError float64
}

// NewShelfShaper creates a shelf noise shaper with the given corner.
func NewShelfShaper(freq, sampleRate float64) (*ShelfShaper, error) {
	if freq <= 0 || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return nil, fmt.Errorf("dither: shelf frequency must be > 0 and finite: %f", freq)
	}

	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("dither: shelf sample rate must be > 0 and finite: %f", sampleRate)
	}

	return &ShelfShaper{
		filter: biquad.NewSection(design.LowShelf(freq, shelfGainDB, shelfQ, sampleRate)),
	}, nil
}

// Shape subtracts the filtered previous error from input.
func (s *ShelfShaper) Shape(input float64) float64 {
	return input - s.filter.ProcessSample(s.lastError)
}

// RecordError stores the quantization error for the next Shape call.
func (s *ShelfShaper) RecordError(quantizationError float64) {
	s.lastError = quantizationError
}

// Reset clears the filter state and stored error.
func (s *ShelfShaper) Reset() {
	s.filter.Reset()
	s.lastError = 0
}
