package dither

import (
	"fmt"
	"math"
)

const (
	defaultDitherType      = DitherTriangular
	defaultDitherAmplitude = 1.0
	maxDitherAmplitude     = 8.0
)

type config struct {
	ditherType      DitherType
	ditherAmplitude float64
	seed            uint64
	seeded          bool
	shelfHz         float64
}

func defaultConfig() config {
	return config{
		ditherType:      defaultDitherType,
		ditherAmplitude: defaultDitherAmplitude,
	}
}

// Option configures a [Quantizer].
type Option func(*config) error

// WithDitherType sets the dither noise PDF (default [DitherTriangular]).
func WithDitherType(dt DitherType) Option {
	return func(cfg *config) error {
		if !dt.Valid() {
			return fmt.Errorf("dither: invalid dither type: %d", dt)
		}

		cfg.ditherType = dt

		return nil
	}
}

// WithDitherAmplitude sets the dither amplitude in LSB (default 1, max 8).
func WithDitherAmplitude(amp float64) Option {
	return func(cfg *config) error {
		if amp < 0 || amp > maxDitherAmplitude || math.IsNaN(amp) {
			return fmt.Errorf("dither: amplitude must be in [0, %g]: %f", maxDitherAmplitude, amp)
		}

		cfg.ditherAmplitude = amp

		return nil
	}
}

// WithSeed makes the dither noise sequence reproducible.
func WithSeed(seed uint64) Option {
	return func(cfg *config) error {
		cfg.seed = seed
		cfg.seeded = true

		return nil
	}
}

// WithNoiseShaping enables a low-shelf error-feedback shaper with the given
// corner frequency, pushing requantization noise above it.
func WithNoiseShaping(shelfHz float64) Option {
	return func(cfg *config) error {
		if shelfHz <= 0 || math.IsNaN(shelfHz) || math.IsInf(shelfHz, 0) {
			return fmt.Errorf("dither: shelf frequency must be > 0 and finite: %f", shelfHz)
		}

		cfg.shelfHz = shelfHz

		return nil
	}
}
