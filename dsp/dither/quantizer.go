package dither

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Quantizer rounds one channel of PCM16-scaled float samples to int16,
// adding dither noise and feeding the rounding error through an optional
// noise shaper. Output always saturates to the int16 range.
//
// A Quantizer holds per-channel shaper state; use one per channel.
type Quantizer struct {
	sampleRate      float64
	ditherType      DitherType
	ditherAmplitude float64
	shaper          NoiseShaper
	rng             *rand.Rand
}

// NewQuantizer creates a Quantizer. The default configuration is triangular
// dither at 1 LSB without noise shaping.
func NewQuantizer(sampleRate float64, opts ...Option) (*Quantizer, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("dither: sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	var shaper NoiseShaper = flatShaper{}

	if cfg.shelfHz > 0 {
		s, err := NewShelfShaper(cfg.shelfHz, sampleRate)
		if err != nil {
			return nil, err
		}

		shaper = s
	}

	seed := cfg.seed
	if !cfg.seeded {
		seed = rand.Uint64()
	}

	return &Quantizer{
		sampleRate:      sampleRate,
		ditherType:      cfg.ditherType,
		ditherAmplitude: cfg.ditherAmplitude,
		shaper:          shaper,
		rng:             rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}, nil
}

// Quantize converts x (in PCM16 units, full scale = 32768) to int16.
func (q *Quantizer) Quantize(x float64) int16 {
	if x != x {
		x = 0
	}

	shaped := q.shaper.Shape(x)
	r := math.RoundToEven(shaped + q.noise())

	switch {
	case r > math.MaxInt16:
		r = math.MaxInt16
	case r < math.MinInt16:
		r = math.MinInt16
	}

	q.shaper.RecordError(r - shaped)

	return int16(r)
}

// QuantizeBlock quantizes src into every stride-th element of dst starting
// at dst[0]. Use stride 2 with dst[ch:] for interleaved stereo.
func (q *Quantizer) QuantizeBlock(dst []int16, src []float64, stride int) {
	for i, v := range src {
		dst[i*stride] = q.Quantize(v)
	}
}

// Reset clears the noise shaper history.
func (q *Quantizer) Reset() {
	q.shaper.Reset()
}

// DitherType returns the dither noise PDF.
func (q *Quantizer) DitherType() DitherType { return q.ditherType }

// DitherAmplitude returns the dither amplitude in LSB.
func (q *Quantizer) DitherAmplitude() float64 { return q.ditherAmplitude }

// SampleRate returns the rate the noise shaper was designed for.
func (q *Quantizer) SampleRate() float64 { return q.sampleRate }

func (q *Quantizer) noise() float64 {
	switch q.ditherType {
	case DitherTriangular:
		return q.ditherAmplitude * (q.rng.Float64() - q.rng.Float64())
	default:
		return 0
	}
}
