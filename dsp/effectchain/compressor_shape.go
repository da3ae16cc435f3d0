package effectchain

import (
	"fmt"

	"github.com/gbraad-music/samplecrate-sub003/dsp/core"
	"github.com/gbraad-music/samplecrate-sub003/dsp/effects/dynamics"
)

// CompressorShape holds the compressor settings that have no normalized
// parameter. They are fixed when the chain is built.
type CompressorShape struct {
	// KneeDB is the soft-knee width in dB, in [0, 24]. 0 is a hard knee.
	KneeDB float64
	// RMSWindowMs is the RMS detector time constant, in [1, 1000] ms.
	RMSWindowMs float64
	// PeakBlend weights the detector in [0, 1]: 1 is pure peak, 0 pure RMS.
	PeakBlend float64
}

// DefaultCompressorShape returns the shape a chain uses unless
// WithCompressorShape is given.
func DefaultCompressorShape() CompressorShape {
	return CompressorShape{
		KneeDB:      dynamics.DefaultCompressorKneeDB,
		RMSWindowMs: dynamics.DefaultCompressorRMSWindowMs,
		PeakBlend:   dynamics.DefaultCompressorPeakBlend,
	}
}

// WithCompressorShape sets the compressor knee and detector character.
// Out-of-range values make New fail with ErrInvalidOption.
func WithCompressorShape(shape CompressorShape) Option {
	return func(cfg *config) error {
		cfg.compressorShape = shape
		return nil
	}
}

// CompressorShape returns the knee and detector settings the chain was
// built with.
func (c *Chain) CompressorShape() CompressorShape {
	return c.cfg.compressorShape
}

// CompressorCurve returns the static output level in dBFS for each input
// level in dBFS, for the current compressor parameters and shape. It only
// reads parameters, so it may be called from any goroutine.
func (c *Chain) CompressorCurve(inputDB []float64) ([]float64, error) {
	fx, err := dynamics.NewCompressor(constructionSampleRate)
	if err != nil {
		return nil, fmt.Errorf("effectchain: compressor curve: %w", err)
	}

	var p Params
	for id := range NumParams {
		p[id] = c.params[id].load()
	}

	rt := &compressorRuntime{fx: [2]*dynamics.Compressor{fx, fx}}

	err = rt.setShape(c.cfg.compressorShape)
	if err != nil {
		return nil, err
	}

	err = rt.Configure(Context{SampleRate: constructionSampleRate}, &p)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(inputDB))
	for i, db := range inputDB {
		out[i] = core.LinearToDB(fx.CalculateOutputLevel(core.DBToLinear(db)))
	}

	return out, nil
}

func (r *compressorRuntime) setShape(shape CompressorShape) error {
	for _, fx := range r.fx {
		err := fx.SetKnee(shape.KneeDB)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidOption, err)
		}

		err = fx.SetRMSWindow(shape.RMSWindowMs)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidOption, err)
		}

		err = fx.SetPeakBlend(shape.PeakBlend)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidOption, err)
		}
	}

	return nil
}
