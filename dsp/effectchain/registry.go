package effectchain

import (
	"github.com/gbraad-music/samplecrate-sub003/dsp/effects"
	"github.com/gbraad-music/samplecrate-sub003/dsp/effects/dynamics"
	"github.com/gbraad-music/samplecrate-sub003/dsp/effects/modulation"
	"github.com/gbraad-music/samplecrate-sub003/dsp/filter/eq"
	"github.com/gbraad-music/samplecrate-sub003/dsp/filter/resonant"
)

// Factory builds one Runtime instance for a stage.
type Factory func(ctx Context) (Runtime, error)

// stageFactories holds the runtime constructor for every chain position.
var stageFactories = [NumStages]Factory{
	StageDistortion: func(ctx Context) (Runtime, error) {
		r := &distortionRuntime{}

		for c := range r.fx {
			fx, err := effects.NewDistortion(ctx.SampleRate)
			if err != nil {
				return nil, err
			}

			r.fx[c] = fx
		}

		return r, nil
	},
	StageFilter: func(ctx Context) (Runtime, error) {
		r := &filterRuntime{}

		for c := range r.fx {
			fx, err := resonant.NewLowpass(filterCutoffHz(1), filterQ(0), ctx.SampleRate)
			if err != nil {
				return nil, err
			}

			r.fx[c] = fx
		}

		return r, nil
	},
	StageEQ: func(_ Context) (Runtime, error) {
		return &eqRuntime{fx: [2]*eq.ThreeBand{eq.NewThreeBand(), eq.NewThreeBand()}}, nil
	},
	StageCompressor: func(ctx Context) (Runtime, error) {
		r := &compressorRuntime{}

		for c := range r.fx {
			fx, err := dynamics.NewCompressor(ctx.SampleRate)
			if err != nil {
				return nil, err
			}

			r.fx[c] = fx
		}

		return r, nil
	},
	StagePhaser: func(ctx Context) (Runtime, error) {
		fx, err := modulation.NewPhaser(ctx.SampleRate, modulation.WithPhaserMix(phaserMix))
		if err != nil {
			return nil, err
		}

		return &phaserRuntime{fx: fx}, nil
	},
	StageReverb: func(ctx Context) (Runtime, error) {
		r := &reverbRuntime{}

		for c, spread := range [2]int{0, effects.ReverbStereoSpread} {
			fx, err := effects.NewReverb(ctx.SampleRate, spread)
			if err != nil {
				return nil, err
			}

			r.fx[c] = fx
		}

		return r, nil
	},
	StageDelay: func(_ Context) (Runtime, error) {
		fx, err := effects.NewEcho(effects.EchoCapacity)
		if err != nil {
			return nil, err
		}

		return &delayRuntime{fx: fx}, nil
	},
}
