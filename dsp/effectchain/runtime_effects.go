package effectchain

import (
	"fmt"

	"github.com/gbraad-music/samplecrate-sub003/dsp/effects"
	"github.com/gbraad-music/samplecrate-sub003/dsp/effects/dynamics"
	"github.com/gbraad-music/samplecrate-sub003/dsp/effects/modulation"
	"github.com/gbraad-music/samplecrate-sub003/dsp/filter/eq"
	"github.com/gbraad-music/samplecrate-sub003/dsp/filter/resonant"
)

type distortionRuntime struct {
	fx [2]*effects.Distortion
}

func (r *distortionRuntime) Configure(ctx Context, p *Params) error {
	for _, fx := range r.fx {
		fx.Set(distortionDrive(p.Get(DistortionDrive)), p.Get(DistortionMix), ctx.SampleRate)
	}

	return nil
}

func (r *distortionRuntime) Process(left, right []float64) {
	r.fx[0].ProcessInPlace(left)
	r.fx[1].ProcessInPlace(right)
}

func (r *distortionRuntime) Reset() {
	r.fx[0].Reset()
	r.fx[1].Reset()
}

type filterRuntime struct {
	fx [2]*resonant.Lowpass
}

func (r *filterRuntime) Configure(ctx Context, p *Params) error {
	for _, fx := range r.fx {
		fx.Set(filterCutoffHz(p.Get(FilterCutoff)), filterQ(p.Get(FilterResonance)), ctx.SampleRate)
	}

	return nil
}

func (r *filterRuntime) Process(left, right []float64) {
	r.fx[0].ProcessBlock(left)
	r.fx[1].ProcessBlock(right)
}

func (r *filterRuntime) Reset() {
	r.fx[0].Reset()
	r.fx[1].Reset()
}

type eqRuntime struct {
	fx [2]*eq.ThreeBand
}

func (r *eqRuntime) Configure(ctx Context, p *Params) error {
	low := eqGainDB(p.Get(EQLow))
	mid := eqGainDB(p.Get(EQMid))
	high := eqGainDB(p.Get(EQHigh))

	for _, fx := range r.fx {
		fx.SetGains(low, mid, high, ctx.SampleRate)
	}

	return nil
}

func (r *eqRuntime) Process(left, right []float64) {
	r.fx[0].ProcessBlock(left)
	r.fx[1].ProcessBlock(right)
}

func (r *eqRuntime) Reset() {
	r.fx[0].Reset()
	r.fx[1].Reset()
}

type compressorRuntime struct {
	fx [2]*dynamics.Compressor
}

func (r *compressorRuntime) Configure(ctx Context, p *Params) error {
	for _, fx := range r.fx {
		err := fx.SetSampleRate(ctx.SampleRate)
		if err != nil {
			return fmt.Errorf("effectchain: configure compressor sample rate: %w", err)
		}

		err = fx.SetThreshold(compressorThresholdDB(p.Get(CompressorThreshold)))
		if err != nil {
			return fmt.Errorf("effectchain: configure compressor threshold: %w", err)
		}

		err = fx.SetRatio(compressorRatio(p.Get(CompressorRatio)))
		if err != nil {
			return fmt.Errorf("effectchain: configure compressor ratio: %w", err)
		}

		err = fx.SetAttack(compressorAttackMs(p.Get(CompressorAttack)))
		if err != nil {
			return fmt.Errorf("effectchain: configure compressor attack: %w", err)
		}

		err = fx.SetRelease(compressorReleaseMs(p.Get(CompressorRelease)))
		if err != nil {
			return fmt.Errorf("effectchain: configure compressor release: %w", err)
		}

		err = fx.SetMakeupGain(compressorMakeupDB(p.Get(CompressorMakeup)))
		if err != nil {
			return fmt.Errorf("effectchain: configure compressor makeup gain: %w", err)
		}
	}

	return nil
}

func (r *compressorRuntime) Process(left, right []float64) {
	r.fx[0].ProcessInPlace(left)
	r.fx[1].ProcessInPlace(right)
}

func (r *compressorRuntime) Reset() {
	r.fx[0].Reset()
	r.fx[1].Reset()
}

// takeGainReduction returns the smallest gain applied by either channel
// since the previous call and restarts the measurement.
func (r *compressorRuntime) takeGainReduction() float64 {
	g := min(r.fx[0].GetMetrics().GainReduction, r.fx[1].GetMetrics().GainReduction)
	r.fx[0].ResetMetrics()
	r.fx[1].ResetMetrics()

	return g
}

type phaserRuntime struct {
	fx *modulation.Phaser
}

func (r *phaserRuntime) Configure(ctx Context, p *Params) error {
	err := r.fx.SetSampleRate(ctx.SampleRate)
	if err != nil {
		return fmt.Errorf("effectchain: configure phaser sample rate: %w", err)
	}

	err = r.fx.SetRateHz(phaserRateHz(p.Get(PhaserRate)))
	if err != nil {
		return fmt.Errorf("effectchain: configure phaser rate: %w", err)
	}

	err = r.fx.SetDepth(phaserDepthOctaves(p.Get(PhaserDepth)))
	if err != nil {
		return fmt.Errorf("effectchain: configure phaser depth: %w", err)
	}

	err = r.fx.SetFeedback(phaserFeedback(p.Get(PhaserFeedback)))
	if err != nil {
		return fmt.Errorf("effectchain: configure phaser feedback: %w", err)
	}

	return nil
}

func (r *phaserRuntime) Process(left, right []float64) {
	r.fx.ProcessBlock(left, right)
}

func (r *phaserRuntime) Reset() {
	r.fx.Reset()
}

type reverbRuntime struct {
	fx [2]*effects.Reverb
}

func (r *reverbRuntime) Configure(ctx Context, p *Params) error {
	for _, fx := range r.fx {
		fx.SetSampleRate(ctx.SampleRate)
		fx.SetRoomSize(reverbFeedback(p.Get(ReverbRoomSize)))
		fx.SetDamp(reverbDamp(p.Get(ReverbDamping)))
		fx.SetMix(p.Get(ReverbMix))
	}

	return nil
}

func (r *reverbRuntime) Process(left, right []float64) {
	r.fx[0].ProcessInPlace(left)
	r.fx[1].ProcessInPlace(right)
}

func (r *reverbRuntime) Reset() {
	r.fx[0].Reset()
	r.fx[1].Reset()
}

type delayRuntime struct {
	fx *effects.Echo
}

func (r *delayRuntime) Configure(ctx Context, p *Params) error {
	r.fx.SetOffset(delayOffsetFrames(p.Get(DelayTime), ctx.SampleRate))
	r.fx.SetFeedback(delayFeedback(p.Get(DelayFeedback)))
	r.fx.SetMix(p.Get(DelayMix))

	return nil
}

func (r *delayRuntime) Process(left, right []float64) {
	r.fx.ProcessBlock(left, right)
}

func (r *delayRuntime) Reset() {
	r.fx.Reset()
}
