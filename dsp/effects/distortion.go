package effects

import (
	"fmt"
	"math"

	"github.com/gbraad-music/samplecrate-sub003/dsp/core"
)

const (
	defaultDistortionDrive = 4.0
	defaultDistortionMix   = 1.0

	minDistortionDrive = 1.0
	maxDistortionDrive = 50.0

	// Pre-emphasis removes low end before the shaper so that bass does not
	// dominate the saturation.
	distortionPreEmphasisHz = 120.0

	// Post filter corner at drive 1; it falls as drive rises.
	distortionToneBaseHz = 14000.0
	distortionToneMinHz  = 1500.0
	distortionToneSlope  = 0.3

	distortionEnvAttackMs  = 1.0
	distortionEnvReleaseMs = 60.0
	distortionEnvFloor     = 1e-9
)

// DistortionOption mutates construction-time parameters.
type DistortionOption func(*distortionConfig) error

type distortionConfig struct {
	drive float64
	mix   float64
}

func defaultDistortionConfig() distortionConfig {
	return distortionConfig{
		drive: defaultDistortionDrive,
		mix:   defaultDistortionMix,
	}
}

// WithDistortionDrive sets the linear pre-shaper gain in [1, 50].
func WithDistortionDrive(drive float64) DistortionOption {
	return func(cfg *distortionConfig) error {
		if drive < minDistortionDrive || drive > maxDistortionDrive || !core.IsFinite(drive) {
			return fmt.Errorf("distortion drive must be in [%g, %g]: %f", minDistortionDrive, maxDistortionDrive, drive)
		}

		cfg.drive = drive

		return nil
	}
}

// WithDistortionMix sets dry/wet mix in [0, 1].
func WithDistortionMix(mix float64) DistortionOption {
	return func(cfg *distortionConfig) error {
		if mix < 0 || mix > 1 || !core.IsFinite(mix) {
			return fmt.Errorf("distortion mix must be in [0, 1]: %f", mix)
		}

		cfg.mix = mix

		return nil
	}
}

// Distortion is a mono saturation stage:
//
//	pre-emphasis high-pass -> tanh(drive*x) -> envelope match -> tone low-pass
//
// The envelope match scales the shaped signal so its level tracks the
// transient envelope of the dry input and never exceeds it, which keeps
// heavy drive from flattening dynamics or jumping in loudness. The tone
// low-pass closes as drive rises to tame the added upper harmonics.
type Distortion struct {
	sampleRate float64
	drive      float64
	mix        float64

	preCoeff   float64
	toneCoeff  float64
	envAttack  float64
	envRelease float64

	preIn   float64
	preOut  float64
	envDry  float64
	envWet  float64
	toneOut float64
}

// NewDistortion creates a distortion processor with validated options.
func NewDistortion(sampleRate float64, opts ...DistortionOption) (*Distortion, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("distortion sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultDistortionConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	d := &Distortion{}
	d.Set(cfg.drive, cfg.mix, sampleRate)

	return d, nil
}

// Set updates drive, mix and sample rate from the real-time path. Values are
// clamped instead of rejected; an invalid sample rate keeps the previous one.
func (d *Distortion) Set(drive, mix, sampleRate float64) {
	drive = core.Clamp(nanTo(drive, minDistortionDrive), minDistortionDrive, maxDistortionDrive)
	d.mix = core.Clamp(nanTo(mix, 0), 0, 1)

	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		sampleRate = d.sampleRate
	}

	if sampleRate <= 0 || (drive == d.drive && sampleRate == d.sampleRate) {
		return
	}

	d.drive = drive

	if sampleRate != d.sampleRate {
		d.sampleRate = sampleRate
		d.preCoeff = math.Exp(-2 * math.Pi * distortionPreEmphasisHz / sampleRate)
		d.envAttack = core.OnePoleCoeff(distortionEnvAttackMs, sampleRate)
		d.envRelease = core.OnePoleCoeff(distortionEnvReleaseMs, sampleRate)
	}

	toneHz := distortionToneBaseHz / math.Pow(drive, distortionToneSlope)
	toneHz = core.Clamp(toneHz, distortionToneMinHz, 0.45*sampleRate)
	d.toneCoeff = 1 - math.Exp(-2*math.Pi*toneHz/sampleRate)
}

// Reset clears filter and envelope state.
func (d *Distortion) Reset() {
	d.preIn = 0
	d.preOut = 0
	d.envDry = 0
	d.envWet = 0
	d.toneOut = 0
}

// ProcessSample applies distortion to one sample.
func (d *Distortion) ProcessSample(input float64) float64 {
	hp := d.preCoeff * (d.preOut + input - d.preIn)
	d.preIn = input
	d.preOut = hp

	wet := math.Tanh(d.drive * hp)

	d.envDry = follow(d.envDry, math.Abs(input), d.envAttack, d.envRelease)
	d.envWet = follow(d.envWet, math.Abs(wet), d.envAttack, d.envRelease)

	if d.envWet > distortionEnvFloor {
		wet *= math.Min(1, d.envDry/d.envWet)
	}

	d.toneOut += (wet - d.toneOut) * d.toneCoeff

	return input*(1-d.mix) + d.toneOut*d.mix
}

// ProcessInPlace applies distortion to buf in place.
func (d *Distortion) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = d.ProcessSample(buf[i])
	}

	d.preOut = core.FlushDenormals(d.preOut)
	d.envDry = core.FlushDenormals(d.envDry)
	d.envWet = core.FlushDenormals(d.envWet)
	d.toneOut = core.FlushDenormals(d.toneOut)
}

// SampleRate returns sample rate in Hz.
func (d *Distortion) SampleRate() float64 { return d.sampleRate }

// Drive returns the pre-shaper gain.
func (d *Distortion) Drive() float64 { return d.drive }

// Mix returns dry/wet mix in [0,1].
func (d *Distortion) Mix() float64 { return d.mix }

// follow advances a peak envelope towards level with separate attack and
// release coefficients.
func follow(env, level, attack, release float64) float64 {
	if level > env {
		return env + (level-env)*attack
	}

	return env + (level-env)*release
}

func nanTo(x, fallback float64) float64 {
	if math.IsNaN(x) {
		return fallback
	}

	return x
}
