package modulation

import (
	"fmt"
	"math"

	"github.com/gbraad-music/samplecrate-sub003/dsp/core"
)

const (
	// PhaserStages is the number of first-order allpass sections per channel.
	PhaserStages = 4

	// MaxPhaserFeedback keeps the recirculation loop below unity gain.
	MaxPhaserFeedback = 0.95

	// MaxPhaserDepthOctaves is the largest sweep excursion either side of
	// the center frequency.
	MaxPhaserDepthOctaves = 2.0

	// MaxPhaserRateHz is the fastest LFO rate.
	MaxPhaserRateHz = 20.0

	defaultPhaserRateHz      = 0.4
	defaultPhaserCenterHz    = 800.0
	defaultPhaserDepthOct    = 1.0
	defaultPhaserFeedback    = 0.2
	defaultPhaserMix         = 0.5
	phaserNyquistSafetyRatio = 0.49
)

// PhaserOption mutates phaser construction parameters.
type PhaserOption func(*phaserConfig) error

type phaserConfig struct {
	rateHz   float64
	centerHz float64
	depthOct float64
	feedback float64
	mix      float64
}

func defaultPhaserConfig() phaserConfig {
	return phaserConfig{
		rateHz:   defaultPhaserRateHz,
		centerHz: defaultPhaserCenterHz,
		depthOct: defaultPhaserDepthOct,
		feedback: defaultPhaserFeedback,
		mix:      defaultPhaserMix,
	}
}

// WithPhaserRateHz sets modulation speed in Hz. 0 holds the sweep still.
func WithPhaserRateHz(rateHz float64) PhaserOption {
	return func(cfg *phaserConfig) error {
		if rateHz < 0 || rateHz > MaxPhaserRateHz || math.IsNaN(rateHz) {
			return fmt.Errorf("phaser rate must be in [0, %g]: %f", MaxPhaserRateHz, rateHz)
		}

		cfg.rateHz = rateHz

		return nil
	}
}

// WithPhaserCenterHz sets the frequency the sweep is centered on.
func WithPhaserCenterHz(centerHz float64) PhaserOption {
	return func(cfg *phaserConfig) error {
		if centerHz <= 0 || math.IsNaN(centerHz) || math.IsInf(centerHz, 0) {
			return fmt.Errorf("phaser center frequency must be > 0 and finite: %f", centerHz)
		}

		cfg.centerHz = centerHz

		return nil
	}
}

// WithPhaserDepth sets the sweep excursion in octaves in [0, 2].
func WithPhaserDepth(octaves float64) PhaserOption {
	return func(cfg *phaserConfig) error {
		if octaves < 0 || octaves > MaxPhaserDepthOctaves || math.IsNaN(octaves) {
			return fmt.Errorf("phaser depth must be in [0, %g]: %f", MaxPhaserDepthOctaves, octaves)
		}

		cfg.depthOct = octaves

		return nil
	}
}

// WithPhaserFeedback sets feedback amount in [-0.95, 0.95].
func WithPhaserFeedback(feedback float64) PhaserOption {
	return func(cfg *phaserConfig) error {
		if feedback < -MaxPhaserFeedback || feedback > MaxPhaserFeedback || math.IsNaN(feedback) {
			return fmt.Errorf("phaser feedback must be in [%g, %g]: %f", -MaxPhaserFeedback, MaxPhaserFeedback, feedback)
		}

		cfg.feedback = feedback

		return nil
	}
}

// WithPhaserMix sets wet amount in [0, 1].
func WithPhaserMix(mix float64) PhaserOption {
	return func(cfg *phaserConfig) error {
		if mix < 0 || mix > 1 || math.IsNaN(mix) {
			return fmt.Errorf("phaser mix must be in [0, 1]: %f", mix)
		}

		cfg.mix = mix

		return nil
	}
}

type phaserAllpassStage struct {
	x1 float64
	y1 float64
}

func (s *phaserAllpassStage) reset() {
	s.x1 = 0
	s.y1 = 0
}

func (s *phaserAllpassStage) process(x, a float64) float64 {
	y := a*x + s.x1 - a*s.y1
	s.x1 = x
	s.y1 = y

	return y
}

type phaserChannel struct {
	stages   [PhaserStages]phaserAllpassStage
	feedback float64
}

func (ch *phaserChannel) process(sample, coef, feedback float64) float64 {
	y := sample + ch.feedback*feedback
	for i := range ch.stages {
		y = ch.stages[i].process(y, coef)
	}

	ch.feedback = y

	return y
}

func (ch *phaserChannel) flush() {
	ch.feedback = core.FlushDenormals(ch.feedback)
	for i := range ch.stages {
		ch.stages[i].x1 = core.FlushDenormals(ch.stages[i].x1)
		ch.stages[i].y1 = core.FlushDenormals(ch.stages[i].y1)
	}
}

func (ch *phaserChannel) reset() {
	for i := range ch.stages {
		ch.stages[i].reset()
	}

	ch.feedback = 0
}

// Phaser is a stereo four-stage allpass phaser. One sine LFO drives both
// channels and advances once per frame, so the sweep stays phase-locked;
// each channel keeps its own allpass and feedback state.
//
// The allpass break frequency follows center * 2^(depth * sin(phase)).
type Phaser struct {
	sampleRate float64
	rateHz     float64
	centerHz   float64
	depthOct   float64
	feedback   float64
	mix        float64

	lfoPhase float64
	channels [2]phaserChannel
}

// NewPhaser creates a phaser with practical defaults and optional overrides.
func NewPhaser(sampleRate float64, opts ...PhaserOption) (*Phaser, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("phaser sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultPhaserConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	return &Phaser{
		sampleRate: sampleRate,
		rateHz:     cfg.rateHz,
		centerHz:   cfg.centerHz,
		depthOct:   cfg.depthOct,
		feedback:   cfg.feedback,
		mix:        cfg.mix,
	}, nil
}

// SetSampleRate updates sample rate. The LFO phase is kept.
func (p *Phaser) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("phaser sample rate must be > 0 and finite: %f", sampleRate)
	}

	p.sampleRate = sampleRate

	return nil
}

// SetRateHz sets modulation speed in Hz.
func (p *Phaser) SetRateHz(rateHz float64) error {
	if rateHz < 0 || rateHz > MaxPhaserRateHz || math.IsNaN(rateHz) {
		return fmt.Errorf("phaser rate must be in [0, %g]: %f", MaxPhaserRateHz, rateHz)
	}

	p.rateHz = rateHz

	return nil
}

// SetCenterHz sets the sweep center frequency.
func (p *Phaser) SetCenterHz(centerHz float64) error {
	if centerHz <= 0 || math.IsNaN(centerHz) || math.IsInf(centerHz, 0) {
		return fmt.Errorf("phaser center frequency must be > 0 and finite: %f", centerHz)
	}

	p.centerHz = centerHz

	return nil
}

// SetDepth sets the sweep excursion in octaves.
func (p *Phaser) SetDepth(octaves float64) error {
	if octaves < 0 || octaves > MaxPhaserDepthOctaves || math.IsNaN(octaves) {
		return fmt.Errorf("phaser depth must be in [0, %g]: %f", MaxPhaserDepthOctaves, octaves)
	}

	p.depthOct = octaves

	return nil
}

// SetFeedback sets feedback amount.
func (p *Phaser) SetFeedback(feedback float64) error {
	if feedback < -MaxPhaserFeedback || feedback > MaxPhaserFeedback || math.IsNaN(feedback) {
		return fmt.Errorf("phaser feedback must be in [%g, %g]: %f", -MaxPhaserFeedback, MaxPhaserFeedback, feedback)
	}

	p.feedback = feedback

	return nil
}

// SetMix sets wet amount in [0, 1].
func (p *Phaser) SetMix(mix float64) error {
	if mix < 0 || mix > 1 || math.IsNaN(mix) {
		return fmt.Errorf("phaser mix must be in [0, 1]: %f", mix)
	}

	p.mix = mix

	return nil
}

// Reset clears allpass, feedback and LFO state.
func (p *Phaser) Reset() {
	for c := range p.channels {
		p.channels[c].reset()
	}

	p.lfoPhase = 0
}

// ProcessFrame processes one stereo frame and advances the LFO once.
func (p *Phaser) ProcessFrame(left, right float64) (float64, float64) {
	coef := phaserAllpassCoefficient(p.modulatedFrequency(), p.sampleRate)

	wetL := p.channels[0].process(left, coef, p.feedback)
	wetR := p.channels[1].process(right, coef, p.feedback)

	p.lfoPhase += 2 * math.Pi * p.rateHz / p.sampleRate
	if p.lfoPhase >= 2*math.Pi {
		p.lfoPhase -= 2 * math.Pi
	}

	dry := 1 - p.mix

	return left*dry + wetL*p.mix, right*dry + wetR*p.mix
}

// ProcessBlock applies phasing to equal-length left/right buffers in place.
func (p *Phaser) ProcessBlock(left, right []float64) {
	n := min(len(left), len(right))
	for i := 0; i < n; i++ {
		left[i], right[i] = p.ProcessFrame(left[i], right[i])
	}

	p.channels[0].flush()
	p.channels[1].flush()
}

// SampleRate returns sample rate in Hz.
func (p *Phaser) SampleRate() float64 { return p.sampleRate }

// RateHz returns LFO speed in Hz.
func (p *Phaser) RateHz() float64 { return p.rateHz }

// CenterHz returns the sweep center frequency in Hz.
func (p *Phaser) CenterHz() float64 { return p.centerHz }

// Depth returns the sweep excursion in octaves.
func (p *Phaser) Depth() float64 { return p.depthOct }

// Feedback returns feedback amount.
func (p *Phaser) Feedback() float64 { return p.feedback }

// Mix returns wet amount in [0, 1].
func (p *Phaser) Mix() float64 { return p.mix }

// LFOPhase returns the shared LFO phase in radians.
func (p *Phaser) LFOPhase() float64 { return p.lfoPhase }

func (p *Phaser) modulatedFrequency() float64 {
	if p.depthOct == 0 {
		return p.centerHz
	}

	return p.centerHz * math.Exp2(p.depthOct*math.Sin(p.lfoPhase))
}

func phaserAllpassCoefficient(freqHz, sampleRate float64) float64 {
	maxFreq := phaserNyquistSafetyRatio * sampleRate
	if freqHz < 1 {
		freqHz = 1
	} else if freqHz > maxFreq {
		freqHz = maxFreq
	}

	g := math.Tan(math.Pi * freqHz / sampleRate)
	if math.IsInf(g, 0) || math.IsNaN(g) {
		return 0
	}

	return (1 - g) / (1 + g)
}
