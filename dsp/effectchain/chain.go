package effectchain

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/gbraad-music/samplecrate-sub003/dsp/core"
	"github.com/gbraad-music/samplecrate-sub003/dsp/dither"
)

var (
	// ErrInvalidOption is returned by New when an option is out of range.
	ErrInvalidOption = errors.New("effectchain: invalid option")
	// ErrInvalidSampleRate is returned by Process for a rate that is not
	// positive and finite.
	ErrInvalidSampleRate = errors.New("effectchain: invalid sample rate")
	// ErrInvalidFrames is returned by Process for a negative frame count.
	ErrInvalidFrames = errors.New("effectchain: invalid frame count")
	// ErrShortBuffer is returned by Process when the buffer holds fewer than
	// 2*frames samples.
	ErrShortBuffer = errors.New("effectchain: buffer shorter than frames")
	// ErrClosed is returned by Process after Close.
	ErrClosed = errors.New("effectchain: chain closed")
)

const (
	// DefaultMaxBlockFrames is the default scratch size. Longer Process
	// calls are split into blocks of this many frames.
	DefaultMaxBlockFrames = 4096
	maxMaxBlockFrames     = 1 << 16
	maxDitherLSB          = 8

	// constructionSampleRate seeds kernel constructors. The real rate is
	// taken from each Process call.
	constructionSampleRate = 48000.0
)

type config struct {
	maxBlockFrames    int
	dither            bool
	ditherSeed        uint64
	ditherSeeded      bool
	ditherShelfHz     float64
	ditherLSB         float64
	resetOnRateChange bool
	compressorShape   CompressorShape
}

func defaultConfig() config {
	return config{
		maxBlockFrames:  DefaultMaxBlockFrames,
		ditherLSB:       1,
		compressorShape: DefaultCompressorShape(),
	}
}

// Option configures a Chain at construction.
type Option func(*config) error

// WithMaxBlockFrames sets the scratch buffer size in frames, in [1, 65536].
func WithMaxBlockFrames(frames int) Option {
	return func(cfg *config) error {
		if frames < 1 || frames > maxMaxBlockFrames {
			return fmt.Errorf("%w: max block frames must be in [1, %d]: %d", ErrInvalidOption, maxMaxBlockFrames, frames)
		}

		cfg.maxBlockFrames = frames

		return nil
	}
}

// WithDither enables triangular dither when requantizing processed blocks
// to 16 bit. Blocks where every stage is bypassed are never dithered.
func WithDither(enabled bool) Option {
	return func(cfg *config) error {
		cfg.dither = enabled
		return nil
	}
}

// WithDitherSeed makes the dither noise reproducible.
func WithDitherSeed(seed uint64) Option {
	return func(cfg *config) error {
		cfg.ditherSeed = seed
		cfg.ditherSeeded = true

		return nil
	}
}

// WithDitherShaping enables dither with a low-shelf error-feedback noise
// shaper cornered at shelfHz, pushing requantization noise above it. The
// shelf is designed for 48 kHz and is not redesigned on rate changes.
func WithDitherShaping(shelfHz float64) Option {
	return func(cfg *config) error {
		if !(shelfHz > 0) || math.IsInf(shelfHz, 0) || shelfHz >= constructionSampleRate/2 {
			return fmt.Errorf("%w: dither shelf must be in (0, %g) Hz: %v", ErrInvalidOption, constructionSampleRate/2, shelfHz)
		}

		cfg.dither = true
		cfg.ditherShelfHz = shelfHz

		return nil
	}
}

// WithDitherAmplitude enables dither with a peak amplitude of lsb
// quantization steps, in (0, 8]. The default is 1.
func WithDitherAmplitude(lsb float64) Option {
	return func(cfg *config) error {
		if !(lsb > 0 && lsb <= maxDitherLSB) {
			return fmt.Errorf("%w: dither amplitude must be in (0, %g] LSB: %v", ErrInvalidOption, float64(maxDitherLSB), lsb)
		}

		cfg.dither = true
		cfg.ditherLSB = lsb

		return nil
	}
}

// WithResetOnRateChange makes Process reset all stage state when the sample
// rate differs from the previous call. By default state carries over and the
// caller decides whether to Reset.
func WithResetOnRateChange(enabled bool) Option {
	return func(cfg *config) error {
		cfg.resetOnRateChange = enabled
		return nil
	}
}

type stageSlot struct {
	runtime    Runtime
	applied    Params
	appliedCtx Context
	configured bool
}

// Chain is the fixed seven-stage stereo effects chain.
//
// Parameter and enable setters/getters are lock-free and may be called from
// any goroutine, concurrently with Process. Process, Reset and Close belong
// to the owner of the audio stream and must not run concurrently with each
// other. RequestReset is the concurrent-safe way to ask for a reset.
type Chain struct {
	params         [NumParams]param
	enabled        [NumStages]atomic.Bool
	resetRequested atomic.Bool
	sampleRateBits atomic.Uint64
	meters         meterCells

	cfg    config
	closed bool

	stages     [NumStages]stageSlot
	compressor *compressorRuntime
	quantizers [2]*dither.Quantizer

	left, right []float64
	snapshot    Params
	active      [NumStages]bool
}

// New allocates a chain with every stage disabled and every parameter at its
// default. All buffers, including the delay line, are allocated here and
// never again.
func New(opts ...Option) (*Chain, error) {
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

	c := &Chain{
		cfg:   cfg,
		left:  make([]float64, cfg.maxBlockFrames),
		right: make([]float64, cfg.maxBlockFrames),
	}

	ctx := Context{SampleRate: constructionSampleRate}

	for s := range NumStages {
		rt, err := stageFactories[s](ctx)
		if err != nil {
			return nil, fmt.Errorf("effectchain: create %s: %w", s, err)
		}

		c.stages[s].runtime = rt
	}

	c.compressor, _ = c.stages[StageCompressor].runtime.(*compressorRuntime)
	if c.compressor != nil {
		err := c.compressor.setShape(cfg.compressorShape)
		if err != nil {
			return nil, err
		}
	}

	if cfg.dither {
		for ch := range c.quantizers {
			opts := []dither.Option{
				dither.WithDitherType(dither.DitherTriangular),
				dither.WithDitherAmplitude(cfg.ditherLSB),
			}
			if cfg.ditherSeeded {
				opts = append(opts, dither.WithSeed(cfg.ditherSeed+uint64(ch)))
			}

			if cfg.ditherShelfHz > 0 {
				opts = append(opts, dither.WithNoiseShaping(cfg.ditherShelfHz))
			}

			q, err := dither.NewQuantizer(constructionSampleRate, opts...)
			if err != nil {
				return nil, fmt.Errorf("effectchain: create dither: %w", err)
			}

			c.quantizers[ch] = q
		}
	}

	for id := range NumParams {
		c.params[id].store(id.Default())
	}

	c.meters.reset()

	return c, nil
}

// Close releases every buffer the chain owns. Later Process calls fail with
// ErrClosed; parameter accessors keep working.
func (c *Chain) Close() error {
	if c.closed {
		return nil
	}

	c.closed = true
	c.left = nil
	c.right = nil
	c.quantizers = [2]*dither.Quantizer{}
	c.compressor = nil

	for s := range c.stages {
		c.stages[s] = stageSlot{}
	}

	return nil
}

// Reset zeroes every filter, envelope, comb and delay register, LFO phase
// and write cursor. Parameters and enable flags are untouched.
func (c *Chain) Reset() {
	if c.closed {
		return
	}

	for s := range c.stages {
		c.stages[s].runtime.Reset()
	}

	for _, q := range c.quantizers {
		if q != nil {
			q.Reset()
		}
	}

	core.Zero(c.left)
	core.Zero(c.right)
	c.meters.reset()
}

// RequestReset asks the audio goroutine to Reset at the start of its next
// Process call. It is safe to call concurrently with Process.
func (c *Chain) RequestReset() {
	c.resetRequested.Store(true)
}

// SampleRate returns the rate of the last successful Process call, or 0.
func (c *Chain) SampleRate() float64 {
	return math.Float64frombits(c.sampleRateBits.Load())
}

// SetParam stores v, clamped to [0, 1] with NaN stored as 0. Unknown ids
// are ignored.
func (c *Chain) SetParam(id ParamID, v float32) {
	if !id.Valid() {
		return
	}

	c.params[id].store(v)
}

// Param returns the stored (clamped) value of id, or 0 for unknown ids.
func (c *Chain) Param(id ParamID) float32 {
	if !id.Valid() {
		return 0
	}

	return c.params[id].load()
}

// SetEnabled enables or bypasses stage s. Unknown stages are ignored.
func (c *Chain) SetEnabled(s Stage, on bool) {
	if !s.Valid() {
		return
	}

	c.enabled[s].Store(on)
}

// Enabled reports whether stage s is active.
func (c *Chain) Enabled(s Stage) bool {
	if !s.Valid() {
		return false
	}

	return c.enabled[s].Load()
}

// Snapshot returns the current value of every parameter.
func (c *Chain) Snapshot() Params {
	var p Params
	for id := range NumParams {
		p[id] = c.params[id].load()
	}

	return p
}
