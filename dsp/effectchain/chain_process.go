package effectchain

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/gbraad-music/samplecrate-sub003/dsp/core"
)

// Process transforms frames of interleaved stereo PCM in buf in place at
// sampleRate. frames == 0 is a no-op. On error buf is left untouched.
//
// Enabled stages run in order on a deinterleaved float copy of the block.
// Bypassed stages are skipped entirely, and when every stage is bypassed buf
// is not touched at all, so the output is byte-identical to the input.
//
// Process never allocates and never blocks.
func (c *Chain) Process(buf []int16, frames int, sampleRate float64) error {
	if c.closed {
		return ErrClosed
	}

	if frames < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidFrames, frames)
	}

	if !core.ValidSampleRate(sampleRate) {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	if len(buf) < 2*frames {
		return fmt.Errorf("%w: len %d < 2*%d", ErrShortBuffer, len(buf), frames)
	}

	if c.resetRequested.Swap(false) {
		c.Reset()
	}

	if prev := c.SampleRate(); prev != sampleRate {
		if c.cfg.resetOnRateChange && prev != 0 {
			c.Reset()
		}

		c.sampleRateBits.Store(math.Float64bits(sampleRate))
	}

	if frames == 0 {
		return nil
	}

	anyActive, err := c.prepareStages(Context{SampleRate: sampleRate})
	if err != nil {
		return err
	}

	if !anyActive {
		return nil
	}

	block := len(c.left)
	for off := 0; off < frames; off += block {
		n := min(block, frames-off)
		c.processBlock(buf[2*off:2*(off+n)], n)
	}

	return nil
}

// prepareStages snapshots enable flags and parameters, then reconfigures
// each active stage whose parameters or context changed since it last ran.
func (c *Chain) prepareStages(ctx Context) (bool, error) {
	anyActive := false

	for s := range NumStages {
		c.active[s] = c.enabled[s].Load()
		anyActive = anyActive || c.active[s]
	}

	if !anyActive {
		return false, nil
	}

	for id := range NumParams {
		c.snapshot[id] = c.params[id].load()
	}

	for s := range NumStages {
		if !c.active[s] {
			continue
		}

		slot := &c.stages[s]
		if slot.configured && slot.appliedCtx == ctx && !c.stageParamsChanged(Stage(s), &slot.applied) {
			continue
		}

		err := slot.runtime.Configure(ctx, &c.snapshot)
		if err != nil {
			return false, fmt.Errorf("effectchain: configure %s: %w", Stage(s), err)
		}

		slot.applied = c.snapshot
		slot.appliedCtx = ctx
		slot.configured = true
	}

	return true, nil
}

func (c *Chain) stageParamsChanged(s Stage, applied *Params) bool {
	for id := range NumParams {
		if paramTable[id].stage == s && applied[id] != c.snapshot[id] {
			return true
		}
	}

	return false
}

func (c *Chain) processBlock(buf []int16, frames int) {
	left := c.left[:frames]
	right := c.right[:frames]

	core.DeinterleaveStereo(left, right, buf, frames)
	vecmath.ScaleBlockInPlace(left, core.InvPCM16Scale)
	vecmath.ScaleBlockInPlace(right, core.InvPCM16Scale)

	inPeak := max(vecmath.MaxAbs(left), vecmath.MaxAbs(right))

	for s := range NumStages {
		if c.active[s] {
			c.stages[s].runtime.Process(left, right)
		}
	}

	outPeak := max(vecmath.MaxAbs(left), vecmath.MaxAbs(right))
	energy := vecmath.DotProduct(left, left) + vecmath.DotProduct(right, right)
	outRMS := math.Sqrt(energy / float64(2*frames))

	gainReduction := 1.0
	if c.active[StageCompressor] && c.compressor != nil {
		gainReduction = c.compressor.takeGainReduction()
	}

	c.meters.publish(inPeak, outPeak, outRMS, gainReduction)

	vecmath.ScaleBlockInPlace(left, core.PCM16Scale)
	vecmath.ScaleBlockInPlace(right, core.PCM16Scale)

	if c.quantizers[0] != nil {
		c.quantizers[0].QuantizeBlock(buf, left, 2)
		c.quantizers[1].QuantizeBlock(buf[1:], right, 2)

		return
	}

	core.InterleaveStereo(buf, left, right, frames)
}
