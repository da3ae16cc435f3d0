package ir

import (
	"fmt"
	"math"
)

// captureBlock is the number of frames rendered per Process call.
const captureBlock = 1024

// Processor transforms interleaved stereo PCM in place.
type Processor interface {
	Process(buf []int16, frames int, sampleRate float64) error
}

// Capture renders an impulse of the given amplitude (full scale = 1) on
// both channels through p and returns frames samples of each channel's
// response, normalized so that an identity processor yields a unit impulse.
func Capture(p Processor, sampleRate float64, frames int, amplitude float64) (left, right []float64, err error) {
	if frames < 1 {
		return nil, nil, fmt.Errorf("ir: capture length must be > 0: %d", frames)
	}

	if !(amplitude > 0 && amplitude <= 1) {
		return nil, nil, fmt.Errorf("ir: impulse amplitude must be in (0, 1]: %v", amplitude)
	}

	pulse := int16(math.Round(amplitude * math.MaxInt16))
	scale := 1 / float64(pulse)

	left = make([]float64, frames)
	right = make([]float64, frames)
	buf := make([]int16, 2*captureBlock)

	for off := 0; off < frames; off += captureBlock {
		n := min(captureBlock, frames-off)
		clear(buf)

		if off == 0 {
			buf[0], buf[1] = pulse, pulse
		}

		err = p.Process(buf, n, sampleRate)
		if err != nil {
			return nil, nil, fmt.Errorf("ir: render: %w", err)
		}

		for i := range n {
			left[off+i] = float64(buf[2*i]) * scale
			right[off+i] = float64(buf[2*i+1]) * scale
		}
	}

	return left, right, nil
}
