package ir

import (
	"fmt"
	"math"
)

// goertzel evaluates a single DFT bin over a block of samples.
type goertzel struct {
	coeff  float64
	s0, s1 float64
}

func newGoertzel(freqHz, sampleRate float64) goertzel {
	return goertzel{coeff: 2 * math.Cos(2*math.Pi*freqHz/sampleRate)}
}

func (g *goertzel) process(x []float64) {
	s0, s1 := g.s0, g.s1
	for _, v := range x {
		s0, s1 = v+g.coeff*s0-s1, s0
	}

	g.s0, g.s1 = s0, s1
}

// power returns the squared bin magnitude.
func (g *goertzel) power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// ToneGain plays a steady sine of freqHz at amplitude (full scale = 1)
// through p for the given number of seconds and returns each channel's gain
// at the fundamental in dB. Only the second half of the render is measured
// so envelopes and filters have settled. Unlike an impulse response this
// also captures level-dependent stages such as the compressor.
func ToneGain(p Processor, freqHz, amplitude, sampleRate, seconds float64) (left, right float64, err error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	if !(freqHz > 0 && freqHz < sampleRate/2) {
		return 0, 0, fmt.Errorf("ir: tone frequency must be in (0, %g): %v", sampleRate/2, freqHz)
	}

	if !(amplitude > 0 && amplitude <= 1) {
		return 0, 0, fmt.Errorf("ir: tone amplitude must be in (0, 1]: %v", amplitude)
	}

	frames := int(seconds * sampleRate)
	period := sampleRate / freqHz

	// Whole periods in the measured half keep leakage identical for the
	// reference and the output.
	cycles := math.Floor(float64(frames/2) / period)
	if cycles < 1 {
		return 0, 0, fmt.Errorf("ir: %g s is too short for a %g Hz tone", seconds, freqHz)
	}

	window := int(math.Round(cycles * period))
	start := frames - window

	in := make([]float64, frames)
	step := 2 * math.Pi * freqHz / sampleRate

	for i := range in {
		in[i] = math.Round(amplitude*math.MaxInt16*math.Sin(step*float64(i))) / math.MaxInt16
	}

	ref := newGoertzel(freqHz, sampleRate)
	ref.process(in[start:])

	outL := make([]float64, frames)
	outR := make([]float64, frames)
	buf := make([]int16, 2*captureBlock)

	for off := 0; off < frames; off += captureBlock {
		n := min(captureBlock, frames-off)

		for i := range n {
			v := int16(math.Round(in[off+i] * math.MaxInt16))
			buf[2*i], buf[2*i+1] = v, v
		}

		err = p.Process(buf, n, sampleRate)
		if err != nil {
			return 0, 0, fmt.Errorf("ir: render: %w", err)
		}

		for i := range n {
			outL[off+i] = float64(buf[2*i]) / math.MaxInt16
			outR[off+i] = float64(buf[2*i+1]) / math.MaxInt16
		}
	}

	gl := newGoertzel(freqHz, sampleRate)
	gl.process(outL[start:])

	gr := newGoertzel(freqHz, sampleRate)
	gr.process(outR[start:])

	return powerRatioDB(gl.power(), ref.power()), powerRatioDB(gr.power(), ref.power()), nil
}

func powerRatioDB(p, ref float64) float64 {
	if p <= 0 {
		return schroederFloorDB
	}

	return 10 * math.Log10(p/ref)
}
