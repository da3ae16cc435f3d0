package effects

import (
	"fmt"
	"math"

	"github.com/gbraad-music/samplecrate-sub003/dsp/core"
	"github.com/gbraad-music/samplecrate-sub003/dsp/delay"
)

const (
	reverbNumCombs     = 8
	reverbNumAllpasses = 4

	reverbFixedGain  = 0.015
	reverbWetScale   = 3.0
	reverbAllpassFB  = 0.5
	reverbTuningRate = 44100.0

	// ReverbStereoSpread is the right-channel length offset (at 44.1 kHz)
	// that decorrelates the two channels.
	ReverbStereoSpread = 23

	// MaxReverbSampleRate is the highest rate whose comb lengths fit the
	// buffers allocated at construction. Above it lengths are clamped.
	MaxReverbSampleRate = 192000.0

	// MaxReverbFeedback bounds comb feedback below unity.
	MaxReverbFeedback = 0.98
	maxReverbDamp     = 0.99

	defaultReverbRoomSize = 0.84
	defaultReverbDamp     = 0.2
	defaultReverbMix      = 0.3
)

// Comb and allpass lengths in samples at 44.1 kHz. The comb lengths share no
// common factor, which spreads their resonances.
var (
	reverbCombTuning    = [reverbNumCombs]int{1116, 1188, 1277, 1356, 1422, 1491, 1557, 1617}
	reverbAllpassTuning = [reverbNumAllpasses]int{556, 441, 341, 225}
)

type reverbComb struct {
	feedback    float64
	filterStore float64
	dampA       float64
	dampB       float64
	line        *delay.Line
	length      int
}

func (c *reverbComb) setLength(n int) {
	c.length = min(max(n, 1), c.line.Len()-1)
}

func (c *reverbComb) setDamp(v float64) {
	c.dampA = v
	c.dampB = 1 - v
}

func (c *reverbComb) process(input float64) float64 {
	output := c.line.Read(c.length)
	c.filterStore = core.FlushDenormals(output*c.dampB + c.filterStore*c.dampA)
	c.line.Write(input + c.filterStore*c.feedback)

	return output
}

func (c *reverbComb) reset() {
	c.line.Reset()
	c.filterStore = 0
}

type reverbAllpass struct {
	line   *delay.Line
	length int
}

func (a *reverbAllpass) setLength(n int) {
	a.length = min(max(n, 1), a.line.Len()-1)
}

func (a *reverbAllpass) process(input float64) float64 {
	bufOut := a.line.Read(a.length)
	a.line.Write(core.FlushDenormals(input + bufOut*reverbAllpassFB))

	return bufOut - input
}

// Reverb is a mono Schroeder/Freeverb-style reverb: eight parallel damped
// combs, each on its own delay line, summed into four series allpass
// diffusers. One instance serves one channel; the right channel is built
// with a spread so the two decorrelate.
//
// Every line is allocated by NewReverb for MaxReverbSampleRate, so
// changing the sample rate only changes the read delays.
type Reverb struct {
	spread     int
	sampleRate float64

	roomSize float64
	damp     float64
	mix      float64

	combs   [reverbNumCombs]reverbComb
	allpass [reverbNumAllpasses]reverbAllpass
}

// NewReverb constructs a reverb for sampleRate. spread offsets every
// delay length (in samples at 44.1 kHz); use 0 for the left channel and
// ReverbStereoSpread for the right.
func NewReverb(sampleRate float64, spread int) (*Reverb, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("reverb sample rate must be > 0 and finite: %f", sampleRate)
	}

	if spread < 0 || spread > 1000 {
		return nil, fmt.Errorf("reverb spread must be in [0, 1000]: %d", spread)
	}

	r := &Reverb{spread: spread}

	for i := range r.combs {
		line, err := delay.New(scaledLength(reverbCombTuning[i]+spread, MaxReverbSampleRate) + 1)
		if err != nil {
			return nil, fmt.Errorf("reverb comb %d: %w", i, err)
		}

		r.combs[i].line = line
	}

	for i := range r.allpass {
		line, err := delay.New(scaledLength(reverbAllpassTuning[i]+spread, MaxReverbSampleRate) + 1)
		if err != nil {
			return nil, fmt.Errorf("reverb allpass %d: %w", i, err)
		}

		r.allpass[i].line = line
	}

	r.SetSampleRate(sampleRate)
	r.SetRoomSize(defaultReverbRoomSize)
	r.SetDamp(defaultReverbDamp)
	r.SetMix(defaultReverbMix)

	return r, nil
}

// SetSampleRate rescales every delay length to sampleRate. Line contents
// are kept. Invalid rates are ignored.
func (r *Reverb) SetSampleRate(sampleRate float64) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) || sampleRate == r.sampleRate {
		return
	}

	r.sampleRate = sampleRate

	for i := range r.combs {
		r.combs[i].setLength(scaledLength(reverbCombTuning[i]+r.spread, sampleRate))
	}

	for i := range r.allpass {
		r.allpass[i].setLength(scaledLength(reverbAllpassTuning[i]+r.spread, sampleRate))
	}
}

// SetRoomSize sets comb feedback, clamped to [0, MaxReverbFeedback].
func (r *Reverb) SetRoomSize(v float64) {
	r.roomSize = core.Clamp(nanTo(v, 0), 0, MaxReverbFeedback)
	for i := range r.combs {
		r.combs[i].feedback = r.roomSize
	}
}

// SetDamp sets the one-pole damping inside each comb's feedback path.
// Higher values make high frequencies decay faster.
func (r *Reverb) SetDamp(v float64) {
	r.damp = core.Clamp(nanTo(v, 0), 0, maxReverbDamp)
	for i := range r.combs {
		r.combs[i].setDamp(r.damp)
	}
}

// SetMix sets the dry/wet blend in [0, 1].
func (r *Reverb) SetMix(v float64) {
	r.mix = core.Clamp(nanTo(v, 0), 0, 1)
}

// Reset clears all delay/filter state.
func (r *Reverb) Reset() {
	for i := range r.combs {
		r.combs[i].reset()
	}

	for i := range r.allpass {
		r.allpass[i].line.Reset()
	}
}

// ProcessSample processes one sample.
func (r *Reverb) ProcessSample(input float64) float64 {
	x := reverbFixedGain * input

	var acc float64
	for i := range r.combs {
		acc += r.combs[i].process(x)
	}

	for i := range r.allpass {
		acc = r.allpass[i].process(acc)
	}

	return input*(1-r.mix) + acc*reverbWetScale*r.mix
}

// ProcessInPlace applies reverb to buf in place.
func (r *Reverb) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = r.ProcessSample(buf[i])
	}
}

// RoomSize returns comb feedback.
func (r *Reverb) RoomSize() float64 { return r.roomSize }

// Damp returns comb damping.
func (r *Reverb) Damp() float64 { return r.damp }

// Mix returns the dry/wet blend.
func (r *Reverb) Mix() float64 { return r.mix }

// CombLength returns the active length of comb i.
func (r *Reverb) CombLength(i int) int { return r.combs[i].length }

func scaledLength(tuning int, sampleRate float64) int {
	return max(1, int(math.Round(float64(tuning)*sampleRate/reverbTuningRate)))
}
