package effects

import (
	"fmt"

	"github.com/gbraad-music/samplecrate-sub003/dsp/core"
	"github.com/gbraad-music/samplecrate-sub003/dsp/delay"
)

const (
	// EchoCapacity is the per-channel echo buffer length: one second at
	// 48 kHz. At higher rates the longest echo is shorter than a second.
	EchoCapacity = 48000

	// MaxEchoFeedback keeps the recirculating loop strictly below unity.
	MaxEchoFeedback = 0.95

	defaultEchoOffset   = 12000
	defaultEchoFeedback = 0.3
	defaultEchoMix      = 0.3
)

// Echo is a stereo single-tap feedback delay. Both channels share one write
// cursor, which advances exactly once per frame and wraps modulo the
// capacity. The read position is always (write - offset) mod capacity with
// 1 <= offset < capacity.
type Echo struct {
	lines  [2]*delay.Line
	cursor int

	offset   int
	feedback float64
	mix      float64
}

// NewEcho allocates an echo with capacity samples per channel. This is the
// only allocation the echo performs.
func NewEcho(capacity int) (*Echo, error) {
	if capacity < 2 {
		return nil, fmt.Errorf("echo capacity must be >= 2: %d", capacity)
	}

	e := &Echo{
		feedback: defaultEchoFeedback,
		mix:      defaultEchoMix,
	}

	for c := range e.lines {
		line, err := delay.New(capacity)
		if err != nil {
			return nil, fmt.Errorf("echo: %w", err)
		}

		e.lines[c] = line
	}

	e.SetOffset(defaultEchoOffset)

	return e, nil
}

// Capacity returns the per-channel buffer length.
func (e *Echo) Capacity() int { return e.lines[0].Len() }

// SetOffset sets the echo distance in frames, clamped to [1, capacity-1].
func (e *Echo) SetOffset(frames int) {
	e.offset = clampOffset(frames, e.Capacity())
}

// SetFeedback sets the recirculation gain, clamped to [0, MaxEchoFeedback].
func (e *Echo) SetFeedback(feedback float64) {
	e.feedback = core.Clamp(nanTo(feedback, 0), 0, MaxEchoFeedback)
}

// SetMix sets the dry/wet blend, clamped to [0, 1].
func (e *Echo) SetMix(mix float64) {
	e.mix = core.Clamp(nanTo(mix, 0), 0, 1)
}

// Offset returns the echo distance in frames.
func (e *Echo) Offset() int { return e.offset }

// Feedback returns the recirculation gain.
func (e *Echo) Feedback() float64 { return e.feedback }

// Mix returns the dry/wet blend.
func (e *Echo) Mix() float64 { return e.mix }

// Cursor returns the shared write position.
func (e *Echo) Cursor() int { return e.cursor }

// ProcessFrame processes one stereo frame.
func (e *Echo) ProcessFrame(left, right float64) (float64, float64) {
	dl := e.lines[0].ReadAt(e.cursor, e.offset)
	dr := e.lines[1].ReadAt(e.cursor, e.offset)

	e.lines[0].WriteAt(e.cursor, core.FlushDenormals(left+dl*e.feedback))
	e.lines[1].WriteAt(e.cursor, core.FlushDenormals(right+dr*e.feedback))

	e.cursor++
	if e.cursor >= e.Capacity() {
		e.cursor = 0
	}

	dry := 1 - e.mix

	return left*dry + dl*e.mix, right*dry + dr*e.mix
}

// ProcessBlock processes equal-length left/right buffers in place.
func (e *Echo) ProcessBlock(left, right []float64) {
	n := min(len(left), len(right))
	for i := 0; i < n; i++ {
		left[i], right[i] = e.ProcessFrame(left[i], right[i])
	}
}

// Reset zeroes both buffers and rewinds the cursor.
func (e *Echo) Reset() {
	for _, l := range e.lines {
		l.Reset()
	}

	e.cursor = 0
}

func clampOffset(frames, capacity int) int {
	if frames < 1 {
		return 1
	}

	if frames > capacity-1 {
		return capacity - 1
	}

	return frames
}
