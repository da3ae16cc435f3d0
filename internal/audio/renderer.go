package audio

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gbraad-music/samplecrate-sub003/dsp/effectchain"
)

const (
	// DefaultBufferSize is the device buffer latency a Player requests.
	DefaultBufferSize = 40 * time.Millisecond

	// bytesPerFrame is two channels of 16-bit samples.
	bytesPerFrame = 4
)

// Processor transforms interleaved stereo PCM in place.
type Processor interface {
	Process(buf []int16, frames int, sampleRate float64) error
}

var _ Processor = (*effectchain.Chain)(nil)

// Renderer is an io.Reader of little-endian stereo PCM: it pulls frames from
// the current Source and runs them through a Processor. Read never
// allocates once its buffer has grown to the device's request size.
type Renderer struct {
	proc       Processor
	sampleRate float64
	src        atomic.Pointer[sourceBox]
	pcm        []int16
	err        atomic.Pointer[error]
}

type sourceBox struct{ Source }

// NewRenderer renders src through proc at sampleRate. src may be nil
// (silence) and can be swapped later with SetSource.
func NewRenderer(proc Processor, src Source, sampleRate float64, maxFrames int) (*Renderer, error) {
	if proc == nil {
		return nil, errors.New("audio: nil processor")
	}

	if maxFrames < 1 {
		return nil, fmt.Errorf("audio: max frames must be > 0: %d", maxFrames)
	}

	r := &Renderer{
		proc:       proc,
		sampleRate: sampleRate,
		pcm:        make([]int16, 2*maxFrames),
	}
	r.SetSource(src)

	return r, nil
}

// SetSource switches the signal source. It is safe to call while Read runs.
func (r *Renderer) SetSource(src Source) {
	if src == nil {
		r.src.Store(nil)
		return
	}

	r.src.Store(&sourceBox{src})
}

// Err returns the first processing error, if any. Blocks that fail to
// process are played as silence.
func (r *Renderer) Err() error {
	if p := r.err.Load(); p != nil {
		return *p
	}

	return nil
}

// Read implements io.Reader. Only whole frames are produced.
func (r *Renderer) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}

	if 2*frames > len(r.pcm) {
		r.pcm = make([]int16, 2*frames)
	}

	pcm := r.pcm[:2*frames]

	box := r.src.Load()
	if box == nil {
		clear(pcm)
	} else {
		box.Fill(pcm)
	}

	err := r.proc.Process(pcm, frames, r.sampleRate)
	if err != nil {
		r.err.CompareAndSwap(nil, &err)
		clear(pcm)
	}

	encodeLE(p, pcm)

	return frames * bytesPerFrame, nil
}
