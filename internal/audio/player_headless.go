//go:build headless

package audio

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Player pulls a Renderer at the device rate without an output device. The
// chain, meters and control surfaces behave as they would with sound.
type Player struct {
	r       *Renderer
	buf     []byte
	period  time.Duration
	playing atomic.Bool

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewPlayer starts a paused headless player that reads bufferSize worth of
// frames from r every bufferSize.
func NewPlayer(r *Renderer, sampleRate int, bufferSize time.Duration) (*Player, error) {
	if r == nil {
		return nil, errors.New("audio: nil renderer")
	}

	if sampleRate <= 0 {
		return nil, fmt.Errorf("audio: sample rate must be > 0: %d", sampleRate)
	}

	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	frames := max(1, int(bufferSize.Seconds()*float64(sampleRate)))

	p := &Player{
		r:      r,
		buf:    make([]byte, frames*bytesPerFrame),
		period: bufferSize,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}

	go p.loop()

	return p, nil
}

func (p *Player) loop() {
	defer close(p.done)

	ticker := time.NewTicker(p.period)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			if p.playing.Load() {
				_, _ = p.r.Read(p.buf)
			}
		}
	}
}

// Play starts or resumes pulling audio.
func (p *Player) Play() { p.playing.Store(true) }

// Pause stops pulling audio.
func (p *Player) Pause() { p.playing.Store(false) }

// Close stops the pull loop. It is safe to call more than once.
func (p *Player) Close() error {
	p.closeOnce.Do(func() { close(p.stop) })
	<-p.done

	return nil
}
