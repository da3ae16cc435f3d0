//go:build !headless

package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Player plays a Renderer on the default output device as 16-bit stereo.
// Only one Player may exist per process.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
	mu     sync.Mutex
}

// NewPlayer opens the output device at sampleRate and attaches r. The device
// starts paused; call Play.
func NewPlayer(r *Renderer, sampleRate int, bufferSize time.Duration) (*Player, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   bufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("audio: open device: %w", err)
	}
	<-ready

	return &Player{ctx: ctx, player: ctx.NewPlayer(r)}, nil
}

// Play starts or resumes playback.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.player != nil {
		p.player.Play()
	}
}

// Pause stops pulling audio without releasing the device.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.player != nil {
		p.player.Pause()
	}
}

// Close stops playback.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.player == nil {
		return nil
	}

	err := p.player.Close()
	p.player = nil

	if err != nil {
		return fmt.Errorf("audio: close player: %w", err)
	}

	return nil
}
