// Package audio renders signal sources through an effects chain and plays
// the result on the default output device.
//
// The device Player uses oto and needs cgo with the platform audio headers.
// Building with the headless tag swaps in a Player that pulls the Renderer
// in real time and discards the output, so everything else builds and
// tests without an audio stack.
package audio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
)

// Source produces interleaved stereo PCM. Fill must fill all of buf.
type Source interface {
	Fill(buf []int16)
}

// Tone is a sine test signal, identical on both channels.
type Tone struct {
	step, phase float64
	amplitude   float64
}

// NewTone returns a sine of freqHz at amplitude (1 = full scale).
func NewTone(freqHz, amplitude, sampleRate float64) (*Tone, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("audio: sample rate must be > 0 and finite: %f", sampleRate)
	}

	if freqHz < 0 || freqHz >= sampleRate/2 {
		return nil, fmt.Errorf("audio: tone frequency must be in [0, %g): %f", sampleRate/2, freqHz)
	}

	if amplitude < 0 || amplitude > 1 {
		return nil, fmt.Errorf("audio: amplitude must be in [0, 1]: %f", amplitude)
	}

	return &Tone{step: 2 * math.Pi * freqHz / sampleRate, amplitude: amplitude}, nil
}

// Fill implements Source.
func (t *Tone) Fill(buf []int16) {
	for i := 0; i+1 < len(buf); i += 2 {
		v := int16(math.Round(t.amplitude * math.MaxInt16 * math.Sin(t.phase)))
		buf[i] = v
		buf[i+1] = v

		t.phase += t.step
		if t.phase >= 2*math.Pi {
			t.phase -= 2 * math.Pi
		}
	}
}

// Noise is uniform white noise with independent channels.
type Noise struct {
	rng       *rand.Rand
	amplitude float64
}

// NewNoise returns seeded noise at amplitude (1 = full scale).
func NewNoise(seed uint64, amplitude float64) (*Noise, error) {
	if amplitude < 0 || amplitude > 1 {
		return nil, fmt.Errorf("audio: amplitude must be in [0, 1]: %f", amplitude)
	}

	return &Noise{rng: rand.New(rand.NewPCG(seed, seed>>1|1)), amplitude: amplitude}, nil
}

// Fill implements Source.
func (n *Noise) Fill(buf []int16) {
	for i := range buf {
		buf[i] = int16(math.Round(n.amplitude * math.MaxInt16 * (2*n.rng.Float64() - 1)))
	}
}

// PCMReader reads raw interleaved stereo signed 16-bit little-endian PCM.
// When the reader runs out it either rewinds (Loop with an io.Seeker) or
// produces silence.
type PCMReader struct {
	r    io.Reader
	loop bool
	raw  []byte
	err  error
}

// NewPCMReader wraps r. loop requires r to implement io.Seeker.
func NewPCMReader(r io.Reader, loop bool) (*PCMReader, error) {
	if _, ok := r.(io.Seeker); loop && !ok {
		return nil, errors.New("audio: looping needs a seekable reader")
	}

	return &PCMReader{r: r, loop: loop}, nil
}

// Err returns the read error that ended the stream, if any. io.EOF is not
// reported.
func (p *PCMReader) Err() error {
	if errors.Is(p.err, io.EOF) {
		return nil
	}

	return p.err
}

// Done reports whether the stream has ended and only silence remains.
func (p *PCMReader) Done() bool { return p.err != nil }

// Fill implements Source.
func (p *PCMReader) Fill(buf []int16) {
	if cap(p.raw) < 2*len(buf) {
		p.raw = make([]byte, 2*len(buf))
	}

	raw := p.raw[:2*len(buf)]
	n := 0
	rewound := false

	for n < len(raw) && p.err == nil {
		m, err := io.ReadFull(p.r, raw[n:])
		n += m

		if err == nil {
			continue
		}

		if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			p.err = err
			break
		}

		// Nothing read since the last rewind: the stream is empty.
		if !p.loop || (m == 0 && rewound) {
			p.err = io.EOF
			break
		}

		_, err = p.r.(io.Seeker).Seek(0, io.SeekStart)
		if err != nil {
			p.err = err
			break
		}

		rewound = true
	}

	// A trailing odd byte is dropped.
	n &^= 1
	clear(raw[n:])

	decodeLE(buf, raw)
}
