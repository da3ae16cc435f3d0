package ir

import (
	"errors"
	"math"
	"testing"

	"github.com/gbraad-music/samplecrate-sub003/dsp/effectchain"
)

func TestToneGainBypassed(t *testing.T) {
	l, r, err := ToneGain(newChain(t), 1000, 0.5, 48000, 0.5)
	if err != nil {
		t.Fatalf("ToneGain() error = %v", err)
	}

	if math.Abs(l) > 1e-6 || math.Abs(r) > 1e-6 {
		t.Fatalf("gain = %g/%g dB, want 0", l, r)
	}
}

func TestToneGainSeesCompressor(t *testing.T) {
	c := newChain(t)
	c.SetCompressorEnabled(true)
	c.SetCompressorThreshold(0.5)
	c.SetCompressorRatio(1)

	loud, _, err := ToneGain(c, 440, 1, 48000, 1)
	if err != nil {
		t.Fatalf("ToneGain() error = %v", err)
	}

	c.Reset()

	quiet, _, err := ToneGain(c, 440, 0.001, 48000, 1)
	if err != nil {
		t.Fatalf("ToneGain() error = %v", err)
	}

	if loud > -10 {
		t.Fatalf("loud tone gain = %.2f dB, want strong reduction", loud)
	}

	if quiet < -1 {
		t.Fatalf("quiet tone gain = %.2f dB, want about 0", quiet)
	}
}

func TestToneGainSeesEQ(t *testing.T) {
	c := newChain(t)
	c.SetEQEnabled(true)
	c.SetEQLow(1)
	c.SetEQHigh(0)

	low, _, err := ToneGain(c, 30, 0.1, 48000, 1)
	if err != nil {
		t.Fatalf("ToneGain() error = %v", err)
	}

	high, _, err := ToneGain(c, 18000, 0.1, 48000, 1)
	if err != nil {
		t.Fatalf("ToneGain() error = %v", err)
	}

	if low < 9 || high > -9 {
		t.Fatalf("low %.2f dB high %.2f dB, want about +12/-12", low, high)
	}
}

func TestToneGainErrors(t *testing.T) {
	c := newChain(t)

	bad := []struct {
		freq, amp, rate, sec float64
	}{
		{0, 0.5, 48000, 1},
		{24000, 0.5, 48000, 1},
		{440, 0, 48000, 1},
		{440, 2, 48000, 1},
		{440, 0.5, 0, 1},
		{20, 0.5, 48000, 0.01},
	}

	for _, b := range bad {
		if _, _, err := ToneGain(c, b.freq, b.amp, b.rate, b.sec); err == nil {
			t.Errorf("ToneGain(%+v) succeeded", b)
		}
	}

	_ = c.Close()

	if _, _, err := ToneGain(c, 440, 0.5, 48000, 0.1); !errors.Is(err, effectchain.ErrClosed) {
		t.Errorf("closed chain: err = %v", err)
	}
}
