package audio

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"
)

func TestToneFill(t *testing.T) {
	tone, err := NewTone(1000, 0.5, 48000)
	if err != nil {
		t.Fatalf("NewTone() error = %v", err)
	}

	buf := make([]int16, 2*96)
	tone.Fill(buf)

	peak := int16(0)

	for i := 0; i < len(buf); i += 2 {
		if buf[i] != buf[i+1] {
			t.Fatalf("frame %d: channels differ", i/2)
		}

		peak = max(peak, buf[i])
	}

	if want := int16(math.Round(0.5 * math.MaxInt16)); peak < want-1 || peak > want {
		t.Fatalf("peak = %d, want %d", peak, want)
	}

	// 48 frames per period: frame 48 is a zero crossing again.
	if buf[2*48] > 1 || buf[2*48] < -1 {
		t.Fatalf("frame 48 = %d, want ~0", buf[2*48])
	}
}

func TestToneValidation(t *testing.T) {
	tests := []struct {
		freq, amp, rate float64
	}{
		{440, 0.5, 0},
		{440, 0.5, math.NaN()},
		{-1, 0.5, 48000},
		{24000, 0.5, 48000},
		{440, 1.5, 48000},
	}

	for _, tt := range tests {
		if _, err := NewTone(tt.freq, tt.amp, tt.rate); err == nil {
			t.Errorf("NewTone(%g, %g, %g) succeeded", tt.freq, tt.amp, tt.rate)
		}
	}
}

func TestNoiseIsSeededAndBounded(t *testing.T) {
	a, err := NewNoise(7, 0.25)
	if err != nil {
		t.Fatalf("NewNoise() error = %v", err)
	}

	b, _ := NewNoise(7, 0.25)

	x := make([]int16, 4096)
	y := make([]int16, 4096)
	a.Fill(x)
	b.Fill(y)

	if !slicesEqual(x, y) {
		t.Fatal("same seed produced different noise")
	}

	limit := int16(math.Round(0.25 * math.MaxInt16))
	for i, v := range x {
		if v > limit || v < -limit {
			t.Fatalf("sample %d = %d exceeds %d", i, v, limit)
		}
	}

	if _, err := NewNoise(1, -0.1); err == nil {
		t.Fatal("negative amplitude accepted")
	}
}

func pcmBytes(samples ...int16) []byte {
	b := make([]byte, 2*len(samples))
	encodeLE(b, samples)

	return b
}

func TestPCMReaderStopsWithSilence(t *testing.T) {
	r, err := NewPCMReader(bytes.NewReader(pcmBytes(1, -2, 3, -4)), false)
	if err != nil {
		t.Fatalf("NewPCMReader() error = %v", err)
	}

	buf := make([]int16, 6)
	r.Fill(buf)

	want := []int16{1, -2, 3, -4, 0, 0}
	if !slicesEqual(buf, want) {
		t.Fatalf("Fill() = %v, want %v", buf, want)
	}

	if !r.Done() || r.Err() != nil {
		t.Fatalf("Done() = %v, Err() = %v", r.Done(), r.Err())
	}

	r.Fill(buf)

	if !slicesEqual(buf, make([]int16, 6)) {
		t.Fatalf("Fill() after end = %v", buf)
	}
}

func TestPCMReaderLoops(t *testing.T) {
	r, err := NewPCMReader(bytes.NewReader(pcmBytes(5, 6, 7, 8)), true)
	if err != nil {
		t.Fatalf("NewPCMReader() error = %v", err)
	}

	buf := make([]int16, 10)
	r.Fill(buf)

	want := []int16{5, 6, 7, 8, 5, 6, 7, 8, 5, 6}
	if !slicesEqual(buf, want) {
		t.Fatalf("Fill() = %v, want %v", buf, want)
	}

	buf = make([]int16, 4)
	r.Fill(buf)

	if want := []int16{7, 8, 5, 6}; !slicesEqual(buf, want) {
		t.Fatalf("second Fill() = %v, want %v", buf, want)
	}

	if r.Done() {
		t.Fatal("looping reader reported done")
	}
}

func TestPCMReaderEmptyLoop(t *testing.T) {
	r, err := NewPCMReader(bytes.NewReader(nil), true)
	if err != nil {
		t.Fatalf("NewPCMReader() error = %v", err)
	}

	buf := []int16{9, 9}
	r.Fill(buf)

	if buf[0] != 0 || buf[1] != 0 || !r.Done() {
		t.Fatalf("empty loop: %v done=%v", buf, r.Done())
	}
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestPCMReaderErrors(t *testing.T) {
	if _, err := NewPCMReader(io.MultiReader(), true); err == nil {
		t.Fatal("looping over a non-seekable reader accepted")
	}

	r, err := NewPCMReader(brokenReader{}, false)
	if err != nil {
		t.Fatalf("NewPCMReader() error = %v", err)
	}

	r.Fill(make([]int16, 2))

	if r.Err() == nil || !r.Done() {
		t.Fatal("read error not reported")
	}
}

func slicesEqual(a, b []int16) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
