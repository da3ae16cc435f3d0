package dither

import (
	"math"
	"testing"
)

func TestDitherTypeString(t *testing.T) {
	tests := []struct {
		dt   DitherType
		want string
	}{
		{DitherNone, "None"},
		{DitherTriangular, "Triangular"},
		{DitherType(42), "DitherType(42)"},
	}

	for _, tt := range tests {
		if got := tt.dt.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", int(tt.dt), got, tt.want)
		}
	}
}

func TestNewQuantizerValidation(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		opts []Option
	}{
		{"zero rate", 0, nil},
		{"bad type", 48000, []Option{WithDitherType(DitherType(9))}},
		{"negative amplitude", 48000, []Option{WithDitherAmplitude(-1)}},
		{"huge amplitude", 48000, []Option{WithDitherAmplitude(100)}},
		{"bad shelf", 48000, []Option{WithNoiseShaping(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewQuantizer(tt.rate, tt.opts...); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestQuantizerNoneRoundsAndSaturates(t *testing.T) {
	q, err := NewQuantizer(48000, WithDitherType(DitherNone))
	if err != nil {
		t.Fatalf("NewQuantizer() error = %v", err)
	}

	tests := []struct {
		in   float64
		want int16
	}{
		{0, 0},
		{1.4, 1},
		{-1.6, -2},
		{2.5, 2},
		{40000, math.MaxInt16},
		{-40000, math.MinInt16},
		{math.NaN(), 0},
	}

	for _, tt := range tests {
		if got := q.Quantize(tt.in); got != tt.want {
			t.Errorf("Quantize(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestQuantizerTriangularStaysWithinOneLSB(t *testing.T) {
	q, err := NewQuantizer(48000, WithSeed(1))
	if err != nil {
		t.Fatalf("NewQuantizer() error = %v", err)
	}

	var sum float64

	const n = 20000
	for range n {
		got := q.Quantize(100.25)
		if got < 99 || got > 101 {
			t.Fatalf("Quantize(100.25) = %d, outside 1 LSB", got)
		}

		sum += float64(got)
	}

	// TPDF dither keeps the long-term mean unbiased.
	if mean := sum / n; math.Abs(mean-100.25) > 0.05 {
		t.Fatalf("mean = %g, want about 100.25", mean)
	}
}

func TestQuantizerAmplitudeWidensDither(t *testing.T) {
	q, err := NewQuantizer(48000, WithSeed(3), WithDitherAmplitude(4))
	if err != nil {
		t.Fatalf("NewQuantizer() error = %v", err)
	}

	if q.DitherAmplitude() != 4 {
		t.Fatalf("DitherAmplitude() = %g, want 4", q.DitherAmplitude())
	}

	wide := false

	for range 20000 {
		got := q.Quantize(100)
		if got < 96 || got > 104 {
			t.Fatalf("Quantize(100) = %d, outside 4 LSB", got)
		}

		wide = wide || got < 99 || got > 101
	}

	if !wide {
		t.Fatal("dither never exceeded 1 LSB at amplitude 4")
	}
}

func TestQuantizerSeedIsReproducible(t *testing.T) {
	run := func() []int16 {
		q, err := NewQuantizer(44100, WithSeed(7), WithNoiseShaping(8000))
		if err != nil {
			t.Fatalf("NewQuantizer() error = %v", err)
		}

		out := make([]int16, 2*64)
		src := make([]float64, 64)

		for i := range src {
			src[i] = 1000 * math.Sin(float64(i)/5)
		}

		q.QuantizeBlock(out, src, 2)

		return out
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("index %d: %d != %d", i, a[i], b[i])
		}

		if i%2 == 1 && a[i] != 0 {
			t.Fatalf("stride gap %d written", i)
		}
	}
}
