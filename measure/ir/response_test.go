package ir

import (
	"math"
	"testing"
)

func TestMagnitudeResponseOfImpulse(t *testing.T) {
	for _, tt := range []struct {
		delay  int
		amp    float64
		wantDB float64
	}{
		{0, 1, 0},
		{5, 1, 0},
		{0, 0.5, -6.0206},
	} {
		ir := make([]float64, 64)
		ir[tt.delay] = tt.amp

		r, err := MagnitudeResponse(ir, 48000, 256)
		if err != nil {
			t.Fatalf("MagnitudeResponse() error = %v", err)
		}

		if len(r.DB) != 129 || r.BinHz() != 48000.0/256 {
			t.Fatalf("bins = %d spacing %g", len(r.DB), r.BinHz())
		}

		for k, db := range r.DB {
			if math.Abs(db-tt.wantDB) > 1e-3 {
				t.Fatalf("delay %d amp %g: bin %d = %.4f dB, want %.4f", tt.delay, tt.amp, k, db, tt.wantDB)
			}
		}
	}
}

func TestMagnitudeResponseOfLowShelfBoost(t *testing.T) {
	c := newChain(t)
	c.SetEQEnabled(true)
	c.SetEQLow(1)

	left, _, err := Capture(c, 48000, 16384, 0.25)
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}

	r, err := MagnitudeResponse(left, 48000, 16384)
	if err != nil {
		t.Fatalf("MagnitudeResponse() error = %v", err)
	}

	if got := r.At(20); got < 9 || got > 12.5 {
		t.Errorf("20 Hz = %.2f dB, want close to +12", got)
	}

	if got := r.At(1000); math.Abs(got) > 0.5 {
		t.Errorf("1 kHz = %.2f dB, want ~0", got)
	}

	if got := r.At(15000); math.Abs(got) > 0.5 {
		t.Errorf("15 kHz = %.2f dB, want ~0", got)
	}
}

func TestMagnitudeResponseErrors(t *testing.T) {
	for _, n := range []int{0, 1, 100} {
		if _, err := MagnitudeResponse([]float64{1}, 48000, n); err == nil {
			t.Errorf("FFT size %d accepted", n)
		}
	}

	if _, err := MagnitudeResponse([]float64{1}, 0, 64); err == nil {
		t.Error("zero rate accepted")
	}

	var r Response
	if !math.IsNaN(r.At(100)) || r.BinHz() != 0 {
		t.Error("empty response should report NaN")
	}
}
