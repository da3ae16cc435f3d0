package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestClampUnit(t *testing.T) {
	nan := float32(math.NaN())
	tests := []struct {
		in, want float32
	}{
		{-3, 0},
		{0, 0},
		{0.25, 0.25},
		{1, 1},
		{7, 1},
		{float32(math.Inf(1)), 1},
		{float32(math.Inf(-1)), 0},
		{nan, 0},
	}

	for _, tt := range tests {
		if got := ClampUnit(tt.in); got != tt.want {
			t.Errorf("ClampUnit(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
}

func TestDBConversions(t *testing.T) {
	linear := DBToLinear(-6)
	db := LinearToDB(linear)
	if !NearlyEqual(db, -6, 1e-10) {
		t.Fatalf("LinearToDB(DBToLinear(-6)) = %v, want -6", db)
	}
	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}
	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}
}

func TestValidSampleRate(t *testing.T) {
	for _, sr := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if ValidSampleRate(sr) {
			t.Errorf("ValidSampleRate(%v) = true", sr)
		}
	}
	if !ValidSampleRate(44100) {
		t.Error("ValidSampleRate(44100) = false")
	}
}

func TestMsToSamples(t *testing.T) {
	tests := []struct {
		ms, rate float64
		want     int
	}{
		{10, 48000, 480},
		{0.01, 44100, 0},
		{-10, 48000, -480},
		{1000, 1e19, math.MaxInt32},
		{-1000, 1e19, math.MinInt32},
		{math.NaN(), 48000, 0},
		{math.Inf(1), 48000, math.MaxInt32},
	}

	for _, tt := range tests {
		if got := MsToSamples(tt.ms, tt.rate); got != tt.want {
			t.Errorf("MsToSamples(%g, %g) = %d, want %d", tt.ms, tt.rate, got, tt.want)
		}
	}
}

func TestOnePoleCoeff(t *testing.T) {
	c := OnePoleCoeff(10, 48000)
	if c <= 0 || c >= 1 {
		t.Fatalf("OnePoleCoeff(10ms) = %v, want (0,1)", c)
	}

	// After the half-life the follower must be half way to the target.
	y := 0.0
	for range 480 {
		y += (1 - y) * c
	}
	if !NearlyEqual(y, 0.5, 1e-6) {
		t.Fatalf("follower after half-life = %v, want 0.5", y)
	}

	if got := OnePoleCoeff(0, 48000); got != 1 {
		t.Fatalf("OnePoleCoeff(0) = %v, want 1", got)
	}
}

func TestFlushDenormals(t *testing.T) {
	if FlushDenormals(1e-35) != 0 {
		t.Fatal("expected tiny value to flush")
	}
	if FlushDenormals(1e-3) != 1e-3 {
		t.Fatal("expected regular value to pass")
	}
}
