package biquad

import (
	"math"
	"testing"
)

func TestIdentityPassesInput(t *testing.T) {
	s := NewSection(Identity())
	for _, x := range []float64{1, -0.5, 0.25, 0} {
		if y := s.ProcessSample(x); y != x {
			t.Fatalf("ProcessSample(%v) = %v", x, y)
		}
	}
}

func TestProcessBlockMatchesProcessSample(t *testing.T) {
	c := Coefficients{B0: 0.2, B1: 0.4, B2: 0.2, A1: -0.5, A2: 0.3}
	a := NewSection(c)
	b := NewSection(c)

	buf := make([]float64, 64)
	for i := range buf {
		buf[i] = math.Sin(float64(i) * 0.3)
	}

	want := make([]float64, len(buf))
	for i, x := range buf {
		want[i] = a.ProcessSample(x)
	}

	b.ProcessBlock(buf)
	for i := range buf {
		if math.Abs(buf[i]-want[i]) > 1e-12 {
			t.Fatalf("index %d: block %v, sample %v", i, buf[i], want[i])
		}
	}
}

func TestResetClearsState(t *testing.T) {
	s := NewSection(Coefficients{B0: 0.5, B1: 0.5, A1: -0.2})
	s.ProcessSample(1)
	s.Reset()

	if s.State() != [2]float64{} {
		t.Fatalf("state after Reset = %v", s.State())
	}
}

func TestIsStable(t *testing.T) {
	if !(Coefficients{B0: 1, A1: -1.8, A2: 0.81}).IsStable() {
		t.Fatal("double pole at 0.9 reported unstable")
	}
	if (Coefficients{B0: 1, A1: -2.1, A2: 1.1}).IsStable() {
		t.Fatal("pole outside unit circle reported stable")
	}
}

func TestMagnitudeOfIdentity(t *testing.T) {
	c := Identity()
	for _, f := range []float64{10, 1000, 20000} {
		if db := c.MagnitudeDB(f, 48000); math.Abs(db) > 1e-9 {
			t.Fatalf("MagnitudeDB(%v) = %v, want 0", f, db)
		}
	}
}
