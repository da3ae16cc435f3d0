package effects

import (
	"math"
	"testing"
)

func TestNewEchoValidation(t *testing.T) {
	for _, capacity := range []int{-1, 0, 1} {
		if _, err := NewEcho(capacity); err == nil {
			t.Fatalf("NewEcho(%d) expected error", capacity)
		}
	}

	e, err := NewEcho(EchoCapacity)
	if err != nil {
		t.Fatalf("NewEcho() error = %v", err)
	}

	if e.Capacity() != EchoCapacity {
		t.Fatalf("Capacity() = %d, want %d", e.Capacity(), EchoCapacity)
	}
}

func TestEchoSetterClamping(t *testing.T) {
	e, err := NewEcho(EchoCapacity)
	if err != nil {
		t.Fatalf("NewEcho() error = %v", err)
	}

	tests := []struct {
		name string
		set  func()
		got  func() float64
		want float64
	}{
		{"offset zero", func() { e.SetOffset(0) }, func() float64 { return float64(e.Offset()) }, 1},
		{"offset past capacity", func() { e.SetOffset(96000) }, func() float64 { return float64(e.Offset()) }, EchoCapacity - 1},
		{"feedback above max", func() { e.SetFeedback(1.5) }, e.Feedback, MaxEchoFeedback},
		{"feedback NaN", func() { e.SetFeedback(math.NaN()) }, e.Feedback, 0},
		{"mix above one", func() { e.SetMix(3) }, e.Mix, 1},
		{"mix negative", func() { e.SetMix(-1) }, e.Mix, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.set()

			if got := tt.got(); got != tt.want {
				t.Fatalf("got %g, want %g", got, tt.want)
			}
		})
	}
}

func TestEchoImpulseAtOffset(t *testing.T) {
	e, err := NewEcho(EchoCapacity)
	if err != nil {
		t.Fatalf("NewEcho() error = %v", err)
	}

	const offset = 480

	e.SetOffset(offset)
	e.SetFeedback(0.5)
	e.SetMix(1)

	left := make([]float64, 3*offset)
	right := make([]float64, 3*offset)
	left[0] = 1
	right[0] = -0.5

	e.ProcessBlock(left, right)

	for i := range left {
		var wantL, wantR float64

		switch i {
		case offset:
			wantL, wantR = 1, -0.5
		case 2 * offset:
			wantL, wantR = 0.5, -0.25
		}

		if left[i] != wantL || right[i] != wantR {
			t.Fatalf("frame %d: got (%g, %g), want (%g, %g)", i, left[i], right[i], wantL, wantR)
		}
	}
}

func TestEchoCursorWraps(t *testing.T) {
	e, err := NewEcho(4)
	if err != nil {
		t.Fatalf("NewEcho() error = %v", err)
	}

	e.SetOffset(3)

	for i := range 9 {
		if e.Cursor() != i%4 {
			t.Fatalf("frame %d: cursor = %d, want %d", i, e.Cursor(), i%4)
		}

		e.ProcessFrame(1, 1)
	}
}

func TestEchoReset(t *testing.T) {
	e, err := NewEcho(64)
	if err != nil {
		t.Fatalf("NewEcho() error = %v", err)
	}

	e.SetOffset(8)
	e.SetMix(1)

	for range 20 {
		e.ProcessFrame(1, 1)
	}

	e.Reset()

	if e.Cursor() != 0 {
		t.Fatalf("cursor = %d after reset", e.Cursor())
	}

	for i := range 64 {
		l, r := e.ProcessFrame(0, 0)
		if l != 0 || r != 0 {
			t.Fatalf("frame %d: got (%g, %g) after reset", i, l, r)
		}
	}
}
