package delay

import (
	"errors"
	"testing"
)

func TestNewValidation(t *testing.T) {
	for _, size := range []int{0, -1} {
		if _, err := New(size); !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("New(%d): got %v, want ErrInvalidSize", size, err)
		}
	}
}

func TestReadWrite(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i <= 5; i++ {
		d.Write(float64(i))
	}

	if got := d.Read(1); got != 5 {
		t.Fatalf("Read(1) = %v, want 5", got)
	}

	if got := d.Read(5); got != 1 {
		t.Fatalf("Read(5) = %v, want 1", got)
	}
}

func TestWrapAround(t *testing.T) {
	d, err := New(4)
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i <= 10; i++ {
		d.Write(float64(i))
	}

	if got := d.Read(1); got != 10 {
		t.Fatalf("Read(1) = %v, want 10", got)
	}

	if got := d.Read(3); got != 8 {
		t.Fatalf("Read(3) = %v, want 8", got)
	}
}

func TestReadClampsDelay(t *testing.T) {
	d, err := New(4)
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i <= 4; i++ {
		d.Write(float64(i))
	}

	// Delays past the capacity read the oldest retained sample.
	if got := d.Read(100); got != d.Read(3) {
		t.Fatalf("Read(100) = %v, want %v", got, d.Read(3))
	}

	// Negative delays read the slot about to be overwritten.
	if got := d.Read(-5); got != d.Read(0) {
		t.Fatalf("Read(-5) = %v, want %v", got, d.Read(0))
	}
}

func TestSharedCursor(t *testing.T) {
	a, _ := New(6)
	b, _ := New(6)

	cursor := 0
	for i := 0; i < 9; i++ {
		a.WriteAt(cursor, float64(i))
		b.WriteAt(cursor, float64(-i))
		cursor = (cursor + 1) % 6
	}

	if got := a.ReadAt(cursor, 1); got != 8 {
		t.Fatalf("a.ReadAt(1) = %v, want 8", got)
	}

	if got := b.ReadAt(cursor, 2); got != -7 {
		t.Fatalf("b.ReadAt(2) = %v, want -7", got)
	}
}

func TestReset(t *testing.T) {
	d, _ := New(4)
	d.Write(1)
	d.Write(2)
	d.Reset()

	for i := 0; i < d.Len(); i++ {
		if d.Read(i) != 0 {
			t.Fatalf("Read(%d) after Reset = %v", i, d.Read(i))
		}
	}

	d.Write(5)

	if d.Read(1) != 5 || d.Read(2) != 0 {
		t.Fatalf("after Reset and Write: Read(1) = %v, Read(2) = %v", d.Read(1), d.Read(2))
	}
}
