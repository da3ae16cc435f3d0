// Package delay provides fixed-capacity circular delay lines.
package delay

import (
	"errors"
	"fmt"
)

// ErrInvalidSize is returned when a line is created with a non-positive size.
var ErrInvalidSize = errors.New("delay: invalid size")

// Line is a circular delay line with a fixed capacity.
//
// The capacity is chosen once at construction and never changes. Reads are
// bounds-safe by construction: any requested delay is clamped to the range
// [0, Len()-1] before the modulo read position is computed.
type Line struct {
	buffer   []float64
	writePos int
}

// New returns a delay line of fixed size.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	return &Line{buffer: make([]float64, size)}, nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Write writes one sample and advances the write cursor.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++

	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read returns the sample written delay samples before the next write
// position. Read(1) is the most recently written sample.
func (d *Line) Read(delay int) float64 {
	return d.buffer[d.readPos(delay)]
}

// ReadAt returns the sample delay positions behind an externally managed
// write cursor. It lets several lines share one cursor.
func (d *Line) ReadAt(writePos, delay int) float64 {
	size := len(d.buffer)
	delay = clampDelay(delay, size)

	pos := writePos - delay
	if pos < 0 {
		pos += size
	}

	return d.buffer[pos]
}

// WriteAt stores sample at pos modulo the capacity.
func (d *Line) WriteAt(pos int, sample float64) {
	size := len(d.buffer)

	pos %= size
	if pos < 0 {
		pos += size
	}

	d.buffer[pos] = sample
}

// Reset clears line state.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}

	d.writePos = 0
}

func (d *Line) readPos(delay int) int {
	size := len(d.buffer)
	delay = clampDelay(delay, size)

	pos := d.writePos - delay
	if pos < 0 {
		pos += size
	}

	return pos
}

func clampDelay(delay, size int) int {
	if delay < 0 {
		return 0
	}

	if delay >= size {
		return size - 1
	}

	return delay
}
