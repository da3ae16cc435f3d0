package effectchain

import (
	"testing"
)

const testRate = 48000.0

// newTestChain creates a chain or fails the test.
func newTestChain(t testing.TB, opts ...Option) *Chain {
	t.Helper()

	c, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	t.Cleanup(func() { _ = c.Close() })

	return c
}

// enableAll enables every stage.
func enableAll(c *Chain) {
	for s := range NumStages {
		c.SetEnabled(s, true)
	}
}

// process runs buf through c at testRate or fails the test.
func process(t testing.TB, c *Chain, buf []int16) {
	t.Helper()

	err := c.Process(buf, len(buf)/2, testRate)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
}

// clonePCM returns a copy of buf.
func clonePCM(buf []int16) []int16 {
	return append([]int16(nil), buf...)
}
