package control

import (
	"testing"

	"github.com/gbraad-music/samplecrate-sub003/dsp/effectchain"
)

func newChain(t *testing.T) *effectchain.Chain {
	t.Helper()

	c, err := effectchain.New()
	if err != nil {
		t.Fatalf("effectchain.New() error = %v", err)
	}

	t.Cleanup(func() { _ = c.Close() })

	return c
}

func near(a, b float32) bool {
	d := a - b
	return d < 1e-5 && d > -1e-5
}
