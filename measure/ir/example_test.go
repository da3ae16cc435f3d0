package ir_test

import (
	"fmt"

	"github.com/gbraad-music/samplecrate-sub003/dsp/effectchain"
	"github.com/gbraad-music/samplecrate-sub003/measure/ir"
)

func ExampleCapture() {
	c, err := effectchain.New()
	if err != nil {
		panic(err)
	}
	defer c.Close()

	c.SetDelayEnabled(true)
	c.SetDelayTime(0.005)
	c.SetDelayFeedback(0)
	c.SetDelayMix(1)

	left, _, err := ir.Capture(c, 48000, 1024, 0.5)
	if err != nil {
		panic(err)
	}

	m, err := ir.NewAnalyzer(48000).Analyze(left)
	if err != nil {
		panic(err)
	}

	fmt.Printf("peak %.2f at frame %d (%.1f ms)\n", m.Peak, m.PeakIndex, 1000*float64(m.PeakIndex)/48000)
	// Output: peak 1.00 at frame 240 (5.0 ms)
}

func ExampleMagnitudeResponse() {
	impulse := make([]float64, 32)
	impulse[0] = 0.5

	r, err := ir.MagnitudeResponse(impulse, 48000, 64)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%.1f dB at %.0f Hz\n", r.At(3000), 3000.0)
	// Output: -6.0 dB at 3000 Hz
}
