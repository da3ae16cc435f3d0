package effects_test

import (
	"fmt"

	"github.com/gbraad-music/samplecrate-sub003/dsp/effects"
)

func ExampleEcho() {
	echo, err := effects.NewEcho(effects.EchoCapacity)
	if err != nil {
		panic(err)
	}

	echo.SetOffset(3)
	echo.SetFeedback(0.5)
	echo.SetMix(1)

	left := []float64{1, 0, 0, 0, 0, 0, 0}
	right := make([]float64, len(left))
	echo.ProcessBlock(left, right)

	fmt.Println(left)
	// Output:
	// [0 0 0 1 0 0 0.5]
}

func ExampleDistortion() {
	dist, err := effects.NewDistortion(48000,
		effects.WithDistortionDrive(20),
		effects.WithDistortionMix(0.5),
	)
	if err != nil {
		panic(err)
	}

	buf := []float64{0.5, -0.5, 0.25, -0.25}
	dist.ProcessInPlace(buf)

	fmt.Printf("drive=%.0f mix=%.1f\n", dist.Drive(), dist.Mix())
	// Output:
	// drive=20 mix=0.5
}
