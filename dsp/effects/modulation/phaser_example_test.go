package modulation_test

import (
	"fmt"

	"github.com/gbraad-music/samplecrate-sub003/dsp/effects/modulation"
)

func ExamplePhaser() {
	phaser, err := modulation.NewPhaser(48000,
		modulation.WithPhaserRateHz(0.5),
		modulation.WithPhaserDepth(2),
		modulation.WithPhaserFeedback(0.3),
	)
	if err != nil {
		panic(err)
	}

	left := make([]float64, 480)
	right := make([]float64, 480)
	phaser.ProcessBlock(left, right)

	fmt.Printf("stages=%d center=%.0f Hz\n", modulation.PhaserStages, phaser.CenterHz())
	// Output:
	// stages=4 center=800 Hz
}
