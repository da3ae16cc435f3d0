package effectchain

import (
	"math"
	"sync/atomic"
)

// Meters holds the levels of the most recently processed block, normalized
// to full scale. GainReduction is the smallest compressor gain applied in
// the block (1 when the compressor is bypassed).
type Meters struct {
	InputPeak     float32
	OutputPeak    float32
	OutputRMS     float32
	GainReduction float32
}

// GainReductionDB returns GainReduction in dB (0 or negative).
func (m Meters) GainReductionDB() float64 {
	if m.GainReduction <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(float64(m.GainReduction))
}

type meterCells struct {
	inputPeak     atomic.Uint32
	outputPeak    atomic.Uint32
	outputRMS     atomic.Uint32
	gainReduction atomic.Uint32
}

func (m *meterCells) publish(inPeak, outPeak, outRMS, gainReduction float64) {
	m.inputPeak.Store(math.Float32bits(float32(inPeak)))
	m.outputPeak.Store(math.Float32bits(float32(outPeak)))
	m.outputRMS.Store(math.Float32bits(float32(outRMS)))
	m.gainReduction.Store(math.Float32bits(float32(gainReduction)))
}

func (m *meterCells) reset() {
	m.publish(0, 0, 0, 1)
}

// Meters returns the levels of the last processed block. It is safe to call
// concurrently with Process; the four fields may come from adjacent blocks.
func (c *Chain) Meters() Meters {
	return Meters{
		InputPeak:     math.Float32frombits(c.meters.inputPeak.Load()),
		OutputPeak:    math.Float32frombits(c.meters.outputPeak.Load()),
		OutputRMS:     math.Float32frombits(c.meters.outputRMS.Load()),
		GainReduction: math.Float32frombits(c.meters.gainReduction.Load()),
	}
}
