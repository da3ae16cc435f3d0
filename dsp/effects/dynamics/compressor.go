package dynamics

import (
	"fmt"
	"math"

	"github.com/gbraad-music/samplecrate-sub003/dsp/core"
)

const (
	// DefaultCompressorKneeDB is the soft-knee width of a new compressor.
	DefaultCompressorKneeDB = 6.0
	// DefaultCompressorRMSWindowMs is the RMS detector time constant of a
	// new compressor.
	DefaultCompressorRMSWindowMs = 10.0
	// DefaultCompressorPeakBlend weights peak and RMS detection equally.
	DefaultCompressorPeakBlend = 0.5

	defaultCompressorThresholdDB = -20.0
	defaultCompressorRatio       = 4.0
	defaultCompressorAttackMs    = 10.0
	defaultCompressorReleaseMs   = 100.0
	defaultCompressorMakeupDB    = 0.0

	// Parameter validation ranges
	minCompressorRatio       = 1.0
	maxCompressorRatio       = 100.0
	minCompressorAttackMs    = 0.1
	maxCompressorAttackMs    = 1000.0
	minCompressorReleaseMs   = 1.0
	maxCompressorReleaseMs   = 5000.0
	minCompressorKneeDB      = 0.0
	maxCompressorKneeDB      = 24.0
	minCompressorRMSWindowMs = 1.0
	maxCompressorRMSWindowMs = 1000.0

	// log2Of10Div20 is the conversion factor for dB to log2: log2(10) / 20
	log2Of10Div20 = 0.166096404744
)

// CompressorMetrics holds metering information for visualization and analysis.
type CompressorMetrics struct {
	InputPeak     float64 // Maximum input level since last reset
	OutputPeak    float64 // Maximum output level since last reset
	GainReduction float64 // Minimum gain (maximum reduction) since last reset
}

// Compressor is a mono soft-knee compressor with a blended peak/RMS
// detector and log2-domain gain calculation.
//
// The detector mixes the instantaneous magnitude with a one-pole RMS
// estimate, then smooths the result with attack/release ballistics. RMS
// weighting reduces pumping on transient-heavy material while the peak term
// keeps the attack responsive. Gain is always <= 1 before makeup.
//
// For stereo, run one Compressor per channel.
//
// This implementation is single-threaded and not thread-safe. Parameter
// changes should occur outside audio processing callbacks.
type Compressor struct {
	thresholdDB  float64
	ratio        float64
	kneeDB       float64
	attackMs     float64
	releaseMs    float64
	makeupGainDB float64
	rmsWindowMs  float64
	peakBlend    float64

	sampleRate float64

	// Detector state
	envelope   float64
	meanSquare float64

	// Cached coefficients
	attackCoeff      float64
	releaseCoeff     float64
	rmsCoeff         float64
	thresholdLog2    float64
	kneeWidthLog2    float64
	invKneeWidthLog2 float64
	makeupGainLin    float64

	metrics CompressorMetrics
}

// NewCompressor creates a soft-knee compressor.
//
// Sample rate must be positive and finite.
//
// Default parameters:
//   - Threshold: -20 dB
//   - Ratio: 4:1
//   - Knee: 6 dB
//   - Attack: 10 ms
//   - Release: 100 ms
//   - Makeup: 0 dB
//   - RMS window: 10 ms, detector blend 0.5
func NewCompressor(sampleRate float64) (*Compressor, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("compressor sample rate must be positive and finite: %f", sampleRate)
	}

	c := &Compressor{
		thresholdDB:  defaultCompressorThresholdDB,
		ratio:        defaultCompressorRatio,
		kneeDB:       DefaultCompressorKneeDB,
		attackMs:     defaultCompressorAttackMs,
		releaseMs:    defaultCompressorReleaseMs,
		makeupGainDB: defaultCompressorMakeupDB,
		rmsWindowMs:  DefaultCompressorRMSWindowMs,
		peakBlend:    DefaultCompressorPeakBlend,
		sampleRate:   sampleRate,
	}

	c.updateCoefficients()
	c.ResetMetrics()

	return c, nil
}

// SetThreshold sets compression threshold in dB.
func (c *Compressor) SetThreshold(dB float64) error {
	if !core.IsFinite(dB) {
		return fmt.Errorf("compressor threshold must be finite: %f", dB)
	}

	c.thresholdDB = dB
	c.updateGainComputer()

	return nil
}

// SetRatio sets compression ratio in [1, 100]. 1 disables compression.
func (c *Compressor) SetRatio(ratio float64) error {
	if ratio < minCompressorRatio || ratio > maxCompressorRatio || !core.IsFinite(ratio) {
		return fmt.Errorf("compressor ratio must be in [%f, %f]: %f",
			minCompressorRatio, maxCompressorRatio, ratio)
	}

	c.ratio = ratio

	return nil
}

// SetKnee sets soft-knee width in dB. 0 is a hard knee.
func (c *Compressor) SetKnee(kneeDB float64) error {
	if kneeDB < minCompressorKneeDB || kneeDB > maxCompressorKneeDB || !core.IsFinite(kneeDB) {
		return fmt.Errorf("compressor knee must be in [%f, %f]: %f",
			minCompressorKneeDB, maxCompressorKneeDB, kneeDB)
	}

	c.kneeDB = kneeDB
	c.updateGainComputer()

	return nil
}

// SetAttack sets attack time in milliseconds.
func (c *Compressor) SetAttack(ms float64) error {
	if ms < minCompressorAttackMs || ms > maxCompressorAttackMs || !core.IsFinite(ms) {
		return fmt.Errorf("compressor attack must be in [%f, %f]: %f",
			minCompressorAttackMs, maxCompressorAttackMs, ms)
	}

	c.attackMs = ms
	c.updateTimeConstants()

	return nil
}

// SetRelease sets release time in milliseconds.
func (c *Compressor) SetRelease(ms float64) error {
	if ms < minCompressorReleaseMs || ms > maxCompressorReleaseMs || !core.IsFinite(ms) {
		return fmt.Errorf("compressor release must be in [%f, %f]: %f",
			minCompressorReleaseMs, maxCompressorReleaseMs, ms)
	}

	c.releaseMs = ms
	c.updateTimeConstants()

	return nil
}

// SetRMSWindow sets the RMS detector time constant in milliseconds.
func (c *Compressor) SetRMSWindow(ms float64) error {
	if ms < minCompressorRMSWindowMs || ms > maxCompressorRMSWindowMs || !core.IsFinite(ms) {
		return fmt.Errorf("compressor rms window must be in [%f, %f]: %f",
			minCompressorRMSWindowMs, maxCompressorRMSWindowMs, ms)
	}

	c.rmsWindowMs = ms
	c.updateTimeConstants()

	return nil
}

// SetPeakBlend sets the detector weighting in [0, 1]: 1 is pure peak,
// 0 is pure RMS.
func (c *Compressor) SetPeakBlend(blend float64) error {
	if blend < 0 || blend > 1 || !core.IsFinite(blend) {
		return fmt.Errorf("compressor peak blend must be in [0, 1]: %f", blend)
	}

	c.peakBlend = blend

	return nil
}

// SetMakeupGain sets post-reduction makeup gain in dB.
func (c *Compressor) SetMakeupGain(dB float64) error {
	if !core.IsFinite(dB) {
		return fmt.Errorf("compressor makeup gain must be finite: %f", dB)
	}

	c.makeupGainDB = dB
	c.makeupGainLin = mathPower10(dB / 20.0)

	return nil
}

// SetSampleRate updates sample rate and recalculates time constants.
func (c *Compressor) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return fmt.Errorf("compressor sample rate must be positive and finite: %f", sampleRate)
	}

	c.sampleRate = sampleRate
	c.updateTimeConstants()

	return nil
}

// Threshold returns the current threshold in dB.
func (c *Compressor) Threshold() float64 { return c.thresholdDB }

// Ratio returns the current compression ratio.
func (c *Compressor) Ratio() float64 { return c.ratio }

// Knee returns the current knee width in dB.
func (c *Compressor) Knee() float64 { return c.kneeDB }

// Attack returns the current attack time in milliseconds.
func (c *Compressor) Attack() float64 { return c.attackMs }

// Release returns the current release time in milliseconds.
func (c *Compressor) Release() float64 { return c.releaseMs }

// RMSWindow returns the RMS detector time constant in milliseconds.
func (c *Compressor) RMSWindow() float64 { return c.rmsWindowMs }

// PeakBlend returns the detector weighting.
func (c *Compressor) PeakBlend() float64 { return c.peakBlend }

// MakeupGain returns the current makeup gain in dB.
func (c *Compressor) MakeupGain() float64 { return c.makeupGainDB }

// SampleRate returns the current sample rate in Hz.
func (c *Compressor) SampleRate() float64 { return c.sampleRate }

// ProcessSample processes one sample through the compressor.
func (c *Compressor) ProcessSample(input float64) float64 {
	inputLevel := math.Abs(input)

	c.meanSquare += (input*input - c.meanSquare) * c.rmsCoeff
	level := c.peakBlend*inputLevel + (1-c.peakBlend)*mathSqrt(c.meanSquare)

	if level > c.envelope {
		c.envelope += (level - c.envelope) * c.attackCoeff
	} else {
		c.envelope = level + (c.envelope-level)*c.releaseCoeff
	}

	gain := c.calculateGain(c.envelope)
	output := input * gain * c.makeupGainLin

	c.updateMetrics(inputLevel, math.Abs(output), gain)

	return output
}

// ProcessInPlace applies compression to buf in place.
func (c *Compressor) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = c.ProcessSample(buf[i])
	}

	c.envelope = core.FlushDenormals(c.envelope)
	c.meanSquare = core.FlushDenormals(c.meanSquare)
}

// CalculateOutputLevel computes the steady-state output level for a given
// input magnitude. This allows visualizing the compression curve.
func (c *Compressor) CalculateOutputLevel(inputMagnitude float64) float64 {
	inputMagnitude = math.Abs(inputMagnitude)
	return inputMagnitude * c.calculateGain(inputMagnitude) * c.makeupGainLin
}

// Reset clears detector state and metrics.
func (c *Compressor) Reset() {
	c.envelope = 0
	c.meanSquare = 0
	c.ResetMetrics()
}

// GetMetrics returns current metering values.
func (c *Compressor) GetMetrics() CompressorMetrics {
	return c.metrics
}

// ResetMetrics clears metering state.
func (c *Compressor) ResetMetrics() {
	c.metrics = CompressorMetrics{
		GainReduction: 1.0,
	}
}

func (c *Compressor) updateCoefficients() {
	c.updateGainComputer()
	c.makeupGainLin = mathPower10(c.makeupGainDB / 20.0)
	c.updateTimeConstants()
}

func (c *Compressor) updateGainComputer() {
	c.thresholdLog2 = c.thresholdDB * log2Of10Div20
	c.kneeWidthLog2 = c.kneeDB * log2Of10Div20

	if c.kneeDB > 0 {
		c.invKneeWidthLog2 = 1.0 / c.kneeWidthLog2
	} else {
		c.invKneeWidthLog2 = 0
	}
}

// updateTimeConstants recalculates attack, release and RMS coefficients.
func (c *Compressor) updateTimeConstants() {
	// Attack: 1 - exp(-ln2 / (attack_sec * sample_rate))
	c.attackCoeff = 1.0 - math.Exp(-math.Ln2/(c.attackMs*0.001*c.sampleRate))

	// Release: exp(-ln2 / (release_sec * sample_rate))
	c.releaseCoeff = math.Exp(-math.Ln2 / (c.releaseMs * 0.001 * c.sampleRate))

	c.rmsCoeff = 1.0 - math.Exp(-1/(c.rmsWindowMs*0.001*c.sampleRate))
}

// calculateGain computes the gain multiplier using a log2-domain soft knee:
// below the knee the gain is 1, inside it the overshoot is smoothed
// quadratically, above it the full ratio applies.
func (c *Compressor) calculateGain(level float64) float64 {
	if level <= 0 || c.ratio <= 1 {
		return 1.0
	}

	overshoot := mathLog2(level) - c.thresholdLog2

	var effectiveOvershoot float64

	if c.kneeDB <= 0 {
		if overshoot <= 0 {
			return 1.0
		}

		effectiveOvershoot = overshoot
	} else {
		halfWidth := c.kneeWidthLog2 * 0.5

		switch {
		case overshoot < -halfWidth:
			return 1.0
		case overshoot > halfWidth:
			effectiveOvershoot = overshoot
		default:
			scratch := overshoot + halfWidth
			effectiveOvershoot = scratch * scratch * 0.5 * c.invKneeWidthLog2
		}
	}

	gainLog2 := -effectiveOvershoot * (1.0 - 1.0/c.ratio)

	return math.Min(1.0, mathPower2(gainLog2))
}

func (c *Compressor) updateMetrics(inputLevel, outputLevel, gain float64) {
	if inputLevel > c.metrics.InputPeak {
		c.metrics.InputPeak = inputLevel
	}

	if outputLevel > c.metrics.OutputPeak {
		c.metrics.OutputPeak = outputLevel
	}

	if gain < c.metrics.GainReduction {
		c.metrics.GainReduction = gain
	}
}
