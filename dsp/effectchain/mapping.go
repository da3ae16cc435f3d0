package effectchain

import (
	"fmt"
	"math"

	"github.com/gbraad-music/samplecrate-sub003/dsp/core"
	"github.com/gbraad-music/samplecrate-sub003/dsp/effects"
	"github.com/gbraad-music/samplecrate-sub003/dsp/effects/modulation"
	"github.com/gbraad-music/samplecrate-sub003/dsp/filter/eq"
)

// Normalized-to-working-unit curves. Exponential curves are used wherever
// the ear judges ratios (frequency, time) so the control feels even.

const (
	distortionMaxGain = 49.0

	filterMinHz     = 20.0
	filterSpan      = 1000.0
	filterMinQ      = 0.5
	filterQSpan     = 11.5
	thresholdMinDB  = -60.0
	ratioSpan       = 9.0
	attackMinMs     = 0.1
	attackSpan      = 1000.0
	releaseMinMs    = 10.0
	releaseSpan     = 200.0
	makeupMaxLinear = 3.0

	phaserMaxRateHz   = 10.0
	phaserMaxFeedback = 0.9
	phaserMix         = 0.5

	reverbMinFeedback  = 0.7
	reverbFeedbackSpan = 0.28
	reverbMaxDamp      = 0.4

	delayMaxMs       = 1000.0
	delayMaxFeedback = 0.95
)

func distortionDrive(v float64) float64 { return 1 + distortionMaxGain*v }

func filterCutoffHz(v float64) float64 { return filterMinHz * math.Pow(filterSpan, v) }

func filterQ(v float64) float64 { return filterMinQ + filterQSpan*v }

func eqGainDB(v float64) float64 { return (v - 0.5) * 2 * eq.MaxGainDB }

func compressorThresholdDB(v float64) float64 { return thresholdMinDB * (1 - v) }

func compressorRatio(v float64) float64 { return 1 + ratioSpan*v }

func compressorAttackMs(v float64) float64 { return attackMinMs * math.Pow(attackSpan, v) }

func compressorReleaseMs(v float64) float64 { return releaseMinMs * math.Pow(releaseSpan, v) }

func compressorMakeupDB(v float64) float64 { return core.LinearToDB(1 + makeupMaxLinear*v) }

func phaserRateHz(v float64) float64 { return phaserMaxRateHz * v * v }

func phaserDepthOctaves(v float64) float64 { return modulation.MaxPhaserDepthOctaves * v }

func phaserFeedback(v float64) float64 { return phaserMaxFeedback * v }

func reverbFeedback(v float64) float64 { return reverbMinFeedback + reverbFeedbackSpan*v }

func reverbDamp(v float64) float64 { return reverbMaxDamp * v }

// delayOffsetFrames maps delay.time to a read offset in [1, EchoCapacity-1].
func delayOffsetFrames(v, sampleRate float64) int {
	return min(effects.EchoCapacity-1, max(1, core.MsToSamples(v*delayMaxMs, sampleRate)))
}

func delayFeedback(v float64) float64 { return delayMaxFeedback * v }

// FormatParam renders v for id in working units, for display.
func FormatParam(id ParamID, v float32) string {
	x := float64(core.ClampUnit(v))

	switch id {
	case DistortionDrive:
		return fmt.Sprintf("%.1fx", distortionDrive(x))
	case FilterCutoff:
		return fmt.Sprintf("%.0f Hz", filterCutoffHz(x))
	case FilterResonance:
		return fmt.Sprintf("Q %.2f", filterQ(x))
	case EQLow, EQMid, EQHigh:
		return fmt.Sprintf("%+.1f dB", eqGainDB(x))
	case CompressorThreshold:
		return fmt.Sprintf("%.1f dB", compressorThresholdDB(x))
	case CompressorRatio:
		return fmt.Sprintf("%.1f:1", compressorRatio(x))
	case CompressorAttack:
		return fmt.Sprintf("%.1f ms", compressorAttackMs(x))
	case CompressorRelease:
		return fmt.Sprintf("%.0f ms", compressorReleaseMs(x))
	case CompressorMakeup:
		return fmt.Sprintf("%+.1f dB", compressorMakeupDB(x))
	case PhaserRate:
		return fmt.Sprintf("%.2f Hz", phaserRateHz(x))
	case PhaserDepth:
		return fmt.Sprintf("±%.2f oct", phaserDepthOctaves(x))
	case PhaserFeedback:
		return fmt.Sprintf("%.2f", phaserFeedback(x))
	case ReverbRoomSize:
		return fmt.Sprintf("fb %.3f", reverbFeedback(x))
	case ReverbDamping:
		return fmt.Sprintf("damp %.2f", reverbDamp(x))
	case DelayTime:
		return fmt.Sprintf("%.0f ms", x*delayMaxMs)
	case DelayFeedback:
		return fmt.Sprintf("%.2f", delayFeedback(x))
	case DistortionMix, ReverbMix, DelayMix:
		return fmt.Sprintf("%.0f%% wet", 100*x)
	default:
		return fmt.Sprintf("%.3f", x)
	}
}
