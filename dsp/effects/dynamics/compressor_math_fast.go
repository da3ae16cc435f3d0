//go:build fastmath

package dynamics

import (
	"math"

	"github.com/meko-christian/algo-approx"
)

// Approximate per-sample math for the fastmath build. Accuracy is well
// inside a tenth of a dB over the detector's working range.

func mathLog2(x float64) float64 { return approx.FastLog(x) / math.Ln2 }

func mathPower2(x float64) float64 { return approx.FastExp(x * math.Ln2) }

// Makeup gain is only recomputed on parameter changes.
func mathPower10(x float64) float64 { return math.Pow(10, x) }

func mathSqrt(x float64) float64 { return approx.FastSqrt(x) }
