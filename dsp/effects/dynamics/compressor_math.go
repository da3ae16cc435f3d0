//go:build !fastmath

package dynamics

import "math"

// Exact per-sample math used by the detector and gain computer.

func mathLog2(x float64) float64 { return math.Log2(x) }

func mathPower2(x float64) float64 { return math.Exp2(x) }

func mathPower10(x float64) float64 { return math.Pow(10, x) }

func mathSqrt(x float64) float64 { return math.Sqrt(x) }
