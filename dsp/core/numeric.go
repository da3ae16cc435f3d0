package core

import "math"

const defaultEpsilon = 1e-12

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// ClampUnit limits a normalized control value to [0, 1].
// NaN maps to 0 so that a bad control message can never poison DSP state.
func ClampUnit(value float32) float32 {
	if value != value {
		return 0
	}

	if value < 0 {
		return 0
	}

	if value > 1 {
		return 1
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// ValidSampleRate reports whether sampleRate is usable for coefficient design.
func ValidSampleRate(sampleRate float64) bool {
	return sampleRate > 0 && IsFinite(sampleRate)
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// This can reduce denormal-related CPU slowdowns in hot DSP loops.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// MsToSamples converts a duration in milliseconds to a sample count at
// sampleRate, rounded to the nearest integer. Counts outside the int32
// range saturate; NaN yields 0.
func MsToSamples(ms, sampleRate float64) int {
	n := math.Round(ms * 0.001 * sampleRate)

	switch {
	case math.IsNaN(n):
		return 0
	case n >= math.MaxInt32:
		return math.MaxInt32
	case n <= math.MinInt32:
		return math.MinInt32
	}

	return int(n)
}

// OnePoleCoeff returns the smoothing coefficient of a one-pole follower
// that reaches half way to its target in ms milliseconds.
// The result lies in (0, 1]; a non-positive time yields 1 (no smoothing).
func OnePoleCoeff(ms, sampleRate float64) float64 {
	samples := ms * 0.001 * sampleRate
	if samples <= 0 || !IsFinite(samples) {
		return 1
	}

	return 1 - math.Exp(-math.Ln2/samples)
}
