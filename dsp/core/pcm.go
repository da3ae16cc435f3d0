package core

import "math"

const (
	// PCM16Scale maps full-scale signed 16-bit PCM to [-1, 1).
	PCM16Scale = 32768.0
	// InvPCM16Scale is the reciprocal of PCM16Scale. Both are powers of two,
	// so a round trip through float64 is exact.
	InvPCM16Scale = 1.0 / PCM16Scale
)

// SaturatePCM16 rounds x (already in PCM16 units) to the nearest integer
// and saturates it to the int16 range.
func SaturatePCM16(x float64) int16 {
	if x != x {
		return 0
	}

	r := math.RoundToEven(x)
	if r >= math.MaxInt16 {
		return math.MaxInt16
	}

	if r <= math.MinInt16 {
		return math.MinInt16
	}

	return int16(r)
}

// DeinterleaveStereo splits frames of interleaved L/R PCM into left and right
// without scaling. left and right must hold at least frames values.
func DeinterleaveStereo(left, right []float64, src []int16, frames int) {
	_ = left[frames-1]
	_ = right[frames-1]
	_ = src[2*frames-1]

	for i := 0; i < frames; i++ {
		left[i] = float64(src[2*i])
		right[i] = float64(src[2*i+1])
	}
}

// InterleaveStereo saturates left and right back into interleaved PCM.
func InterleaveStereo(dst []int16, left, right []float64, frames int) {
	_ = left[frames-1]
	_ = right[frames-1]
	_ = dst[2*frames-1]

	for i := 0; i < frames; i++ {
		dst[2*i] = SaturatePCM16(left[i])
		dst[2*i+1] = SaturatePCM16(right[i])
	}
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}
