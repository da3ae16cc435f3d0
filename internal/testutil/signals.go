package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate

	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))

	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}

	return out
}

// StereoNoisePCM16 returns frames of interleaved stereo full-scale white
// noise with independent left and right channels.
func StereoNoisePCM16(seed int64, frames int) []int16 {
	out := make([]int16, 2*frames)
	rng := rand.New(rand.NewSource(seed))

	for i := range out {
		out[i] = int16(rng.Intn(math.MaxUint16+1) + math.MinInt16)
	}

	return out
}

// StereoSinePCM16 returns frames of interleaved stereo sine at the given
// amplitude (1 = full scale), identical on both channels.
func StereoSinePCM16(freqHz, sampleRate, amplitude float64, frames int) []int16 {
	out := make([]int16, 2*frames)
	step := 2 * math.Pi * freqHz / sampleRate

	for i := 0; i < frames; i++ {
		v := int16(math.Round(amplitude * math.MaxInt16 * math.Sin(step*float64(i))))
		out[2*i] = v
		out[2*i+1] = v
	}

	return out
}

// StereoImpulsePCM16 returns frames of silence with a sample of value v at
// frame pos on both channels.
func StereoImpulsePCM16(frames, pos int, v int16) []int16 {
	out := make([]int16, 2*frames)
	if pos >= 0 && pos < frames {
		out[2*pos] = v
		out[2*pos+1] = v
	}

	return out
}

// ChannelRMS returns the RMS of one channel (0 = left, 1 = right) of an
// interleaved stereo buffer, normalized to full scale.
func ChannelRMS(buf []int16, channel int) float64 {
	frames := len(buf) / 2
	if frames == 0 {
		return 0
	}

	var sum float64
	for i := 0; i < frames; i++ {
		v := float64(buf[2*i+channel]) / 32768
		sum += v * v
	}

	return math.Sqrt(sum / float64(frames))
}
