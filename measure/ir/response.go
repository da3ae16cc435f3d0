package ir

import (
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/cwbudde/algo-fft"
)

// Response is the magnitude response of an impulse response.
type Response struct {
	SampleRate float64
	// DB holds the magnitude in dB for bins 0..FFTSize/2.
	DB []float64
}

// MagnitudeResponse transforms ir (zero padded or truncated to fftSize, a
// power of two) and returns the magnitude of the non-negative bins.
func MagnitudeResponse(ir []float64, sampleRate float64, fftSize int) (Response, error) {
	if fftSize < 2 || bits.OnesCount(uint(fftSize)) != 1 {
		return Response{}, fmt.Errorf("ir: FFT size must be a power of two >= 2: %d", fftSize)
	}

	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return Response{}, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	in := make([]complex128, fftSize)
	for i, v := range ir[:min(len(ir), fftSize)] {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Response{}, fmt.Errorf("ir: FFT plan: %w", err)
	}

	out := make([]complex128, fftSize)

	err = plan.Forward(out, in)
	if err != nil {
		return Response{}, fmt.Errorf("ir: FFT: %w", err)
	}

	db := make([]float64, fftSize/2+1)
	for k := range db {
		mag := math.Hypot(real(out[k]), imag(out[k]))
		if mag <= 0 {
			db[k] = schroederFloorDB
			continue
		}

		db[k] = 20 * math.Log10(mag)
	}

	return Response{SampleRate: sampleRate, DB: db}, nil
}

// BinHz is the frequency spacing of the response bins.
func (r Response) BinHz() float64 {
	if len(r.DB) < 2 {
		return 0
	}

	return r.SampleRate / float64(2*(len(r.DB)-1))
}

// At returns the magnitude in dB of the bin nearest to freqHz.
func (r Response) At(freqHz float64) float64 {
	if len(r.DB) == 0 {
		return math.NaN()
	}

	k := int(math.Round(freqHz / r.BinHz()))

	return r.DB[max(0, min(k, len(r.DB)-1))]
}
