// Package effects provides the per-sample effect kernels of the samplecrate
// effects chain.
//
// Subpackages:
//   - github.com/gbraad-music/samplecrate-sub003/dsp/effects/dynamics
//   - github.com/gbraad-music/samplecrate-sub003/dsp/effects/modulation
//
// Effects in this package:
//   - Distortion: Pre-emphasized tanh saturation with envelope matching and
//     a drive-tracking tone low-pass.
//   - Reverb: Eight damped combs into four allpass diffusers, one instance
//     per channel.
//   - Echo: Stereo single-tap feedback delay with a shared write cursor.
//
// Kernels never allocate after construction. Real-time setters clamp their
// inputs rather than returning errors.
package effects
