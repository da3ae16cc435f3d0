// Package resonant provides a 2-pole resonant low-pass filter built on the
// trapezoidal-integrated state-variable topology.
//
// The topology keeps one band-pass and one low-pass register per instance and
// is unconditionally stable for any positive cutoff and damping, so the only
// bound that matters is the resonance ceiling [MaxQ], which keeps the filter
// short of self-oscillation at every sample rate.
package resonant
