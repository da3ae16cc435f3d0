// Package design provides RBJ-style biquad coefficient designers for the
// equalizer sections of the effects chain.
//
// Designers never fail: a frequency at or above the Nyquist guard band is
// pulled down to [MaxFrequencyRatio]·sampleRate, and an invalid sample rate
// yields identity coefficients rather than silence.
package design
