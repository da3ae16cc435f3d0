// Package biquad provides the second-order IIR section used by the
// equalizer stages of the effects chain.
//
// A [Section] runs Direct Form II Transposed with two float64 state
// registers. Coefficient design lives in dsp/filter/design.
package biquad
