// Package dynamics provides the compressor stage of the effects chain.
//
// Compressor blends a peak and an RMS detector, smooths the result with
// attack/release ballistics and computes gain in the log2 domain with a
// soft knee. Build with the fastmath tag to use algo-approx for the per-sample
// log2, exp2 and sqrt calls.
package dynamics
