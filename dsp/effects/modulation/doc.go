// Package modulation provides the LFO-driven stages of the effects chain.
//
// Phaser is a stereo four-stage allpass cascade with feedback whose break
// frequency is swept by a single LFO shared by both channels.
package modulation
