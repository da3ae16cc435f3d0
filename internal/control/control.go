// Package control drives an effects chain from outside the audio path:
// MIDI CC maps, JSON presets (with hot reload), key bindings and Lua
// automation scripts. Everything here only touches the chain's lock-free
// parameter surface and is safe to run next to the audio goroutine.
package control

import (
	"errors"

	"github.com/gbraad-music/samplecrate-sub003/dsp/effectchain"
)

var (
	// ErrUnknownParam is returned for a parameter name the chain does not have.
	ErrUnknownParam = errors.New("control: unknown parameter")
	// ErrUnknownStage is returned for a stage name the chain does not have.
	ErrUnknownStage = errors.New("control: unknown stage")
)

// Target is the parameter surface of an effects chain.
type Target interface {
	SetParam(id effectchain.ParamID, v float32)
	Param(id effectchain.ParamID) float32
	SetEnabled(s effectchain.Stage, on bool)
	Enabled(s effectchain.Stage) bool
	RequestReset()
}

var _ Target = (*effectchain.Chain)(nil)
