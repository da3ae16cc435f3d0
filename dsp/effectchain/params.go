package effectchain

import (
	"math"
	"strings"
	"sync/atomic"

	"github.com/gbraad-music/samplecrate-sub003/dsp/core"
)

// ParamID identifies one normalized chain parameter.
type ParamID int

const (
	DistortionDrive ParamID = iota
	DistortionMix
	FilterCutoff
	FilterResonance
	EQLow
	EQMid
	EQHigh
	CompressorThreshold
	CompressorRatio
	CompressorAttack
	CompressorRelease
	CompressorMakeup
	PhaserRate
	PhaserDepth
	PhaserFeedback
	ReverbRoomSize
	ReverbDamping
	ReverbMix
	DelayTime
	DelayFeedback
	DelayMix

	// NumParams is the number of chain parameters.
	NumParams
)

type paramInfo struct {
	name  string
	stage Stage
	def   float32
}

var paramTable = [NumParams]paramInfo{
	DistortionDrive:     {"distortion.drive", StageDistortion, 0.3},
	DistortionMix:       {"distortion.mix", StageDistortion, 0.5},
	FilterCutoff:        {"filter.cutoff", StageFilter, 1.0},
	FilterResonance:     {"filter.resonance", StageFilter, 0.0},
	EQLow:               {"eq.low", StageEQ, 0.5},
	EQMid:               {"eq.mid", StageEQ, 0.5},
	EQHigh:              {"eq.high", StageEQ, 0.5},
	CompressorThreshold: {"compressor.threshold", StageCompressor, 0.5},
	CompressorRatio:     {"compressor.ratio", StageCompressor, 0.3},
	CompressorAttack:    {"compressor.attack", StageCompressor, 0.3},
	CompressorRelease:   {"compressor.release", StageCompressor, 0.4},
	CompressorMakeup:    {"compressor.makeup", StageCompressor, 0.0},
	PhaserRate:          {"phaser.rate", StagePhaser, 0.3},
	PhaserDepth:         {"phaser.depth", StagePhaser, 0.5},
	PhaserFeedback:      {"phaser.feedback", StagePhaser, 0.3},
	ReverbRoomSize:      {"reverb.room_size", StageReverb, 0.5},
	ReverbDamping:       {"reverb.damping", StageReverb, 0.5},
	ReverbMix:           {"reverb.mix", StageReverb, 0.3},
	DelayTime:           {"delay.time", StageDelay, 0.3},
	DelayFeedback:       {"delay.feedback", StageDelay, 0.3},
	DelayMix:            {"delay.mix", StageDelay, 0.3},
}

// Valid reports whether id names a parameter.
func (id ParamID) Valid() bool { return id >= 0 && id < NumParams }

// String returns the dotted parameter name, e.g. "delay.time".
func (id ParamID) String() string {
	if !id.Valid() {
		return "invalid"
	}

	return paramTable[id].name
}

// Stage returns the stage the parameter belongs to.
func (id ParamID) Stage() Stage {
	if !id.Valid() {
		return -1
	}

	return paramTable[id].stage
}

// Default returns the value a new chain starts with.
func (id ParamID) Default() float32 {
	if !id.Valid() {
		return 0
	}

	return paramTable[id].def
}

// ParamByName looks up a parameter by its dotted name. Matching ignores case
// and surrounding space.
func ParamByName(name string) (ParamID, bool) {
	name = strings.ToLower(strings.TrimSpace(name))

	for id := range NumParams {
		if paramTable[id].name == name {
			return id, true
		}
	}

	return -1, false
}

// Params is a snapshot of every normalized parameter, taken once per block
// so that a stage never sees a value change mid-block.
type Params [NumParams]float32

// Get returns the parameter as float64 for use in stage mappings.
func (p *Params) Get(id ParamID) float64 { return float64(p[id]) }

// param is a lock-free float32 cell: one writer and one reader can access it
// concurrently without tearing.
type param struct {
	bits atomic.Uint32
}

func (p *param) store(v float32) {
	p.bits.Store(math.Float32bits(core.ClampUnit(v)))
}

func (p *param) load() float32 {
	return math.Float32frombits(p.bits.Load())
}
