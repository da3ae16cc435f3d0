package effectchain

import "strings"

// Stage identifies one of the seven fixed chain positions. Stages run in
// ascending order.
type Stage int

const (
	StageDistortion Stage = iota
	StageFilter
	StageEQ
	StageCompressor
	StagePhaser
	StageReverb
	StageDelay

	// NumStages is the number of chain stages.
	NumStages
)

var stageNames = [NumStages]string{
	"distortion", "filter", "eq", "compressor", "phaser", "reverb", "delay",
}

// Valid reports whether s names a stage.
func (s Stage) Valid() bool { return s >= 0 && s < NumStages }

// String returns the stage name.
func (s Stage) String() string {
	if !s.Valid() {
		return "invalid"
	}

	return stageNames[s]
}

// Params returns the parameters owned by s in declaration order.
func (s Stage) Params() []ParamID {
	var ids []ParamID

	for id := range NumParams {
		if paramTable[id].stage == s {
			ids = append(ids, id)
		}
	}

	return ids
}

// StageByName looks up a stage by name, ignoring case and surrounding space.
func StageByName(name string) (Stage, bool) {
	name = strings.ToLower(strings.TrimSpace(name))

	for s, n := range stageNames {
		if n == name {
			return Stage(s), true
		}
	}

	return -1, false
}
