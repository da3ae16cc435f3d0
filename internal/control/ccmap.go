package control

import (
	"github.com/gbraad-music/samplecrate-sub003/dsp/effectchain"
)

const (
	maxCCValue = 127
	// ccToggleThreshold is the value at and above which a stage CC enables.
	ccToggleThreshold = 64

	defaultFirstParamCC = 20
	defaultFirstStageCC = 102
)

// CCMap routes MIDI continuous controllers to chain parameters and stage
// enables.
type CCMap struct {
	Params map[uint8]effectchain.ParamID
	Stages map[uint8]effectchain.Stage
}

// DefaultCCMap assigns the parameters, in chain order, to CC 20 onward and
// the stage enables to CC 102 onward.
func DefaultCCMap() CCMap {
	m := CCMap{
		Params: make(map[uint8]effectchain.ParamID, int(effectchain.NumParams)),
		Stages: make(map[uint8]effectchain.Stage, int(effectchain.NumStages)),
	}

	for id := range effectchain.NumParams {
		m.Params[uint8(defaultFirstParamCC+int(id))] = id
	}

	for s := range effectchain.NumStages {
		m.Stages[uint8(defaultFirstStageCC+int(s))] = s
	}

	return m
}

// Apply handles one controller change and reports whether cc is mapped.
// Parameter values scale linearly from 0..127 to 0..1.
func (m CCMap) Apply(t Target, cc, value uint8) bool {
	if id, ok := m.Params[cc]; ok {
		t.SetParam(id, float32(min(value, maxCCValue))/maxCCValue)
		return true
	}

	if s, ok := m.Stages[cc]; ok {
		t.SetEnabled(s, value >= ccToggleThreshold)
		return true
	}

	return false
}
