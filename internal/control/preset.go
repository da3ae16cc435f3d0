package control

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gbraad-music/samplecrate-sub003/dsp/effectchain"
)

// Preset is a named set of stage enables and normalized parameter values.
// Entries that are absent leave the chain unchanged when applied.
type Preset struct {
	Stages map[string]bool    `json:"stages,omitempty"`
	Params map[string]float32 `json:"params,omitempty"`
}

// ParsePreset decodes a JSON preset and checks every name.
func ParsePreset(data []byte) (Preset, error) {
	var p Preset

	err := json.Unmarshal(data, &p)
	if err != nil {
		return Preset{}, fmt.Errorf("control: parse preset: %w", err)
	}

	err = p.Validate()
	if err != nil {
		return Preset{}, err
	}

	return p, nil
}

// LoadPreset reads and parses a preset file.
func LoadPreset(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("control: read preset: %w", err)
	}

	p, err := ParsePreset(data)
	if err != nil {
		return Preset{}, fmt.Errorf("%s: %w", path, err)
	}

	return p, nil
}

// Validate reports the first unknown stage or parameter name.
func (p Preset) Validate() error {
	for name := range p.Stages {
		if _, ok := effectchain.StageByName(name); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownStage, name)
		}
	}

	for name := range p.Params {
		if _, ok := effectchain.ParamByName(name); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownParam, name)
		}
	}

	return nil
}

// Apply writes the preset into t. Nothing is written if a name is unknown.
func (p Preset) Apply(t Target) error {
	err := p.Validate()
	if err != nil {
		return err
	}

	for name, v := range p.Params {
		id, _ := effectchain.ParamByName(name)
		t.SetParam(id, v)
	}

	for name, on := range p.Stages {
		s, _ := effectchain.StageByName(name)
		t.SetEnabled(s, on)
	}

	return nil
}

// Capture records every stage enable and parameter of t.
func Capture(t Target) Preset {
	p := Preset{
		Stages: make(map[string]bool, int(effectchain.NumStages)),
		Params: make(map[string]float32, int(effectchain.NumParams)),
	}

	for s := range effectchain.NumStages {
		p.Stages[s.String()] = t.Enabled(s)
	}

	for id := range effectchain.NumParams {
		p.Params[id.String()] = t.Param(id)
	}

	return p
}

// SavePreset writes the full state of t to path as indented JSON.
func SavePreset(path string, t Target) error {
	data, err := json.MarshalIndent(Capture(t), "", "  ")
	if err != nil {
		return fmt.Errorf("control: encode preset: %w", err)
	}

	err = os.WriteFile(path, append(data, '\n'), 0o644)
	if err != nil {
		return fmt.Errorf("control: write preset: %w", err)
	}

	return nil
}
