package control

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/gbraad-music/samplecrate-sub003/dsp/effectchain"
)

// Script is a Lua automation script bound to a chain. The script sees
// three globals:
//
//	set(name, value)   set a parameter by dotted name
//	get(name)          read a parameter
//	enable(stage, on)  enable or bypass a stage
//
// and may define tick(t), called by Tick with the elapsed time in seconds.
// A Script is not safe for concurrent use.
type Script struct {
	state  *lua.LState
	target Target
}

// LoadScript runs the Lua file at path against t.
func LoadScript(path string, t Target) (*Script, error) {
	s := newScript(t)

	err := s.state.DoFile(path)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("control: load script %s: %w", path, err)
	}

	return s, nil
}

// NewScript runs Lua source against t.
func NewScript(source string, t Target) (*Script, error) {
	s := newScript(t)

	err := s.state.DoString(source)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("control: load script: %w", err)
	}

	return s, nil
}

func newScript(t Target) *Script {
	s := &Script{
		state:  lua.NewState(),
		target: t,
	}

	s.state.SetGlobal("set", s.state.NewFunction(s.luaSet))
	s.state.SetGlobal("get", s.state.NewFunction(s.luaGet))
	s.state.SetGlobal("enable", s.state.NewFunction(s.luaEnable))

	return s
}

// Tick calls the script's tick(t) function if it defines one.
func (s *Script) Tick(seconds float64) error {
	fn := s.state.GetGlobal("tick")
	if fn.Type() != lua.LTFunction {
		return nil
	}

	err := s.state.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, lua.LNumber(seconds))
	if err != nil {
		return fmt.Errorf("control: script tick: %w", err)
	}

	return nil
}

// Close releases the Lua state.
func (s *Script) Close() {
	s.state.Close()
}

func (s *Script) luaSet(L *lua.LState) int {
	name := L.CheckString(1)
	v := L.CheckNumber(2)

	id, ok := effectchain.ParamByName(name)
	if !ok {
		L.ArgError(1, fmt.Sprintf("%v: %q", ErrUnknownParam, name))
		return 0
	}

	s.target.SetParam(id, float32(v))

	return 0
}

func (s *Script) luaGet(L *lua.LState) int {
	name := L.CheckString(1)

	id, ok := effectchain.ParamByName(name)
	if !ok {
		L.ArgError(1, fmt.Sprintf("%v: %q", ErrUnknownParam, name))
		return 0
	}

	L.Push(lua.LNumber(s.target.Param(id)))

	return 1
}

func (s *Script) luaEnable(L *lua.LState) int {
	name := L.CheckString(1)
	on := L.ToBool(2)

	st, ok := effectchain.StageByName(name)
	if !ok {
		L.ArgError(1, fmt.Sprintf("%v: %q", ErrUnknownStage, name))
		return 0
	}

	s.target.SetEnabled(st, on)

	return 0
}
