package control

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/gbraad-music/samplecrate-sub003/dsp/effectchain"
)

// NudgeStep is the parameter change of one key press.
const NudgeStep = 0.05

// KeyAction is what a key does: nudge a parameter, toggle a stage, request
// a reset or quit.
type KeyAction struct {
	Param  effectchain.ParamID
	Delta  float32
	Stage  effectchain.Stage
	Toggle bool
	Reset  bool
	Quit   bool
}

// Keymap binds single key bytes to actions.
type Keymap map[byte]KeyAction

// DefaultKeymap binds 1-7 to the stage toggles, lower/upper case letter
// pairs to parameter down/up nudges, 0 to reset and q to quit.
func DefaultKeymap() Keymap {
	k := Keymap{
		'0': {Reset: true},
		'q': {Quit: true},
	}

	for s := range effectchain.NumStages {
		k['1'+byte(s)] = KeyAction{Stage: s, Toggle: true}
	}

	nudges := []struct {
		key byte
		id  effectchain.ParamID
	}{
		{'d', effectchain.DistortionDrive},
		{'c', effectchain.FilterCutoff},
		{'r', effectchain.FilterResonance},
		{'l', effectchain.EQLow},
		{'i', effectchain.EQMid},
		{'h', effectchain.EQHigh},
		{'x', effectchain.CompressorThreshold},
		{'k', effectchain.CompressorRatio},
		{'p', effectchain.PhaserRate},
		{'e', effectchain.PhaserDepth},
		{'o', effectchain.ReverbRoomSize},
		{'m', effectchain.ReverbMix},
		{'t', effectchain.DelayTime},
		{'f', effectchain.DelayFeedback},
		{'w', effectchain.DelayMix},
	}

	for _, n := range nudges {
		k[n.key] = KeyAction{Param: n.id, Delta: -NudgeStep}
		k[n.key-'a'+'A'] = KeyAction{Param: n.id, Delta: NudgeStep}
	}

	return k
}

// Apply performs the action bound to key on t. It returns a short status
// line describing the change, whether the key was bound, and whether it
// asked to quit.
func (k Keymap) Apply(t Target, key byte) (status string, ok, quit bool) {
	a, ok := k[key]
	if !ok {
		return "", false, false
	}

	switch {
	case a.Quit:
		return "quit", true, true
	case a.Reset:
		t.RequestReset()
		return "reset", true, false
	case a.Toggle:
		on := !t.Enabled(a.Stage)
		t.SetEnabled(a.Stage, on)

		state := "off"
		if on {
			state = "on"
		}

		return fmt.Sprintf("%s %s", a.Stage, state), true, false
	default:
		t.SetParam(a.Param, t.Param(a.Param)+a.Delta)
		v := t.Param(a.Param)

		return fmt.Sprintf("%s %.2f (%s)", a.Param, v, effectchain.FormatParam(a.Param, v)), true, false
	}
}

// Keyboard feeds key presses from a reader into a Keymap.
type Keyboard struct {
	Keymap Keymap
	Target Target
	// OnStatus receives the status line of every bound key.
	OnStatus func(string)
}

// Run dispatches bytes from r until q is pressed, r is exhausted or ctx
// ends. The read goroutine may outlive Run while blocked on r.
func (kb *Keyboard) Run(ctx context.Context, r io.Reader) error {
	keys := make(chan byte)
	errc := make(chan error, 1)
	done := make(chan struct{})

	defer close(done)

	go func() {
		buf := make([]byte, 1)

		for {
			n, err := r.Read(buf)
			if n > 0 {
				select {
				case keys <- buf[0]:
				case <-done:
					return
				}
			}

			if err != nil {
				errc <- err
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errc:
			if errors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("control: read keys: %w", err)
		case key := <-keys:
			status, ok, quit := kb.Keymap.Apply(kb.Target, key)
			if ok && kb.OnStatus != nil {
				kb.OnStatus(status)
			}

			if quit {
				return nil
			}
		}
	}
}

// MakeRaw puts the terminal on fd into raw mode and returns a function that
// restores it. If fd is not a terminal nothing changes.
func MakeRaw(fd int) (restore func() error, err error) {
	if !term.IsTerminal(fd) {
		return func() error { return nil }, nil
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("control: raw mode: %w", err)
	}

	return func() error { return term.Restore(fd, state) }, nil
}
