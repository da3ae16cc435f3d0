package control

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gbraad-music/samplecrate-sub003/dsp/effectchain"
)

func TestDefaultKeymapApply(t *testing.T) {
	c := newChain(t)
	k := DefaultKeymap()

	status, ok, quit := k.Apply(c, 'T')
	if !ok || quit {
		t.Fatalf("T: ok=%v quit=%v", ok, quit)
	}

	if want := effectchain.DelayTime.Default() + NudgeStep; !near(c.DelayTime(), want) {
		t.Fatalf("delay time = %g, want %g", c.DelayTime(), want)
	}

	if !strings.HasPrefix(status, "delay.time") {
		t.Fatalf("status = %q", status)
	}

	k.Apply(c, 't')
	k.Apply(c, 't')

	if want := effectchain.DelayTime.Default() - NudgeStep; !near(c.DelayTime(), want) {
		t.Fatalf("delay time = %g, want %g", c.DelayTime(), want)
	}

	status, _, _ = k.Apply(c, '5')
	if !c.PhaserEnabled() || status != "phaser on" {
		t.Fatalf("5 toggled to %v (%q)", c.PhaserEnabled(), status)
	}

	k.Apply(c, '5')

	if c.PhaserEnabled() {
		t.Fatal("second 5 should bypass the phaser")
	}

	if _, ok, _ := k.Apply(c, '?'); ok {
		t.Fatal("unbound key reported as handled")
	}

	if _, _, quit := k.Apply(c, 'q'); !quit {
		t.Fatal("q should quit")
	}
}

func TestKeymapNudgeClamps(t *testing.T) {
	c := newChain(t)
	k := DefaultKeymap()

	for range 40 {
		k.Apply(c, 'W')
	}

	if c.DelayMix() != 1 {
		t.Fatalf("delay mix = %g, want 1", c.DelayMix())
	}

	for range 40 {
		k.Apply(c, 'w')
	}

	if c.DelayMix() != 0 {
		t.Fatalf("delay mix = %g, want 0", c.DelayMix())
	}
}

func TestKeyboardRunStopsOnQuit(t *testing.T) {
	c := newChain(t)

	var statuses []string

	kb := &Keyboard{
		Keymap:   DefaultKeymap(),
		Target:   c,
		OnStatus: func(s string) { statuses = append(statuses, s) },
	}

	err := kb.Run(context.Background(), strings.NewReader("DDD1?q2"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if want := effectchain.DistortionDrive.Default() + 3*NudgeStep; !near(c.DistortionDrive(), want) {
		t.Fatalf("drive = %g, want %g", c.DistortionDrive(), want)
	}

	if !c.DistortionEnabled() || c.FilterEnabled() {
		t.Fatal("keys after q must not be applied")
	}

	if len(statuses) != 5 || statuses[4] != "quit" {
		t.Fatalf("statuses = %q", statuses)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("tty gone") }

func TestKeyboardRunEndsOnEOFAndError(t *testing.T) {
	c := newChain(t)
	kb := &Keyboard{Keymap: DefaultKeymap(), Target: c}

	if err := kb.Run(context.Background(), strings.NewReader("1")); err != nil {
		t.Fatalf("Run() at EOF error = %v", err)
	}

	if err := kb.Run(context.Background(), failingReader{}); err == nil {
		t.Fatal("Run() should report read errors")
	}
}

func TestMakeRawOnNonTerminal(t *testing.T) {
	restore, err := MakeRaw(-1)
	if err != nil {
		t.Fatalf("MakeRaw() error = %v", err)
	}

	if err := restore(); err != nil {
		t.Fatalf("restore() error = %v", err)
	}
}
