package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gbraad-music/samplecrate-sub003/dsp/effectchain"
	"github.com/gbraad-music/samplecrate-sub003/internal/control"
)

func defaultOptions() options {
	return options{
		rate:    48000,
		seconds: 0.5,
		fftSize: 4096,
		amp:     0.25,
		shape:   effectchain.DefaultCompressorShape(),
	}
}

func TestRunPrintsResponse(t *testing.T) {
	opts := defaultOptions()
	opts.enable = "eq"
	opts.set = "eq.low=1"

	var out bytes.Buffer

	err := run(&out, opts)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	text := out.String()
	for _, want := range []string{"Freq [Hz]", "31.5", "16000", "left", "right", "RT60"} {
		if !strings.Contains(text, want) {
			t.Errorf("output lacks %q:\n%s", want, text)
		}
	}
}

func TestRunMeasuresTone(t *testing.T) {
	opts := defaultOptions()
	opts.toneHz = 1000

	var out bytes.Buffer

	err := run(&out, opts)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "Tone 1000 Hz: left ") || !strings.Contains(text, "0.00 dB, right ") {
		t.Errorf("bypassed chain should report unity tone gain:\n%s", text)
	}
}

func TestRunPrintsCompressorCurve(t *testing.T) {
	opts := defaultOptions()
	opts.curve = true
	opts.shape.KneeDB = 0
	opts.set = "compressor.threshold=0.5,compressor.ratio=1"

	var out bytes.Buffer

	err := run(&out, opts)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	text := out.String()
	for _, want := range []string{"Compressor curve (knee 0 dB", "-60.0", "-60.00", "-27.00"} {
		if !strings.Contains(text, want) {
			t.Errorf("output lacks %q:\n%s", want, text)
		}
	}
}

func TestRunRejectsBadCompressorShape(t *testing.T) {
	opts := defaultOptions()
	opts.shape.PeakBlend = 3

	err := run(&bytes.Buffer{}, opts)
	if !errors.Is(err, effectchain.ErrInvalidOption) {
		t.Fatalf("run() error = %v, want ErrInvalidOption", err)
	}
}

func TestConfigure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.json")

	err := os.WriteFile(path, []byte(`{"stages": {"reverb": true}, "params": {"reverb.mix": 0.9}}`), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	c, err := effectchain.New()
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	opts := defaultOptions()
	opts.preset = path
	opts.enable = " delay , phaser"
	opts.set = "delay.time=0.5, reverb.mix=0.2"

	err = configure(c, opts)
	if err != nil {
		t.Fatalf("configure() error = %v", err)
	}

	if !c.ReverbEnabled() || !c.DelayEnabled() || !c.PhaserEnabled() || c.FilterEnabled() {
		t.Fatal("stages not enabled as requested")
	}

	if c.DelayTime() != 0.5 || c.ReverbMix() != 0.2 {
		t.Fatalf("overrides not applied: %g %g", c.DelayTime(), c.ReverbMix())
	}
}

func TestConfigureErrors(t *testing.T) {
	c, err := effectchain.New()
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	tests := []struct {
		name   string
		enable string
		set    string
		want   error
	}{
		{"unknown stage", "wah", "", control.ErrUnknownStage},
		{"unknown param", "", "wah.depth=1", control.ErrUnknownParam},
		{"missing value", "", "delay.time", nil},
		{"bad number", "", "delay.time=fast", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := defaultOptions()
			opts.enable = tt.enable
			opts.set = tt.set

			err := configure(c, opts)
			if err == nil {
				t.Fatal("configure() succeeded")
			}

			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPrintParams(t *testing.T) {
	var out bytes.Buffer

	err := printParams(&out)
	if err != nil {
		t.Fatalf("printParams() error = %v", err)
	}

	if lines := strings.Count(out.String(), "\n"); lines != int(effectchain.NumParams)+1 {
		t.Fatalf("printed %d lines", lines)
	}
}
