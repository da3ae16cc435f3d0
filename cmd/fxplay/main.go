// Command fxplay plays a test signal or a raw PCM file through the effects
// chain and lets you tweak it live from the keyboard, a preset file that is
// reloaded on save, or a Lua automation script.
//
// Usage:
//
//	fxplay [flags]
//
// Examples:
//
//	fxplay -source tone -freq 220 -preset dub.json -watch
//	fxplay -source file -file loop.raw -loop -script sweep.lua
//
// Keys: 1-7 toggle stages, lower/upper case letters nudge parameters down
// and up, 0 resets the chain, q quits.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gbraad-music/samplecrate-sub003/dsp/effectchain"
	"github.com/gbraad-music/samplecrate-sub003/internal/audio"
	"github.com/gbraad-music/samplecrate-sub003/internal/control"
)

const scriptTick = 20 * time.Millisecond

type options struct {
	source  string
	file    string
	loop    bool
	freq    float64
	amp     float64
	rate    int
	buffer  time.Duration
	preset  string
	watch   bool
	script  string
	dither  bool
	shapeHz float64
	lsb     float64
}

func main() {
	var opts options

	flag.StringVar(&opts.source, "source", "tone", "signal source: tone, noise or file")
	flag.StringVar(&opts.file, "file", "", "raw s16le stereo PCM file for -source file")
	flag.BoolVar(&opts.loop, "loop", false, "loop the PCM file")
	flag.Float64Var(&opts.freq, "freq", 220, "tone frequency in Hz")
	flag.Float64Var(&opts.amp, "amp", 0.5, "source amplitude (full scale = 1)")
	flag.IntVar(&opts.rate, "rate", 48000, "output sample rate in Hz")
	flag.DurationVar(&opts.buffer, "buffer", audio.DefaultBufferSize, "device buffer latency")
	flag.StringVar(&opts.preset, "preset", "", "JSON preset to apply at start")
	flag.BoolVar(&opts.watch, "watch", false, "reload the preset whenever it is saved")
	flag.StringVar(&opts.script, "script", "", "Lua automation script")
	flag.BoolVar(&opts.dither, "dither", false, "dither when requantizing to 16 bit")
	flag.Float64Var(&opts.shapeHz, "shape", 0, "noise-shaped dither shelf corner in Hz (0 = off)")
	flag.Float64Var(&opts.lsb, "dither-lsb", 0, "dither amplitude in LSB (0 = default)")
	flag.Parse()

	err := run(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fxplay: %v\n", err)
		os.Exit(1)
	}
}

// chainOptions turns the dither flags into chain options. -shape and
// -dither-lsb imply -dither.
func chainOptions(opts options) []effectchain.Option {
	chainOpts := []effectchain.Option{effectchain.WithDither(opts.dither)}

	if opts.shapeHz > 0 {
		chainOpts = append(chainOpts, effectchain.WithDitherShaping(opts.shapeHz))
	}

	if opts.lsb != 0 {
		chainOpts = append(chainOpts, effectchain.WithDitherAmplitude(opts.lsb))
	}

	return chainOpts
}

func newSource(opts options) (audio.Source, func() error, error) {
	noop := func() error { return nil }

	switch opts.source {
	case "tone":
		s, err := audio.NewTone(opts.freq, opts.amp, float64(opts.rate))
		return s, noop, err
	case "noise":
		s, err := audio.NewNoise(uint64(time.Now().UnixNano()), opts.amp)
		return s, noop, err
	case "file":
		f, err := os.Open(opts.file)
		if err != nil {
			return nil, nil, err
		}

		s, err := audio.NewPCMReader(f, opts.loop)
		if err != nil {
			_ = f.Close()
			return nil, nil, err
		}

		return s, f.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown source %q", opts.source)
	}
}

func run(opts options) error {
	if opts.watch && opts.preset == "" {
		return errors.New("-watch needs -preset")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chain, err := effectchain.New(chainOptions(opts)...)
	if err != nil {
		return err
	}
	defer chain.Close()

	if opts.preset != "" {
		p, err := control.LoadPreset(opts.preset)
		if err != nil {
			return err
		}

		err = p.Apply(chain)
		if err != nil {
			return err
		}
	}

	src, closeSrc, err := newSource(opts)
	if err != nil {
		return err
	}
	defer closeSrc()

	renderer, err := audio.NewRenderer(chain, src, float64(opts.rate), effectchain.DefaultMaxBlockFrames)
	if err != nil {
		return err
	}

	player, err := audio.NewPlayer(renderer, opts.rate, opts.buffer)
	if err != nil {
		return err
	}
	defer player.Close()

	// Raw mode turns "\n" into a bare line feed.
	status := func(s string) { fmt.Fprintf(os.Stderr, "%s\r\n", s) }
	report := func(err error) { status("error: " + err.Error()) }

	if opts.watch {
		go func() {
			err := control.WatchPreset(ctx, opts.preset, chain, report)
			if err != nil {
				report(err)
			}
		}()
	}

	if opts.script != "" {
		script, err := control.LoadScript(opts.script, chain)
		if err != nil {
			return err
		}

		go runScript(ctx, script, report)
	}

	restore, err := control.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return err
	}
	defer restore()

	status("fxplay: 1-7 toggle stages, letters nudge parameters, 0 resets, q quits")
	player.Play()

	kb := &control.Keyboard{Keymap: control.DefaultKeymap(), Target: chain, OnStatus: status}

	err = kb.Run(ctx, os.Stdin)
	if err != nil {
		return err
	}

	if err := renderer.Err(); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	return nil
}

// runScript owns the Lua state: every call into it happens on this
// goroutine.
func runScript(ctx context.Context, s *control.Script, report func(error)) {
	defer s.Close()

	ticker := time.NewTicker(scriptTick)
	defer ticker.Stop()

	start := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			err := s.Tick(now.Sub(start).Seconds())
			if err != nil {
				report(err)
				return
			}
		}
	}
}
