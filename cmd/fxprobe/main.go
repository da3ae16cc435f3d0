// Command fxprobe renders an impulse through the effects chain and prints
// the magnitude response at octave centers plus decay metrics per channel.
//
// Usage:
//
//	fxprobe [flags]
//
// Examples:
//
//	fxprobe -enable eq -set eq.low=1
//	fxprobe -preset dub.json -seconds 4
//	fxprobe -enable compressor -tone 1000
//	fxprobe -curve -knee 0 -set compressor.ratio=1
//	fxprobe -list
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/gbraad-music/samplecrate-sub003/dsp/effectchain"
	"github.com/gbraad-music/samplecrate-sub003/internal/control"
	"github.com/gbraad-music/samplecrate-sub003/measure/ir"
)

var octaveCenters = []float64{31.5, 63, 125, 250, 500, 1000, 2000, 4000, 8000, 16000}

type options struct {
	preset  string
	enable  string
	set     string
	rate    float64
	seconds float64
	fftSize int
	amp     float64
	toneHz  float64
	shape   effectchain.CompressorShape
	curve   bool
}

func main() {
	opts := options{shape: effectchain.DefaultCompressorShape()}

	flag.StringVar(&opts.preset, "preset", "", "JSON preset to apply before probing")
	flag.StringVar(&opts.enable, "enable", "", "comma separated stages to enable (e.g. eq,delay)")
	flag.StringVar(&opts.set, "set", "", "comma separated parameter overrides (e.g. delay.time=0.2)")
	flag.Float64Var(&opts.rate, "rate", 48000, "sample rate in Hz")
	flag.Float64Var(&opts.seconds, "seconds", 2, "impulse response length in seconds")
	flag.IntVar(&opts.fftSize, "fft", 16384, "FFT size (power of two)")
	flag.Float64Var(&opts.amp, "amp", 0.25, "impulse amplitude (full scale = 1)")
	flag.Float64Var(&opts.toneHz, "tone", 0, "also measure steady-state gain of a sine at this frequency in Hz (0 = off)")
	flag.Float64Var(&opts.shape.KneeDB, "knee", opts.shape.KneeDB, "compressor soft-knee width in dB (0 = hard knee)")
	flag.Float64Var(&opts.shape.RMSWindowMs, "rms-window", opts.shape.RMSWindowMs, "compressor RMS detector window in ms")
	flag.Float64Var(&opts.shape.PeakBlend, "peak-blend", opts.shape.PeakBlend, "compressor detector blend (1 = peak, 0 = RMS)")
	flag.BoolVar(&opts.curve, "curve", false, "also print the compressor's static input/output curve")
	list := flag.Bool("list", false, "list parameters with their defaults")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fxprobe [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Renders an impulse through the effects chain and prints its response.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  fxprobe -enable eq -set eq.low=1\n")
		fmt.Fprintf(os.Stderr, "  fxprobe -preset dub.json -seconds 4\n")
		fmt.Fprintf(os.Stderr, "  fxprobe -enable compressor -tone 1000\n")
		fmt.Fprintf(os.Stderr, "  fxprobe -curve -knee 0 -set compressor.ratio=1\n")
	}
	flag.Parse()

	if *list {
		err := printParams(os.Stdout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		return
	}

	err := run(os.Stdout, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, opts options) error {
	c, err := effectchain.New(effectchain.WithCompressorShape(opts.shape))
	if err != nil {
		return err
	}
	defer c.Close()

	err = configure(c, opts)
	if err != nil {
		return err
	}

	frames := int(opts.seconds * opts.rate)

	left, right, err := ir.Capture(c, opts.rate, frames, opts.amp)
	if err != nil {
		return err
	}

	err = report(w, opts, left, right)
	if err != nil {
		return err
	}

	if opts.curve {
		err = printCurve(w, c)
		if err != nil {
			return err
		}
	}

	if opts.toneHz <= 0 {
		return nil
	}

	c.Reset()

	gainL, gainR, err := ir.ToneGain(c, opts.toneHz, opts.amp, opts.rate, opts.seconds)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "\nTone %g Hz: left %+.2f dB, right %+.2f dB\n", opts.toneHz, gainL, gainR)

	return err
}

func configure(c *effectchain.Chain, opts options) error {
	if opts.preset != "" {
		p, err := control.LoadPreset(opts.preset)
		if err != nil {
			return err
		}

		err = p.Apply(c)
		if err != nil {
			return err
		}
	}

	for _, name := range splitList(opts.enable) {
		s, ok := effectchain.StageByName(name)
		if !ok {
			return fmt.Errorf("%w: %q", control.ErrUnknownStage, name)
		}

		c.SetEnabled(s, true)
	}

	for _, kv := range splitList(opts.set) {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("override %q: want name=value", kv)
		}

		id, ok := effectchain.ParamByName(name)
		if !ok {
			return fmt.Errorf("%w: %q", control.ErrUnknownParam, name)
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(value), 32)
		if err != nil {
			return fmt.Errorf("override %q: %w", kv, err)
		}

		c.SetParam(id, float32(v))
	}

	return nil
}

func splitList(s string) []string {
	var out []string

	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}

	return out
}

func report(w io.Writer, opts options, left, right []float64) error {
	respL, err := ir.MagnitudeResponse(left, opts.rate, opts.fftSize)
	if err != nil {
		return err
	}

	respR, err := ir.MagnitudeResponse(right, opts.rate, opts.fftSize)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Freq [Hz]\tLeft [dB]\tRight [dB]\n")
	fmt.Fprintf(tw, "---------\t---------\t----------\n")

	for _, f := range octaveCenters {
		if f >= opts.rate/2 {
			break
		}

		fmt.Fprintf(tw, "%g\t%+.2f\t%+.2f\n", f, respL.At(f), respR.At(f))
	}

	fmt.Fprintf(tw, "\n")

	analyzer := ir.NewAnalyzer(opts.rate)

	fmt.Fprintf(tw, "Channel\tPeak\tPeak [ms]\tOnset [ms]\tRT60 [s]\tCenter [ms]\tTail [s]\n")
	fmt.Fprintf(tw, "-------\t----\t---------\t----------\t--------\t-----------\t--------\n")

	for _, ch := range []struct {
		name string
		data []float64
	}{{"left", left}, {"right", right}} {
		m, err := analyzer.Analyze(ch.data)
		if err != nil {
			return err
		}

		fmt.Fprintf(tw, "%s\t%.3f\t%.2f\t%.2f\t%.3f\t%.2f\t%.3f\n",
			ch.name,
			m.Peak,
			1000*float64(m.PeakIndex)/opts.rate,
			1000*float64(m.Onset)/opts.rate,
			m.RT60,
			1000*m.CenterTime,
			m.Tail,
		)
	}

	return tw.Flush()
}

var curveLevelsDB = []float64{-60, -48, -36, -30, -24, -18, -12, -6, 0}

func printCurve(w io.Writer, c *effectchain.Chain) error {
	out, err := c.CompressorCurve(curveLevelsDB)
	if err != nil {
		return err
	}

	shape := c.CompressorShape()

	fmt.Fprintf(w, "\nCompressor curve (knee %g dB, rms %g ms, peak blend %g)\n", shape.KneeDB, shape.RMSWindowMs, shape.PeakBlend)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "In [dB]\tOut [dB]\tGain [dB]\n")
	fmt.Fprintf(tw, "-------\t--------\t---------\n")

	for i, in := range curveLevelsDB {
		fmt.Fprintf(tw, "%+.1f\t%+.2f\t%+.2f\n", in, out[i], out[i]-in)
	}

	return tw.Flush()
}

func printParams(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Parameter\tDefault\tValue\n")

	for id := range effectchain.NumParams {
		fmt.Fprintf(tw, "%s\t%.2f\t%s\n", id, id.Default(), effectchain.FormatParam(id, id.Default()))
	}

	return tw.Flush()
}
