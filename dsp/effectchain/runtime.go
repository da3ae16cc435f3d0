package effectchain

// Context provides environmental information that stage runtimes need.
type Context struct {
	SampleRate float64
}

// Runtime is the per-stage processing and configuration contract. Configure
// maps the normalized snapshot to working units; Process transforms one
// block of deinterleaved stereo in place.
type Runtime interface {
	Configure(ctx Context, params *Params) error
	Process(left, right []float64)
	Reset()
}
