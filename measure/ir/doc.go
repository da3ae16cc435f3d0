// Package ir measures an effects chain from the outside: it renders a
// stereo impulse through a processor and reports the decay (Schroeder
// integration, RT60, center time, tail length) and the magnitude response,
// and it measures steady-tone gain for level-dependent stages.
//
// # Usage
//
//	left, right, err := ir.Capture(chain, 48000, 2*48000, 0.25)
//	m, err := ir.NewAnalyzer(48000).Analyze(left)
//	fmt.Printf("RT60 = %.2f s\n", m.RT60)
package ir
