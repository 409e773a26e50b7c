// Package echo renders and analyses the impulse response of the modulated
// delay.
//
// It locates the echo taps of a response, estimates their spacing and
// geometric decay (the feedback factor), and computes the comb-filter
// magnitude response with an FFT.
//
// # Usage
//
//	ir, err := echo.Render(cfg, modulation.Settings{DelaySeconds: 0.05, Feedback: 0.5, WetMix: 1}, 4096)
//	a := echo.NewAnalyzer(cfg.SampleRate)
//	m, err := a.Analyze(ir)
//	fmt.Printf("period = %.1f ms, decay = %.2f\n", m.Period*1000, m.Decay)
package echo
