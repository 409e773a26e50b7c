// Command chorusfx runs the modulated feedback delay over audio.
//
// Usage:
//
//	chorusfx [flags]
//
// Modes:
//
//	chorusfx -in dry.wav -out wet.wav      render a WAV file
//	chorusfx -analyze                      measure the impulse response
//	chorusfx -bench -seconds 60            time a long render
//	chorusfx -play [-in loop.wav]          play live until interrupted
//	chorusfx -list                         list presets
//
// Parameter flags override the selected preset.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/cwbudde/algo-chorus/dsp/core"
	"github.com/cwbudde/algo-chorus/dsp/effects/modulation"
	"github.com/cwbudde/algo-chorus/internal/playback"
	"github.com/cwbudde/algo-chorus/internal/render"
	"github.com/cwbudde/algo-chorus/internal/testutil"
	"github.com/cwbudde/algo-chorus/internal/wavio"
	"github.com/cwbudde/algo-chorus/measure/echo"
)

type options struct {
	in, out    string
	preset     string
	list       bool
	analyze    bool
	bench      bool
	play       bool
	verbose    bool
	sampleRate float64
	blockSize  int
	bitDepth   int
	seconds    float64
	fftSize    int

	delay, feedback, wet, amount, rate float64
	set                                map[string]bool
}

func main() {
	var o options
	flag.StringVar(&o.in, "in", "", "input WAV file")
	flag.StringVar(&o.out, "out", "", "output WAV file")
	flag.StringVar(&o.preset, "preset", "chorus", "parameter preset")
	flag.BoolVar(&o.list, "list", false, "list presets")
	flag.BoolVar(&o.analyze, "analyze", false, "render and analyse the impulse response")
	flag.BoolVar(&o.bench, "bench", false, "time a render of synthetic noise")
	flag.BoolVar(&o.play, "play", false, "play through the default audio device")
	flag.BoolVar(&o.verbose, "v", false, "debug logging")
	flag.Float64Var(&o.sampleRate, "sr", 48000, "sample rate for synthetic signals")
	flag.IntVar(&o.blockSize, "block", 512, "frames per processing block")
	flag.IntVar(&o.bitDepth, "bits", 0, "output bit depth (default: input depth)")
	flag.Float64Var(&o.seconds, "seconds", 2, "length of synthetic signals")
	flag.IntVar(&o.fftSize, "fft", 8192, "FFT size for -analyze")
	flag.Float64Var(&o.delay, "delay", 0, "delay in seconds")
	flag.Float64Var(&o.feedback, "feedback", 0, "feedback gain [0,1]")
	flag.Float64Var(&o.wet, "wet", 0, "wet mix [0,1]")
	flag.Float64Var(&o.amount, "amount", 0, "modulation depth [0,1]")
	flag.Float64Var(&o.rate, "rate", 0, "LFO rate in Hz")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: chorusfx [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Runs a modulated feedback delay (chorus) over audio.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  chorusfx -in dry.wav -out wet.wav -preset flanger\n")
		fmt.Fprintf(os.Stderr, "  chorusfx -analyze -feedback 0.5\n")
		fmt.Fprintf(os.Stderr, "  chorusfx -bench -seconds 60 -block 64\n")
		fmt.Fprintf(os.Stderr, "  chorusfx -play -in loop.wav\n")
	}
	flag.Parse()

	o.set = map[string]bool{}
	flag.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, o, log)
	stop()
	if err != nil {
		log.Error("chorusfx failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, o options, log *slog.Logger) error {
	if o.list {
		printPresets()
		return nil
	}

	settings, err := o.settings()
	if err != nil {
		return err
	}
	log.Debug("settings",
		"delay", settings.DelaySeconds, "feedback", settings.Feedback,
		"wet", settings.WetMix, "amount", settings.Amount, "rate", settings.RateHz)

	switch {
	case o.analyze:
		return analyze(o, settings)
	case o.bench:
		return bench(ctx, o, settings, log)
	case o.play:
		return play(ctx, o, settings, log)
	case o.in != "" && o.out != "":
		return renderFile(ctx, o, settings, log)
	default:
		flag.Usage()
		return errors.New("nothing to do: pass -in/-out, -analyze, -bench, -play or -list")
	}
}

// settings resolves the preset, then applies explicitly set parameter flags.
func (o options) settings() (modulation.Settings, error) {
	opts := []modulation.Option{modulation.WithPreset(o.preset)}
	if o.set["delay"] {
		opts = append(opts, modulation.WithDelaySeconds(o.delay))
	}
	if o.set["feedback"] {
		opts = append(opts, modulation.WithFeedback(o.feedback))
	}
	if o.set["wet"] {
		opts = append(opts, modulation.WithWetMix(o.wet))
	}
	if o.set["amount"] {
		opts = append(opts, modulation.WithAmount(o.amount))
	}
	if o.set["rate"] {
		opts = append(opts, modulation.WithRateHz(o.rate))
	}

	s := modulation.DefaultSettings()
	for _, opt := range opts {
		if err := opt(&s); err != nil {
			return modulation.Settings{}, err
		}
	}
	return s, nil
}

func printPresets() {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "NAME\tDELAY\tFEEDBACK\tWET\tAMOUNT\tRATE\tDESCRIPTION\n")
	for _, name := range modulation.PresetNames() {
		p, _ := modulation.LookupPreset(name)
		s := p.Settings
		fmt.Fprintf(w, "%s\t%.1f ms\t%.2f\t%.2f\t%.2f\t%.2f Hz\t%s\n",
			p.Name, s.DelaySeconds*1000, s.Feedback, s.WetMix, s.Amount, s.RateHz, p.Description)
	}
	w.Flush()
}

func newChorus(s modulation.Settings, sampleRate float64, log *slog.Logger) (*modulation.Chorus, error) {
	fx, err := modulation.NewChorus(modulation.WithSettings(s))
	if err != nil {
		return nil, err
	}
	engine, err := fx.Prepare(sampleRate)
	if err != nil {
		return nil, err
	}
	log.Debug("engine prepared", "sampleRate", engine.SampleRate(), "capacity", engine.Capacity())
	return fx, nil
}

func renderFile(ctx context.Context, o options, s modulation.Settings, log *slog.Logger) error {
	in, err := wavio.Read(o.in)
	if err != nil {
		return fmt.Errorf("read %s: %w", o.in, err)
	}
	log.Info("loaded", "path", o.in, "sampleRate", in.SampleRate,
		"channels", in.Channels, "bits", in.BitDepth, "frames", in.Frames())

	fx, err := newChorus(s, float64(in.SampleRate), log)
	if err != nil {
		return err
	}

	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(float64(in.SampleRate)),
		core.WithBlockSize(o.blockSize),
		core.WithChannels(in.Channels),
	)
	stats, err := render.NewRunner(cfg).Run(ctx, fx, in.Data)
	if err != nil {
		return err
	}
	logStats(log, stats)

	out := in
	if o.bitDepth != 0 {
		out.BitDepth = o.bitDepth
	}
	if err := wavio.Write(o.out, out); err != nil {
		return fmt.Errorf("write %s: %w", o.out, err)
	}
	log.Info("written", "path", o.out, "bits", out.BitDepth)
	return nil
}

func analyze(o options, s modulation.Settings) error {
	cfg := core.ApplyProcessorOptions(core.WithSampleRate(o.sampleRate), core.WithBlockSize(o.blockSize))
	length := int(math.Ceil(o.seconds * o.sampleRate))

	ir, err := echo.Render(cfg, s, length)
	if err != nil {
		return err
	}

	m, err := echo.NewAnalyzer(o.sampleRate).Analyze(ir)
	if err != nil {
		return err
	}

	fmt.Printf("taps:   %d\n", len(m.Taps))
	fmt.Printf("period: %.3f ms\n", m.Period*1000)
	fmt.Printf("decay:  %.4f\n", m.Decay)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "#\tTIME ms\tAMPLITUDE\t\n")
	for i, tap := range m.Taps {
		if i == 10 {
			fmt.Fprintf(w, "...\t\t\t\n")
			break
		}
		fmt.Fprintf(w, "%d\t%.3f\t%+.5f\t\n", i, float64(tap.Index)/o.sampleRate*1000, tap.Amplitude)
	}
	w.Flush()

	mag, err := echo.MagnitudeResponse(ir, o.fftSize)
	if err != nil {
		return err
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range mag {
		db := 20 * math.Log10(math.Max(v, 1e-12))
		lo = math.Min(lo, db)
		hi = math.Max(hi, db)
	}
	fmt.Printf("magnitude: %.1f dB .. %.1f dB over %d bins (%.2f Hz/bin)\n",
		lo, hi, len(mag), echo.BinFrequency(1, o.fftSize, o.sampleRate))
	return nil
}

func bench(ctx context.Context, o options, s modulation.Settings, log *slog.Logger) error {
	const channels = 2
	fx, err := newChorus(s, o.sampleRate, log)
	if err != nil {
		return err
	}

	frames := int(math.Ceil(o.seconds * o.sampleRate))
	noise := testutil.DeterministicNoise(1, 0.5, frames)
	data := testutil.Interleave(noise, noise)

	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(o.sampleRate),
		core.WithBlockSize(o.blockSize),
		core.WithChannels(channels),
	)
	stats, err := render.NewRunner(cfg).Run(ctx, fx, data)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "cpu\t%s\n", stats.CPU)
	fmt.Fprintf(w, "audio\t%v\n", stats.Audio)
	fmt.Fprintf(w, "elapsed\t%v\n", stats.Elapsed)
	fmt.Fprintf(w, "realtime\t%.1fx\n", stats.RealTimeFactor())
	fmt.Fprintf(w, "blocks\t%d (%d frames each)\n", stats.Blocks, o.blockSize)
	fmt.Fprintf(w, "worst block\t%v (budget %v)\n", stats.Worst, cfg.Budget(o.blockSize))
	fmt.Fprintf(w, "overruns\t%d\n", stats.Overruns)
	return w.Flush()
}

func play(ctx context.Context, o options, s modulation.Settings, log *slog.Logger) error {
	source, sampleRate, channels, err := playSource(o)
	if err != nil {
		return err
	}

	fx, err := newChorus(s, float64(sampleRate), log)
	if err != nil {
		return err
	}
	stream, err := playback.NewStream(fx, source, channels, o.blockSize)
	if err != nil {
		return err
	}

	player, err := playback.NewPlayer(sampleRate, channels, log)
	if err != nil {
		return err
	}
	defer player.Close()

	player.Play(stream)
	log.Info("playing, press Ctrl-C to stop")

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := player.Err(); err != nil {
				return err
			}
			log.Debug("rendered", "frames", stream.Frames())
		}
	}
}

// playSource returns the -in file, or one second of a 220 Hz pluck.
func playSource(o options) ([]float64, int, int, error) {
	if o.in != "" {
		a, err := wavio.Read(o.in)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("read %s: %w", o.in, err)
		}
		return a.Data, a.SampleRate, a.Channels, nil
	}

	sr := int(o.sampleRate)
	tone := testutil.DeterministicSine(220, o.sampleRate, 0.5, sr)
	for i := range tone {
		tone[i] *= math.Exp(-6 * float64(i) / o.sampleRate)
	}
	return testutil.Interleave(tone, tone), sr, 2, nil
}

func logStats(log *slog.Logger, s render.Stats) {
	log.Info("rendered",
		"blocks", s.Blocks, "frames", s.Frames, "elapsed", s.Elapsed,
		"realtime", fmt.Sprintf("%.1fx", s.RealTimeFactor()),
		"worst", s.Worst, "overruns", s.Overruns, "cpu", s.CPU)
}
