package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/harmonia/internal/analysis"
	"github.com/san-kum/harmonia/internal/config"
	"github.com/san-kum/harmonia/internal/driver"
	"github.com/san-kum/harmonia/internal/export"
	"github.com/san-kum/harmonia/internal/preview"
	"github.com/san-kum/harmonia/internal/render"
	"github.com/san-kum/harmonia/internal/storage"
	"github.com/spf13/cobra"
)

var (
	dataDir        string
	settingsFile   string
	oscillatorFile string
	preset         string
	frameRate      int
	freeze         float32
	verbose        bool

	renderOpts = render.DefaultOptions()
	mute       bool

	coeff   int
	all     bool
	svgKind string
	outPath string
	outDir  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "harmonia",
		Short:         "procedural harmonic sphere show",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
		RunE: runShow,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".harmonia", "capture directory")
	pf.StringVar(&settingsFile, "settings", "", "settings file (yaml)")
	pf.StringVar(&oscillatorFile, "oscillators", "", "oscillator file (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a named preset")
	pf.IntVar(&frameRate, "fps", 30, "frame rate")
	pf.Float32Var(&freeze, "freeze", 0, "hold the show at this time in seconds")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "play the show in a window",
		RunE:  runShow,
	}
	for _, c := range []*cobra.Command{rootCmd, showCmd} {
		c.Flags().Int32Var(&renderOpts.Width, "width", renderOpts.Width, "window width")
		c.Flags().Int32Var(&renderOpts.Height, "height", renderOpts.Height, "window height")
		c.Flags().BoolVar(&renderOpts.Fullscreen, "fullscreen", false, "fullscreen window")
		c.Flags().Int64Var(&renderOpts.StarSeed, "seed", renderOpts.StarSeed, "starfield seed")
		c.Flags().BoolVar(&mute, "mute", false, "no audio output")
	}

	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "monitor the show in the terminal",
		RunE:  runPreview,
	}

	frameCmd := &cobra.Command{
		Use:   "frame",
		Short: "print the frame at the --freeze time as JSON",
		RunE:  runFrame,
	}

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "capture the whole show headless",
		RunE:  runRecord,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list captures",
		RunE:  listRuns,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "draw a capture as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  runSVG,
	}
	svgCmd.Flags().StringVar(&svgKind, "kind", "camera", "camera or height")
	svgCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of one coefficient",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&coeff, "coeff", 0, "coefficient index")
	analyzeCmd.Flags().BoolVar(&all, "all", false, "summarize every coefficient")

	presetsCmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "list presets, or write one out as yaml files",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPresets,
	}
	presetsCmd.Flags().StringVar(&outDir, "dir", ".", "directory for the written files")

	rootCmd.AddCommand(showCmd, previewCmd, frameCmd, recordCmd, listCmd, svgCmd, analyzeCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("harmonia failed", "error", err)
		os.Exit(1)
	}
}

// loadSnapshot applies the preset first and lets explicit files replace
// the record they name.
func loadSnapshot() (*config.Snapshot, error) {
	if preset == "" {
		return config.Load(settingsFile, oscillatorFile)
	}
	p, ok := config.GetPreset(preset)
	if !ok {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}
	snap := p.Snapshot()
	if settingsFile != "" {
		s, err := config.LoadSettings(settingsFile)
		if err != nil {
			return nil, err
		}
		snap.Settings = s
	}
	if oscillatorFile != "" {
		o, err := config.LoadOscillators(oscillatorFile)
		if err != nil {
			return nil, err
		}
		snap.Oscillators = o
	}
	return snap, nil
}

// source loads files in the background unless a preset is involved.
func source() driver.Source {
	if preset == "" {
		return config.LoadAsync(settingsFile, oscillatorFile)
	}
	snap, err := loadSnapshot()
	if err != nil {
		return failed{err}
	}
	return config.Ready(snap)
}

type failed struct{ err error }

func (f failed) Poll() (*config.Snapshot, bool, error) { return nil, false, f.err }

func driverOptions(cmd *cobra.Command) []driver.Option {
	if cmd.Flags().Changed("freeze") {
		return []driver.Option{driver.WithFrozenTime(freeze)}
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	opts := renderOpts
	opts.Audio = !mute
	opts.Driver = driverOptions(cmd)
	return render.Run(source(), opts, slog.Default())
}

func runPreview(cmd *cobra.Command, args []string) error {
	log, closeLog, err := previewLogger()
	if err != nil {
		return err
	}
	defer closeLog()
	return preview.Run(source(), frameRate, log, driverOptions(cmd)...)
}

// previewLogger keeps log lines off the terminal the preview draws on. With
// --verbose they go to preview.log in the data directory.
func previewLogger() (*slog.Logger, func(), error) {
	if !verbose {
		return nil, func() {}, nil
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(filepath.Join(dataDir, "preview.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}
	log := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return log, func() { f.Close() }, nil
}

func runFrame(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("freeze") {
		return fmt.Errorf("frame needs --freeze")
	}
	snap, err := loadSnapshot()
	if err != nil {
		return err
	}

	var c storage.Capture
	d := driver.New(config.Ready(snap), &c, append(driverOptions(cmd), driver.WithLogger(quietLogger()))...)
	if err := d.Tick(0); err != nil {
		return err
	}
	if len(c.Frames) == 0 {
		return fmt.Errorf("no frame at t=%.3f: the show ends at %.3f", freeze, snap.Settings.EndTime)
	}
	return storage.ExportFrame(os.Stdout, c.Frames[0], d.State().String())
}

func runRecord(cmd *cobra.Command, args []string) error {
	snap, err := loadSnapshot()
	if err != nil {
		return err
	}
	if snap.Settings.FrozenTime != nil || cmd.Flags().Changed("freeze") {
		return fmt.Errorf("a frozen show never ends; use the frame command")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var c storage.Capture
	d := driver.New(config.Ready(snap), &c, driver.WithLogger(quietLogger()))
	start := time.Now()
	if err := d.Run(ctx, frameRate, false); err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(storage.RunMetadata{
		Preset:         preset,
		FPS:            frameRate,
		EndTime:        snap.Settings.EndTime,
		AnimationSpeed: snap.Settings.AnimationSpeed,
		Oscillators:    snap.Oscillators,
	}, c.Frames)
	if err != nil {
		return err
	}

	slog.Info("capture saved", "id", id, "frames", len(c.Frames), "elapsed", time.Since(start))
	fmt.Println(id)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no captures found")
		return nil
	}
	now := time.Now()
	for _, run := range runs {
		fmt.Println(run.Describe(now))
	}
	return nil
}

func loadRun(prefix string) (*storage.RunMetadata, *storage.Store, string, error) {
	st := storage.New(dataDir)
	id, err := st.Resolve(prefix)
	if err != nil {
		return nil, nil, "", err
	}
	meta, err := st.Load(id)
	if err != nil {
		return nil, nil, "", err
	}
	return meta, st, id, nil
}

func runSVG(cmd *cobra.Command, args []string) error {
	_, st, id, err := loadRun(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(id)
	if err != nil {
		return err
	}

	var svg string
	switch svgKind {
	case "camera":
		svg = export.CameraPathSVG(frames, 800, 800)
	case "height":
		svg = export.HeightSVG(frames, 1000, 400)
	default:
		return fmt.Errorf("unknown svg kind: %s", svgKind)
	}
	if svg == "" {
		return fmt.Errorf("capture %s has too few frames", id)
	}

	if outPath == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(outPath, []byte(svg), 0644)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, st, id, err := loadRun(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(id)
	if err != nil {
		return err
	}
	if all {
		return summarizeAll(meta, frames)
	}
	if coeff < 0 || coeff >= meta.Coefficients {
		return fmt.Errorf("coefficient %d out of range [0,%d)", coeff, meta.Coefficients)
	}

	r := analysis.Analyze(analysis.Series(frames, coeff), float64(meta.FPS))
	if len(r.Spectrum) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("coefficient: c%d  samples: %d\n\n", coeff, r.Samples)

	plot := r.Spectrum
	if len(plot) > 4 {
		plot = plot[:len(plot)/4]
	}
	fmt.Println(asciigraph.Plot(plot,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (c%d)", coeff)),
	))
	fmt.Println()

	fmt.Printf("mean %.4f  min %.4f  max %.4f\n", r.Mean, r.Min, r.Max)
	fmt.Printf("dominant %.4f Hz (power %.3f)\n", r.DominantHz, r.Power)
	if coeff < len(meta.Oscillators) {
		fmt.Printf("expected %.4f Hz\n", analysis.ExpectedHz(meta.Oscillators[coeff], meta.AnimationSpeed))
	}
	return nil
}

func summarizeAll(meta *storage.RunMetadata, frames []driver.Frame) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COEFF\tMEAN\tMIN\tMAX\tDOMINANT\tEXPECTED")
	for i, r := range analysis.AnalyzeAll(frames, float64(meta.FPS)) {
		expected := "-"
		if i < len(meta.Oscillators) {
			expected = fmt.Sprintf("%.4f Hz", analysis.ExpectedHz(meta.Oscillators[i], meta.AnimationSpeed))
		}
		fmt.Fprintf(w, "c%d\t%.4f\t%.4f\t%.4f\t%.4f Hz\t%s\n", i, r.Mean, r.Min, r.Max, r.DominantHz, expected)
	}
	return w.Flush()
}

func runPresets(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		for _, name := range config.ListPresets() {
			fmt.Println(name)
		}
		return nil
	}

	p, ok := config.GetPreset(args[0])
	if !ok {
		return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}
	settingsPath := filepath.Join(outDir, "settings.yaml")
	oscPath := filepath.Join(outDir, "oscillators.yaml")
	if err := config.SaveSettings(settingsPath, p.Settings); err != nil {
		return err
	}
	if err := config.SaveOscillators(oscPath, p.Oscillators); err != nil {
		return err
	}
	fmt.Printf("wrote %s and %s\n", settingsPath, oscPath)
	return nil
}

func quietLogger() *slog.Logger {
	if verbose {
		return slog.Default()
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}
