package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/experiment"
	"github.com/san-kum/algoviz/internal/export"
	"github.com/san-kum/algoviz/internal/metrics"
	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/sim"
	"github.com/san-kum/algoviz/internal/storage"
	"github.com/san-kum/algoviz/internal/view"
	"github.com/san-kum/algoviz/internal/viz"
	"github.com/san-kum/algoviz/internal/watch"
)

var (
	dataDir    string
	configFile string
	logLevel   string
	themeName  string
	// Input
	inputRaw string
	target   int
	start    int
	tickMs   int
	preset   string
	// show / svg
	stepIndex int
	outFile   string
	svgWidth  int
	svgHeight int
	braille   bool
	// play / watch
	headless bool
	saveRuns bool
	debounce time.Duration
	// bench
	benchSizes  []int
	benchSeed   int64
	showMetrics bool
)

var (
	logger    = slog.Default()
	collector = metrics.NewCollector()
	registry  = experiment.NewRegistry()
)

// main registers the algoviz commands and executes the root command, which
// opens the interactive picker when no subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:               "algoviz",
		Short:             "algorithm trace and playback lab",
		PersistentPreRunE: setupLogging,
		RunE:              runInteractive,
		SilenceUsage:      true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", config.DefaultTheme, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	runCmd := &cobra.Command{
		Use:   "run [algorithm]",
		Short: "generate a trace and save it as a run",
		Args:  cobra.ExactArgs(1),
		RunE:  runAlgorithm,
	}
	addInputFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a run and its steps",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().IntVar(&stepIndex, "step", -1, "print the state of one step")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot operation counts of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&outFile, "svg", "", "also write the operations plot as SVG")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run with its full trace as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the steps of a run as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	playCmd := &cobra.Command{
		Use:   "play [algorithm]",
		Short: "play a trace in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  playAlgorithm,
	}
	addInputFlags(playCmd)
	playCmd.Flags().BoolVar(&headless, "headless", false, "print steps instead of opening the TUI")

	watchCmd := &cobra.Command{
		Use:   "watch [algorithm] [file]",
		Short: "regenerate the trace whenever the input file changes",
		Args:  cobra.ExactArgs(2),
		RunE:  watchInput,
	}
	addInputFlags(watchCmd)
	watchCmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "delay before reloading a changed file")
	watchCmd.Flags().BoolVar(&saveRuns, "save", false, "save every accepted trace as a run")

	benchCmd := &cobra.Command{
		Use:   "bench [algorithm...]",
		Short: "benchmark trace generation on random inputs",
		RunE:  benchAlgorithms,
	}
	benchCmd.Flags().IntSliceVar(&benchSizes, "sizes", []int{8, 16, 32}, "input sizes")
	benchCmd.Flags().Int64Var(&benchSeed, "seed", 42, "random seed")
	benchCmd.Flags().BoolVar(&showMetrics, "metrics", false, "print collector metrics afterwards")

	presetsCmd := &cobra.Command{
		Use:   "presets [algorithm]",
		Short: "list available presets for an algorithm",
		Args:  cobra.ExactArgs(1),
		RunE:  listPresets,
	}

	algorithmsCmd := &cobra.Command{
		Use:   "algorithms",
		Short: "list registered algorithms",
		RunE:  listAlgorithms,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [algorithm]",
		Short: "render one step as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  renderSVG,
	}
	addInputFlags(svgCmd)
	svgCmd.Flags().IntVar(&stepIndex, "step", -1, "step to render (default last)")
	svgCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	svgCmd.Flags().IntVar(&svgWidth, "width", 640, "image width")
	svgCmd.Flags().IntVar(&svgHeight, "height", 360, "image height")
	svgCmd.Flags().BoolVar(&braille, "braille", false, "render the braille bar canvas (array algorithms)")

	compareCmd := &cobra.Command{
		Use:   "compare [algorithm1] [algorithm2] ...",
		Short: "compare algorithms on the same input",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareAlgorithms,
	}
	addInputFlags(compareCmd)

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario of generations",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	rootCmd.AddCommand(runCmd, listCmd, showCmd, plotCmd, exportJSONCmd, exportCSVCmd, playCmd, watchCmd, benchCmd, presetsCmd, algorithmsCmd, svgCmd, compareCmd, scenarioCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&inputRaw, "input", "", "raw input (\"3,1,2\", \"1-2,2-3\" or \"0-1:4,1-2:1\")")
	cmd.Flags().IntVar(&target, "target", config.DefaultTarget, "search target or destination vertex")
	cmd.Flags().IntVar(&start, "start", -1, "start node or source vertex")
	cmd.Flags().IntVar(&tickMs, "tick", 0, "autoplay interval in ms (0 = algorithm default)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

func setupLogging(cmd *cobra.Command, args []string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadConfig layers the config file, the preset and explicitly set flags,
// in that order. An empty algorithm keeps the configured one.
func loadConfig(cmd *cobra.Command, algorithm string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if algorithm != "" && algorithm != cfg.Algorithm {
		entry, err := registry.Get(algorithm)
		if err != nil {
			return nil, err
		}
		// The configured input belongs to another algorithm.
		if prev, err := registry.Get(cfg.Algorithm); err != nil || prev.InputKind != entry.InputKind {
			cfg.Input = config.DefaultInput(entry.InputKind)
		}
		cfg.Algorithm = algorithm
	}

	if preset != "" {
		p := config.GetPreset(cfg.Algorithm, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Algorithm))
		}
		cfg.Input, cfg.Target, cfg.Start = p.Input, p.Target, p.Start
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = inputRaw
	}
	if flags.Changed("target") {
		cfg.Target = target
	}
	if flags.Changed("start") {
		cfg.Start = start
	}
	if flags.Changed("tick") {
		cfg.TickMs = tickMs
	}
	if flags.Changed("theme") || configFile == "" {
		cfg.Theme = themeName
	}
	if !slices.Contains(viz.ThemeNames(), cfg.Theme) {
		return nil, fmt.Errorf("unknown theme: %s (available: %v)", cfg.Theme, viz.ThemeNames())
	}
	if flags.Changed("data") || configFile == "" {
		cfg.DataDir = dataDir
	}
	return cfg, nil
}

func experimentConfig(cfg *config.Config) experiment.Config {
	return experiment.Config{
		Algorithm: cfg.Algorithm,
		Input:     cfg.Input,
		Target:    cfg.Target,
		Start:     cfg.Start,
		Tick:      cfg.Tick(),
	}
}

// setupExperiment builds and loads the experiment described by cfg.
func setupExperiment(ctx context.Context, cfg *config.Config, sched playback.Scheduler) (*experiment.Experiment, *sim.Result, error) {
	exp := experiment.New(experimentConfig(cfg))
	if err := exp.Setup(registry, logger, collector, sched); err != nil {
		return nil, nil, err
	}
	res, err := exp.Run(ctx)
	if err != nil {
		return nil, nil, err
	}
	return exp, res, nil
}

func openStore(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		return nil, err
	}
	return storage.New(cfg.DataDir), nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		return err
	}
	return viz.RunInteractive(viz.Options{
		Registry:  registry,
		Config:    cfg,
		Logger:    logger,
		Collector: collector,
	})
}

func runAlgorithm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}

	exp, res, err := setupExperiment(cmd.Context(), cfg, nil)
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	tick := exp.GetSimulator().Controller().Interval()
	runID, err := st.Save(res, tick)
	if err != nil {
		return err
	}

	printResult(res)
	color.New(color.FgGreen).Fprintf(os.Stdout, "saved run %s\n", runID)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}
	printRuns(runs)
	return nil
}

func showRun(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	steps, err := st.LoadSteps(args[0])
	if err != nil {
		return err
	}

	if stepIndex >= 0 {
		if stepIndex >= len(steps) {
			return fmt.Errorf("step %d out of range (run has %d steps)", stepIndex, len(steps))
		}
		return printStep(steps[stepIndex])
	}

	printRunMetadata(meta)
	printSteps(steps)
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("algorithm: %s\n", meta.Algorithm)
	fmt.Printf("steps: %d\n\n", tr.Len())

	ops := metrics.CumulativeOps(tr)
	if len(ops) < 2 {
		return fmt.Errorf("no data to plot")
	}
	printPlot(ops, "operations vs step")
	for _, series := range eventSeries(tr) {
		printPlot(series.values, series.event.String()+"s vs step")
	}

	if outFile != "" {
		theme := viz.GetTheme(themeName)
		svg := export.SeriesToSVG(ops, 800, 300, string(theme.Primary))
		if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(os.Stdout, "wrote %s\n", outFile)
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	return storage.WriteRunJSON(os.Stdout, meta, tr)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	tr, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	return storage.WriteStepsCSV(os.Stdout, tr)
}

func playAlgorithm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}

	if !headless {
		exp, _, err := setupExperiment(cmd.Context(), cfg, nil)
		if err != nil {
			return err
		}
		return viz.RunPlayback(exp, cfg.Input, viz.GetTheme(cfg.Theme))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	exp, res, err := setupExperiment(ctx, cfg, playback.TickerScheduler{})
	if err != nil {
		return err
	}
	s := exp.GetSimulator()
	fmt.Printf("%s on %s (%d steps, every %s)\n\n", res.Algorithm, res.Input, s.Len(), s.Controller().Interval())

	printer := newStepPrinter(printHeadlessStep)
	s.AddObserver(sim.ObserverFunc(printer.observe))

	if !s.Play() {
		return fmt.Errorf("nothing to play")
	}
	select {
	case <-printer.done:
		fmt.Println()
		printResult(res)
	case <-ctx.Done():
		s.Pause()
		color.New(color.FgYellow).Fprintf(os.Stdout, "\ninterrupted at step %d/%d\n", s.Status().Position+1, s.Len())
	}
	return nil
}

// stepPrinter prints each newly reached step once. The ticker goroutine and
// the interrupt path can notify at the same time.
type stepPrinter struct {
	print func(playback.Status, metrics.Event)
	done  chan struct{}
	once  sync.Once

	mu   sync.Mutex
	last int
	cls  metrics.Classifier
}

func newStepPrinter(fn func(playback.Status, metrics.Event)) *stepPrinter {
	return &stepPrinter{print: fn, done: make(chan struct{}), last: -1}
}

func (p *stepPrinter) observe(st playback.Status) {
	p.mu.Lock()
	if st.Step != nil && st.Position != p.last {
		p.last = st.Position
		p.print(st, p.cls.Next(*st.Step))
	}
	p.mu.Unlock()

	if st.Mode == playback.Finished {
		p.once.Do(func() { close(p.done) })
	}
}

func watchInput(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	exp := experiment.New(experimentConfig(cfg))
	if err := exp.Setup(registry, logger, collector, nil); err != nil {
		return err
	}
	s := exp.GetSimulator()

	var st *storage.Store
	if saveRuns {
		st = storage.New(cfg.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	w, err := watch.New(args[1], s, watch.Options{
		Debounce: debounce,
		Logger:   logger,
		OnReload: func(changed bool, err error) {
			reportReload(s, st, changed, err)
		},
	})
	if err != nil {
		return err
	}

	fmt.Printf("watching %s for %s (ctrl+c to stop)\n", args[1], cfg.Algorithm)
	if err := w.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	w.Stop()
	return nil
}

func reportReload(s *sim.Simulator, st *storage.Store, changed bool, err error) {
	stamp := time.Now().Format("15:04:05")
	switch {
	case err != nil:
		color.New(color.FgRed).Fprintf(os.Stdout, "%s rejected: %v\n", stamp, err)
	case !changed:
		color.New(color.Faint).Fprintf(os.Stdout, "%s input unchanged\n", stamp)
	default:
		res := s.Result()
		color.New(color.FgGreen).Fprintf(os.Stdout, "%s %s on %s: %d steps\n", stamp, res.Algorithm, res.Input, res.Trace.Len())
		if st == nil {
			return
		}
		runID, err := st.Save(res, s.Controller().Interval())
		if err != nil {
			color.New(color.FgRed).Fprintf(os.Stdout, "%s save failed: %v\n", stamp, err)
			return
		}
		fmt.Printf("%s saved run %s\n", stamp, runID)
	}
}

func listPresets(cmd *cobra.Command, args []string) error {
	names := config.ListPresets(args[0])
	if len(names) == 0 {
		fmt.Printf("no presets for algorithm: %s\n", args[0])
		return nil
	}
	presets := make([]*config.Config, 0, len(names))
	for _, name := range names {
		presets = append(presets, config.GetPreset(args[0], name))
	}
	fmt.Printf("presets for %s:\n", args[0])
	printPresets(names, presets)
	return nil
}

func listAlgorithms(cmd *cobra.Command, args []string) error {
	entries := make([]experiment.Entry, 0)
	for _, name := range registry.List() {
		entry, err := registry.Get(name)
		if err != nil {
			return err
		}
		entries = append(entries, entry)
	}
	printAlgorithms(entries)
	return nil
}

func renderSVG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}
	exp, _, err := setupExperiment(cmd.Context(), cfg, nil)
	if err != nil {
		return err
	}
	s := exp.GetSimulator()
	tr := s.Trace()

	k := stepIndex
	if k < 0 || k >= tr.Len() {
		k = tr.Len() - 1
	}
	step := tr.At(k)
	theme := viz.GetTheme(cfg.Theme)

	var svg string
	if braille {
		values, ok := viz.Values(&step, s.Input())
		if !ok {
			return fmt.Errorf("--braille needs an array algorithm, %s takes %s input", cfg.Algorithm, exp.Entry().InputKind)
		}
		canvas := viz.NewCanvas(svgWidth/8, svgHeight/16)
		canvas.DrawBars(values, view.ProjectAll(&step, len(values)))
		svg = export.CanvasToSVG(canvas, theme, 4)
	} else {
		svg = export.StepToSVG(&step, s.Input(), theme, svgWidth, svgHeight)
	}

	if outFile == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(os.Stdout, "wrote step %d/%d to %s\n", k+1, tr.Len(), outFile)
	return nil
}
