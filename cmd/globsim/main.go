package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/globsim/internal/analysis"
	"github.com/san-kum/globsim/internal/automation"
	"github.com/san-kum/globsim/internal/config"
	"github.com/san-kum/globsim/internal/export"
	"github.com/san-kum/globsim/internal/gui"
	"github.com/san-kum/globsim/internal/lava"
	"github.com/san-kum/globsim/internal/metrics"
	"github.com/san-kum/globsim/internal/optim"
	"github.com/san-kum/globsim/internal/render"
	"github.com/san-kum/globsim/internal/sim"
	"github.com/san-kum/globsim/internal/storage"
	"github.com/san-kum/globsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	ticks      int
	globs      int
	frameRate  int
	// ensemble
	numRuns int
	// analysis and export
	column  string
	outFile string
	atTick  int
	// sweep and tune
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	grid       []string
	metricName string
	target     float64
)

// main registers the commands and runs the interactive picker when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "globsim",
		Short: "lava lamp glob simulator",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".globsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and store its history",
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the tank in the terminal",
		RunE:  runLive,
	}
	addConfigFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "watch the tank in a window",
		RunE:  runGUI,
	}
	addConfigFlags(guiCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "pick a preset and tune it before watching",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive()
		},
	}

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run consecutive seeds in parallel and compare them",
		RunE:  runEnsemble,
	}
	addConfigFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 4, "number of seeds")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure ticks per second for several populations",
		RunE:  benchTicks,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run history",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "look for cycles in a history column",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&column, "column", "population", "history column")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run history to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "replay a run and draw one frame, or plot a column, as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&atTick, "tick", -1, "tick to draw (default last)")
	exportSVGCmd.Flags().StringVar(&column, "column", "", "plot this history column instead of a frame")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted list of runs from a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one parameter over a range",
		RunE:  runSweep,
	}
	addConfigFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "split_prob", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search parameters toward a target metric value",
		RunE:  runTune,
	}
	addConfigFlags(tuneCmd)
	tuneCmd.Flags().StringArrayVar(&grid, "grid", nil, "name=v1,v2,... (repeatable)")
	tuneCmd.Flags().StringVar(&metricName, "metric", "population", "metric to match")
	tuneCmd.Flags().Float64Var(&target, "target", 50, "target metric value")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tGLOBS\tSPLIT\tMAX\tTRANSFER\tCONVECTION")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%.2f\t%d\t%.4f\t%.3f\n",
					name, cfg.Globs, cfg.Split.Prob, cfg.Split.MaxGlobs, cfg.Motion.Transfer, cfg.Motion.Convection)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, tuiCmd, ensembleCmd, benchCmd, listCmd, plotCmd, analyzeCmd,
		exportJSONCmd, exportCSVCmd, exportSVGCmd, scenarioCmd, sweepCmd, tuneCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml or ini)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "ticks to simulate")
	cmd.Flags().IntVar(&globs, "globs", lava.DefaultInitialGlobs, "globs seeded at start")
	cmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
}

// resolveConfig layers preset, config file and explicitly set flags, in
// that order. It also returns a name for the run.
func resolveConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg, name := config.DefaultConfig(), "lavalamp"

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		name = preset
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		name = strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile))
	}

	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("ticks") {
		cfg.Ticks = ticks
	}
	if cmd.Flags().Changed("globs") {
		cfg.Globs = globs
	}
	if cmd.Flags().Changed("fps") {
		cfg.FPS = frameRate
	}

	if err := cfg.Params().Validate(); err != nil {
		return nil, "", err
	}
	return cfg, name, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s := sim.New(cfg.Params())
	for _, m := range metrics.Defaults() {
		s.AddMetric(m)
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("running %s for %d ticks (seed %d)...\n", name, cfg.Ticks, cfg.Seed)
	start := time.Now()

	result, err := s.Run(ctx, cfg.RunConfig())
	if err != nil && result == nil {
		return err
	}
	if err != nil {
		fmt.Printf("interrupted after %d ticks, saving partial run\n", result.TicksTaken)
	}

	elapsed := time.Since(start)

	runID, err := st.Save(name, cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", result.TicksTaken)
	fmt.Printf("final globs: %d\n", len(result.Final.Globs))
	fmt.Println("\nmetrics:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, m := range metrics.Defaults() {
		fmt.Fprintf(w, "  %s\t%.4f\n", m.Name(), result.Metrics[m.Name()])
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return viz.RunLive(cfg, name)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return gui.Run(cfg, name)
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if numRuns <= 0 {
		return fmt.Errorf("runs must be positive, got %d", numRuns)
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("running %d seeds of %s for %d ticks...\n\n", numRuns, name, cfg.Ticks)
	e := sim.NewEnsemble(sim.New(cfg.Params()), numRuns, cfg.Seed, metrics.Defaults)
	results, err := e.Run(ctx, cfg.RunConfig())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tFINAL\tPEAK\tMEAN POP\tSPLITS\tMERGES\tPERIOD")
	for i, r := range results {
		pop, _ := r.Series("population")
		period, _ := analysis.DominantPeriod(pop)
		fmt.Fprintf(w, "%d\t%d\t%.0f\t%.1f\t%.0f\t%.0f\t%.1f\n",
			cfg.Seed+int64(i),
			len(r.Final.Globs),
			analysis.Describe(pop).Max,
			r.Metrics["population"],
			r.Metrics["splits"],
			r.Metrics["merges"],
			period,
		)
	}
	return w.Flush()
}

func benchTicks(cmd *cobra.Command, args []string) error {
	counts := []int{10, 20, 50, 100, 200}
	const benchTicks = 500

	fmt.Printf("benchmarking %d ticks\n\n", benchTicks)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GLOBS\tFINAL\tTIME\tTICKS/SEC")

	for _, n := range counts {
		cfg := config.DefaultConfig()
		cfg.Seed = 42
		cfg.Globs = n
		cfg.Ticks = benchTicks
		cfg.Split.MaxGlobs = 2 * n

		start := time.Now()
		result, err := sim.New(cfg.Params()).Run(context.Background(), cfg.RunConfig())
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n",
			n, len(result.Final.Globs), elapsed, float64(result.TicksTaken)/elapsed.Seconds())
	}

	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tSEED\tTICKS\tGLOBS\tFINAL")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Seed,
			run.Ticks,
			run.Globs,
			run.FinalCount,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, *sim.Result, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}

	history, err := st.LoadHistory(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(history) == 0 {
		return nil, nil, fmt.Errorf("no data to plot")
	}

	return meta, &sim.Result{History: history, Metrics: meta.Metrics, TicksTaken: meta.Ticks}, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(result.History))

	for _, col := range sim.Columns {
		data, err := result.Series(col)
		if err != nil {
			return err
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(strings.ReplaceAll(col, "_", " ")+" vs tick"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}

	data, err := result.Series(column)
	if err != nil {
		return err
	}

	fmt.Printf("cycle analysis: %s\n", meta.ID)
	fmt.Printf("column: %s\n\n", column)

	ps := analysis.PowerSpectrum(data)
	if len(ps) < 2 {
		return fmt.Errorf("not enough samples")
	}
	plotData := ps[1:]
	if len(plotData) > 200 {
		plotData = plotData[:200]
	}

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum ("+column+")"),
	)
	fmt.Println(graph)
	fmt.Println()

	s := analysis.Describe(data)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "mean\t%.3f\n", s.Mean)
	fmt.Fprintf(w, "stddev\t%.3f\n", s.StdDev)
	fmt.Fprintf(w, "range\t[%.3f, %.3f]\n", s.Min, s.Max)

	period, power := analysis.DominantPeriod(data)
	if period > 0 {
		fmt.Fprintf(w, "dominant period\t%.1f ticks\n", period)
		fmt.Fprintf(w, "magnitude\t%.3f\n", power)
	} else {
		fmt.Fprintln(w, "dominant period\tnone")
	}
	return w.Flush()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, result.History)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, result, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.WriteHistoryCSV(os.Stdout, result.History)
}

// exportSVG redraws a stored run by replaying its config, which is
// deterministic for a given seed.
func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	var svg string
	if column != "" {
		_, result, err := loadRun(runID)
		if err != nil {
			return err
		}
		data, err := result.Series(column)
		if err != nil {
			return err
		}
		svg = export.SeriesToSVG(data, 800, 300, "#ff9e64")
	} else {
		st := storage.New(dataDir)
		meta, err := st.Load(runID)
		if err != nil {
			return err
		}
		cfg, err := st.LoadConfig(runID)
		if err != nil {
			return err
		}

		target := atTick
		if target < 0 || target > meta.Ticks {
			target = meta.Ticks
		}

		rc := cfg.RunConfig()
		rc.Ticks = 0

		var frame lava.Snapshot
		err = sim.New(cfg.Params()).RunWithCallback(context.Background(), rc, func(s lava.Snapshot) bool {
			frame = s
			return s.Tick < target
		})
		if err != nil {
			return err
		}
		svg = export.FrameToSVG(render.Project(frame))
	}

	if outFile == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Printf("%s\n", scenario.Description)
	}
	fmt.Println()

	results, err := automation.RunScenario(ctx, scenario, st)
	if err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tRUN ID\tTICKS\tFINAL\tMEAN POP")
	for _, r := range results {
		id := r.RunID
		if id == "" {
			id = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.1f\n",
			r.Name, id, r.Result.TicksTaken, len(r.Result.Final.Globs), r.Result.Metrics["population"])
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	name := preset
	if name == "" {
		name = "lavalamp"
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunSweep(ctx, &automation.ParameterSweep{
		Base:      cfg,
		Preset:    name,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
		Ticks:     cfg.Ticks,
		Seed:      cfg.Seed,
	})
	if err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tMEAN POP\tPEAK\tSPLITS\tMERGES\tPERIOD\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%.1f\t%.0f\t%.0f\t%.0f\t%.1f\n",
			r.ParamValue, r.MeanPopulation, r.PeakPopulation, r.Splits, r.Merges, r.Period)
	}
	return w.Flush()
}

// parseGrid reads name=v1,v2,... entries.
func parseGrid(entries []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(entries))
	ranges := make([][]float64, 0, len(entries))
	for _, entry := range entries {
		name, list, ok := strings.Cut(entry, "=")
		if !ok || name == "" || list == "" {
			return nil, nil, fmt.Errorf("bad grid entry %q, want name=v1,v2", entry)
		}
		var values []float64
		for _, field := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("bad value in %q: %w", entry, err)
			}
			values = append(values, v)
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}
	return names, ranges, nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if len(grid) == 0 {
		return fmt.Errorf("at least one --grid is required (settable: %s)", strings.Join(config.Settable(), ", "))
	}
	names, ranges, err := parseGrid(grid)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("searching %v for %s closest to %.3f...\n", names, metricName, target)
	params, dist, err := optim.NewGridSearch(names, ranges).Search(ctx, cfg, metricName, target)
	if err != nil && params == nil {
		return err
	}
	if params == nil {
		return fmt.Errorf("no combination ran successfully")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, n := range names {
		fmt.Fprintf(w, "  %s\t%g\n", n, params[n])
	}
	fmt.Fprintf(w, "  distance\t%.4f\n", dist)
	return w.Flush()
}
