package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/export"
	"github.com/san-kum/sortviz/internal/httpapi"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/playback"
	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/sorting"
	"github.com/san-kum/sortviz/internal/trace"
	"github.com/san-kum/sortviz/internal/viz"
)

var (
	verbose bool
	logFile string
	logger  = zap.NewNop()

	size       int
	speed      int
	seed       int64
	shape      string
	values     string
	configFile string
	preset     string
	verify     bool

	metricsAddr string
	listenAddr  string
	showBars    bool
	stepIndex   int
	outFile     string
	progressSVG bool
)

// main registers the commands and runs the interactive visualizer when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "sortviz [algorithm]",
		Short: "sorting algorithm visualizer",
		Args:  cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger(cmd.Name() == "sortviz")
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE:         runInteractive,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&logFile, "log-file", "", "write logs to file (required for logs in the interactive view)")
	pf.IntVar(&size, "size", config.DefaultSize, "array size")
	pf.IntVar(&speed, "speed", config.DefaultSpeed, "playback speed (10-100)")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 for time based)")
	pf.StringVar(&shape, "shape", "random", "array shape: random, reversed, nearly-sorted, few-unique")
	pf.StringVar(&values, "values", "", "explicit comma separated values, overrides --size")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.BoolVar(&verify, "verify", false, "check every step log before playing it")

	runCmd := &cobra.Command{
		Use:   "run [algorithm]",
		Short: "play a sort in the terminal without the interactive view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHeadless,
	}
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address while playing")
	runCmd.Flags().BoolVar(&showBars, "bars", false, "draw bars for every step")

	stepsCmd := &cobra.Command{
		Use:   "steps [algorithm]",
		Short: "print the full step log as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  printSteps,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [algorithm]",
		Short: "plot input, result and sorting progress",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [algorithm]",
		Short: "export a step as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	exportCmd.Flags().IntVar(&stepIndex, "step", -1, "step index to export (-1 for the last)")
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	exportCmd.Flags().BoolVar(&progressSVG, "progress", false, "export the sorted-fraction curve instead of a step")

	algorithmsCmd := &cobra.Command{
		Use:   "algorithms",
		Short: "list available algorithms",
		Args:  cobra.NoArgs,
		RunE:  listAlgorithms,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRESET\tALGORITHM\tSIZE\tSPEED\tSHAPE")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				n := p.Size
				if len(p.Values) > 0 {
					n = len(p.Values)
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", name, p.Algorithm, n, p.Speed, p.Shape)
			}
			return w.Flush()
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "compare step counts of every algorithm on the same array",
		Args:  cobra.NoArgs,
		RunE:  benchAlgorithms,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the algorithm catalogue, step logs and metrics over HTTP",
		Args:  cobra.NoArgs,
		RunE:  serveHTTP,
	}
	serveCmd.Flags().StringVar(&listenAddr, "addr", ":8080", "listen address")

	rootCmd.AddCommand(runCmd, stepsCmd, plotCmd, exportCmd, algorithmsCmd, presetsCmd, benchCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogger builds the production zap logger. The interactive view owns
// the terminal, so it only logs when --log-file is set.
func setupLogger(interactive bool) error {
	if interactive && logFile == "" {
		return nil
	}
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	if logFile != "" {
		cfg.OutputPaths = []string{logFile}
		cfg.ErrorOutputPaths = []string{logFile}
	}
	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	logger = l
	return nil
}

// resolveConfig layers defaults, preset, config file, flags and the
// algorithm argument, in that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("size") {
		cfg.Size = size
		cfg.Values = nil
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("shape") {
		cfg.Shape = shape
	}
	if flags.Changed("verify") {
		cfg.Verify = verify
	}
	if flags.Changed("values") {
		vals, err := parseValues(values)
		if err != nil {
			return nil, err
		}
		cfg.Values = vals
	}
	if len(args) > 0 {
		cfg.Algorithm = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseValues(s string) ([]float64, error) {
	var out []float64
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", f, err)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, trace.ErrInvalidSize
	}
	return out, nil
}

// generate resolves the config and produces the algorithm's step log
// without playing it.
func generate(cmd *cobra.Command, args []string) (*config.Config, *session.Run, error) {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return nil, nil, err
	}
	input, err := cfg.Input()
	if err != nil {
		return nil, nil, err
	}
	sess := session.New(sorting.NewRegistry(), playback.New(playback.WithLogger(logger)),
		session.WithLogger(logger), session.WithVerify(cfg.Verify))
	r, err := sess.Prepare(sorting.ParseAlgorithm(cfg.Algorithm), input)
	if err != nil {
		return nil, nil, err
	}
	return cfg, r, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	reg := sorting.NewRegistry()
	sess := session.New(reg, playback.New(playback.WithLogger(logger)),
		session.WithLogger(logger), session.WithVerify(cfg.Verify))
	m, err := viz.NewModel(cmd.Context(), cfg, sess, reg)
	if err != nil {
		return err
	}
	return viz.Run(m)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	input, err := cfg.Input()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	reg := sorting.NewRegistry()
	promReg := prometheus.NewRegistry()
	collector, err := metrics.NewPlayback(promReg)
	if err != nil {
		return err
	}

	if metricsAddr != "" {
		srv := &http.Server{Addr: metricsAddr, Handler: httpapi.NewHandler(reg, promReg, logger)}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", zap.Error(err))
			}
		}()
		defer srv.Shutdown(context.Background())
		logger.Info("serving metrics", zap.String("addr", metricsAddr))
	}

	player := playback.New(playback.WithLogger(logger), playback.WithRecorder(collector))
	sess := session.New(reg, player,
		session.WithLogger(logger),
		session.WithObserver(collector),
		session.WithVerify(cfg.Verify),
		session.WithListener(func(r *session.Run, f trace.Frame) {
			fmt.Printf("[%3d/%d] %s\n", f.Index+1, f.Total, f.Step.Description)
			if showBars {
				fmt.Println(viz.RenderBars(f.Step.Elements, 60, 8, viz.ThemeClassic))
			}
		}))

	r, err := sess.Play(ctx, sorting.ParseAlgorithm(cfg.Algorithm), input, cfg.Speed)
	if err != nil {
		return err
	}
	if r.Placeholder() {
		fmt.Printf("%s is not implemented yet, showing %s\n", r.Algorithm, r.Effective)
	}

	status := sess.Wait()
	sum := metrics.Summarize(r.Steps)
	fmt.Printf("\n%s: %s after %d of %d steps (%.0f comparisons, %.0f swaps)\n",
		r.Algorithm, status, r.Cursor()+1, len(r.Steps), sum["comparisons"], sum["swaps"])
	if status == playback.Cancelled {
		return context.Canceled
	}
	return nil
}

func printSteps(cmd *cobra.Command, args []string) error {
	_, r, err := generate(cmd, args)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		ID        string            `json:"id"`
		Algorithm sorting.Algorithm `json:"algorithm"`
		Effective sorting.Algorithm `json:"effective"`
		Input     []float64         `json:"input"`
		Steps     []trace.Step      `json:"steps"`
	}{r.ID.String(), r.Algorithm, r.Effective, trace.Values(r.Input), r.Steps})
}

func plotRun(cmd *cobra.Command, args []string) error {
	_, r, err := generate(cmd, args)
	if err != nil {
		return err
	}

	fmt.Printf("algorithm: %s\n", r.Algorithm)
	if r.Placeholder() {
		fmt.Printf("visualized: %s\n", r.Effective)
	}
	fmt.Printf("size: %d\n", len(r.Input))
	fmt.Printf("steps: %d\n\n", len(r.Steps))

	plots := []struct {
		caption string
		data    []float64
	}{
		{"input", trace.Values(r.Input)},
		{"result", trace.Values(r.Steps[len(r.Steps)-1].Elements)},
		{"sorted % per step", progressCurve(r.Steps)},
	}
	for _, p := range plots {
		if len(p.data) < 2 {
			continue
		}
		fmt.Println(asciigraph.Plot(p.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		))
		fmt.Println()
	}
	return nil
}

func progressCurve(steps []trace.Step) []float64 {
	out := make([]float64, len(steps))
	for i, s := range steps {
		if n := len(s.Elements); n > 0 {
			out[i] = float64(len(s.Sorted)) / float64(n) * 100
		}
	}
	return out
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, r, err := generate(cmd, args)
	if err != nil {
		return err
	}

	var svg string
	if progressSVG {
		svg = export.ProgressToSVG(r.Steps, 800, 300, "#00ff88")
	} else {
		i := stepIndex
		if i < 0 {
			i = len(r.Steps) - 1
		}
		if i >= len(r.Steps) {
			return fmt.Errorf("step %d out of range (run has %d steps)", i, len(r.Steps))
		}
		svg = export.StepToSVG(r.Steps[i], 800, 400, export.DefaultPalette)
	}
	if svg == "" {
		return fmt.Errorf("nothing to export")
	}

	if outFile == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	logger.Info("svg exported", zap.String("file", outFile))
	return nil
}

func listAlgorithms(cmd *cobra.Command, args []string) error {
	reg := sorting.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tNAME\tTIME\tSPACE\tBEST\tWORST\tNOTE")
	for _, a := range reg.List() {
		info, _ := reg.Info(a)
		note := ""
		if info.Placeholder {
			note = "not implemented yet, shows bubble sort"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			a, info.Name, info.TimeComplexity, info.SpaceComplexity, info.BestCase, info.WorstCase, note)
	}
	return w.Flush()
}

func benchAlgorithms(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	input, err := cfg.Input()
	if err != nil {
		return err
	}
	reg := sorting.NewRegistry()

	fmt.Printf("benchmarking %d elements\n\n", len(input))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tEFFECTIVE\tSTEPS\tCOMPARISONS\tSWAPS\tGENERATE\tPLAYBACK@SPEED")

	for _, a := range reg.List() {
		_, effective, err := reg.Resolve(a)
		if err != nil {
			return err
		}
		start := time.Now()
		steps, err := reg.Steps(a, input)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		sum := metrics.Summarize(steps)
		playTime := time.Duration(len(steps)-1) * playback.Delay(cfg.Speed)
		fmt.Fprintf(w, "%s\t%s\t%.0f\t%.0f\t%.0f\t%v\t%v\n",
			a, effective, sum["steps"], sum["comparisons"], sum["swaps"], elapsed, playTime)
	}
	return w.Flush()
}

func serveHTTP(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	srv := &http.Server{Addr: listenAddr, Handler: httpapi.NewHandler(sorting.NewRegistry(), promReg, logger)}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	logger.Info("listening", zap.String("addr", listenAddr))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
