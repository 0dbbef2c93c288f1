package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ptpure/config"
	"github.com/katalvlaran/ptpure/driver"
	"github.com/katalvlaran/ptpure/fixture"
	"github.com/katalvlaran/ptpure/registry"
	"github.com/katalvlaran/ptpure/render"
	"github.com/katalvlaran/ptpure/telemetry"
)

var (
	analyzeShowGraph  bool
	analyzeNoMerge    bool
	analyzeMethod     string
	analyzeDebug      bool
	analyzeRegistry   string
	analyzeFormat     string
	analyzeWorkers    int
	analyzeConfigPath string
	analyzeOutputDir  string
	analyzeMaxRounds  int
)

// analyzeCmd runs the full analysis pipeline over a fixture document
// and prints one verdict line per method; with --show-graph or
// --debug it also writes a DOT/HTML rendering per method under
// --output.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <fixture.yaml>",
	Short: "Analyze every method in a fixture document",
	Long: `analyze loads a YAML fixture describing method bodies as blocks of
IR-level operations (no real bytecode loader is included here) and
runs the forward flow analysis and purity checker over each method,
printing a Pure/Impure/GraphViolation verdict per method in the
fixture's declaration order.

Example:
  ptpure analyze testdata/methods.yaml --show-graph --output out/
  ptpure analyze testdata/methods.yaml --method-filter=withdraw --no-merge`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeShowGraph, "show-graph", false, "render a DOT/HTML graph per method")
	analyzeCmd.Flags().BoolVar(&analyzeNoMerge, "no-merge", false, "disable the node-merger normalization pass")
	analyzeCmd.Flags().StringVar(&analyzeMethod, "method-filter", "", "restrict analysis to methods whose name matches")
	analyzeCmd.Flags().BoolVar(&analyzeDebug, "debug", false, "emit verbose per-method logging and imply --show-graph")
	analyzeCmd.Flags().StringVar(&analyzeRegistry, "registry", "", "path to a YAML safe-method registry (default: built-in)")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "", "rendering format: dot, html, or none")
	analyzeCmd.Flags().IntVar(&analyzeWorkers, "workers", 0, "worker pool size (default: runtime.NumCPU())")
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "path to a ptpure.yaml config document")
	analyzeCmd.Flags().StringVar(&analyzeOutputDir, "output", ".", "directory for rendered artifacts")
	analyzeCmd.Flags().IntVar(&analyzeMaxRounds, "max-rounds", 0, "worklist fixpoint round budget (default: flow.DefaultMaxWorklistRounds)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	base, err := config.Load(analyzeConfigPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	var overrides config.Overrides
	if flags.Changed("show-graph") {
		overrides.ShowGraph = &analyzeShowGraph
	}
	if flags.Changed("no-merge") {
		enabled := !analyzeNoMerge
		overrides.Merge = &enabled
	}
	if flags.Changed("method-filter") {
		overrides.MethodFilter = &analyzeMethod
	}
	if flags.Changed("debug") {
		overrides.Debug = &analyzeDebug
	}
	if flags.Changed("registry") {
		overrides.RegistryPath = &analyzeRegistry
	}
	if flags.Changed("format") {
		overrides.Format = &analyzeFormat
	}
	if flags.Changed("workers") {
		overrides.WorkerCount = &analyzeWorkers
	}
	if flags.Changed("output") {
		overrides.OutputDir = &analyzeOutputDir
	}
	if flags.Changed("max-rounds") {
		overrides.MaxWorklistRounds = &analyzeMaxRounds
	}
	opts := config.Merge(base, overrides)
	if err := opts.Validate(); err != nil {
		return err
	}

	loader, err := fixture.Load(args[0])
	if err != nil {
		return err
	}

	reg := registry.Default()
	if opts.RegistryPath != "" {
		reg, err = registry.Load(opts.RegistryPath)
		if err != nil {
			return err
		}
	}

	logger := telemetry.NewNop()
	if opts.Debug {
		logger = telemetry.New(slog.LevelDebug)
	}

	driverOpts := []driver.Option{
		driver.WithRegistry(reg),
		driver.WithLogger(logger),
		driver.WithWorkerCount(opts.WorkerCount),
		driver.WithMethodFilter(opts.MethodFilter),
		driver.WithMerge(opts.Merge),
	}
	if opts.MaxWorklistRounds > 0 {
		driverOpts = append(driverOpts, driver.WithMaxWorklistRounds(opts.MaxWorklistRounds))
	}

	results, err := driver.Run(cmd.Context(), loader, driverOpts...)
	if err != nil {
		return err
	}

	for _, r := range results {
		reason := ""
		if r.Reason != "" {
			reason = ": " + r.Reason
		}
		fmt.Printf("%-40s %-14s%s\n", r.Signature, r.Result, reason)
	}

	if opts.ShowGraph && opts.Format != "none" {
		return renderArtifacts(results, opts)
	}
	return nil
}

func renderArtifacts(results []driver.MethodSummary, opts config.Options) error {
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	for _, r := range results {
		if err := renderOne(r, opts); err != nil {
			return fmt.Errorf("rendering %s: %w", r.Signature, err)
		}
	}
	return nil
}

func renderOne(r driver.MethodSummary, opts config.Options) error {
	name := sanitizeFilename(r.Signature)
	ext := ".dot"
	if opts.Format == "html" {
		ext = ".html"
	}
	path := filepath.Join(opts.OutputDir, name+ext)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if opts.Format == "html" {
		return render.HTMLTrace(f, render.Trace{Summary: r})
	}
	return render.DOT(f, r.Signature, r.ExitGraph)
}

func sanitizeFilename(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '#' || r == '/' || r == ' ' {
			out = append(out, '_')
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
