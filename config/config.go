// Package config loads Options from an on-disk YAML document merged
// with command-line flag overrides (flags win), then validates the
// result with struct tags before the rest of the engine sees it.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Options is the full set of recognized configuration options
// (spec.md §6.4), plus the operational knobs (worker count, worklist
// round budget) the CLI exposes.
type Options struct {
	// ShowGraph emits text and DOT renderings of exit graphs.
	ShowGraph bool `yaml:"show_graph"`
	// Merge enables the C5 node-merger normalization pass.
	Merge bool `yaml:"merge"`
	// MethodFilter restricts analysis to methods with this name.
	MethodFilter string `yaml:"method_filter"`
	// Debug emits per-method traces and implies ShowGraph.
	Debug bool `yaml:"debug"`
	// RegistryPath points at a YAML safe-method registry document; a
	// blank path selects registry.Default().
	RegistryPath string `yaml:"registry_path"`
	// OutputDir is where DOT/HTML artifacts are written.
	OutputDir string `yaml:"output_dir" validate:"omitempty,dirpath|filepath"`
	// Format selects the rendering format: "dot", "html", or "none".
	Format string `yaml:"format" validate:"omitempty,oneof=dot html none"`
	// WorkerCount sizes the driver's worker pool; 0 selects runtime.NumCPU().
	WorkerCount int `yaml:"worker_count" validate:"gte=0"`
	// MaxWorklistRounds bounds the flow analysis's fixpoint loop; 0
	// selects flow.DefaultMaxWorklistRounds.
	MaxWorklistRounds int `yaml:"max_worklist_rounds" validate:"gte=0"`
}

// Default returns the built-in defaults applied before a YAML document
// or CLI flags are considered.
func Default() Options {
	return Options{
		Merge:     true,
		Format:    "dot",
		OutputDir: ".",
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	return validator.New()
}

// Validate checks o against its struct tags, returning every
// violation joined into one error.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("config: invalid options: %w", err)
	}
	return nil
}

// Load reads a YAML document at path on top of Default(), without
// applying any CLI overrides. A missing path is not an error: it
// returns Default() unchanged, matching a CLI invocation with no
// --config flag.
func Load(path string) (Options, error) {
	o := Default()
	if path == "" {
		return o, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return o, nil
	}
	if err != nil {
		return Options{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Options{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return o, nil
}

// Merge returns a copy of base with every field that has a non-nil
// pointer in overrides replaced by the pointed-to value — the
// "flags win" half of the merge (spec.md's configuration layering).
func Merge(base Options, overrides Overrides) Options {
	out := base
	if overrides.ShowGraph != nil {
		out.ShowGraph = *overrides.ShowGraph
	}
	if overrides.Merge != nil {
		out.Merge = *overrides.Merge
	}
	if overrides.MethodFilter != nil {
		out.MethodFilter = *overrides.MethodFilter
	}
	if overrides.Debug != nil {
		out.Debug = *overrides.Debug
		if *overrides.Debug {
			out.ShowGraph = true
		}
	}
	if overrides.RegistryPath != nil {
		out.RegistryPath = *overrides.RegistryPath
	}
	if overrides.OutputDir != nil {
		out.OutputDir = *overrides.OutputDir
	}
	if overrides.Format != nil {
		out.Format = *overrides.Format
	}
	if overrides.WorkerCount != nil {
		out.WorkerCount = *overrides.WorkerCount
	}
	if overrides.MaxWorklistRounds != nil {
		out.MaxWorklistRounds = *overrides.MaxWorklistRounds
	}
	if out.Debug {
		out.ShowGraph = true
	}
	return out
}

// Overrides mirrors Options with every field a pointer, so the CLI
// layer can distinguish "flag not passed" from "flag passed with the
// zero value" when merging on top of a loaded document.
type Overrides struct {
	ShowGraph         *bool
	Merge             *bool
	MethodFilter      *string
	Debug             *bool
	RegistryPath      *string
	OutputDir         *string
	Format            *string
	WorkerCount       *int
	MaxWorklistRounds *int
}
