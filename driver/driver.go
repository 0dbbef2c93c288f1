// Package driver implements the analysis driver (C8, spec.md §4.7): it
// walks every concrete method a ClassLoader supplies, runs the forward
// flow analysis and purity checker on each, and collects the results
// into a deterministic, index-preserving slice of MethodSummary.
//
// Methods are analyzed independently — no shared state is written
// during one method's analysis (spec.md §5, "Scheduling model") — so a
// bounded worker pool processes the method list concurrently while
// still returning results in the loader's original order.
package driver

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/katalvlaran/ptpure/core"
	"github.com/katalvlaran/ptpure/flow"
	"github.com/katalvlaran/ptpure/ir"
	"github.com/katalvlaran/ptpure/purity"
	"github.com/katalvlaran/ptpure/registry"
	"github.com/katalvlaran/ptpure/telemetry"
	"github.com/katalvlaran/ptpure/transfer"
)

// DefaultWorkerCount selects runtime.NumCPU() when Options.WorkerCount
// is left at its zero value.
const DefaultWorkerCount = 0

// Method is one concrete method supplied by a ClassLoader: its
// signature, normalized CFG, and the staticness/constructor-ness the
// transfer functions and purity checker need.
type Method struct {
	// Signature is "class#method", used as MethodSummary.Signature and
	// for method_filter / safe-registry lookups.
	Signature string
	CFG       *ir.CFG
	IsStatic  bool
	// IsConstructor marks method name "<init>"; ClassLoader
	// implementations derive this themselves so the driver never has
	// to parse the signature to find it.
	IsConstructor bool
}

// ClassLoader supplies the set of methods to analyze. Obtaining bodies
// and CFGs from real bytecode is out of scope (spec.md §1); production
// loaders and the bundled demo/fixture loader both implement this
// interface identically as far as the driver is concerned.
type ClassLoader interface {
	Methods() ([]Method, error)
}

// MethodSummary is the per-method result exposed to rendering (§6.2).
type MethodSummary struct {
	Signature string
	ExitGraph *core.Graph
	Result    purity.Status
	Reason    string
}

// Options configures one driver Run.
type Options struct {
	Registry          *registry.Registry
	Logger            *telemetry.Logger
	WorkerCount       int
	MethodFilter      string
	Merge             bool
	MaxWorklistRounds int
}

// Option configures an Options value.
type Option func(*Options)

// WithRegistry sets the safe-method oracle. Defaults to registry.Default().
func WithRegistry(r *registry.Registry) Option {
	return func(o *Options) { o.Registry = r }
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(l *telemetry.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithWorkerCount overrides the pool size; non-positive values fall
// back to runtime.NumCPU().
func WithWorkerCount(n int) Option {
	return func(o *Options) { o.WorkerCount = n }
}

// WithMethodFilter restricts analysis to methods whose whole Signature,
// or whose method name after the '#', equals the given name; an empty
// filter analyzes everything.
func WithMethodFilter(name string) Option {
	return func(o *Options) { o.MethodFilter = name }
}

// WithMerge toggles the C5 node-merger pass (see flow.WithMerge); P5
// requires this flag to never change a verdict.
func WithMerge(enabled bool) Option {
	return func(o *Options) { o.Merge = enabled }
}

// WithMaxWorklistRounds overrides flow's round budget.
func WithMaxWorklistRounds(n int) Option {
	return func(o *Options) { o.MaxWorklistRounds = n }
}

func defaultOptions() Options {
	return Options{
		Registry:    registry.Default(),
		Logger:      telemetry.NewNop(),
		WorkerCount: DefaultWorkerCount,
		Merge:       true,
	}
}

// Run analyzes every method loader.Methods() returns (after applying
// MethodFilter) and returns one MethodSummary per surviving method, in
// the same order loader.Methods() produced them.
func Run(ctx context.Context, loader ClassLoader, opts ...Option) ([]MethodSummary, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.WorkerCount <= 0 {
		o.WorkerCount = runtime.NumCPU()
	}

	methods, err := loader.Methods()
	if err != nil {
		return nil, fmt.Errorf("driver: loading methods: %w", err)
	}

	var selected []int
	for i, m := range methods {
		if o.MethodFilter != "" && m.Signature != o.MethodFilter && !containsMethodName(m.Signature, o.MethodFilter) {
			continue
		}
		selected = append(selected, i)
	}

	results := make([]MethodSummary, len(selected))
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < o.WorkerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pos := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				results[pos] = analyzeOne(methods[selected[pos]], o)
			}
		}()
	}
	for pos := range selected {
		jobs <- pos
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

func containsMethodName(signature, filter string) bool {
	idx := indexByte(signature, '#')
	if idx < 0 {
		return signature == filter
	}
	return signature[idx+1:] == filter
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

func analyzeOne(m Method, o Options) MethodSummary {
	summary := MethodSummary{Signature: m.Signature}

	tctx := transfer.NewContext(m.IsStatic, m.CFG.ParamArity, o.Registry, o.Logger)
	flowOpts := []flow.Option{flow.WithMerge(o.Merge)}
	if o.MaxWorklistRounds > 0 {
		flowOpts = append(flowOpts, flow.WithMaxWorklistRounds(o.MaxWorklistRounds))
	}

	exit, err := flow.Analyze(m.CFG, tctx, flowOpts...)
	if err != nil {
		o.Logger.Error("driver: flow analysis failed", "signature", m.Signature, "error", err)
		summary.Result = purity.GraphViolation
		summary.Reason = err.Error()
		summary.ExitGraph = core.NewGraph()
		return summary
	}

	verdict := purity.Judge(exit, m.IsConstructor)
	summary.ExitGraph = exit
	summary.Result = verdict.Status
	summary.Reason = verdict.Reason
	return summary
}
