// File: types.go
// Role: Options and the TraceHook contract for the forward flow analysis.
// Determinism:
//   - Option application order is caller-controlled and has no effect
//     on the analysis result, only on diagnostics/merge policy.
// Concurrency:
//   - None: one Analyze call owns its CFG and Context exclusively.

package flow

import (
	"github.com/katalvlaran/ptpure/core"
)

// DefaultMaxWorklistRounds bounds the worklist loop so a malformed or
// adversarial CFG cannot spin the analysis forever; exceeding it is a
// GraphViolation-adjacent abort, always logged, never silent.
const DefaultMaxWorklistRounds = 10_000

// TraceHook receives a milestone callback after every block visit,
// used by the HTML debug trace (render.HTMLTrace) to bundle
// intermediate graph snapshots. blockID is the ir.Block.ID just
// processed; round is the 1-based worklist round; out is the block's
// freshly computed out-graph (read-only — hooks must not mutate it).
type TraceHook func(round int, blockID int, out *core.Graph)

// Options configures one Analyze call.
type Options struct {
	// Merge enables the C5 node-merger normalization pass after each
	// join of two or more predecessors, after each field-load statement,
	// at the end of every block, and once more on the final exit graph.
	// Disabling it trades precision/boundedness for a closer
	// look at the raw per-statement graph, used by --no-merge (P5).
	Merge bool

	// MaxWorklistRounds bounds worklist iterations; zero selects
	// DefaultMaxWorklistRounds.
	MaxWorklistRounds int

	// Trace, if non-nil, is invoked after each block's out-graph is
	// computed.
	Trace TraceHook
}

// Option configures an Options value.
type Option func(*Options)

// WithMerge toggles the node-merger normalization pass.
func WithMerge(enabled bool) Option {
	return func(o *Options) { o.Merge = enabled }
}

// WithMaxWorklistRounds overrides the default round budget.
func WithMaxWorklistRounds(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxWorklistRounds = n
		}
	}
}

// WithTrace installs a TraceHook.
func WithTrace(hook TraceHook) Option {
	return func(o *Options) { o.Trace = hook }
}

func defaultOptions() Options {
	return Options{Merge: true, MaxWorklistRounds: DefaultMaxWorklistRounds}
}
