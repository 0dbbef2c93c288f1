// Package transfer implements the fourteen abstract transfer rules
// (C4, spec.md §4.3) that map one normalized IR statement to a
// points-to graph mutation. Apply is the single dispatch entry point
// used by the forward flow analysis (C6).
package transfer

import (
	"github.com/katalvlaran/ptpure/core"
	"github.com/katalvlaran/ptpure/registry"
	"github.com/katalvlaran/ptpure/telemetry"
)

// Context carries the per-method state a transfer rule needs beyond
// the graph itself: whether the method is static, its parameter
// arity, the safe-method oracle, and a logger. One Context is created
// per method analysis and reused across every worklist round; it is
// never shared across methods (see the concurrency model).
//
// Fresh Inside/Load nodes are NOT numbered from a Context-local
// counter: every allocation, load, and safe-call-with-reference-result
// site carries its own monotonic index (ir.Stmt.AllocSite / LoadSite),
// assigned once by the CFG builder in deterministic statement order.
// A transfer rule is therefore a pure function of (stmt, g, ctx) —
// repeated worklist evaluation of the same statement always proposes
// the same fresh node, which is what lets the fixpoint actually reach
// core.Graph.Equal instead of oscillating.
type Context struct {
	IsStatic   bool
	ParamArity int
	Registry   *registry.Registry
	Logger     *telemetry.Logger
}

// NewContext builds a Context for one method's analysis.
func NewContext(isStatic bool, paramArity int, reg *registry.Registry, logger *telemetry.Logger) *Context {
	if logger == nil {
		logger = telemetry.NewNop()
	}
	return &Context{
		IsStatic:   isStatic,
		ParamArity: paramArity,
		Registry:   reg,
		Logger:     logger,
	}
}

// isPrestateReachable reports whether n's kind makes it a candidate
// base for synthesizing a fresh Load node on first field/array read:
// Parameter, Load, or Global (rule 7, rule 11).
func isPrestateReachable(n core.Node) bool {
	switch n.Kind {
	case core.KindParameter, core.KindLoad, core.KindGlobal:
		return true
	default:
		return false
	}
}
