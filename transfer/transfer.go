// File: transfer.go
// Role: The fourteen transfer rules (§4.3) and the Apply dispatcher.
// Determinism:
//   - Every rule is a pure function of (stmt, g, ctx); Apply never
//     consults wall-clock time or randomness.
// Concurrency:
//   - None: Apply mutates g in place; callers (flow) own g exclusively.

package transfer

import (
	"strings"

	"github.com/katalvlaran/ptpure/core"
	"github.com/katalvlaran/ptpure/ir"
)

// V returns points_to(e) when e names a bound local, else an empty
// set — "e is a non-reference constant" per §4.3's notation.
func v(g *core.Graph, local string) core.NodeSet {
	if local == "" {
		return core.NodeSet{}
	}
	return g.PointsTo(local)
}

// coreField converts an IR field reference into the graph's Field. Only
// the name and the static flag carry over: a static field's declaring
// class is not part of its identity in the graph.
func coreField(f ir.Field) core.Field {
	return core.Field{Name: f.Name, IsStatic: f.IsStatic}
}

// Apply mutates g in place according to stmt, per the matching rule in
// §4.3. Statements whose Kind is not recognized, field/array loads and
// stores with no base local (Receiver == ""), and calls whose Target is
// not "class#method" are logged at Warn and treated as a no-op — §7
// error category 1 ("ill-formed IR / unresolvable type"). An assigning
// statement with an empty LHS is skipped without a log entry.
func Apply(stmt ir.Stmt, g *core.Graph, ctx *Context) {
	switch stmt.Kind {
	case ir.StmtFieldLoad, ir.StmtFieldStore, ir.StmtArrayLoad, ir.StmtArrayStore:
		if stmt.Receiver == "" {
			ctx.Logger.Warn("transfer: load/store without a base local treated as no-op",
				"kind", stmt.Kind.String())
			return
		}
	}
	switch stmt.Kind {
	case ir.StmtIdentityThis:
		applyIdentityThis(stmt, g)
	case ir.StmtIdentityParam:
		applyIdentityParam(stmt, g, ctx)
	case ir.StmtAlloc, ir.StmtAllocArray:
		applyAlloc(stmt, g)
	case ir.StmtCopy, ir.StmtCast:
		applyCopy(stmt, g)
	case ir.StmtFieldLoad:
		applyFieldLoad(stmt, g, ctx)
	case ir.StmtFieldStore:
		applyFieldStore(stmt, g)
	case ir.StmtStaticLoad:
		applyStaticLoad(stmt, g, ctx)
	case ir.StmtStaticStore:
		applyStaticStore(stmt, g)
	case ir.StmtArrayLoad:
		applyArrayLoad(stmt, g, ctx)
	case ir.StmtArrayStore:
		applyArrayStore(stmt, g)
	case ir.StmtCall:
		applyCall(stmt, g, ctx)
	case ir.StmtReturn, ir.StmtBranch, ir.StmtNoop:
		// Identity on the graph (rule 14).
	default:
		ctx.Logger.Warn("transfer: unrecognized statement kind treated as no-op",
			"kind", stmt.Kind.String())
	}
}

// Rule 1: v := @this.
func applyIdentityThis(stmt ir.Stmt, g *core.Graph) {
	if stmt.LHS == "" {
		return
	}
	g.StrongUpdate(stmt.LHS, core.NewNodeSet(core.Parameter(0)))
}

// Rule 2: v := @param k. k' = k+1 for instance methods, else k.
func applyIdentityParam(stmt ir.Stmt, g *core.Graph, ctx *Context) {
	if stmt.LHS == "" {
		return
	}
	k := stmt.ParamIndex
	if !ctx.IsStatic {
		k++
	}
	g.StrongUpdate(stmt.LHS, core.NewNodeSet(core.Parameter(k)))
}

// Rules 3/4: v := new T / v := new T[n].
func applyAlloc(stmt ir.Stmt, g *core.Graph) {
	if stmt.LHS == "" {
		return
	}
	g.StrongUpdate(stmt.LHS, core.NewNodeSet(core.Inside(stmt.AllocSite)))
}

// Rules 5/6: v := u (copy) and v := (T) u (cast) share the same rule.
func applyCopy(stmt ir.Stmt, g *core.Graph) {
	if stmt.LHS == "" {
		return
	}
	g.StrongUpdate(stmt.LHS, v(g, stmt.RHS))
}

// Rule 7: v := u.f.
func applyFieldLoad(stmt ir.Stmt, g *core.Graph, ctx *Context) {
	if stmt.LHS == "" {
		return
	}
	f := coreField(stmt.Field)
	result := core.NodeSet{}
	for n := range v(g, stmt.Receiver) {
		result = result.Union(g.AllTargets(n, f))
		if isPrestateReachable(n) && !g.HasOutsideEdge(n, f) {
			fresh := core.Load(stmt.LoadSite)
			g.AddOutsideEdge(n, f, fresh)
			result.Add(fresh)
		}
	}
	g.StrongUpdate(stmt.LHS, result)
}

// Rule 8: u.f := x.
func applyFieldStore(stmt ir.Stmt, g *core.Graph) {
	x := stmt.StoredValue()
	f := coreField(stmt.Field)
	for n := range v(g, stmt.Receiver) {
		for t := range v(g, x) {
			g.AddInsideEdge(n, f, t)
		}
		g.RecordMutation(n, f)
	}
}

// Rule 9: v := C.f, treated as a field load with source Global.
func applyStaticLoad(stmt ir.Stmt, g *core.Graph, ctx *Context) {
	if stmt.LHS == "" {
		return
	}
	f := coreField(stmt.Field)
	result := g.AllTargets(core.Global, f)
	if !g.HasOutsideEdge(core.Global, f) {
		fresh := core.Load(stmt.LoadSite)
		g.AddOutsideEdge(core.Global, f, fresh)
		result.Add(fresh)
	}
	g.StrongUpdate(stmt.LHS, result)
}

// Rule 10: C.f := x.
func applyStaticStore(stmt ir.Stmt, g *core.Graph) {
	x := stmt.StoredValue()
	f := coreField(stmt.Field)
	for t := range v(g, x) {
		g.AddInsideEdge(core.Global, f, t)
		g.MarkEscaped(t)
	}
	g.RecordMutation(core.Global, f)
	g.SetGlobalSideEffect()
}

// Rule 11: v := u[_], the simplified array-load model.
func applyArrayLoad(stmt ir.Stmt, g *core.Graph, ctx *Context) {
	if stmt.LHS == "" {
		return
	}
	result := core.NodeSet{}
	for n := range v(g, stmt.Receiver) {
		result = result.Union(g.AllFieldTargets(n))
		if isPrestateReachable(n) {
			fresh := core.Load(stmt.LoadSite)
			g.AddOutsideEdge(n, core.ArrayElem, fresh)
			result.Add(fresh)
		}
	}
	g.StrongUpdate(stmt.LHS, result)
}

// Rule 12: u[_] := x. No edges added; only the mutation record.
func applyArrayStore(stmt ir.Stmt, g *core.Graph) {
	for n := range v(g, stmt.Receiver) {
		g.RecordMutation(n, core.ArrayElem)
	}
}

// Rule 13: [v :=] m(a0 .. an). Target is "class#method"; method
// "<init>" denotes a constructor for the registry lookup.
func applyCall(stmt ir.Stmt, g *core.Graph, ctx *Context) {
	class, method, ok := splitTarget(stmt.Target)
	if !ok {
		ctx.Logger.Warn("transfer: malformed call target treated as no-op", "target", stmt.Target)
		return
	}
	isConstructor := method == "<init>"

	if ctx.Registry != nil && ctx.Registry.IsSafe(class, method, isConstructor) {
		if stmt.LHS != "" && stmt.ResultIsRef {
			g.StrongUpdate(stmt.LHS, core.NewNodeSet(core.Inside(stmt.CallSite)))
		}
		return
	}

	args := make([]string, 0, len(stmt.Args)+1)
	if stmt.Receiver != "" {
		args = append(args, stmt.Receiver)
	}
	args = append(args, stmt.Args...)
	for _, a := range args {
		for n := range v(g, a) {
			g.MarkEscaped(n)
		}
	}
	g.SetGlobalSideEffect()

	if stmt.LHS != "" && stmt.ResultIsRef {
		g.StrongUpdate(stmt.LHS, core.NewNodeSet(core.Global))
	}
}

// splitTarget parses "class#method" into its two components.
func splitTarget(target string) (class, method string, ok bool) {
	idx := strings.LastIndex(target, "#")
	if idx < 0 {
		return "", "", false
	}
	return target[:idx], target[idx+1:], true
}
