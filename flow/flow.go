// File: flow.go
// Role: The forward worklist flow analysis (C6, §5): per-block
// in-graph = join of predecessor out-graphs, per-statement transfer
// via transfer.Apply, fixpoint detection via core.Graph.Equal, and the
// method's exit graph = join of every tail block's out-graph.
// Determinism:
//   - Blocks are scheduled in reverse-postorder every round; the
//     worklist itself is the fixed block list, not a dynamic queue,
//     so round count and iteration order are pure functions of the CFG.
// Concurrency:
//   - None: one Analyze call owns its CFG, Context, and per-block
//     graphs exclusively. The driver's worker pool is where
//     concurrency across methods lives.
package flow

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/ptpure/core"
	"github.com/katalvlaran/ptpure/ir"
	"github.com/katalvlaran/ptpure/merge"
	"github.com/katalvlaran/ptpure/transfer"
)

// ErrMaxRoundsExceeded indicates the worklist did not reach a fixpoint
// within the configured round budget — almost always a malformed CFG
// (a Succs cycle with no converging transfer, e.g. unbounded fresh-node
// creation), never a healthy large method.
var ErrMaxRoundsExceeded = errors.New("flow: worklist did not converge within MaxWorklistRounds")

// walker holds the mutable state of one worklist run: per-block
// out-graphs, the fixed visitation order, and the predecessor index.
type walker struct {
	cfg   *ir.CFG
	ctx   *transfer.Context
	opts  Options
	order []int
	preds map[int][]int
	outs  map[int]*core.Graph
}

// Analyze runs the forward flow analysis over cfg and returns the
// method's exit graph: the join of every tail block's out-graph, after
// an optional final merge-normalization pass.
//
// Complexity: O(rounds * |blocks| * per-block transfer cost), bounded
// by MaxWorklistRounds.
func Analyze(cfg *ir.CFG, ctx *transfer.Context, opts ...Option) (*core.Graph, error) {
	if cfg == nil {
		return nil, fmt.Errorf("flow: nil CFG")
	}
	if len(cfg.Blocks) == 0 {
		return nil, fmt.Errorf("flow: CFG has no blocks")
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	order := reversePostorder(cfg)
	if err := checkTailsReachable(cfg, order); err != nil {
		return nil, err
	}

	w := &walker{
		cfg:   cfg,
		ctx:   ctx,
		opts:  o,
		order: order,
		preds: predecessors(cfg),
		outs:  make(map[int]*core.Graph, len(cfg.Blocks)),
	}
	for _, id := range order {
		w.outs[id] = core.NewGraph()
	}

	if err := w.run(); err != nil {
		return nil, err
	}

	return w.exitGraph(), nil
}

// run drives the fixpoint loop: one pass over the schedule per round,
// stopping as soon as a round leaves every block's out-graph unchanged.
func (w *walker) run() error {
	round := 0
	for {
		round++
		if round > w.opts.MaxWorklistRounds {
			w.ctx.Logger.Error("flow: worklist round budget exceeded",
				"max_rounds", w.opts.MaxWorklistRounds)
			return ErrMaxRoundsExceeded
		}

		changed := false
		for _, id := range w.order {
			out := w.computeBlockOut(id)
			prev := w.outs[id]
			if !out.Equal(prev) {
				changed = true
			}
			w.outs[id] = out
			if w.opts.Trace != nil {
				w.opts.Trace(round, id, out)
			}
		}
		if !changed {
			return nil
		}
	}
}

// computeBlockOut joins the current out-graphs of id's predecessors
// into a fresh in-graph (empty for the entry block with no
// predecessors), then applies every statement's transfer in order.
// With Merge enabled the graph is normalized after a join of two or
// more predecessors, after every field-load statement, and once more
// at the end of the block.
func (w *walker) computeBlockOut(id int) *core.Graph {
	in := core.NewGraph()
	for _, p := range w.preds[id] {
		in.MergeWith(w.outs[p])
	}
	if w.opts.Merge && len(w.preds[id]) > 1 {
		merge.Normalize(in)
	}

	blk := w.cfg.Block(id)
	for _, stmt := range blk.Stmts {
		transfer.Apply(stmt, in, w.ctx)
		if w.opts.Merge && stmt.Kind == ir.StmtFieldLoad {
			merge.Normalize(in)
		}
	}
	if w.opts.Merge {
		merge.Normalize(in)
	}
	return in
}

// exitGraph joins every tail block's current out-graph and applies a
// final merge-normalization pass when enabled, producing the method
// summary's graph.
func (w *walker) exitGraph() *core.Graph {
	exit := core.NewGraph()
	for _, t := range w.cfg.Tails {
		exit.MergeWith(w.outs[t])
	}
	if w.opts.Merge {
		merge.Normalize(exit)
	}
	return exit
}
