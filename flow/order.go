// File: order.go
// Role: Reverse-postorder block scheduling via a three-color DFS.
// Determinism:
//   - Successor lists are walked in declaration order (ir.Block.Succs
//     is a slice, not a set), so the resulting order is a pure
//     function of the CFG's own statement order.
// Concurrency:
//   - None.

package flow

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/ptpure/ir"
)

// Traversal colors for the DFS state machine, following the usual
// white/gray/black convention (unvisited, on the stack, finished).
const (
	white = 0
	gray  = 1
	black = 2
)

// ErrUnreachableTail indicates a declared tail block the CFG's
// successor edges never reach from Entry; the analysis cannot assign
// it an in-graph and the CFG is malformed.
var ErrUnreachableTail = errors.New("flow: tail block is unreachable from entry")

type orderer struct {
	cfg   *ir.CFG
	state map[int]int
	order []int
}

// reversePostorder returns the CFG's blocks ordered so that, outside
// of back-edges introduced by loops, every block appears after all of
// its non-loop predecessors — the schedule the worklist loop uses to
// converge in as few rounds as possible.
func reversePostorder(cfg *ir.CFG) []int {
	o := &orderer{cfg: cfg, state: make(map[int]int, len(cfg.Blocks))}
	o.visit(cfg.Entry)
	for i, j := 0, len(o.order)-1; i < j; i, j = i+1, j-1 {
		o.order[i], o.order[j] = o.order[j], o.order[i]
	}
	return o.order
}

func (o *orderer) visit(id int) {
	switch o.state[id] {
	case gray, black:
		return
	}
	o.state[id] = gray
	blk := o.cfg.Block(id)
	if blk != nil {
		for _, s := range blk.Succs {
			o.visit(s)
		}
	}
	o.state[id] = black
	o.order = append(o.order, id)
}

// predecessors computes, for every block, the set of blocks with an
// edge into it, used to assemble a block's in-graph as the join of its
// predecessors' out-graphs.
func predecessors(cfg *ir.CFG) map[int][]int {
	preds := make(map[int][]int, len(cfg.Blocks))
	for _, b := range cfg.Blocks {
		for _, s := range b.Succs {
			preds[s] = append(preds[s], b.ID)
		}
	}
	return preds
}

func checkTailsReachable(cfg *ir.CFG, order []int) error {
	reached := make(map[int]bool, len(order))
	for _, id := range order {
		reached[id] = true
	}
	for _, t := range cfg.Tails {
		if !reached[t] {
			return fmt.Errorf("%w: block %d", ErrUnreachableTail, t)
		}
	}
	return nil
}
