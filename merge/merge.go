// Package merge implements the node merger (C5): the Madhavan-style
// refinement that collapses a points-to graph so that no two nodes of
// the same kind ever share a (source, field) pair. Run by the flow
// analysis after joins, after field loads, at the end of every block
// and on the exit graph, it is what keeps the per-method node population
// bounded and independent of loop trip counts.
//
// Normalize repeatedly scans for a violating (source, field, kind)
// triple — more than one target sharing it — picks the least target
// under core.Node.Less as the representative, and rewrites every other
// member onto it via core.Graph.ReplaceNode. Each rewrite strictly
// decreases the graph's node count, so the loop terminates.
package merge

import (
	"github.com/katalvlaran/ptpure/core"
)

// bucketKey groups targets that must collapse to a single
// representative: the same source, the same field, and the same node
// kind. Two targets of different kinds reached via the same
// (source, field) are legitimate — e.g. one call site resolving to
// both a Parameter and a Global — and are never merged.
type bucketKey struct {
	Source core.Node
	Field  core.Field
	Kind   core.Kind
}

// Normalize collapses g in place until no (source, field, kind) triple
// has more than one target, returning the number of merge rewrites
// performed. Normalize is idempotent: calling it again on an
// already-normal graph performs zero rewrites.
//
// Complexity: O(k * (|I| + |O| + |L| + |W| + |E|)) where k is the
// number of merges performed, each bounded by the node count at the
// start of the call.
func Normalize(g *core.Graph) int {
	rewrites := 0
	for {
		old, rep, found := findViolation(g)
		if !found {
			return rewrites
		}
		g.ReplaceNode(old, rep)
		rewrites++
	}
}

// findViolation scans every inside and outside edge for a bucket with
// more than one distinct target, and returns (non-representative,
// representative, true) for the first one found. Scan order over Go's
// randomized map iteration does not affect the result: representative
// selection is driven entirely by core.Node.Less, not by discovery
// order.
func findViolation(g *core.Graph) (old, rep core.Node, found bool) {
	buckets := make(map[bucketKey]core.NodeSet)
	collect := func(src core.Node, f core.Field, targets core.NodeSet) bool {
		for t := range targets {
			k := bucketKey{Source: src, Field: f, Kind: t.Kind}
			s, ok := buckets[k]
			if !ok {
				s = core.NodeSet{}
				buckets[k] = s
			}
			s.Add(t)
		}
		return true
	}
	for _, e := range g.InsideEdges() {
		collect(e.Source, e.Field, core.NewNodeSet(e.Target))
	}
	for _, e := range g.OutsideEdges() {
		collect(e.Source, e.Field, core.NewNodeSet(e.Target))
	}

	for _, s := range buckets {
		if len(s) < 2 {
			continue
		}
		nodes := s.Slice()
		rep = nodes[0]
		for _, n := range nodes[1:] {
			if n.Less(rep) {
				rep = n
			}
		}
		for _, n := range nodes {
			if n != rep {
				return n, rep, true
			}
		}
	}
	return core.Node{}, core.Node{}, false
}
