// File: locals.go
// Role: Local-variable bindings (L): points_to and strong_update.
// Determinism:
//   - PointsTo returns the live NodeSet; callers that need a stable
//     iteration order must sort Slice() by Node.ID themselves.
// Concurrency:
//   - None: a Graph is owned by exactly one flow-analysis run.

package core

// PointsTo returns the set of nodes local v may alias (L[v]). A local
// that has never been bound returns an empty, non-nil set — "empty
// when v is unbound" per the points-to contract, not an error.
//
// Complexity: O(1).
func (g *Graph) PointsTo(v string) NodeSet {
	if s, ok := g.L[v]; ok {
		return s
	}
	return NodeSet{}
}

// StrongUpdate replaces L[v] with s in place, discarding whatever v
// previously pointed to. This is the *strong* update used for local
// assignments and allocations (§9, "Strong vs weak updates"): local
// facts are single-point and carry no history between program points,
// unlike heap edges, which are only ever added, never replaced.
//
// Complexity: O(1).
func (g *Graph) StrongUpdate(v string, s NodeSet) {
	if s == nil {
		s = NodeSet{}
	}
	g.L[v] = s.Clone()
}
