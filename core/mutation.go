// File: mutation.go
// Role: Mutation bookkeeping (W, E, s): record_mutation, mark_escaped, set_global_side_effect.
// Determinism:
//   - All operations are idempotent set/flag updates.
// Concurrency:
//   - None: a Graph is owned by exactly one flow-analysis run.

package core

// RecordMutation adds (n, f) to W. f may be the ArrayElem sentinel for
// an array-element write.
//
// Complexity: O(1).
func (g *Graph) RecordMutation(n Node, f Field) {
	g.W[WriteKey{Node: n, Field: f}] = struct{}{}
}

// Mutated reports whether (n, f) is a member of W.
func (g *Graph) Mutated(n Node, f Field) bool {
	_, ok := g.W[WriteKey{Node: n, Field: f}]
	return ok
}

// MutatedFields returns the set of fields written on n, in unspecified
// order, used by the purity checker to report "via field f".
func (g *Graph) MutatedFields(n Node) []Field {
	var out []Field
	for k := range g.W {
		if k.Node == n {
			out = append(out, k.Field)
		}
	}
	return out
}

// MarkEscaped adds n to E: the address of n has been captured in
// static storage (directly globally escaped).
//
// Complexity: O(1).
func (g *Graph) MarkEscaped(n Node) {
	g.E.Add(n)
}

// Escaped reports whether n is a member of E.
func (g *Graph) Escaped(n Node) bool {
	return g.E.Contains(n)
}

// SetGlobalSideEffect sets the sticky flag s := true. Once set, s is
// never cleared by any operation other than constructing a fresh Graph.
//
// Complexity: O(1).
func (g *Graph) SetGlobalSideEffect() {
	g.s = true
}

// GlobalSideEffect reports the current value of s.
func (g *Graph) GlobalSideEffect() bool {
	return g.s
}
