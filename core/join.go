// File: join.go
// Role: Monotone join (merge_with) and copy_into — the lattice LUB operator (§4.2).
// Determinism:
//   - Commutative, associative, idempotent with respect to componentwise inclusion;
//     the flow analysis's per-block joins rely on these properties for fixpoint detection.
// Concurrency:
//   - None: a Graph is owned by exactly one flow-analysis run.

package core

// CopyInto overwrites dest with a deep copy of g's contents. Join uses
// it to seed a fresh graph before merging the second operand in.
//
// Complexity: O(|L| + |I| + |O| + |W| + |E|).
func (g *Graph) CopyInto(dest *Graph) {
	dest.L = make(map[string]NodeSet, len(g.L))
	for v, s := range g.L {
		dest.L[v] = s.Clone()
	}
	dest.inside = cloneBucket(g.inside)
	dest.outside = cloneBucket(g.outside)
	dest.W = make(map[WriteKey]struct{}, len(g.W))
	for k := range g.W {
		dest.W[k] = struct{}{}
	}
	dest.E = g.E.Clone()
	dest.s = g.s
}

func cloneBucket(bucket map[edgeKey]NodeSet) map[edgeKey]NodeSet {
	out := make(map[edgeKey]NodeSet, len(bucket))
	for k, s := range bucket {
		out[k] = s.Clone()
	}
	return out
}

// MergeWith joins other into g in place: g := g ⊔ other, the
// least-upper-bound operator of the lattice (§4.2).
//
//   - L is pointwise union of target sets.
//   - I, O are unioned per (source, field) bucket.
//   - W, E are unioned.
//   - s is ORed.
//
// Commutative, associative, and idempotent with respect to the partial
// order (componentwise inclusion); combined with the finite per-method
// domains (nodes, fields, locals), repeated joining over a worklist
// terminates (P3, P4).
//
// Complexity: O(|other.L| + |other.W| + |other.E|) plus O(|g.I| + |g.O| +
// |other.I| + |other.O|), since both edge buckets are rebuilt.
func (g *Graph) MergeWith(other *Graph) {
	for v, s := range other.L {
		if existing, ok := g.L[v]; ok {
			g.L[v] = existing.Union(s)
		} else {
			g.L[v] = s.Clone()
		}
	}
	g.inside = unionBuckets(g.inside, other.inside)
	g.outside = unionBuckets(g.outside, other.outside)
	for k := range other.W {
		g.W[k] = struct{}{}
	}
	for n := range other.E {
		g.E.Add(n)
	}
	g.s = g.s || other.s
}

func unionBuckets(a, b map[edgeKey]NodeSet) map[edgeKey]NodeSet {
	out := make(map[edgeKey]NodeSet, len(a)+len(b))
	for k, s := range a {
		out[k] = s.Clone()
	}
	for k, s := range b {
		if existing, ok := out[k]; ok {
			out[k] = existing.Union(s)
		} else {
			out[k] = s.Clone()
		}
	}
	return out
}

// Join returns a freshly allocated graph equal to a ⊔ b, leaving both
// inputs untouched. Convenience wrapper over CopyInto + MergeWith for
// callers that must not mutate either operand.
func Join(a, b *Graph) *Graph {
	out := NewGraph()
	a.CopyInto(out)
	out.MergeWith(b)
	return out
}
