// File: api.go
// Role: Thin, deterministic public facade exposing read-only snapshots for rendering (§6.2).
// Policy:
//   - No algorithms or hidden state here; every exported accessor is a
//     direct, O(1) or O(size) read of the fields declared in types.go.
// Concurrency:
//   - None: a Graph is owned by exactly one flow-analysis run.

package core

// Locals returns a snapshot of L: local-variable name to the set of
// nodes it may alias. The returned map and sets are independent copies
// safe for the caller (rendering, driver.MethodSummary) to retain.
//
// Complexity: O(|L|).
func (g *Graph) Locals() map[string]NodeSet {
	out := make(map[string]NodeSet, len(g.L))
	for v, s := range g.L {
		out[v] = s.Clone()
	}
	return out
}

// Edge is a single (source, field, target) triple, used by the
// exported edge snapshots below.
type Edge struct {
	Source Node
	Field  Field
	Target Node
}

// InsideEdges returns every inside edge as a flat, independent slice.
//
// Complexity: O(|I|).
func (g *Graph) InsideEdges() []Edge {
	var out []Edge
	g.insideEdges(func(src Node, f Field, targets NodeSet) bool {
		for t := range targets {
			out = append(out, Edge{Source: src, Field: f, Target: t})
		}
		return true
	})
	return out
}

// OutsideEdges returns every outside edge as a flat, independent slice.
//
// Complexity: O(|O|).
func (g *Graph) OutsideEdges() []Edge {
	var out []Edge
	g.outsideEdges(func(src Node, f Field, targets NodeSet) bool {
		for t := range targets {
			out = append(out, Edge{Source: src, Field: f, Target: t})
		}
		return true
	})
	return out
}

// WriteSet returns an independent snapshot of W.
//
// Complexity: O(|W|).
func (g *Graph) WriteSet() []WriteKey {
	out := make([]WriteKey, 0, len(g.W))
	for k := range g.W {
		out = append(out, k)
	}
	return out
}

// EscapeSet returns an independent snapshot of E.
//
// Complexity: O(|E|).
func (g *Graph) EscapeSet() NodeSet {
	return g.E.Clone()
}

// Nodes returns every distinct node that appears anywhere in the
// graph (as an L target, an edge endpoint, a W member, or an E
// member), used by DOT rendering to enumerate graph nodes once.
//
// Complexity: O(|L| + |I| + |O| + |W| + |E|).
func (g *Graph) Nodes() NodeSet {
	out := NodeSet{}
	for _, s := range g.L {
		for n := range s {
			out.Add(n)
		}
	}
	for k, s := range g.inside {
		out.Add(k.Source)
		for n := range s {
			out.Add(n)
		}
	}
	for k, s := range g.outside {
		out.Add(k.Source)
		for n := range s {
			out.Add(n)
		}
	}
	for k := range g.W {
		out.Add(k.Node)
	}
	for n := range g.E {
		out.Add(n)
	}
	return out
}
