// File: replace.go
// Role: Node substitution (replace_node), used exclusively by the node merger (C5).
// Determinism:
//   - Rewrites every component (L, I, O, W, E) in a single pass each;
//     callers merging multiple "old" nodes into one "new" call this once per old node.
// Concurrency:
//   - None: a Graph is owned by exactly one flow-analysis run.

package core

// ReplaceNode substitutes new for old everywhere old appears: in L, in
// the source and target positions of I and O, in W, and in E. It is
// used only by the node merger (C5) to collapse a violating
// (source, field, kind) triple onto its chosen representative.
//
// Complexity: O(|L| + |I| + |O| + |W| + |E|).
func (g *Graph) ReplaceNode(old, new Node) {
	if old == new {
		return
	}

	for v, s := range g.L {
		if s.Contains(old) {
			ns := s.Clone()
			delete(ns, old)
			ns.Add(new)
			g.L[v] = ns
		}
	}

	g.inside = replaceInBucket(g.inside, old, new)
	g.outside = replaceInBucket(g.outside, old, new)

	newW := make(map[WriteKey]struct{}, len(g.W))
	for k := range g.W {
		if k.Node == old {
			k.Node = new
		}
		newW[k] = struct{}{}
	}
	g.W = newW

	if g.E.Contains(old) {
		delete(g.E, old)
		g.E.Add(new)
	}
}

// replaceInBucket rewrites an edge-store bucket, substituting new for
// old in both the key's Source field and every stored target, and
// merging buckets that collide as a result.
func replaceInBucket(bucket map[edgeKey]NodeSet, old, new Node) map[edgeKey]NodeSet {
	out := make(map[edgeKey]NodeSet, len(bucket))
	for k, targets := range bucket {
		if k.Source == old {
			k.Source = new
		}
		nt := NodeSet{}
		for t := range targets {
			if t == old {
				t = new
			}
			nt.Add(t)
		}
		if existing, ok := out[k]; ok {
			for t := range nt {
				existing.Add(t)
			}
		} else {
			out[k] = nt
		}
	}
	return out
}
