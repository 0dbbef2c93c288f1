// File: closures.go
// Role: Set A (prestate support) and set B (globally accessible
// nodes), each a BFS closure over the exit graph (§4.6).
// Determinism:
//   - BFS visit order is unspecified (map iteration); both closures
//     are unordered sets, so the order in which nodes are discovered
//     never affects membership, only diagnostic ordering.
// Concurrency:
//   - None.

package purity

import "github.com/katalvlaran/ptpure/core"

// walker is the shared BFS shape for both closures: a queue plus a
// visited set, walking core.Graph edges.
type walker struct {
	graph   *core.Graph
	queue   []core.Node
	visited core.NodeSet
}

func newWalker(g *core.Graph, seeds core.NodeSet) *walker {
	w := &walker{graph: g, visited: core.NodeSet{}}
	for n := range seeds {
		w.enqueue(n)
	}
	return w
}

func (w *walker) enqueue(n core.Node) {
	if w.visited.Contains(n) {
		return
	}
	w.visited.Add(n)
	w.queue = append(w.queue, n)
}

func (w *walker) dequeue() (core.Node, bool) {
	if len(w.queue) == 0 {
		return core.Node{}, false
	}
	n := w.queue[0]
	w.queue = w.queue[1:]
	return n, true
}

// closureA computes set A: the BFS closure of every Parameter node
// over outside edges only — the abstract objects that exist before
// the method runs.
func closureA(g *core.Graph) core.NodeSet {
	seeds := core.NodeSet{}
	for n := range g.Nodes() {
		if n.Kind == core.KindParameter {
			seeds.Add(n)
		}
	}
	w := newWalker(g, seeds)
	for {
		n, ok := w.dequeue()
		if !ok {
			break
		}
		for _, e := range g.OutsideEdges() {
			if e.Source == n {
				w.enqueue(e.Target)
			}
		}
	}
	return w.visited
}

// closureB computes set B: the BFS closure of E ∪ {Global} over every
// edge (inside and outside) — nodes potentially visible to or from the
// rest of the program.
func closureB(g *core.Graph) core.NodeSet {
	seeds := g.EscapeSet()
	seeds.Add(core.Global)
	w := newWalker(g, seeds)
	inside := g.InsideEdges()
	outside := g.OutsideEdges()
	for {
		n, ok := w.dequeue()
		if !ok {
			break
		}
		for _, e := range inside {
			if e.Source == n {
				w.enqueue(e.Target)
			}
		}
		for _, e := range outside {
			if e.Source == n {
				w.enqueue(e.Target)
			}
		}
	}
	return w.visited
}
