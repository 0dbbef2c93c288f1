// Package render turns a driver.MethodSummary into human-readable
// artifacts: a Graphviz DOT rendering of the exit graph and an HTML
// trace page bundling a method's verdict with its graph history.
package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/katalvlaran/ptpure/core"
)

// DOT writes g as a Graphviz digraph to w. Nodes are shaped by Kind,
// write-set members get a thicker border (penwidth=3), and escaped nodes are
// filled — the legend a reader needs to see R1/R2 and the decision
// rule's closures at a glance.
func DOT(w io.Writer, name string, g *core.Graph) error {
	fmt.Fprintf(w, "digraph %q {\n", name)
	fmt.Fprintln(w, "  rankdir=LR;")

	nodes := g.Nodes().Slice()
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID() < nodes[j].ID() })

	writeSet := make(map[core.Node]bool)
	for _, k := range g.WriteSet() {
		writeSet[k.Node] = true
	}
	escaped := g.EscapeSet()

	for _, n := range nodes {
		fmt.Fprintf(w, "  %q [%s];\n", n.ID(), nodeAttrs(n, writeSet[n], escaped.Contains(n)))
	}
	if writeSet[core.Global] {
		fmt.Fprintf(w, "  %q [%s];\n", core.Global.ID(), nodeAttrs(core.Global, true, escaped.Contains(core.Global)))
	}

	for _, e := range g.InsideEdges() {
		fmt.Fprintf(w, "  %q -> %q [label=%q];\n", e.Source.ID(), e.Target.ID(), e.Field.Name)
	}
	for _, e := range g.OutsideEdges() {
		fmt.Fprintf(w, "  %q -> %q [label=%q, style=dashed];\n", e.Source.ID(), e.Target.ID(), e.Field.Name)
	}

	fmt.Fprintln(w, "}")
	return nil
}

func nodeAttrs(n core.Node, mutated, escaped bool) string {
	shape := "ellipse"
	switch n.Kind {
	case core.KindParameter:
		shape = "box"
	case core.KindGlobal:
		shape = "diamond"
	case core.KindLoad:
		shape = "octagon"
	case core.KindInside:
		shape = "ellipse"
	}
	border := "1"
	if mutated {
		border = "3"
	}
	style := ""
	if escaped {
		style = ", style=filled, fillcolor=lightgray"
	}
	return fmt.Sprintf("shape=%s, penwidth=%s, label=%q%s", shape, border, n.ID(), style)
}
