package merge_test

import (
	"fmt"

	"github.com/katalvlaran/ptpure/core"
	"github.com/katalvlaran/ptpure/merge"
)

// ExampleNormalize shows the merger collapsing two Load nodes that
// were both reached via the same (source, field) pair — the only way
// a points-to graph would otherwise grow without bound across a loop.
func ExampleNormalize() {
	g := core.NewGraph()

	p := core.Parameter(0)
	f := core.Field{Name: "x"}
	g.AddOutsideEdge(p, f, core.Load(3))
	g.AddOutsideEdge(p, f, core.Load(1))

	rewrites := merge.Normalize(g)

	fmt.Println(rewrites)
	fmt.Println(len(g.AllTargets(p, f)))

	// Output:
	// 1
	// 1
}
