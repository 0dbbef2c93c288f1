// Package flow implements the forward, monotone worklist analysis that
// drives one method's points-to graph from an empty entry graph to a
// fixpoint exit graph, applying the transfer package's rules
// statement-by-statement and joining at every control-flow merge
// point.
//
// This package previously held this module's Dinic/Edmonds-Karp/
// Ford-Fulkerson max-flow solvers; those solve a different graph
// problem (flow networks) with no role in an escape analysis and were
// removed. The package directory survives because "forward flow
// analysis" — in the data-flow sense, not the max-flow sense — is
// exactly what Analyze now performs.
package flow
