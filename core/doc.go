// Package core defines the points-to / escape graph that the rest of
// ptpure analyzes: the closed node-kind union (Inside, Parameter, Load,
// Global) and the Graph container G = <L, I, O, W, E, s> of locals,
// heap edges, the mutated-field set, the global-escape set, and the
// sticky global-side-effect flag.
//
// A Graph has no internal synchronization. Each Graph is owned
// exclusively by one method's flow-analysis run and is never shared
// across goroutines; parallelism across methods lives in the driver's
// worker pool, one Graph per worker.
//
// Why a closed tagged union and not an interface hierarchy: the node
// merger's representative-priority order and the purity checker's
// decision rule both pattern-match exhaustively over the four kinds.
// An open hierarchy would make that exhaustiveness unenforceable.
//
// Core operations:
//
//	// Locals (L)
//	PointsTo(v string) NodeSet             // O(1)
//	StrongUpdate(v string, s NodeSet)      // O(1)
//
//	// Heap edges (I, O)
//	AddInsideEdge(src Node, f Field, tgt Node)   // O(1) amortized
//	AddOutsideEdge(src Node, f Field, tgt Node)  // O(1) amortized
//	HasOutsideEdge(src Node, f Field) bool       // O(1)
//	Targets(src Node, f Field, tag EdgeTag) NodeSet // O(1)
//	AllTargets(src Node, f Field) NodeSet           // O(1)
//	AllFieldTargets(src Node) NodeSet               // O(|I|+|O|)
//
//	// Mutation bookkeeping (W, E, s)
//	RecordMutation(n Node, f Field)        // O(1)
//	MarkEscaped(n Node)                    // O(1)
//	SetGlobalSideEffect()                  // O(1)
//
//	// Node substitution, used only by the merger (C5)
//	ReplaceNode(old, new Node)             // O(|L|+|I|+|O|+|W|+|E|)
//
//	// Lattice operations
//	CopyInto(dest *Graph)                  // O(size)
//	MergeWith(other *Graph)                // O(|g|+|other|)
//	Join(a, b *Graph) *Graph               // O(|a|+|b|)
//	Equal(other *Graph) bool               // O(size)
//
//	// Invariants
//	Validate() []Violation                 // O(|O|)
package core
