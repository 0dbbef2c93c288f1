// File: validate.go
// Role: Graph invariants R1/R2 (validate), checked on demand by the purity checker.
// Determinism:
//   - Violations are returned in unspecified order; callers needing
//     stable diagnostics should sort by Violation.String().
// Concurrency:
//   - None: a Graph is owned by exactly one flow-analysis run.

package core

import "fmt"

// Violation describes a single R1/R2 invariant breach.
type Violation struct {
	Rule   string // "R1" or "R2"
	Source Node
	Field  Field
	Target Node
}

// String renders a Violation for GraphViolation reasons and logs.
func (v Violation) String() string {
	switch v.Rule {
	case "R1":
		return fmt.Sprintf("R1: inside node %s has outside edge on field %s to %s", v.Source.ID(), v.Field, v.Target.ID())
	default:
		return fmt.Sprintf("R2: outside edge %s --%s--> %s targets an inside node", v.Source.ID(), v.Field, v.Target.ID())
	}
}

// Validate checks the two graph invariants and returns every violation
// found:
//
//   - R1: no outside edge may be sourced from an Inside node.
//   - R2: no outside edge may target an Inside node.
//
// A nil (empty) result means both invariants hold.
//
// Complexity: O(|O|).
func (g *Graph) Validate() []Violation {
	var out []Violation
	g.outsideEdges(func(src Node, f Field, targets NodeSet) bool {
		if src.Kind == KindInside {
			for t := range targets {
				out = append(out, Violation{Rule: "R1", Source: src, Field: f, Target: t})
			}
		}
		for t := range targets {
			if t.Kind == KindInside {
				out = append(out, Violation{Rule: "R2", Source: src, Field: f, Target: t})
			}
		}
		return true
	})
	return out
}
