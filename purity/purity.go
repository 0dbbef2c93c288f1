// Package purity implements the purity checker (C7, spec.md §4.6): the
// two BFS closures over a method's exit graph and the three-rule
// decision procedure that reads a Verdict from them.
package purity

import "github.com/katalvlaran/ptpure/core"

// Judge validates the exit graph's R1/R2 invariants, computes closures
// A and B, and applies the decision rule (first matching wins):
//
//  1. Any write to a static field, or else the sticky
//     global-side-effect flag, makes the method Impure — an unknown
//     callee is handled conservatively, so s alone is a verdict, not
//     just a hint.
//  2. Any prestate node (set A) that also appears in the globally
//     accessible set B makes the method Impure — it escaped.
//  3. Any prestate node that was mutated makes the method Impure,
//     except a write to Parameter(0) itself inside a constructor
//     (initialization, not mutation of prior state).
//  4. Otherwise the method is Pure.
//
// Complexity: O(|O| + |I| + |W|) dominated by the two BFS closures.
func Judge(exit *core.Graph, isConstructor bool) Verdict {
	if violations := exit.Validate(); len(violations) > 0 {
		return violation("%s", violations[0].String())
	}

	for _, k := range exit.WriteSet() {
		if k.Node == core.Global {
			return impure("writes to static field %s", k.Field.Name)
		}
	}
	if exit.GlobalSideEffect() {
		return impure("method has an unknown-callee or static side effect")
	}

	a := closureA(exit)
	b := closureB(exit)

	for n := range a {
		if b.Contains(n) {
			return impure("prestate node %s escapes to global scope", n.ID())
		}
		fields := exit.MutatedFields(n)
		if len(fields) == 0 {
			continue
		}
		if isConstructor && n == core.Parameter(0) {
			continue
		}
		return impure("mutates prestate node %s via field %s", n.ID(), fields[0])
	}

	return pure()
}
