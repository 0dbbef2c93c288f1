// File: verdict.go
// Role: The Verdict type and the three reasons a method can fail to
// be judged pure (§5.1).
// Determinism:
//   - Verdict equality is structural; String() is stable for logs and
//     rendering.
// Concurrency:
//   - None.

package purity

import "fmt"

// Status is the closed outcome of the purity decision procedure.
type Status uint8

const (
	// Pure means none of the three impurity rules fired.
	Pure Status = iota
	// Impure means a decision-procedure rule fired against a
	// consistent graph.
	Impure
	// GraphViolation means core.Graph.Validate found an R1/R2 breach
	// before the decision procedure could even run; the verdict is
	// reported as a diagnostic, not a purity judgment.
	GraphViolation
)

func (s Status) String() string {
	switch s {
	case Pure:
		return "pure"
	case Impure:
		return "impure"
	case GraphViolation:
		return "graph-violation"
	default:
		return "unknown"
	}
}

// Verdict is the result of judging one method's exit graph.
type Verdict struct {
	Status Status
	Reason string
}

// String renders a Verdict for logs and the render package's
// summaries.
func (v Verdict) String() string {
	if v.Reason == "" {
		return v.Status.String()
	}
	return fmt.Sprintf("%s: %s", v.Status, v.Reason)
}

func pure() Verdict { return Verdict{Status: Pure} }

func impure(format string, args ...any) Verdict {
	return Verdict{Status: Impure, Reason: fmt.Sprintf(format, args...)}
}

func violation(format string, args ...any) Verdict {
	return Verdict{Status: GraphViolation, Reason: fmt.Sprintf(format, args...)}
}
