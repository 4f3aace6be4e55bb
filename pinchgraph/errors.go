package pinchgraph

import (
	"errors"
	"fmt"
)

// Sentinel errors for precondition violations (spec.md §7). These are
// fatal: callers should treat the graph as unusable once one is returned.
var (
	// ErrUnknownContig indicates a contig name that was never registered
	// via AddContig.
	ErrUnknownContig = errors.New("pinchgraph: unknown contig")

	// ErrPositionOutOfRange indicates a position outside [1, contig length].
	ErrPositionOutOfRange = errors.New("pinchgraph: position out of range")

	// ErrUnknownVertex indicates a vertex ID not present in the graph.
	ErrUnknownVertex = errors.New("pinchgraph: unknown vertex")
)

// InvariantError reports a broken I1-I5 invariant after a mutating
// operator, identifying the operator and the vertices involved so a fatal
// abort (spec.md §7) carries a usable diagnostic.
type InvariantError struct {
	Operator string
	Vertices []int
	Reason   string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("pinchgraph: invariant violated in %s (vertices=%v): %s", e.Operator, e.Vertices, e.Reason)
}

func invariantPanic(operator, reason string, vertices ...int) {
	panic(&InvariantError{Operator: operator, Vertices: vertices, Reason: reason})
}
