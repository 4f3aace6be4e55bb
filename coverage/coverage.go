// Package coverage scores a pinch-graph vertex's tree coverage: how much of
// the event tree's branch length is explained by the sequences incident on
// that vertex (spec.md §4.7).
package coverage

import (
	"errors"
	"fmt"

	"github.com/cactuscore/pinchgraph/event"
	"github.com/cactuscore/pinchgraph/piece"
	"github.com/cactuscore/pinchgraph/pinchgraph"
)

// ErrNoNonStubEdges is returned when a vertex has no non-stub black edges;
// tree coverage is undefined for it (spec.md §4.7's precondition).
var ErrNoNonStubEdges = errors.New("coverage: vertex has no non-stub black edges")

// ErrOutOfRange is returned when the computed coverage falls outside
// [-1e-3, 1+1e-3] — a hard failure per spec.md §4.7 step 5.
var ErrOutOfRange = errors.New("coverage: computed value outside tolerance range")

// tolerance is the clamping slack allowed at the [0, 1] boundary.
const tolerance = 1e-3

// SequenceEvent resolves a forward-strand contig name to the event its
// sequence originated from.
type SequenceEvent func(piece.Name) (*event.Event, error)

// TreeCoverage computes v's tree coverage (spec.md §4.7):
//
//  1. collects one event per incident non-stub black edge;
//  2. folds them to their common ancestor A;
//  3. sums, without double-counting, the branch length of every event on
//     every path from a collected event up to (but not including) A;
//  4. normalises by the branch length of the subtree rooted at the tree's
//     first child of its root;
//  5. clamps to [0, 1] within tolerance, failing hard outside it.
func TreeCoverage(v *pinchgraph.Vertex, seqEvent SequenceEvent, tree *event.Tree) (float64, error) {
	events := make(map[*event.Event]struct{})
	for _, e := range v.BlackEdges() {
		if e.IsStub() {
			continue
		}
		contig := e.Piece.Contig
		if contig < 0 {
			contig = -contig
		}
		ev, err := seqEvent(contig)
		if err != nil {
			return 0, err
		}
		events[ev] = struct{}{}
	}
	if len(events) == 0 {
		return 0, ErrNoNonStubEdges
	}

	evList := make([]*event.Event, 0, len(events))
	for ev := range events {
		evList = append(evList, ev)
	}

	ancestor, err := event.Fold(evList...)
	if err != nil {
		return 0, err
	}

	visited := make(map[*event.Event]struct{})
	var total float64
	for _, ev := range evList {
		for cur := ev; cur != ancestor && cur != nil; cur = cur.Parent() {
			if _, seen := visited[cur]; seen {
				break
			}
			visited[cur] = struct{}{}
			total += cur.BranchLength
		}
	}

	firstChild := tree.FirstChild()
	if firstChild == nil {
		return 0, nil
	}
	denom := event.SubtreeBranchLength(firstChild)
	if denom == 0 {
		return 0, nil
	}

	result := total / denom
	if result < -tolerance || result > 1+tolerance {
		return 0, fmt.Errorf("%w: %f", ErrOutOfRange, result)
	}
	switch {
	case result < 0:
		result = 0
	case result > 1:
		result = 1
	}
	return result, nil
}
