package merge

import (
	"github.com/cactuscore/pinchgraph/align"
	"github.com/cactuscore/pinchgraph/component"
	"github.com/cactuscore/pinchgraph/piece"
	"github.com/cactuscore/pinchgraph/pinchgraph"
)

// Driver applies a pairwise alignment's operation list to a graph, invoking
// Merge once per MATCH run (spec.md §4.5's "Driver pinchMerge").
type Driver struct {
	Graph     *pinchgraph.Graph
	Index     *component.Index
	Proximity int // N passed to every Merge call
}

// NewDriver returns a Driver that merges MATCH regions of a into graph g,
// rejecting merges whose touched vertices' adjacency components are more
// than proximity hops apart.
func NewDriver(g *pinchgraph.Graph, ix *component.Index, proximity int) *Driver {
	return &Driver{Graph: g, Index: ix, Proximity: proximity}
}

// RejectedMatch records one MATCH run Merge declined to apply.
type RejectedMatch struct {
	Piece1, Piece2 *piece.Piece
}

// Run walks a's operation list, maintaining running positions on contig1
// and contig2, and calls Merge for every MATCH run. It returns the set of
// MATCH runs that were rejected by the component-overlap precondition
// (spec.md §4.5's silent-rejection policy — silent to the graph, but
// reported to the driver's caller). Postcondition on success: the running
// positions land on (a.End1, a.End2), which Validate already guarantees.
func (d *Driver) Run(a *align.PairwiseAlignment) ([]RejectedMatch, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	var rejected []RejectedMatch
	j, k := a.Start1, a.Start2

	for _, op := range a.Ops {
		switch op.Type {
		case align.Match:
			p1 := contigPiece(a.Contig1, j, j+op.Length-1, a.Strand1)
			p2 := contigPiece(a.Contig2, k, k+op.Length-1, a.Strand2)

			wasRejected, err := Merge(d.Graph, d.Index, p1, p2, d.Proximity)
			if err != nil {
				return rejected, err
			}
			if wasRejected {
				rejected = append(rejected, RejectedMatch{Piece1: p1, Piece2: p2})
			}

			j += op.Length
			k += op.Length
		case align.InsertX:
			k += op.Length
		case align.InsertY:
			j += op.Length
		}
	}

	return rejected, nil
}

// contigPiece builds the piece covering [start, end] on contig, read on the
// forward strand if forward is true, the reverse strand otherwise.
func contigPiece(contig piece.Name, start, end int, forward bool) *piece.Piece {
	p := piece.NewPair(contig, start, end)
	if forward {
		return p
	}
	return p.Reverse()
}
