package pinchgraph

import "fmt"

// NewInteriorVertex allocates a fresh, unconnected interior vertex — a
// rewriting primitive for callers (e.g. the over-alignment trimmer) that
// build new structure directly rather than through SplitEdge.
func (g *Graph) NewInteriorVertex() *Vertex { return g.newVertex(Interior) }

// MoveBlackEdge detaches e (and its reverse twin) from their current
// endpoints and re-files them under newFrom/newTo, leaving e.Piece and
// e.Rev.Piece unchanged. e's position in its contig's partition is
// untouched, since the partition tracks edge identity, not endpoints.
func (g *Graph) MoveBlackEdge(e *Edge, newFrom, newTo *Vertex) {
	g.unlinkEdgePair(e)
	e.From, e.To = newFrom, newTo
	e.Rev.From, e.Rev.To = newTo, newFrom
	newFrom.black[e] = struct{}{}
	newTo.black[e.Rev] = struct{}{}
}

// DestroyVertex disconnects v from every remaining grey neighbour and then
// removes it. v must have no incident black edges.
func (g *Graph) DestroyVertex(v *Vertex) {
	for _, n := range v.GreyEdges() {
		g.DisconnectVertices(v, n)
	}
	g.removeVertex(v)
}

// ConcatEdges merges two contig-adjacent forward-strand black edges e1, e2
// (e1 ending exactly where e2 begins) into a single edge spanning both,
// wired between newFrom and newTo, splicing the pair out of the contig's
// partition in favour of the combined edge. It is the inverse of
// SplitEdge's partition splice — undoing a previous split once the two
// halves are being rejoined (e.g. overalign's trivial-grey-edge removal).
// Only forward-strand edges (Piece.Contig > 0) are accepted directly;
// reverse-strand callers should pass e.Rev's forward twin instead.
func (g *Graph) ConcatEdges(e1, e2 *Edge, newFrom, newTo *Vertex) (*Edge, error) {
	if e1.Piece.Contig <= 0 || e2.Piece.Contig != e1.Piece.Contig {
		return nil, fmt.Errorf("pinchgraph: ConcatEdges requires the same forward-strand contig")
	}
	if e1.Piece.End+1 != e2.Piece.Start {
		return nil, fmt.Errorf("pinchgraph: ConcatEdges requires contig-adjacent edges")
	}
	fc := e1.Piece.Contig

	_, i1, err := g.edgeAt(fc, e1.Piece.Start)
	if err != nil {
		return nil, err
	}
	_, i2, err := g.edgeAt(fc, e2.Piece.Start)
	if err != nil {
		return nil, err
	}
	if i2 != i1+1 {
		invariantPanic("ConcatEdges", "edges are contig-adjacent by position but not by partition index (I4)", newFrom.ID, newTo.ID)
	}

	combined := e1.Piece.Sub(e1.Piece.Start, e2.Piece.End)
	g.unlinkEdgePair(e1)
	g.unlinkEdgePair(e2)
	newEdge := g.linkEdgePair(combined, newFrom, newTo)
	g.spliceContigRange(fc, i1, i2, newEdge)
	return newEdge, nil
}
