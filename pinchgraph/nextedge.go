package pinchgraph

// NextEdge returns the black edge that continues edge's contig
// immediately past edge's end (spec.md §4.2 getNextEdge), and false if
// edge is the last edge of its contig (e.To is a dead end). It answers
// the query directly from the contig's ordered partition rather than by
// walking grey edges, since I4 guarantees that partition is exactly the
// contig-order relation.
func (g *Graph) NextEdge(edge *Edge) (*Edge, bool) {
	fc, fp := edge.Piece.Contig, edge.Piece.End+1
	if fc < 0 {
		fc, fp = -fc, -edge.Piece.End-1
	}
	length, ok := g.lengths[fc]
	if !ok {
		invariantPanic("NextEdge", "edge references an unregistered contig", edge.From.ID, edge.To.ID)
	}
	if fp < 1 || fp > length {
		return nil, false
	}
	next, _, err := g.edgeAt(fc, fp)
	if err != nil {
		invariantPanic("NextEdge", "contig partition inconsistent with recorded length", edge.From.ID, edge.To.ID)
	}
	if edge.Piece.Contig < 0 {
		return next.Rev, true
	}
	return next, true
}
