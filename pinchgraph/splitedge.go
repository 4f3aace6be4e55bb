package pinchgraph

import "github.com/cactuscore/pinchgraph/piece"

// normalize rewrites a (contig, position, side) request against the
// negative (reverse-strand) contig into the equivalent request against
// the positive (forward, canonically stored) contig: a reverse-strand
// position -k is forward position k read backwards, and LEFT/RIGHT swap
// because the two strands run in opposite directions (spec.md §3, §9).
func normalize(c piece.Name, pos int, side Side) (piece.Name, int, Side) {
	if c >= 0 {
		return c, pos, side
	}
	opposite := Left
	if side == Left {
		opposite = Right
	}
	return -c, -pos, opposite
}

// SplitEdge ensures contig c has a black edge whose `side` endpoint sits
// at `position`, splitting the edge that currently spans `position` if
// necessary, and returns that endpoint vertex. It is idempotent: calling
// it again with the same arguments returns the same vertex without
// mutating the graph (spec.md §4.2, scenario S2).
//
// Splitting introduces a new vertex on the boundary and a new vertex on
// the other side of that same boundary, joined by a grey edge — the two
// sides of a single contig breakpoint are always distinct pinch vertices
// until something (typically a later merge) unifies them.
func (g *Graph) SplitEdge(c piece.Name, position int, side Side) (*Vertex, error) {
	fc, fp, fside := normalize(c, position, side)

	e, idx, err := g.edgeAt(fc, fp)
	if err != nil {
		return nil, err
	}

	// splitPos is the offset such that the left half ends at splitPos and
	// the right half begins at splitPos+1. A RIGHT request at fp wants the
	// boundary right after fp; a LEFT request at fp wants the boundary
	// right before fp.
	splitPos := fp
	if fside == Left {
		splitPos = fp - 1
	}

	if fside == Right && splitPos == e.Piece.End {
		return e.To, nil // already a boundary on this side: idempotent.
	}
	if fside == Left && splitPos == e.Piece.Start-1 {
		return e.From, nil
	}

	leftVertex := g.newVertex(Interior) // right end of the left half
	rightVertex := g.newVertex(Interior) // left end of the right half
	g.ConnectVertices(leftVertex, rightVertex)

	leftPiece := e.Piece.Sub(e.Piece.Start, splitPos)
	rightPiece := e.Piece.Sub(splitPos+1, e.Piece.End)

	g.unlinkEdgePair(e)
	leftEdge := g.linkEdgePair(leftPiece, e.From, leftVertex)
	rightEdge := g.linkEdgePair(rightPiece, rightVertex, e.To)
	g.replaceContigEdge(fc, idx, leftEdge, rightEdge)

	if fside == Right {
		return leftVertex, nil
	}
	return rightVertex, nil
}
