package overalign

import "github.com/cactuscore/pinchgraph/pinchgraph"

// splitMultipleBlackEdges implements spec.md §4.6 step 5a: every black edge
// incident to u is detached onto its own new singleton vertex, reconnected
// to its old other end's grey neighbours so the rest of the structure stays
// intact, and u itself is destroyed. Returns the new vertices, one per
// detached edge.
func splitMultipleBlackEdges(g *pinchgraph.Graph, u *pinchgraph.Vertex) ([]*pinchgraph.Vertex, error) {
	edges := u.BlackEdges()
	created := make([]*pinchgraph.Vertex, 0, len(edges))

	for _, e := range edges {
		w := e.To
		nv := g.NewInteriorVertex()
		g.MoveBlackEdge(e, nv, w)
		for _, gn := range w.GreyEdges() {
			if gn == nv || gn == u {
				continue // u's own grey edges are torn down when u is destroyed below
			}
			g.ConnectVertices(nv, gn)
		}
		created = append(created, nv)
	}

	g.DestroyVertex(u)
	return created, nil
}

// removeTrivialGreyEdgeComponents implements spec.md §4.6 step 5b: among
// the vertices newVertices just created, find mutually grey-degree-1 pairs
// (a, b) whose single black edges are both non-stub, splice their two
// black-edge sequences into one contiguous edge, and destroy a and b.
//
// A pair is spliced through its forward-strand edges (see
// pinchgraph.ConcatEdges) and only when those are contig-adjacent on one
// contig; a pair that doesn't meet that condition is left as two separate
// vertices rather than risk an incorrect splice.
func removeTrivialGreyEdgeComponents(g *pinchgraph.Graph, newVertices []*pinchgraph.Vertex) error {
	processed := make(map[*pinchgraph.Vertex]bool, len(newVertices))

	for _, a := range newVertices {
		if processed[a] {
			continue
		}
		if a.GreyDegree() != 1 || a.BlackDegree() == 0 {
			continue
		}
		b := a.GreyEdges()[0]
		if processed[b] || b.GreyDegree() != 1 || b.BlackDegree() == 0 {
			continue
		}

		edgeA := a.FirstBlackEdge() // a -> p, the reverse twin of the edge coming into a
		edgeB := b.FirstBlackEdge() // b -> q
		if edgeA.IsStub() || edgeB.IsStub() {
			continue
		}

		incoming := edgeA.Rev // p -> a
		p := incoming.From
		q := edgeB.To

		e1, e2 := incoming, edgeB
		if e1.Piece.Contig <= 0 {
			e1, e2 = e2.Rev, e1.Rev
			p, q = q, p
		}
		if _, err := g.ConcatEdges(e1, e2, p, q); err != nil {
			continue // not a contig-adjacent forward-strand pair; leave untouched
		}

		g.DestroyVertex(a)
		g.DestroyVertex(b)
		processed[a] = true
		processed[b] = true
	}

	return nil
}
