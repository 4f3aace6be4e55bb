// Package merge implements the pinch merge: the core rewrite that, given
// two equal-length pieces, identifies their vertices offset-for-offset
// (spec.md §4.5), plus the driver that walks a pairwise alignment's
// operation list to invoke it.
package merge

import (
	"errors"
	"fmt"

	"github.com/cactuscore/pinchgraph/align"
	"github.com/cactuscore/pinchgraph/chain"
	"github.com/cactuscore/pinchgraph/component"
	"github.com/cactuscore/pinchgraph/piece"
	"github.com/cactuscore/pinchgraph/pinchgraph"
)

// ErrLengthMismatch is returned when the two pieces given to Merge have
// different lengths; a pinch is only defined between equal-length regions.
var ErrLengthMismatch = errors.New("merge: pieces have different lengths")

// Merge rewrites g so that, for every offset k in [0, p1.Length()), the
// vertex at p1's offset k is identified with the vertex at p2's offset k,
// and likewise on the opposite side (spec.md §4.5). If the touched vertices'
// adjacency components do not overlap within n hops, the merge is rejected:
// rejected is true and the graph is left unchanged from that point onward.
// A zero-length piece pair is a no-op (rejected=false, err=nil).
func Merge(g *pinchgraph.Graph, ix *component.Index, p1, p2 *piece.Piece, n int) (rejected bool, err error) {
	if p1.Length() != p2.Length() {
		return false, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, p1.Length(), p2.Length())
	}

	// 1. Prepare endpoints.
	if _, err := g.SplitEdge(p1.Contig, p1.Start, pinchgraph.Left); err != nil {
		return false, err
	}
	if _, err := g.SplitEdge(p1.Contig, p1.End, pinchgraph.Right); err != nil {
		return false, err
	}
	if _, err := g.SplitEdge(p2.Contig, p2.Start, pinchgraph.Left); err != nil {
		return false, err
	}
	if _, err := g.SplitEdge(p2.Contig, p2.End, pinchgraph.Right); err != nil {
		return false, err
	}

	// 2. Align chains.
	c1, c2, err := buildEqualChains(g, p1, p2)
	if err != nil {
		return false, err
	}

	// 3. Relabel: Labels(...) lazily resolves any vertex still missing a
	// component id, so the consistency check below always sees a label.

	// 4. Check consistency.
	for i := range c1.Vertices {
		if c1.Vertices[i] == c2.Vertices[i] {
			continue
		}
		if !ix.SetsOverlap(ix.Labels(c1.Vertices[i]), ix.Labels(c2.Vertices[i]), n) {
			return true, nil
		}
	}

	// 5. Merge.
	for i := 0; i < c1.Len(); i++ {
		v1, v2 := c1.Vertices[i], c2.Vertices[i]
		if v1 == v2 {
			continue
		}

		if e := blackEdgeBetween(v1, v2); e != nil && e.Length() > 1 {
			if err := splitMiddle(g, e); err != nil {
				return false, err
			}
			c1, c2, err = buildEqualChains(g, p1, p2)
			if err != nil {
				return false, err
			}
			i = -1
			continue
		}

		v3 := g.MergeVertices(v1, v2)
		ix.OnMerge(v1, v2, v3)
		rewriteChains(c1, c2, v1, v2, v3)
	}

	return false, nil
}

// buildEqualChains builds vertex chains for p1 and p2 and, if they are not
// yet structurally equal, splits each contig at the other's boundaries
// until they are (spec.md §4.5 step 2). Termination is guaranteed: each
// pass only adds split points, a finite resource bounded by piece length.
func buildEqualChains(g *pinchgraph.Graph, p1, p2 *piece.Piece) (*chain.Chain, *chain.Chain, error) {
	for {
		c1, err := chain.Build(g, p1)
		if err != nil {
			return nil, nil, err
		}
		c2, err := chain.Build(g, p2)
		if err != nil {
			return nil, nil, err
		}
		if chain.StructurallyEqual(c1, c2) {
			return c1, c2, nil
		}
		if err := splitAtChain(g, p2.Contig, p2.Start, c1); err != nil {
			return nil, nil, err
		}
		if err := splitAtChain(g, p1.Contig, p1.Start, c2); err != nil {
			return nil, nil, err
		}
	}
}

func splitAtChain(g *pinchgraph.Graph, targetContig piece.Name, targetStart int, c *chain.Chain) error {
	for i := range c.Coords {
		if _, err := g.SplitEdge(targetContig, targetStart+c.Coords[i], c.Sides[i]); err != nil {
			return err
		}
	}
	return nil
}

func blackEdgeBetween(v1, v2 *pinchgraph.Vertex) *pinchgraph.Edge {
	for _, e := range v1.BlackEdges() {
		if e.To == v2 {
			return e
		}
	}
	return nil
}

// splitMiddle splits e roughly in half (the left half absorbing the extra
// base when e's length is odd), so a single short black edge never ends up
// needing to be both sides of the same merge step.
func splitMiddle(g *pinchgraph.Graph, e *pinchgraph.Edge) error {
	leftLen := (e.Length() + 1) / 2
	pos := e.Piece.Start + leftLen - 1
	_, err := g.SplitEdge(e.Piece.Contig, pos, pinchgraph.Right)
	return err
}

// rewriteChains updates every occurrence of v1 or v2 in c1/c2 to v3,
// reflecting that they have just been merged (spec.md §4.5 step 5: "rewrite
// subsequent positions in both chains").
func rewriteChains(c1, c2 *chain.Chain, v1, v2, v3 *pinchgraph.Vertex) {
	for _, c := range []*chain.Chain{c1, c2} {
		for i, v := range c.Vertices {
			if v == v1 || v == v2 {
				c.Vertices[i] = v3
			}
		}
	}
}
