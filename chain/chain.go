// Package chain builds and compares vertex chains: the ordered sequence of
// pinch-graph vertices a piece passes through, used by the merge algorithm
// (spec.md §4.3, §4.5) to align two pieces' boundaries before merging.
package chain

import (
	"fmt"

	"github.com/cactuscore/pinchgraph/piece"
	"github.com/cactuscore/pinchgraph/pinchgraph"
)

// Chain is a vertex chain covering a piece: Vertices[i] is the LEFT- or
// RIGHT-side vertex at offset Coords[i] from the piece's start, in contig
// order. The three slices are always the same length.
type Chain struct {
	Vertices []*pinchgraph.Vertex
	Coords   []int
	Sides    []pinchgraph.Side
}

func (c *Chain) add(v *pinchgraph.Vertex, coord int, side pinchgraph.Side) {
	c.Vertices = append(c.Vertices, v)
	c.Coords = append(c.Coords, coord)
	c.Sides = append(c.Sides, side)
}

// Len returns the number of chain links.
func (c *Chain) Len() int { return len(c.Vertices) }

// Build constructs the vertex chain covering p (spec.md §4.3): it splits
// p's two endpoints, then walks the black edges between them, recording a
// LEFT/RIGHT vertex pair at every internal boundary.
func Build(g *pinchgraph.Graph, p *piece.Piece) (*Chain, error) {
	leftV, err := g.SplitEdge(p.Contig, p.Start, pinchgraph.Left)
	if err != nil {
		return nil, fmt.Errorf("chain: splitting start: %w", err)
	}
	rightV, err := g.SplitEdge(p.Contig, p.End, pinchgraph.Right)
	if err != nil {
		return nil, fmt.Errorf("chain: splitting end: %w", err)
	}

	c := &Chain{}
	c.add(leftV, 0, pinchgraph.Left)

	edge, err := g.EdgeAt(p.Contig, p.Start)
	if err != nil {
		return nil, fmt.Errorf("chain: locating start edge: %w", err)
	}
	for edge.Piece.End < p.End {
		offset := edge.Piece.End - p.Start
		c.add(edge.To, offset, pinchgraph.Right)

		next, ok := g.NextEdge(edge)
		if !ok {
			return nil, fmt.Errorf("chain: contig ended before reaching piece end %d", p.End)
		}
		c.add(next.From, offset+1, pinchgraph.Left)
		edge = next
	}
	c.add(rightV, p.End-p.Start, pinchgraph.Right)

	return c, nil
}

// StructurallyEqual reports whether c1 and c2 have identical Coords and
// Sides arrays (their Vertices may differ) — the precondition for merging
// two chains link-by-link (spec.md §4.3).
func StructurallyEqual(c1, c2 *Chain) bool {
	if len(c1.Coords) != len(c2.Coords) {
		return false
	}
	for i := range c1.Coords {
		if c1.Coords[i] != c2.Coords[i] || c1.Sides[i] != c2.Sides[i] {
			return false
		}
	}
	return true
}
