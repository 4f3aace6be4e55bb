package pinchgraph

import (
	"fmt"
	"sort"

	"github.com/cactuscore/pinchgraph/piece"
)

// Graph is the pinch graph: vertices, black edges and grey edges, plus a
// per-contig ordered partition of black edges used to answer position
// queries (SplitEdge, NextEdge) without a graph walk. Not safe for
// concurrent mutation — see doc.go.
type Graph struct {
	nextVertexID int
	vertices     map[int]*Vertex
	sink         *Vertex

	// contigs[c] holds the black edges partitioning contig c (c > 0 only;
	// reverse-strand operations are normalized to their forward contig -
	// see normalize in splitedge.go), kept sorted ascending by Piece.Start.
	contigs map[piece.Name][]*Edge
	lengths map[piece.Name]int
}

// NewGraph returns an empty pinch graph with its sink vertex (ID 0)
// already constructed, per spec.md §3.
func NewGraph() *Graph {
	g := &Graph{
		vertices: make(map[int]*Vertex),
		contigs:  make(map[piece.Name][]*Edge),
		lengths:  make(map[piece.Name]int),
	}
	sink := newVertex(0, Sink)
	g.vertices[0] = sink
	g.sink = sink
	g.nextVertexID = 1
	return g
}

// Sink returns the graph's distinguished sink vertex.
func (g *Graph) Sink() *Vertex { return g.sink }

// Vertex looks up a vertex by ID.
func (g *Graph) Vertex(id int) (*Vertex, bool) {
	v, ok := g.vertices[id]
	return v, ok
}

// VertexCount returns the number of live vertices, including the sink.
func (g *Graph) VertexCount() int { return len(g.vertices) }

// InteriorVertices returns every currently live Interior vertex, in no
// particular order (dead-ends and the sink are never Interior).
func (g *Graph) InteriorVertices() []*Vertex {
	out := make([]*Vertex, 0, len(g.vertices))
	for _, v := range g.vertices {
		if v.Kind == Interior {
			out = append(out, v)
		}
	}
	return out
}

// Vertices returns every currently live vertex (any Kind), in no
// particular order — used by whole-graph sweeps (e.g. stublink's
// component enumeration) that can't restrict themselves to one Kind.
func (g *Graph) Vertices() []*Vertex {
	out := make([]*Vertex, 0, len(g.vertices))
	for _, v := range g.vertices {
		out = append(out, v)
	}
	return out
}

// DeadEndVertices returns every currently live dead-end vertex, in no
// particular order.
func (g *Graph) DeadEndVertices() []*Vertex {
	out := make([]*Vertex, 0, len(g.vertices))
	for _, v := range g.vertices {
		if v.Kind == DeadEnd {
			out = append(out, v)
		}
	}
	return out
}

// ContigLength returns the registered length of contig c (c may be
// negative; the forward contig's length is returned either way), or
// (0, false) if c was never registered via AddContig.
func (g *Graph) ContigLength(c piece.Name) (int, bool) {
	if c < 0 {
		c = -c
	}
	l, ok := g.lengths[c]
	return l, ok
}

func (g *Graph) newVertex(kind Kind) *Vertex {
	v := newVertex(g.nextVertexID, kind)
	g.vertices[v.ID] = v
	g.nextVertexID++
	return v
}

// removeVertex destroys v: it must have no remaining black or grey edges.
// Dead-end and sink vertices are never removed (spec.md §3 Lifecycle).
func (g *Graph) removeVertex(v *Vertex) {
	if v.Kind != Interior {
		invariantPanic("removeVertex", "dead-end/sink vertices are never destroyed", v.ID)
	}
	if len(v.black) != 0 || len(v.grey) != 0 {
		invariantPanic("removeVertex", "vertex still has incident edges", v.ID)
	}
	delete(g.vertices, v.ID)
}

// linkEdgePair constructs a black edge from `from` to `to` carrying piece
// p (p.Start <= p.End, forward orientation) and its reverse twin from `to`
// to `from` carrying p.Reverse(), filing each under its own From vertex
// per I1.
func (g *Graph) linkEdgePair(p *piece.Piece, from, to *Vertex) *Edge {
	fwd := &Edge{Piece: p, From: from, To: to}
	rev := &Edge{Piece: p.Reverse(), From: to, To: from}
	fwd.Rev = rev
	rev.Rev = fwd
	from.black[fwd] = struct{}{}
	to.black[rev] = struct{}{}
	return fwd
}

func (g *Graph) unlinkEdgePair(e *Edge) {
	delete(e.From.black, e)
	delete(e.To.black, e.Rev)
}

// AddContig registers a new contig of the given length, represented
// initially by a single black edge spanning [1, length] between two new
// dead-end vertices (the contig's two stub termini). It returns those
// vertices (left = position-1 end, right = position-length end).
func (g *Graph) AddContig(name piece.Name, length int) (left, right *Vertex, err error) {
	if name <= 0 {
		return nil, nil, fmt.Errorf("%w: contig names must be positive, got %d", ErrUnknownContig, name)
	}
	if length <= 0 {
		return nil, nil, fmt.Errorf("%w: contig length must be positive, got %d", ErrPositionOutOfRange, length)
	}
	if _, exists := g.lengths[name]; exists {
		return nil, nil, fmt.Errorf("pinchgraph: contig %d already registered", name)
	}

	left = g.newVertex(DeadEnd)
	right = g.newVertex(DeadEnd)
	p := piece.NewPair(name, 1, length)
	edge := g.linkEdgePair(p, left, right)

	g.lengths[name] = length
	g.contigs[name] = []*Edge{edge}
	return left, right, nil
}

// edgeAt returns the edge covering position pos on forward contig fc
// (fc > 0), and its index within g.contigs[fc].
func (g *Graph) edgeAt(fc piece.Name, pos int) (*Edge, int, error) {
	edges, ok := g.contigs[fc]
	if !ok {
		return nil, -1, fmt.Errorf("%w: %d", ErrUnknownContig, fc)
	}
	length := g.lengths[fc]
	if pos < 1 || pos > length {
		return nil, -1, fmt.Errorf("%w: position %d on contig %d (length %d)", ErrPositionOutOfRange, pos, fc, length)
	}
	i := sort.Search(len(edges), func(i int) bool { return edges[i].Piece.End >= pos })
	if i == len(edges) || edges[i].Piece.Start > pos {
		invariantPanic("edgeAt", "contig partition has a gap (I4)")
	}
	return edges[i], i, nil
}

// replaceContigEdge splices edges[i] out of contig fc's partition and
// inserts replacement(s) in its place, preserving ascending order by
// Start (I4).
func (g *Graph) replaceContigEdge(fc piece.Name, i int, replacement ...*Edge) {
	g.spliceContigRange(fc, i, i, replacement...)
}

// spliceContigRange removes edges[from..to] (inclusive) from contig fc's
// partition and inserts replacement(s) in their place.
func (g *Graph) spliceContigRange(fc piece.Name, from, to int, replacement ...*Edge) {
	edges := g.contigs[fc]
	next := make([]*Edge, 0, len(edges)-(to-from+1)+len(replacement))
	next = append(next, edges[:from]...)
	next = append(next, replacement...)
	next = append(next, edges[to+1:]...)
	g.contigs[fc] = next
}

// EdgeAt returns the black edge currently covering position pos on contig c
// (c may be negative; the returned Edge's Piece carries the same sign as c),
// for callers (e.g. chain construction) that need to walk a contig's
// partition without reaching into graph internals.
func (g *Graph) EdgeAt(c piece.Name, pos int) (*Edge, error) {
	fc, fp := c, pos
	if c < 0 {
		fc, fp = -c, -pos
	}
	e, _, err := g.edgeAt(fc, fp)
	if err != nil {
		return nil, err
	}
	if c < 0 {
		return e.Rev, nil
	}
	return e, nil
}

// BlockEdges returns one representative Edge per undirected black edge in
// the graph (i.e. never both e and e.Rev), excluding stubs — the
// "iteration over blocks" downstream interface named in spec.md §6. A
// block with multiplicity (several segments between the same vertex pair)
// yields one Edge per segment.
func (g *Graph) BlockEdges() []*Edge {
	var out []*Edge
	for _, v := range g.vertices {
		for e := range v.black {
			if e.IsStub() {
				continue
			}
			switch {
			case e.From.ID < e.To.ID:
				out = append(out, e)
			case e.From.ID == e.To.ID && e.Piece.Contig > 0:
				out = append(out, e)
			}
		}
	}
	return out
}
