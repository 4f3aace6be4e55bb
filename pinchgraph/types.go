package pinchgraph

import "github.com/cactuscore/pinchgraph/piece"

// Side selects which endpoint of a black edge a coordinate refers to.
type Side int

const (
	// Left is the vertex at the start (lower-offset) end of a piece.
	Left Side = iota
	// Right is the vertex at the end (higher-offset) end of a piece.
	Right
)

func (s Side) String() string {
	if s == Left {
		return "LEFT"
	}
	return "RIGHT"
}

// Kind classifies a vertex's role. DeadEnd and Sink vertices are created
// once and never destroyed (spec.md §3 Lifecycle).
type Kind int

const (
	// Interior vertices are ordinary pinch vertices; they may be created,
	// merged, and destroyed freely.
	Interior Kind = iota
	// DeadEnd vertices mark a sequence terminus: exactly one incident
	// black edge, which is a stub.
	DeadEnd
	// Sink is the single distinguished vertex (ID 0) that gathers
	// unattached stub components before cactus decomposition.
	Sink
)

// Vertex is a node of the pinch graph. black holds edges for which this
// vertex is the From endpoint only (the edge's reverse twin is filed under
// its own From, the other endpoint) — see doc.go and I1. grey holds the
// full, symmetric set of adjacent vertices (I2).
type Vertex struct {
	ID   int
	Kind Kind

	black map[*Edge]struct{}
	grey  map[*Vertex]struct{}
}

func newVertex(id int, kind Kind) *Vertex {
	return &Vertex{
		ID:    id,
		Kind:  kind,
		black: make(map[*Edge]struct{}),
		grey:  make(map[*Vertex]struct{}),
	}
}

// BlackDegree returns the number of black edges for which v is the From
// endpoint (equivalently, the number of distinct sequences incident on v
// from this side — the "block multiplicity" spec.md §4.6 thresholds on).
func (v *Vertex) BlackDegree() int { return len(v.black) }

// GreyDegree returns the number of grey-adjacent vertices.
func (v *Vertex) GreyDegree() int { return len(v.grey) }

// BlackEdges returns the black edges for which v is the From endpoint, in
// no particular order (spec.md §4.2: "No ordering guarantee").
func (v *Vertex) BlackEdges() []*Edge {
	out := make([]*Edge, 0, len(v.black))
	for e := range v.black {
		out = append(out, e)
	}
	return out
}

// GreyEdges returns v's grey-adjacent vertices, in no particular order.
func (v *Vertex) GreyEdges() []*Vertex {
	out := make([]*Vertex, 0, len(v.grey))
	for n := range v.grey {
		out = append(out, n)
	}
	return out
}

// HasGreyEdge reports whether v and w are grey-adjacent.
func (v *Vertex) HasGreyEdge(w *Vertex) bool {
	_, ok := v.grey[w]
	return ok
}

// FirstBlackEdge returns an arbitrary black edge incident on v (From side),
// or nil if v has none. Used by algorithms (e.g. the over-alignment
// trimmer) that only need "some" edge of a block, per spec.md §4.6/§4.7.
func (v *Vertex) FirstBlackEdge() *Edge {
	for e := range v.black {
		return e
	}
	return nil
}

// Edge is a black (aligned-segment) edge. Rev is its reverse partner on
// the twin piece: Rev.From == e.To and Rev.To == e.From (spec.md §3 I1).
type Edge struct {
	Piece *piece.Piece
	From  *Vertex
	To    *Vertex
	Rev   *Edge
}

// IsStub reports whether e represents a sequence terminus: one of its
// endpoints is a dead-end vertex (spec.md §3 I5 — stub edges are incident
// on dead-end vertices only, and there every dead-end has exactly one
// incident black edge, which is necessarily this one).
func (e *Edge) IsStub() bool {
	return e.From.Kind == DeadEnd || e.To.Kind == DeadEnd
}

// Length returns the number of bases e's piece covers.
func (e *Edge) Length() int { return e.Piece.Length() }
