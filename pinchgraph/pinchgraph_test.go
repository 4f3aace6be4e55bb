package pinchgraph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddContig_CreatesStubSpanningEdge(t *testing.T) {
	g := NewGraph()
	left, right, err := g.AddContig(1, 10)
	require.NoError(t, err)

	require.Equal(t, DeadEnd, left.Kind)
	require.Equal(t, DeadEnd, right.Kind)
	require.Equal(t, 1, left.BlackDegree())
	require.Equal(t, 1, right.BlackDegree())

	e := left.FirstBlackEdge()
	assert.Equal(t, 1, e.Piece.Start)
	assert.Equal(t, 10, e.Piece.End)
	assert.True(t, e.IsStub())
	assert.Same(t, right, e.To)
}

func TestAddContig_RejectsBadInputs(t *testing.T) {
	g := NewGraph()
	_, _, err := g.AddContig(-1, 10)
	assert.ErrorIs(t, err, ErrUnknownContig)

	_, _, err = g.AddContig(1, 0)
	assert.ErrorIs(t, err, ErrPositionOutOfRange)

	_, _, err = g.AddContig(1, 10)
	require.NoError(t, err)
	_, _, err = g.AddContig(1, 5)
	assert.Error(t, err)
}

// TestSplitEdge_BoundaryIsIdempotent is scenario S2 from spec.md §8: splitting
// a length-10 contig at position 5/RIGHT then 6/LEFT yields two edges
// [1..5]/[6..10] joined by a grey edge, and repeating either call returns the
// same vertex without mutating the graph.
func TestSplitEdge_BoundaryIsIdempotent(t *testing.T) {
	g := NewGraph()
	_, _, err := g.AddContig(1, 10)
	require.NoError(t, err)

	rightOfFive, err := g.SplitEdge(1, 5, Right)
	require.NoError(t, err)
	leftOfSix, err := g.SplitEdge(1, 6, Left)
	require.NoError(t, err)

	require.True(t, rightOfFive.HasGreyEdge(leftOfSix), "position 5/RIGHT and 6/LEFT are the two grey-linked sides of one breakpoint")

	again, err := g.SplitEdge(1, 5, Right)
	require.NoError(t, err)
	require.Same(t, rightOfFive, again, "repeating the split must return the same vertex")
	assert.Equal(t, 1, rightOfFive.GreyDegree(), "repeating the split must not add a second grey edge")
}

func TestSplitEdge_ProducesTwoGreyLinkedHalves(t *testing.T) {
	g := NewGraph()
	left, right, err := g.AddContig(1, 10)
	require.NoError(t, err)

	boundary, err := g.SplitEdge(1, 5, Right)
	require.NoError(t, err)

	require.Equal(t, Interior, boundary.Kind)
	require.Equal(t, 1, boundary.BlackDegree())
	// The edge filed under boundary runs back to the left dead end, so it
	// carries the reverse twin of [1..5].
	leftEdge := boundary.FirstBlackEdge()
	assert.Equal(t, -5, leftEdge.Piece.Start)
	assert.Equal(t, -1, leftEdge.Piece.End)
	assert.Same(t, left, leftEdge.To)

	require.Equal(t, 1, boundary.GreyDegree())
	other := boundary.GreyEdges()[0]
	assert.True(t, other.HasGreyEdge(boundary))
	require.Equal(t, 1, other.BlackDegree())
	rightEdge := other.FirstBlackEdge()
	assert.Equal(t, 6, rightEdge.Piece.Start)
	assert.Equal(t, 10, rightEdge.Piece.End)
	assert.Same(t, right, rightEdge.To)

	g2 := NewGraph()
	_, _, err = g2.AddContig(1, 10)
	require.NoError(t, err)
	again, err := g2.SplitEdge(1, 5, Right)
	require.NoError(t, err)
	_ = again
}

func TestSplitEdge_OnStubBoundaryIsIdempotent(t *testing.T) {
	g := NewGraph()
	left, _, err := g.AddContig(1, 10)
	require.NoError(t, err)

	// Position 1/LEFT already sits at the contig's own dead-end boundary:
	// SplitEdge must return that vertex without mutating the graph rather
	// than rejecting the call, since "boundary coincides with a dead end"
	// is exactly what the idempotent checks above handle.
	v, err := g.SplitEdge(1, 1, Left)
	require.NoError(t, err)
	assert.Same(t, left, v)
}

func TestSplitEdge_SplitsEdgeAdjacentToDeadEnd(t *testing.T) {
	g := NewGraph()
	left, _, err := g.AddContig(1, 10)
	require.NoError(t, err)

	// The freshly-constructed [1..10] edge is a stub (both endpoints are
	// dead ends), but splitting it away from its boundary must still
	// succeed — this is spec.md scenario S2, and the pattern merge.Merge's
	// "prepare endpoints" step and chain.Build rely on.
	boundary, err := g.SplitEdge(1, 5, Right)
	require.NoError(t, err)
	require.Equal(t, Interior, boundary.Kind)

	// Read from boundary, the edge is the reverse twin of [1..5].
	leftEdge := boundary.FirstBlackEdge()
	assert.Equal(t, -5, leftEdge.Piece.Start)
	assert.Equal(t, -1, leftEdge.Piece.End)
	assert.Same(t, left, leftEdge.To)
}

func TestSplitEdge_ReverseStrandNormalizesCorrectly(t *testing.T) {
	g := NewGraph()
	_, _, err := g.AddContig(1, 10)
	require.NoError(t, err)

	// Reverse-strand position -6 with RIGHT maps to forward position 6 with
	// LEFT (normalize flips side and negates position), so both calls name
	// the same vertex.
	fwd, err := g.SplitEdge(1, 6, Left)
	require.NoError(t, err)
	rev, err := g.SplitEdge(-1, -6, Right)
	require.NoError(t, err)
	assert.Same(t, fwd, rev)
}

func TestMergeVertices_UnionsBlackAndGreyEdges(t *testing.T) {
	g := NewGraph()
	_, _, err := g.AddContig(1, 10)
	require.NoError(t, err)
	_, _, err = g.AddContig(2, 10)
	require.NoError(t, err)

	b1, err := g.SplitEdge(1, 5, Right)
	require.NoError(t, err)
	b2, err := g.SplitEdge(2, 5, Right)
	require.NoError(t, err)

	other1 := b1.GreyEdges()[0]
	other2 := b2.GreyEdges()[0]

	merged := g.MergeVertices(b1, b2)

	_, ok := g.Vertex(b1.ID)
	assert.False(t, ok, "v1 must be destroyed")
	_, ok = g.Vertex(b2.ID)
	assert.False(t, ok, "v2 must be destroyed")

	assert.Equal(t, 2, merged.BlackDegree())
	assert.Equal(t, 2, merged.GreyDegree())
	assert.True(t, merged.HasGreyEdge(other1))
	assert.True(t, merged.HasGreyEdge(other2))
	assert.True(t, other1.HasGreyEdge(merged))
	assert.True(t, other2.HasGreyEdge(merged))
}

func TestMergeVertices_DropsDirectGreyEdgeBetweenMergedPair(t *testing.T) {
	g := NewGraph()
	_, _, err := g.AddContig(1, 10)
	require.NoError(t, err)
	b, err := g.SplitEdge(1, 5, Right)
	require.NoError(t, err)
	other := b.GreyEdges()[0]

	merged := g.MergeVertices(b, other)

	assert.Equal(t, 0, merged.GreyDegree(), "the grey edge between the merged pair must not become a self-adjacency")
}

func TestMergeVertices_SameVertexIsNoop(t *testing.T) {
	g := NewGraph()
	_, _, err := g.AddContig(1, 10)
	require.NoError(t, err)
	b, err := g.SplitEdge(1, 5, Right)
	require.NoError(t, err)

	out := g.MergeVertices(b, b)
	assert.Same(t, b, out)
}

func TestMergeVertices_PanicsOnNonInterior(t *testing.T) {
	g := NewGraph()
	left, _, err := g.AddContig(1, 10)
	require.NoError(t, err)
	b, err := g.SplitEdge(1, 5, Right)
	require.NoError(t, err)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		var ierr *InvariantError
		require.True(t, errors.As(r.(error), &ierr))
	}()
	g.MergeVertices(left, b)
}

func TestNextEdge_WalksForwardAndReverseStrand(t *testing.T) {
	g := NewGraph()
	_, _, err := g.AddContig(1, 10)
	require.NoError(t, err)
	_, err = g.SplitEdge(1, 5, Right)
	require.NoError(t, err)

	first, _, err := g.edgeAt(1, 3)
	require.NoError(t, err)
	second, ok := g.NextEdge(first)
	require.True(t, ok)
	assert.Equal(t, 6, second.Piece.Start)
	assert.Equal(t, 10, second.Piece.End)

	_, ok = g.NextEdge(second)
	assert.False(t, ok, "the last edge of a contig has no successor")

	// Walking the reverse strand backwards from the tail must retrace the
	// same two edges in the opposite order.
	revFirst := second.Rev
	revSecond, ok := g.NextEdge(revFirst)
	require.True(t, ok)
	assert.Same(t, first.Rev, revSecond)

	_, ok = g.NextEdge(revSecond)
	assert.False(t, ok)
}

func TestBlockEdges_ExcludesStubsAndDedupesTwins(t *testing.T) {
	g := NewGraph()
	_, _, err := g.AddContig(1, 10)
	require.NoError(t, err)
	_, err = g.SplitEdge(1, 5, Right)
	require.NoError(t, err)
	// Edges touching a dead end are stubs, so split off both contig ends:
	// [1..3] and [8..10] are stubs, [4..5] and [6..7] are blocks.
	_, err = g.SplitEdge(1, 3, Right)
	require.NoError(t, err)
	_, err = g.SplitEdge(1, 7, Right)
	require.NoError(t, err)

	blocks := g.BlockEdges()
	require.Len(t, blocks, 2)
	for _, e := range blocks {
		assert.False(t, e.IsStub())
	}
}

func TestConnectDisconnectVertices_Symmetric(t *testing.T) {
	g := NewGraph()
	_, _, err := g.AddContig(1, 10)
	require.NoError(t, err)
	v1 := g.newVertex(Interior)
	v2 := g.newVertex(Interior)

	g.ConnectVertices(v1, v2)
	assert.True(t, v1.HasGreyEdge(v2))
	assert.True(t, v2.HasGreyEdge(v1))

	g.DisconnectVertices(v1, v2)
	assert.False(t, v1.HasGreyEdge(v2))
	assert.False(t, v2.HasGreyEdge(v1))
}
