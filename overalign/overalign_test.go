package overalign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cactuscore/pinchgraph/piece"
	"github.com/cactuscore/pinchgraph/pinchgraph"
)

func alwaysCoverage(v float64) CoverageFunc {
	return func(*pinchgraph.Vertex) (float64, error) { return v, nil }
}

// buildTripleMergedBoundary builds three length-10 contigs, splits each at
// positions 5 and 2 (so the boundary's edge [3..5] is not a stub), and
// merges the three position-5 boundary vertices into one, yielding a single
// vertex with black degree 3.
func buildTripleMergedBoundary(t *testing.T) (*pinchgraph.Graph, *pinchgraph.Vertex) {
	t.Helper()
	g := pinchgraph.NewGraph()
	var boundaries []*pinchgraph.Vertex
	for i := 1; i <= 3; i++ {
		_, _, err := g.AddContig(piece.Name(i), 10)
		require.NoError(t, err)
		b, err := g.SplitEdge(piece.Name(i), 5, pinchgraph.Right)
		require.NoError(t, err)
		_, err = g.SplitEdge(piece.Name(i), 2, pinchgraph.Right)
		require.NoError(t, err)
		boundaries = append(boundaries, b)
	}
	merged := boundaries[0]
	for _, b := range boundaries[1:] {
		merged = g.MergeVertices(merged, b)
	}
	return g, merged
}

func TestSeed_SelectsBlockOverMaxDegree(t *testing.T) {
	g, merged := buildTripleMergedBoundary(t)
	require.Equal(t, 3, merged.BlackDegree())

	tr := NewTrimmer(g, alwaysCoverage(1.0), Config{MinTreeCoverage: 0, MaxDegree: 2, ExtensionSteps: 0})
	distance, err := tr.seed(nil)
	require.NoError(t, err)

	_, ok := distance[merged]
	assert.True(t, ok, "a block exceeding MaxDegree must be seeded")
}

func TestSeed_SelectsBlockUnderMinCoverage(t *testing.T) {
	g := pinchgraph.NewGraph()
	_, _, err := g.AddContig(1, 10)
	require.NoError(t, err)
	b, err := g.SplitEdge(1, 5, pinchgraph.Right)
	require.NoError(t, err)
	// Split off [1..2] so b's edge [3..5] is not a stub.
	_, err = g.SplitEdge(1, 2, pinchgraph.Right)
	require.NoError(t, err)

	tr := NewTrimmer(g, alwaysCoverage(0.1), Config{MinTreeCoverage: 0.5, MaxDegree: 100, ExtensionSteps: 0})
	distance, err := tr.seed(nil)
	require.NoError(t, err)

	_, ok := distance[b]
	assert.True(t, ok)
}

func TestFilter_DropsSingleDegreeBlocks(t *testing.T) {
	g := pinchgraph.NewGraph()
	_, _, err := g.AddContig(1, 10)
	require.NoError(t, err)
	b, err := g.SplitEdge(1, 5, pinchgraph.Right)
	require.NoError(t, err)

	tr := NewTrimmer(g, alwaysCoverage(1.0), Config{})
	distance := map[*pinchgraph.Vertex]int{b: 0}

	survivors := tr.filter(distance)
	assert.Empty(t, survivors, "a degree-1 block is already minimal and must not survive filtering")
}

func TestSplitMultipleBlackEdges_CreatesOneVertexPerEdge(t *testing.T) {
	g, merged := buildTripleMergedBoundary(t)

	created, err := splitMultipleBlackEdges(g, merged)
	require.NoError(t, err)
	require.Len(t, created, 3)

	for _, nv := range created {
		assert.Equal(t, 1, nv.BlackDegree())
	}
	_, ok := g.Vertex(merged.ID)
	assert.False(t, ok, "the original merged vertex must be destroyed")
}

func TestTrim_EndToEnd_SplitsAnOverDegreeBlock(t *testing.T) {
	g, merged := buildTripleMergedBoundary(t)

	tr := NewTrimmer(g, alwaysCoverage(1.0), Config{MinTreeCoverage: 0, MaxDegree: 2, ExtensionSteps: 0})
	created, err := tr.Trim(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, created)

	_, ok := g.Vertex(merged.ID)
	assert.False(t, ok)
}
