package stublink_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cactuscore/pinchgraph/component"
	"github.com/cactuscore/pinchgraph/pinchgraph"
	"github.com/cactuscore/pinchgraph/stublink"
)

// setupTwoIsolatedContigs builds two unconnected contigs of differing
// length, each its own adjacency component, seeded accordingly.
func setupTwoIsolatedContigs(t *testing.T) (*pinchgraph.Graph, *component.Index, map[string][2]*pinchgraph.Vertex) { //nolint:unused
	t.Helper()
	g := pinchgraph.NewGraph()
	ix := component.NewIndex()

	l1, r1, err := g.AddContig(1, 10)
	require.NoError(t, err)
	ix.Seed(l1, r1)

	l2, r2, err := g.AddContig(2, 30)
	require.NoError(t, err)
	ix.Seed(l2, r2)

	return g, ix, map[string][2]*pinchgraph.Vertex{
		"c1": {l1, r1},
		"c2": {l2, r2},
	}
}

func TestLinkStubComponentsToSink_ConnectsLongestSequencePerComponent(t *testing.T) {
	g, ix, ends := setupTwoIsolatedContigs(t)

	added, err := stublink.LinkStubComponentsToSink(g, ix, nil, false)
	require.NoError(t, err)
	assert.Equal(t, 4, added, "4 dead ends across 2 singleton components, each linked once")

	for _, v := range ends["c1"] {
		assert.True(t, v.HasGreyEdge(g.Sink()))
	}
	for _, v := range ends["c2"] {
		assert.True(t, v.HasGreyEdge(g.Sink()))
	}
}

func TestLinkStubComponentsToSink_SkipsShorterSequenceInSameComponent(t *testing.T) {
	g := pinchgraph.NewGraph()
	ix := component.NewIndex()

	l1, r1, err := g.AddContig(1, 10)
	require.NoError(t, err)
	l2, r2, err := g.AddContig(2, 30)
	require.NoError(t, err)

	// Join the two contigs' right termini into one adjacency component
	// without merging vertices: a direct grey edge suffices.
	g.ConnectVertices(r1, r2)
	ix.Seed(l1, r1, l2, r2)

	added, err := stublink.LinkStubComponentsToSink(g, ix, nil, false)
	require.NoError(t, err)

	assert.True(t, l2.HasGreyEdge(g.Sink()), "longest sequence's left terminus must link")
	assert.True(t, r2.HasGreyEdge(g.Sink()), "longest sequence's right terminus must link")
	assert.False(t, l1.HasGreyEdge(g.Sink()), "shorter sequence's terminus must not link")
	assert.False(t, r1.HasGreyEdge(g.Sink()), "shorter sequence's terminus must not link")
	assert.Equal(t, 2, added)
}

func TestLinkStubComponentsToSink_MarksEndsAttached(t *testing.T) {
	g, ix, ends := setupTwoIsolatedContigs(t)
	attached := make(map[*pinchgraph.Vertex]*stublink.End)

	_, err := stublink.LinkStubComponentsToSink(g, ix, attached, true)
	require.NoError(t, err)

	for _, v := range ends["c1"] {
		require.NotNil(t, attached[v])
		assert.True(t, attached[v].Attached)
	}
}

func TestUnlinkStubComponentsFromSink_RemovesFreeStubsOnly(t *testing.T) {
	g, ix, ends := setupTwoIsolatedContigs(t)
	attached := make(map[*pinchgraph.Vertex]*stublink.End)

	_, err := stublink.LinkStubComponentsToSink(g, ix, attached, true)
	require.NoError(t, err)

	// Mark one end as no longer attached ("freed") so it should be unlinked.
	freed := ends["c1"][0]
	attached[freed].Attached = false

	removed := stublink.UnlinkStubComponentsFromSink(g, attached)
	assert.Equal(t, 1, removed)
	assert.False(t, freed.HasGreyEdge(g.Sink()))

	for _, v := range ends["c2"] {
		assert.True(t, v.HasGreyEdge(g.Sink()), "still-attached ends must remain linked")
	}
}
