package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestTree() (*Tree, map[string]*Event) {
	root := NewEvent(0, "root", 0)
	a := NewEvent(1, "A", 1)
	b := NewEvent(2, "B", 1)
	root.AddChild(a)
	root.AddChild(b)
	a1 := NewEvent(3, "A1", 2)
	a2 := NewEvent(4, "A2", 2)
	a.AddChild(a1)
	a.AddChild(a2)

	return NewTree(root), map[string]*Event{
		"root": root, "A": a, "B": b, "A1": a1, "A2": a2,
	}
}

func TestCommonAncestor(t *testing.T) {
	_, e := buildTestTree()

	ca, err := CommonAncestor(e["A1"], e["A2"])
	require.NoError(t, err)
	assert.Same(t, e["A"], ca)

	ca, err = CommonAncestor(e["A1"], e["B"])
	require.NoError(t, err)
	assert.Same(t, e["root"], ca)

	ca, err = CommonAncestor(e["A"], e["A1"])
	require.NoError(t, err)
	assert.Same(t, e["A"], ca, "an event is its own descendant's ancestor")
}

func TestCommonAncestor_DifferentTreesErrors(t *testing.T) {
	_, e := buildTestTree()
	other := NewEvent(99, "other-root", 0)

	_, err := CommonAncestor(e["A1"], other)
	assert.ErrorIs(t, err, ErrNotInSameTree)
}

func TestFold(t *testing.T) {
	_, e := buildTestTree()

	ca, err := Fold(e["A1"], e["A2"], e["B"])
	require.NoError(t, err)
	assert.Same(t, e["root"], ca)

	ca, err = Fold(e["A1"])
	require.NoError(t, err)
	assert.Same(t, e["A1"], ca)

	ca, err = Fold()
	require.NoError(t, err)
	assert.Nil(t, ca)
}

func TestSubtreeBranchLength(t *testing.T) {
	_, e := buildTestTree()

	assert.Equal(t, 2.0, SubtreeBranchLength(e["A1"]))
	assert.Equal(t, 5.0, SubtreeBranchLength(e["A"])) // 1 + 2 + 2
	assert.Equal(t, 1.0, SubtreeBranchLength(e["B"]))
}

func TestTree_FirstChild(t *testing.T) {
	tr, e := buildTestTree()
	assert.Same(t, e["A"], tr.FirstChild())

	leafTree := NewTree(NewEvent(0, "leaf", 0))
	assert.Nil(t, leafTree.FirstChild())
}
