package gocrdt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTreeFromNodes_BuildsIndexesRegardlessOfOrder(t *testing.T) {
	nodes := []Node{
		{ID: "child", ParentID: "parent", T: 2, VPos: 0.5},
		{ID: "parent", ParentID: "", T: 1, VPos: 0.4},
	}

	tr := NewTreeFromNodes(nodes)

	_, ok := tr.GetNode("parent")
	require.True(t, ok)

	children := tr.ChildList("parent")
	require.Len(t, children, 1)
	require.Equal(t, NodeID("child"), children[0].ID)
}

func TestNewTreeFromNodes_RootAlwaysPresent(t *testing.T) {
	tr := NewTreeFromNodes(nil)
	_, ok := tr.GetNode("")
	require.True(t, ok)
}

func TestNewTreeFromNodes_IgnoresRootInInput(t *testing.T) {
	nodes := []Node{{ID: ""}, {ID: "a", ParentID: ""}}
	tr := NewTreeFromNodes(nodes)

	require.Len(t, tr.ChildList(""), 1)
}
