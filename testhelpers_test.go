package gocrdt

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
)

// spewDiff dumps both replicas' GetNodes() to the test log. It is
// called on a convergence-property failure to show the full observable
// state side by side, since require.ElementsMatch's default failure
// message truncates nested Node/Data structures.
func spewDiff(t *testing.T, label string, a, b []Node) {
	t.Helper()
	t.Logf("%s: replica A state:\n%s", label, spew.Sdump(a))
	t.Logf("%s: replica B state:\n%s", label, spew.Sdump(b))
}

// requireConverged asserts that a and b observe identical state,
// dumping both via spewDiff first so a failure is diagnosable without
// rerunning under a debugger.
func requireConverged(t *testing.T, label string, a, b *Tree) {
	t.Helper()
	aNodes, bNodes := a.GetNodes(), b.GetNodes()
	if !nodesEqual(aNodes, bNodes) {
		spewDiff(t, label, aNodes, bNodes)
		t.Fatalf("%s: replicas diverged", label)
	}
}

func nodesEqual(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	byID := make(map[NodeID]Node, len(a))
	for _, n := range a {
		byID[n.ID] = n
	}
	for _, n := range b {
		other, ok := byID[n.ID]
		if !ok {
			return false
		}
		if n.ParentID != other.ParentID || n.T != other.T || n.VPos != other.VPos {
			return false
		}
		if (n.Removed == nil) != (other.Removed == nil) {
			return false
		}
		if n.Removed != nil && *n.Removed != *other.Removed {
			return false
		}
		if len(n.Data) != len(other.Data) {
			return false
		}
		for k, v := range n.Data {
			ov, ok := other.Data[k]
			if !ok || ov != v {
				return false
			}
		}
	}
	return true
}
