package gocrdt

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// GetNode returns the node with id, or false if no such node exists
// in this replica.
func (t *Tree) GetNode(id NodeID) (Node, bool) {
	n, ok := t.store.get(id)
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// GetNodes returns every node in this replica (tombstones included,
// root excluded) in the order their ids were first registered.
func (t *Tree) GetNodes() []Node {
	nodes := make([]Node, 0, len(t.store.insertOrder))
	for _, id := range t.store.insertOrder {
		if n, ok := t.store.get(id); ok {
			nodes = append(nodes, *n)
		}
	}
	return nodes
}

// ChildList returns the sorted list of children of parentID, read from
// the node store's current sibling index on every call. The returned
// slice holds copies of the nodes; it does not change when the tree is
// mutated afterwards.
func (t *Tree) ChildList(parentID NodeID) []Node {
	children := t.store.childList(parentID)
	out := make([]Node, len(children))
	for i, c := range children {
		out[i] = *c
	}
	return out
}

// GetData returns a flattened key -> value view of node_id's data,
// stripped of timestamps. Returns false if the node does not exist.
func (t *Tree) GetData(id NodeID) (map[string]any, bool) {
	n, ok := t.store.get(id)
	if !ok {
		return nil, false
	}
	out := make(map[string]any, len(n.Data))
	for k, v := range n.Data {
		out[k] = v.Value
	}
	return out, true
}

// GetValue returns the value stored under key on node_id. The boolean
// is false both when the node is missing and when the key is missing;
// the two cases are not distinguished.
func (t *Tree) GetValue(id NodeID, key string) (any, bool) {
	n, ok := t.store.get(id)
	if !ok {
		return nil, false
	}
	v, ok := n.Data[key]
	if !ok {
		return nil, false
	}
	return v.Value, true
}

// DeferredQueueLen reports how many operations are currently parked
// awaiting the given node id, for diagnostics and tests.
func (t *Tree) DeferredQueueLen(id NodeID) int {
	if q, ok := t.deferred.(*inMemoryDeferredQueue); ok {
		return q.m.Len(id)
	}
	return 0
}

// OperationLog returns the replica's configured operation log, so a
// host using the default InMemoryLog can type-assert and drain it for
// transport without the engine needing a bespoke accessor.
func (t *Tree) OperationLog() OperationLog {
	return t.log
}

// LogLen reports how many operations the default in-memory log has
// recorded. It returns 0 for a host-supplied OperationLog, which is
// not required to expose its length.
func (t *Tree) LogLen() int {
	if l, ok := t.log.(*InMemoryLog); ok {
		return len(l.Ops())
	}
	return 0
}

// String renders the replica as an indented tree via treeprint,
// skipping tombstones. It is a diagnostic convenience, not part of
// the required query surface.
func (t *Tree) String() string {
	tree := treeprint.New()
	t.addBranch(tree, rootID)
	return tree.String()
}

func (t *Tree) addBranch(branch treeprint.Tree, parentID NodeID) {
	for _, c := range t.store.childList(parentID) {
		if c.isTombstone() {
			continue
		}
		label := fmt.Sprintf("%s (t=%d, vpos=%.6f)", c.ID, c.T, c.VPos)
		sub := branch.AddBranch(label)
		t.addBranch(sub, c.ID)
	}
}
