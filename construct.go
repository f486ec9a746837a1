package gocrdt

// NewTreeFromNodes rebuilds a replica's three indexes from a flat,
// unordered sequence of node records, e.g. as loaded from a host's
// persisted state. The order of nodes does not affect the resulting
// tree: indexes are content-addressed by id and parent. The root
// sentinel is always present regardless of whether nodes contains it.
func NewTreeFromNodes(nodes []Node, opts ...TreeOption) *Tree {
	t := NewTree(opts...)
	for _, n := range nodes {
		if n.ID == rootID {
			continue
		}
		node := n.clone()
		t.store.nodes[node.ID] = &node
		t.store.insertOrder = append(t.store.insertOrder, node.ID)
	}
	for _, n := range nodes {
		if n.ID == rootID {
			continue
		}
		node := t.store.nodes[n.ID]
		t.store.parentOf[node.ID] = node.ParentID
		t.store.children.Insert(node.ParentID, node)
	}
	return t
}
