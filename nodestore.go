package gocrdt

import "github.com/cshekharsharma/go-crdt/internal/multimap"

// childLess orders siblings by ascending (VPos, T), as invariant 3
// requires; equal VPos and T fall back to stable insertion order,
// which multimap.Insert already preserves via sort.SliceStable.
func childLess(a, b *Node) bool {
	if a.VPos != b.VPos {
		return a.VPos < b.VPos
	}
	return a.T < b.T
}

// nodeStore holds the three indexes described by the node-store
// component: id -> node, id -> parent id, and parent id -> ordered
// child list.
type nodeStore struct {
	nodes    map[NodeID]*Node
	parentOf map[NodeID]NodeID
	children *multimap.SortedMultiMap[NodeID, *Node]
	// insertOrder records the order ids were first registered, for
	// GetNodes' "insertion order" contract.
	insertOrder []NodeID
}

func newNodeStore() *nodeStore {
	root := newRootNode()
	s := &nodeStore{
		nodes:    map[NodeID]*Node{rootID: &root},
		parentOf: map[NodeID]NodeID{},
		children: multimap.New[NodeID, *Node](childLess),
	}
	return s
}

func (s *nodeStore) get(id NodeID) (*Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

func (s *nodeStore) exists(id NodeID) bool {
	_, ok := s.nodes[id]
	return ok
}

func (s *nodeStore) childList(parentID NodeID) []*Node {
	return s.children.Get(parentID)
}

// addNode registers node under parentID, updating all three indexes.
func (s *nodeStore) addNode(node *Node, parentID NodeID) {
	node.ParentID = parentID
	if _, exists := s.nodes[node.ID]; !exists {
		s.insertOrder = append(s.insertOrder, node.ID)
	}
	s.nodes[node.ID] = node
	s.parentOf[node.ID] = parentID
	s.children.Insert(parentID, node)
}

// removeNode physically deletes node from all three indexes. This is
// the only primitive that destroys data; it is used solely by Purge.
func (s *nodeStore) removeNode(node *Node) {
	parentID := s.parentOf[node.ID]
	s.children.RemoveOne(parentID, func(n *Node) bool { return n.ID == node.ID })
	delete(s.parentOf, node.ID)
	delete(s.nodes, node.ID)
	for i, id := range s.insertOrder {
		if id == node.ID {
			s.insertOrder = append(s.insertOrder[:i], s.insertOrder[i+1:]...)
			break
		}
	}
}

// unsetParent detaches node from its current parent's child list
// without removing it from the id index, leaving it in a transitional
// parentless state for the duration of a move.
func (s *nodeStore) unsetParent(node *Node) {
	parentID, ok := s.parentOf[node.ID]
	if !ok {
		return
	}
	s.children.RemoveOne(parentID, func(n *Node) bool { return n.ID == node.ID })
	delete(s.parentOf, node.ID)
}

// setParent reattaches an already-detached node under newParent. The
// node's VPos and T must already reflect the target position; setParent
// only updates the indexes.
func (s *nodeStore) setParent(node *Node, newParent NodeID) {
	node.ParentID = newParent
	s.parentOf[node.ID] = newParent
	s.children.Insert(newParent, node)
}
