package gocrdt

import "github.com/cshekharsharma/go-crdt/internal/multimap"

// DeferredQueue parks merge operations whose referenced node has not
// yet arrived, keyed by the missing node's id, and releases them once
// that id is drained.
type DeferredQueue interface {
	Set(id NodeID, op Operation)
	Pop(id NodeID) []Operation
}

// inMemoryDeferredQueue is the default DeferredQueue: a SortedMultiMap
// with no comparator, so parked records keep arrival order and carry
// no priority among themselves (spec leaves drain order to the
// individual handlers' staleness checks).
type inMemoryDeferredQueue struct {
	m *multimap.SortedMultiMap[NodeID, Operation]
}

// NewInMemoryDeferredQueue returns the default in-memory DeferredQueue.
func NewInMemoryDeferredQueue() DeferredQueue {
	return &inMemoryDeferredQueue{m: multimap.New[NodeID, Operation](nil)}
}

func (q *inMemoryDeferredQueue) Set(id NodeID, op Operation) {
	q.m.Insert(id, op)
}

func (q *inMemoryDeferredQueue) Pop(id NodeID) []Operation {
	return q.m.Drain(id)
}
