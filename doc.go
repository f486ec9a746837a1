// Package gocrdt implements Tree, an operation-based Conflict-free
// Replicated Data Type (CmRDT) for a rooted, ordered, labeled tree.
//
// CRDTs are distributed data structures that guarantee convergence: if
// multiple replicas receive the same set of updates, they eventually
// reach the same state regardless of the order in which updates were
// processed. Tree converges by exchanging logs of Operation records
// rather than comparing peer state directly: Merge takes a []Operation,
// and its four handlers (mergeInsert, mergeMove, mergeRemove,
// mergeSetValue) are commutative, idempotent, and tolerant of
// out-of-order delivery via a deferred queue.
package gocrdt
