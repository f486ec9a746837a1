package gocrdt

import (
	"math/rand"

	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

// Clock returns a value with total order across all calls on a given
// replica, strictly increasing per call in typical use. Its semantics
// beyond ordering are opaque to the engine.
type Clock func() Timestamp

// Tree is a single replica of the replicated, rooted, ordered, labeled
// tree. It is not safe for concurrent use: a host sharing a Tree
// across goroutines must serialize access itself (spec §5).
type Tree struct {
	store    *nodeStore
	getTime  Clock
	log      OperationLog
	deferred DeferredQueue
	rng      *rand.Rand
	logger   *zap.SugaredLogger
}

// TreeOption configures a Tree at construction time.
type TreeOption func(*Tree)

// WithClock injects the host's timestamp source. Required for any
// replica that will perform local mutations; without one, every
// timestamp the replica assigns (including Purge's "now") is 0.
func WithClock(clock Clock) TreeOption {
	return func(t *Tree) { t.getTime = clock }
}

// WithOperationLog injects a custom append-only operation sink,
// replacing the default in-memory log.
func WithOperationLog(log OperationLog) TreeOption {
	return func(t *Tree) { t.log = log }
}

// WithDeferredQueue injects a custom deferred-operation store,
// replacing the default in-memory multi-map.
func WithDeferredQueue(q DeferredQueue) TreeOption {
	return func(t *Tree) { t.deferred = q }
}

// WithRand injects a deterministic random source for the position
// allocator's jitter, for reproducible tests.
func WithRand(rng *rand.Rand) TreeOption {
	return func(t *Tree) { t.rng = rng }
}

// WithLogger injects a structured logger for merge diagnostics. The
// default is a no-op logger; nothing the engine logs is ever a
// user-visible error (spec §7).
func WithLogger(logger *zap.SugaredLogger) TreeOption {
	return func(t *Tree) { t.logger = logger }
}

// NewTree creates an empty replica containing only the root sentinel.
func NewTree(opts ...TreeOption) *Tree {
	t := &Tree{
		store:    newNodeStore(),
		log:      NewInMemoryLog(),
		deferred: NewInMemoryDeferredQueue(),
		rng:      rand.New(rand.NewSource(1)),
		logger:   zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tree) now() Timestamp {
	if t.getTime == nil {
		return 0
	}
	return t.getTime()
}

func unmetPrecondition(format string, args ...any) error {
	return xerrors.Errorf("%w: "+format, append([]any{ErrUnmetPreconditions}, args...)...)
}

// Insert creates a new node under parentID, positioned immediately
// after the sibling refID ("" for head-of-list). node.ID must be
// unset in the replica; the node's T and VPos are assigned by the
// engine and any caller-supplied values are overwritten.
func (t *Tree) Insert(parentID NodeID, refID NodeID, nodePayload Node) error {
	if !t.store.exists(parentID) {
		return unmetPrecondition("parent %q does not exist", parentID)
	}
	siblings := t.store.childList(parentID)
	if refID != "" && indexOfChild(siblings, refID) == -1 {
		return unmetPrecondition("reference node %q is not a child of %q", refID, parentID)
	}
	if t.store.exists(nodePayload.ID) {
		return unmetPrecondition("node id %q is already in use", nodePayload.ID)
	}

	ts := t.now()
	vpos, _ := allocateVPos(siblings, refID, t.rng)

	node := nodePayload.clone()
	node.T = ts
	node.VPos = vpos
	t.store.addNode(&node, parentID)

	t.log.Push(Operation{
		Name: OpInsert,
		T:    ts,
		InsertDetails: &InsertDetails{
			ParentID: parentID,
			Node:     node.clone(),
		},
	})

	t.logger.Debugw("local insert", "node", node.ID, "parent", parentID, "t", ts)
	return nil
}

// Move relocates node_id to be a child of parentID, positioned
// immediately after refID ("" for head-of-list). A move that would
// leave node_id in the same slot it already occupies under its
// current parent is rejected as a no-op.
func (t *Tree) Move(nodeID NodeID, parentID NodeID, refID NodeID) error {
	node, ok := t.store.get(nodeID)
	if !ok {
		return unmetPrecondition("node %q does not exist", nodeID)
	}
	destSiblings := t.store.childList(parentID)
	if refID != "" && indexOfChild(destSiblings, refID) == -1 {
		return unmetPrecondition("reference node %q is not a child of %q", refID, parentID)
	}
	if t.isNoOpMove(node, parentID, refID) {
		return unmetPrecondition("move of %q would be a no-op", nodeID)
	}

	t.store.unsetParent(node)
	siblings := t.store.childList(parentID)
	vpos, _ := allocateVPos(siblings, refID, t.rng)

	ts := t.now()
	node.T = ts
	node.VPos = vpos
	if node.Removed != nil && ts > *node.Removed {
		node.Removed = nil
	}
	t.store.setParent(node, parentID)

	t.log.Push(Operation{
		Name: OpMove,
		T:    ts,
		MoveDetails: &MoveDetails{
			NodeID:   nodeID,
			ParentID: parentID,
			VPos:     vpos,
		},
	})

	t.logger.Debugw("local move", "node", nodeID, "parent", parentID, "t", ts)
	return nil
}

// isNoOpMove reports whether moving node to sit right after refID
// under parentID would leave it exactly where it already is.
func (t *Tree) isNoOpMove(node *Node, parentID NodeID, refID NodeID) bool {
	if node.ParentID != parentID {
		return false
	}
	siblings := t.store.childList(parentID)
	idx := indexOfChild(siblings, node.ID)
	if idx == -1 {
		return false
	}
	if refID == "" {
		return idx == 0
	}
	return idx > 0 && siblings[idx-1].ID == refID
}

// Remove marks node_id as a tombstone. Removing an already-tombstoned
// node is a no-op: no log entry is emitted and state is unchanged.
func (t *Tree) Remove(nodeID NodeID) error {
	node, ok := t.store.get(nodeID)
	if !ok {
		return unmetPrecondition("node %q does not exist", nodeID)
	}
	if node.isTombstone() {
		return nil
	}

	ts := t.now()
	node.Removed = &ts

	t.log.Push(Operation{
		Name:          OpRemove,
		T:             ts,
		RemoveDetails: &RemoveDetails{NodeID: nodeID},
	})

	t.logger.Debugw("local remove", "node", nodeID, "t", ts)
	return nil
}

// SetValue assigns data[key] = value on node_id, stamped with a fresh
// timestamp. Permitted on tombstones: they remain addressable.
func (t *Tree) SetValue(nodeID NodeID, key string, value any) error {
	node, ok := t.store.get(nodeID)
	if !ok {
		return unmetPrecondition("node %q does not exist", nodeID)
	}

	ts := t.now()
	if node.Data == nil {
		node.Data = make(map[string]TimestampedValue)
	}
	node.Data[key] = TimestampedValue{Value: value, T: ts}

	t.log.Push(Operation{
		Name: OpSetValue,
		T:    ts,
		SetValueDetails: &SetValueDetails{
			NodeID: nodeID,
			Key:    key,
			Value:  value,
		},
	})

	t.logger.Debugw("local setValue", "node", nodeID, "key", key, "t", ts)
	return nil
}
