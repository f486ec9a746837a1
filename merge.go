package gocrdt

// Merge applies a batch of remotely originated operations. Merge
// handlers are idempotent, commutative under concurrency, and
// tolerant of out-of-order delivery via the deferred queue. The only
// error Merge itself returns is ErrUnknownOperation, for a record
// naming an operation kind the engine does not recognize; every other
// merge inconsistency is resolved silently per spec.
func (t *Tree) Merge(ops []Operation) error {
	for _, op := range ops {
		if err := t.mergeOne(op); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tree) mergeOne(op Operation) error {
	switch op.Name {
	case OpInsert:
		t.mergeInsert(op)
	case OpMove:
		t.mergeMove(op)
	case OpRemove:
		t.mergeRemove(op)
	case OpSetValue:
		t.mergeSetValue(op)
	default:
		return unknownOperation(op.Name)
	}
	return nil
}

func unknownOperation(name OpName) error {
	return &unknownOperationError{name: name}
}

type unknownOperationError struct{ name OpName }

func (e *unknownOperationError) Error() string {
	return ErrUnknownOperation.Error() + ": " + string(e.name)
}

func (e *unknownOperationError) Unwrap() error { return ErrUnknownOperation }

// mergeInsert adds the remote node as provided (its t and VPos are
// preserved verbatim, which is how replicas agree on structural
// tie-breaks), drops silently if the id already exists, parks under
// deferred[parent_id] if the parent has not arrived yet, and drains
// any operations parked awaiting this id's arrival.
func (t *Tree) mergeInsert(op Operation) {
	d := op.InsertDetails
	if t.store.exists(d.Node.ID) {
		t.logger.Debugw("merge insert dropped: duplicate", "node", d.Node.ID)
		return
	}
	if !t.store.exists(d.ParentID) {
		t.deferred.Set(d.ParentID, op)
		t.logger.Debugw("merge insert parked", "node", d.Node.ID, "parent", d.ParentID)
		return
	}

	node := d.Node.clone()
	t.store.addNode(&node, d.ParentID)
	t.logger.Debugw("merge insert applied", "node", node.ID, "parent", d.ParentID)

	for _, parked := range t.deferred.Pop(node.ID) {
		t.mergeOne(parked)
	}
}

// mergeMove parks under deferred[node_id] if the target is absent;
// otherwise drops a stale move (an extant newer touch supersedes it),
// else relocates the node and clears a tombstone the move's timestamp
// outlives.
func (t *Tree) mergeMove(op Operation) {
	d := op.MoveDetails
	node, ok := t.store.get(d.NodeID)
	if !ok {
		t.deferred.Set(d.NodeID, op)
		t.logger.Debugw("merge move parked", "node", d.NodeID)
		return
	}
	if node.T > op.T {
		t.logger.Debugw("merge move dropped: stale", "node", d.NodeID)
		return
	}

	t.store.unsetParent(node)
	node.VPos = d.VPos
	node.T = op.T
	t.store.setParent(node, d.ParentID)

	if node.Removed != nil && *node.Removed < op.T {
		node.Removed = nil
	}
	t.logger.Debugw("merge move applied", "node", d.NodeID, "parent", d.ParentID)
}

// mergeRemove parks if the target is absent; otherwise drops if an
// extant newer move supersedes it or a newer remove is already
// recorded, else tombstones the node.
func (t *Tree) mergeRemove(op Operation) {
	d := op.RemoveDetails
	node, ok := t.store.get(d.NodeID)
	if !ok {
		t.deferred.Set(d.NodeID, op)
		t.logger.Debugw("merge remove parked", "node", d.NodeID)
		return
	}
	if node.T > op.T {
		t.logger.Debugw("merge remove dropped: superseded by newer move", "node", d.NodeID)
		return
	}
	if node.Removed != nil && *node.Removed > op.T {
		t.logger.Debugw("merge remove dropped: newer remove already recorded", "node", d.NodeID)
		return
	}

	ts := op.T
	node.Removed = &ts
	t.logger.Debugw("merge remove applied", "node", d.NodeID)
}

// mergeSetValue parks if the target is absent; otherwise applies
// Last-Write-Wins on (node, key).
func (t *Tree) mergeSetValue(op Operation) {
	d := op.SetValueDetails
	node, ok := t.store.get(d.NodeID)
	if !ok {
		t.deferred.Set(d.NodeID, op)
		t.logger.Debugw("merge setValue parked", "node", d.NodeID)
		return
	}

	existing, has := node.Data[d.Key]
	if has && existing.T >= op.T {
		t.logger.Debugw("merge setValue dropped: not newer", "node", d.NodeID, "key", d.Key)
		return
	}

	if node.Data == nil {
		node.Data = make(map[string]TimestampedValue)
	}
	node.Data[d.Key] = TimestampedValue{Value: d.Value, T: op.T}
	t.logger.Debugw("merge setValue applied", "node", d.NodeID, "key", d.Key)
}
