package gocrdt

// Purge physically removes every tombstone whose removal is at least
// minAge old (by the replica's own clock), returning the ids removed.
// It is the sole physically destructive operation; purged nodes are
// gone for good. Purge does not cascade: a purged tombstone's live
// children are left with a dangling ParentID, per the documented
// host responsibility to purge only once no live descendants remain.
func (t *Tree) Purge(minAge Timestamp) []NodeID {
	now := t.now()
	var purged []NodeID

	for id, node := range t.store.nodes {
		if id == rootID || node.Removed == nil {
			continue
		}
		if now-*node.Removed >= minAge {
			purged = append(purged, id)
		}
	}

	for _, id := range purged {
		node := t.store.nodes[id]
		t.store.removeNode(node)
	}

	t.logger.Infow("purge complete", "count", len(purged), "min_age", minAge)
	return purged
}
