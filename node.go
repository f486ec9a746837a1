package gocrdt

// TimestampedValue is a data-field value paired with the timestamp of
// the setValue that last wrote it; the stored timestamp is always the
// maximum timestamp of any applied setValue for that (node, key).
type TimestampedValue struct {
	Value any
	T     Timestamp
}

// Node is a single element of the replicated tree. The root sentinel
// (id "") is a Node with no ParentID, Removed, or Data, and is never
// mutated after construction.
type Node struct {
	ID       NodeID
	ParentID NodeID
	T        Timestamp
	VPos     float64
	Removed  *Timestamp
	Data     map[string]TimestampedValue
}

// clone returns a copy of n with its own Removed timestamp and Data
// map, so that logged/merged nodes do not alias the live replica's
// state. Data values themselves are copied shallowly.
func (n Node) clone() Node {
	c := n
	if n.Removed != nil {
		removed := *n.Removed
		c.Removed = &removed
	}
	if n.Data != nil {
		c.Data = make(map[string]TimestampedValue, len(n.Data))
		for k, v := range n.Data {
			c.Data[k] = v
		}
	}
	return c
}

// isTombstone reports whether n carries a removal timestamp.
func (n Node) isTombstone() bool {
	return n.Removed != nil
}

const rootID NodeID = ""

func newRootNode() Node {
	return Node{ID: rootID, T: 0}
}
