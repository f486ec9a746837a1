package gocrdt

import (
	"encoding/json"
	"fmt"
)

// Timestamp is the opaque, totally ordered value the host supplies
// through Clock. The engine only ever compares timestamps with <, ==
// and (for Purge only) subtraction.
type Timestamp = int64

// NodeID identifies a node uniquely across every replica. The empty
// string is reserved for the root sentinel.
type NodeID = string

// OpName names one of the four operation kinds exchanged between
// replicas.
type OpName string

const (
	OpInsert   OpName = "insert"
	OpMove     OpName = "move"
	OpRemove   OpName = "remove"
	OpSetValue OpName = "setValue"
)

// InsertDetails carries the payload of an "insert" operation.
type InsertDetails struct {
	ParentID NodeID
	Node     Node
}

// MoveDetails carries the payload of a "move" operation.
type MoveDetails struct {
	NodeID   NodeID
	ParentID NodeID
	VPos     float64
}

// RemoveDetails carries the payload of a "remove" operation.
type RemoveDetails struct {
	NodeID NodeID
}

// SetValueDetails carries the payload of a "setValue" operation.
type SetValueDetails struct {
	NodeID NodeID
	Key    string
	Value  any
}

// Operation is the wire/log record described by the engine: a tagged
// union over the four operation kinds, carrying only the fields that
// apply to its Name. Exactly one of the Details fields is non-nil,
// matching Name.
type Operation struct {
	Name OpName
	T    Timestamp

	InsertDetails   *InsertDetails
	MoveDetails     *MoveDetails
	RemoveDetails   *RemoveDetails
	SetValueDetails *SetValueDetails
}

// MarshalJSON renders the operation as the historical 3-element array
// [name, t, details].
func (op Operation) MarshalJSON() ([]byte, error) {
	var details any
	switch op.Name {
	case OpInsert:
		details = op.InsertDetails
	case OpMove:
		details = op.MoveDetails
	case OpRemove:
		details = op.RemoveDetails
	case OpSetValue:
		details = op.SetValueDetails
	default:
		return nil, fmt.Errorf("gocrdt: cannot marshal operation with name %q", op.Name)
	}

	raw := [3]any{op.Name, op.T, details}
	return json.Marshal(raw)
}

// UnmarshalJSON parses the historical 3-element array form back into
// the tagged Operation.
func (op *Operation) UnmarshalJSON(data []byte) error {
	var raw [3]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var name OpName
	if err := json.Unmarshal(raw[0], &name); err != nil {
		return err
	}
	var t Timestamp
	if err := json.Unmarshal(raw[1], &t); err != nil {
		return err
	}

	op.Name = name
	op.T = t
	op.InsertDetails = nil
	op.MoveDetails = nil
	op.RemoveDetails = nil
	op.SetValueDetails = nil

	switch name {
	case OpInsert:
		var d InsertDetails
		if err := json.Unmarshal(raw[2], &d); err != nil {
			return err
		}
		op.InsertDetails = &d
	case OpMove:
		var d MoveDetails
		if err := json.Unmarshal(raw[2], &d); err != nil {
			return err
		}
		op.MoveDetails = &d
	case OpRemove:
		var d RemoveDetails
		if err := json.Unmarshal(raw[2], &d); err != nil {
			return err
		}
		op.RemoveDetails = &d
	case OpSetValue:
		var d SetValueDetails
		if err := json.Unmarshal(raw[2], &d); err != nil {
			return err
		}
		op.SetValueDetails = &d
	default:
		return fmt.Errorf("gocrdt: cannot unmarshal operation with name %q", name)
	}

	return nil
}
