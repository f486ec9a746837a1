package gocrdt

import "golang.org/x/xerrors"

// ErrUnmetPreconditions is returned by a local mutator when the
// replica state does not satisfy the operation's preconditions (a
// missing parent, a missing reference node, a duplicate id, a no-op
// move, ...). The replica is left unchanged.
var ErrUnmetPreconditions = xerrors.New("gocrdt: unmet preconditions")

// ErrUnknownOperation is returned by Merge when an incoming record
// names an operation the engine does not recognize. Unlike merge
// inconsistencies (stale, duplicate, parked), this signals a protocol
// mismatch between replicas and is the only way Merge itself fails.
var ErrUnknownOperation = xerrors.New("gocrdt: unknown operation")
