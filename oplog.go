package gocrdt

// OperationLog is an append-only sink for locally originated
// operations, ready for outbound transmission to other replicas.
type OperationLog interface {
	Push(op Operation)
}

// InMemoryLog is the default OperationLog: a plain in-process slice.
// Its Ops accessor is not part of the OperationLog interface — a host
// that supplies its own log implements whatever draining method fits
// its transport.
type InMemoryLog struct {
	ops []Operation
}

// NewInMemoryLog returns the default in-memory OperationLog.
func NewInMemoryLog() *InMemoryLog {
	return &InMemoryLog{}
}

func (l *InMemoryLog) Push(op Operation) {
	l.ops = append(l.ops, op)
}

// Ops returns every operation pushed so far, in push order.
func (l *InMemoryLog) Ops() []Operation {
	return l.ops
}
