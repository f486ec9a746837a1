// Package multimap provides a small generic container mapping a key to
// a mutable, ordered sequence of values.
package multimap

import "sort"

// Less reports whether a should sort before b. A nil Less preserves
// insertion order: new values are always appended, never reordered.
type Less[V any] func(a, b V) bool

// SortedMultiMap maps a key to a sequence of values kept in ascending
// order by a configured comparator, with stable tie-breaking: equal
// elements retain their relative insertion order.
type SortedMultiMap[K comparable, V any] struct {
	less Less[V]
	data map[K][]V
}

// New creates a multi-map ordered by less. A nil less keeps values in
// plain insertion order, which is what the deferred-operation queue
// needs: no priority among parked records.
func New[K comparable, V any](less Less[V]) *SortedMultiMap[K, V] {
	return &SortedMultiMap[K, V]{
		less: less,
		data: make(map[K][]V),
	}
}

// Get returns the sequence for key, or an empty slice if absent.
func (m *SortedMultiMap[K, V]) Get(key K) []V {
	return m.data[key]
}

// Insert appends value to key's sequence and re-sorts it with stable
// semantics when a comparator is configured.
func (m *SortedMultiMap[K, V]) Insert(key K, value V) {
	seq := append(m.data[key], value)
	if m.less != nil {
		sort.SliceStable(seq, func(i, j int) bool {
			return m.less(seq[i], seq[j])
		})
	}
	m.data[key] = seq
}

// RemoveOne removes the first value under key for which match returns
// true. It reports whether a value was removed.
func (m *SortedMultiMap[K, V]) RemoveOne(key K, match func(V) bool) bool {
	seq, ok := m.data[key]
	if !ok {
		return false
	}
	for i, v := range seq {
		if match(v) {
			seq = append(seq[:i], seq[i+1:]...)
			m.set(key, seq)
			return true
		}
	}
	return false
}

// Drain removes and returns the entire sequence under key.
func (m *SortedMultiMap[K, V]) Drain(key K) []V {
	seq := m.data[key]
	delete(m.data, key)
	return seq
}

// Len returns the number of values stored under key.
func (m *SortedMultiMap[K, V]) Len(key K) int {
	return len(m.data[key])
}

func (m *SortedMultiMap[K, V]) set(key K, seq []V) {
	if len(seq) == 0 {
		delete(m.data, key)
		return
	}
	m.data[key] = seq
}
