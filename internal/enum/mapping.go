package enum

import (
	"iter"

	"github.com/roach88/caseset/internal/ir"
)

// Mapping is an insertion-ordered map keyed by IRValue equality.
// Setting an existing key replaces its value and keeps its position.
type Mapping[V any] struct {
	keys   []ir.IRValue
	values []V
	index  map[string]int
}

func (m *Mapping[V]) set(k ir.IRValue, v V) {
	fp := ir.Fingerprint(k)
	if i, ok := m.index[fp]; ok {
		m.values[i] = v
		return
	}
	if m.index == nil {
		m.index = make(map[string]int)
	}
	m.index[fp] = len(m.keys)
	m.keys = append(m.keys, k)
	m.values = append(m.values, v)
}

// Len returns the number of entries.
func (m Mapping[V]) Len() int { return len(m.keys) }

// Get returns the value stored under k.
func (m Mapping[V]) Get(k ir.IRValue) (v V, ok bool) {
	i, ok := m.index[ir.Fingerprint(k)]
	if !ok {
		return v, false
	}
	return m.values[i], true
}

// Keys returns the keys in insertion order.
func (m Mapping[V]) Keys() []ir.IRValue { return append([]ir.IRValue(nil), m.keys...) }

// Values returns the values in key order.
func (m Mapping[V]) Values() []V { return append([]V(nil), m.values...) }

// All iterates entries in insertion order.
func (m Mapping[V]) All() iter.Seq2[ir.IRValue, V] {
	return func(yield func(ir.IRValue, V) bool) {
		for i, k := range m.keys {
			if !yield(k, m.values[i]) {
				return
			}
		}
	}
}
