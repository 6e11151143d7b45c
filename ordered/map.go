package ordered

import (
	"cmp"
	"errors"
	"iter"

	"github.com/ddirect/aged"
	"github.com/ddirect/aged/internal/ordcore"
)

var ErrKeyNotFound = errors.New("aged/ordered: key not found")

// Map is an aged ordered map with unique keys.
type Map[K, V any] struct {
	base[K, V]
}

func NewMap[K cmp.Ordered, V any](clock aged.Clock) *Map[K, V] {
	return NewMapFunc[K, V](clock, cmp.Compare[K])
}

// NewMapFunc creates a Map ordered by an arbitrary three-way comparator,
// which must be a strict weak order over keys.
func NewMapFunc[K, V any](clock aged.Clock, compare func(K, K) int) *Map[K, V] {
	return &Map[K, V]{base[K, V]{ordcore.New[K, V](clock, compare)}}
}

// NewMapFrom creates a Map holding the pairs of seq, all stamped at the
// clock's current time. Later duplicates are ignored.
func NewMapFrom[K cmp.Ordered, V any](clock aged.Clock, seq iter.Seq2[K, V]) *Map[K, V] {
	m := NewMap[K, V](clock)
	for k, v := range seq {
		m.Insert(k, v)
	}
	return m
}

// Insert adds k with value v stamped at the clock's current time. If k is
// already present the existing element is returned unchanged with false,
// and nothing is allocated.
func (m *Map[K, V]) Insert(k K, v V) (*Item[K, V], bool) {
	e, added := m.core.InsertUnique(k, v)
	return item(e), added
}

// GetOrCreate returns the element for k, inserting one with the zero value
// stamped now when it is missing. The second result reports whether the
// element already existed. Assigning through the returned item's Value
// does not change its timestamp.
func (m *Map[K, V]) GetOrCreate(k K) (*Item[K, V], bool) {
	e, found := m.core.GetOrCreate(k)
	return item(e), found
}

// At returns a pointer to k's value, or ErrKeyNotFound. The container is
// unchanged on a miss.
func (m *Map[K, V]) At(k K) (*V, error) {
	e := m.core.Find(k)
	if e == nil {
		return nil, ErrKeyNotFound
	}
	return &e.Value, nil
}

// DeleteKey removes k's element and reports whether one was present.
func (m *Map[K, V]) DeleteKey(k K) bool {
	return m.core.DeleteKey(k) > 0
}

// Clone returns an independent copy sharing the clock and comparator.
// Both the associative and the temporal order are preserved, along with
// every element's timestamp.
func (m *Map[K, V]) Clone() *Map[K, V] {
	return &Map[K, V]{base[K, V]{m.core.Clone()}}
}

// Equal reports whether both maps hold pairwise-equal keys and values in
// associative order. Both maps must use the same comparator. Temporal
// order is not observed.
func (m *Map[K, V]) Equal(o *Map[K, V], valueEq func(V, V) bool) bool {
	return m.core.EqualTo(o.core, valueEq)
}

// Compare orders two maps lexicographically over their associative
// sequences, comparing keys first and values on ties.
func (m *Map[K, V]) Compare(o *Map[K, V], valueCmp func(V, V) int) int {
	return m.core.CompareTo(o.core, valueCmp)
}
