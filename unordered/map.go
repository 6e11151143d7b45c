package unordered

import (
	"errors"
	"hash/maphash"
	"iter"

	"github.com/ddirect/aged"
	"github.com/ddirect/aged/internal/hashcore"
)

var ErrKeyNotFound = errors.New("aged/unordered: key not found")

// Map is an aged hashed map with unique keys.
type Map[K, V any] struct {
	base[K, V]
}

// NewMap creates a Map hashing with maphash.Comparable under a fresh seed
// and comparing keys with ==.
func NewMap[K comparable, V any](clock aged.Clock) *Map[K, V] {
	return NewMapFunc[K, V](clock, comparableHash[K](), equal[K])
}

// NewMapFunc creates a Map with an arbitrary hash function and equality.
// Equal keys must hash identically.
func NewMapFunc[K, V any](clock aged.Clock, hash func(K) uint64, eq func(K, K) bool) *Map[K, V] {
	return &Map[K, V]{base[K, V]{hashcore.New[K, V](clock, hash, eq)}}
}

func comparableHash[K comparable]() func(K) uint64 {
	seed := maphash.MakeSeed()
	return func(k K) uint64 {
		return maphash.Comparable(seed, k)
	}
}

func equal[K comparable](a, b K) bool {
	return a == b
}

// NewMapFrom creates a Map holding the pairs of seq, all stamped at the
// clock's current time. Later duplicates are ignored. A positive sizeHint
// reserves buckets up front.
func NewMapFrom[K comparable, V any](clock aged.Clock, sizeHint int, seq iter.Seq2[K, V]) *Map[K, V] {
	m := NewMap[K, V](clock)
	if sizeHint > 0 {
		m.Reserve(sizeHint)
	}
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

// Clone returns an independent copy sharing the clock, hasher and equality.
// Temporal order and every element's timestamp are preserved.
func (m *Map[K, V]) Clone() *Map[K, V] {
	return &Map[K, V]{base[K, V]{m.core.Clone()}}
}
