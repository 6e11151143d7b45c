package unordered

import (
	"iter"

	"github.com/ddirect/aged"
	"github.com/ddirect/aged/internal/hashcore"
)

// MultiMap is an aged hashed map that accepts duplicate keys. Elements
// with equal keys stay contiguous in their bucket chain, in insertion
// order, and rehashing keeps them together.
type MultiMap[K, V any] struct {
	base[K, V]
}

func NewMultiMap[K comparable, V any](clock aged.Clock) *MultiMap[K, V] {
	return NewMultiMapFunc[K, V](clock, comparableHash[K](), equal[K])
}

func NewMultiMapFunc[K, V any](clock aged.Clock, hash func(K) uint64, eq func(K, K) bool) *MultiMap[K, V] {
	return &MultiMap[K, V]{base[K, V]{hashcore.New[K, V](clock, hash, eq)}}
}

// NewMultiMapFrom creates a MultiMap holding every pair of seq, all
// stamped at the clock's current time, in the sequence's order. A
// positive sizeHint reserves buckets up front.
func NewMultiMapFrom[K comparable, V any](clock aged.Clock, sizeHint int, seq iter.Seq2[K, V]) *MultiMap[K, V] {
	m := NewMultiMap[K, V](clock)
	if sizeHint > 0 {
		m.Reserve(sizeHint)
	}
	for k, v := range seq {
		m.Insert(k, v)
	}
	return m
}

// Insert adds k with value v stamped at the clock's current time, after
// any elements already holding an equal key.
func (m *MultiMap[K, V]) Insert(k K, v V) *Item[K, V] {
	return item(m.core.InsertMulti(k, v))
}

// DeleteKey removes every element equal to k and returns how many were
// removed.
func (m *MultiMap[K, V]) DeleteKey(k K) int {
	return m.core.DeleteKey(k)
}

func (m *MultiMap[K, V]) Clone() *MultiMap[K, V] {
	return &MultiMap[K, V]{base[K, V]{m.core.Clone()}}
}
