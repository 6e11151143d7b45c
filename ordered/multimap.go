package ordered

import (
	"cmp"
	"iter"

	"github.com/ddirect/aged"
	"github.com/ddirect/aged/internal/ordcore"
)

// MultiMap is an aged ordered map that accepts duplicate keys. Elements
// with equal keys keep their insertion order in associative traversal.
type MultiMap[K, V any] struct {
	base[K, V]
}

func NewMultiMap[K cmp.Ordered, V any](clock aged.Clock) *MultiMap[K, V] {
	return NewMultiMapFunc[K, V](clock, cmp.Compare[K])
}

func NewMultiMapFunc[K, V any](clock aged.Clock, compare func(K, K) int) *MultiMap[K, V] {
	return &MultiMap[K, V]{base[K, V]{ordcore.New[K, V](clock, compare)}}
}

// NewMultiMapFrom creates a MultiMap holding every pair of seq, all
// stamped at the clock's current time, in the sequence's order.
func NewMultiMapFrom[K cmp.Ordered, V any](clock aged.Clock, seq iter.Seq2[K, V]) *MultiMap[K, V] {
	m := NewMultiMap[K, V](clock)
	for k, v := range seq {
		m.Insert(k, v)
	}
	return m
}

// Insert adds k with value v stamped at the clock's current time, after
// any elements already holding an equivalent key.
func (m *MultiMap[K, V]) Insert(k K, v V) *Item[K, V] {
	return item(m.core.InsertMulti(k, v))
}

// DeleteKey removes every element equivalent to k and returns how many
// were removed.
func (m *MultiMap[K, V]) DeleteKey(k K) int {
	return m.core.DeleteKey(k)
}

func (m *MultiMap[K, V]) Clone() *MultiMap[K, V] {
	return &MultiMap[K, V]{base[K, V]{m.core.Clone()}}
}

func (m *MultiMap[K, V]) Equal(o *MultiMap[K, V], valueEq func(V, V) bool) bool {
	return m.core.EqualTo(o.core, valueEq)
}

func (m *MultiMap[K, V]) Compare(o *MultiMap[K, V], valueCmp func(V, V) int) int {
	return m.core.CompareTo(o.core, valueCmp)
}
