package unordered

import (
	"iter"

	"github.com/ddirect/aged"
	"github.com/ddirect/aged/internal/hashcore"
)

// MultiSet is an aged hashed set that accepts duplicate keys.
type MultiSet[K any] struct {
	base[K, struct{}]
}

func NewMultiSet[K comparable](clock aged.Clock) *MultiSet[K] {
	return NewMultiSetFunc[K](clock, comparableHash[K](), equal[K])
}

func NewMultiSetFunc[K any](clock aged.Clock, hash func(K) uint64, eq func(K, K) bool) *MultiSet[K] {
	return &MultiSet[K]{base[K, struct{}]{hashcore.New[K, struct{}](clock, hash, eq)}}
}

// NewMultiSetFrom creates a MultiSet holding every key of seq, all
// stamped at the clock's current time, in the sequence's order. A
// positive sizeHint reserves buckets up front.
func NewMultiSetFrom[K comparable](clock aged.Clock, sizeHint int, seq iter.Seq[K]) *MultiSet[K] {
	s := NewMultiSet[K](clock)
	if sizeHint > 0 {
		s.Reserve(sizeHint)
	}
	for k := range seq {
		s.Insert(k)
	}
	return s
}

// Insert adds k stamped at the clock's current time, after any elements
// already holding an equal key.
func (s *MultiSet[K]) Insert(k K) *SetItem[K] {
	return item(s.core.InsertMulti(k, struct{}{}))
}

// DeleteKey removes every element equal to k and returns how many were
// removed.
func (s *MultiSet[K]) DeleteKey(k K) int {
	return s.core.DeleteKey(k)
}

func (s *MultiSet[K]) Clone() *MultiSet[K] {
	return &MultiSet[K]{base[K, struct{}]{s.core.Clone()}}
}
