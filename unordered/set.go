package unordered

import (
	"iter"

	"github.com/ddirect/aged"
	"github.com/ddirect/aged/internal/hashcore"
)

// Set is an aged hashed set with unique keys; the stored value is the key
// itself.
type Set[K any] struct {
	base[K, struct{}]
}

func NewSet[K comparable](clock aged.Clock) *Set[K] {
	return NewSetFunc[K](clock, comparableHash[K](), equal[K])
}

func NewSetFunc[K any](clock aged.Clock, hash func(K) uint64, eq func(K, K) bool) *Set[K] {
	return &Set[K]{base[K, struct{}]{hashcore.New[K, struct{}](clock, hash, eq)}}
}

// NewSetFrom creates a Set holding the keys of seq, all stamped at the
// clock's current time. Later duplicates are ignored. A positive sizeHint
// reserves buckets up front.
func NewSetFrom[K comparable](clock aged.Clock, sizeHint int, seq iter.Seq[K]) *Set[K] {
	s := NewSet[K](clock)
	if sizeHint > 0 {
		s.Reserve(sizeHint)
	}
	for k := range seq {
		s.Insert(k)
	}
	return s
}

// Insert adds k stamped at the clock's current time. If k is already
// present the existing element is returned with false.
func (s *Set[K]) Insert(k K) (*SetItem[K], bool) {
	e, added := s.core.InsertUnique(k, struct{}{})
	return item(e), added
}

func (s *Set[K]) DeleteKey(k K) bool {
	return s.core.DeleteKey(k) > 0
}

func (s *Set[K]) Clone() *Set[K] {
	return &Set[K]{base[K, struct{}]{s.core.Clone()}}
}
