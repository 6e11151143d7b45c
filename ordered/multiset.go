package ordered

import (
	"cmp"
	"iter"

	"github.com/ddirect/aged"
	"github.com/ddirect/aged/internal/ordcore"
)

// MultiSet is an aged ordered set that accepts duplicate keys.
type MultiSet[K any] struct {
	base[K, struct{}]
}

func NewMultiSet[K cmp.Ordered](clock aged.Clock) *MultiSet[K] {
	return NewMultiSetFunc[K](clock, cmp.Compare[K])
}

func NewMultiSetFunc[K any](clock aged.Clock, compare func(K, K) int) *MultiSet[K] {
	return &MultiSet[K]{base[K, struct{}]{ordcore.New[K, struct{}](clock, compare)}}
}

// NewMultiSetFrom creates a MultiSet holding every key of seq, all
// stamped at the clock's current time, in the sequence's order.
func NewMultiSetFrom[K cmp.Ordered](clock aged.Clock, seq iter.Seq[K]) *MultiSet[K] {
	s := NewMultiSet[K](clock)
	for k := range seq {
		s.Insert(k)
	}
	return s
}

// Insert adds k stamped at the clock's current time, after any elements
// already holding an equivalent key.
func (s *MultiSet[K]) Insert(k K) *SetItem[K] {
	return item(s.core.InsertMulti(k, struct{}{}))
}

// DeleteKey removes every element equivalent to k and returns how many
// were removed.
func (s *MultiSet[K]) DeleteKey(k K) int {
	return s.core.DeleteKey(k)
}

func (s *MultiSet[K]) Clone() *MultiSet[K] {
	return &MultiSet[K]{base[K, struct{}]{s.core.Clone()}}
}

func (s *MultiSet[K]) Equal(o *MultiSet[K]) bool {
	return s.core.EqualTo(o.core, func(struct{}, struct{}) bool { return true })
}

func (s *MultiSet[K]) Compare(o *MultiSet[K]) int {
	return s.core.CompareTo(o.core, func(struct{}, struct{}) int { return 0 })
}
