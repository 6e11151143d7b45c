package ordered

import (
	"cmp"
	"iter"

	"github.com/ddirect/aged"
	"github.com/ddirect/aged/internal/ordcore"
)

// Set is an aged ordered set with unique keys; the stored value is the key
// itself.
type Set[K any] struct {
	base[K, struct{}]
}

func NewSet[K cmp.Ordered](clock aged.Clock) *Set[K] {
	return NewSetFunc[K](clock, cmp.Compare[K])
}

func NewSetFunc[K any](clock aged.Clock, compare func(K, K) int) *Set[K] {
	return &Set[K]{base[K, struct{}]{ordcore.New[K, struct{}](clock, compare)}}
}

// NewSetFrom creates a Set holding the keys of seq, all stamped at the
// clock's current time. Later duplicates are ignored.
func NewSetFrom[K cmp.Ordered](clock aged.Clock, seq iter.Seq[K]) *Set[K] {
	s := NewSet[K](clock)
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

// Equal reports whether both sets hold pairwise-equivalent keys in
// associative order. Both sets must use the same comparator.
func (s *Set[K]) Equal(o *Set[K]) bool {
	return s.core.EqualTo(o.core, func(struct{}, struct{}) bool { return true })
}

func (s *Set[K]) Compare(o *Set[K]) int {
	return s.core.CompareTo(o.core, func(struct{}, struct{}) int { return 0 })
}
