package ordcore

import (
	"time"

	"github.com/ddirect/aged/internal/chrono"
)

// Element is the single node shared by both indices: treap linkage for the
// associative index, chrono linkage for the temporal one. An *Element is
// also the public item handle, so recovering the node from a value
// reference is the identity.
type Element[K, V any] struct {
	parent, left, right *Element[K, V]
	pri                 uint64
	links               chrono.Links[Element[K, V]]
	when                time.Time
	key                 K
	Value               V
}

func (e *Element[K, V]) Key() K {
	return e.key
}

func (e *Element[K, V]) When() time.Time {
	return e.when
}

func (e *Element[K, V]) Present() bool {
	return e != nil && e.links.Linked()
}
