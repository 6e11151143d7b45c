package hashcore

import (
	"time"

	"github.com/ddirect/aged/internal/chrono"
)

// Element is the node shared by the bucket chains and the temporal list.
// The hash is cached so rehashing never calls the hasher again.
type Element[K, V any] struct {
	chain *Element[K, V]
	hash  uint64
	links chrono.Links[Element[K, V]]
	when  time.Time
	key   K
	Value V
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
