package unordered

import (
	"iter"
	"time"

	"github.com/ddirect/aged/internal/hashcore"
)

// Item is a handle to a stored element. It stays valid until the element
// is deleted; Present reports liveness. Rehashing never invalidates items.
type Item[K, V any] hashcore.Element[K, V]

// SetItem is the item shape used by Set and MultiSet, where the value is
// the key alone.
type SetItem[K any] = Item[K, struct{}]

func elem[K, V any](it *Item[K, V]) *hashcore.Element[K, V] {
	return (*hashcore.Element[K, V])(it)
}

func item[K, V any](e *hashcore.Element[K, V]) *Item[K, V] {
	return (*Item[K, V])(e)
}

func (it *Item[K, V]) Present() bool {
	return elem(it).Present()
}

func (it *Item[K, V]) Key() K {
	return elem(it).Key()
}

// When returns the element's timestamp: the clock reading at insertion or
// at the last touch.
func (it *Item[K, V]) When() time.Time {
	return elem(it).When()
}

func items[K, V any](seq iter.Seq[*hashcore.Element[K, V]]) iter.Seq[*Item[K, V]] {
	return func(yield func(*Item[K, V]) bool) {
		for e := range seq {
			if !yield(item(e)) {
				return
			}
		}
	}
}
