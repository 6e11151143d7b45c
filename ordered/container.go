// Package ordered provides associative containers sorted by a key
// comparator in which every element also carries a timestamp taken from an
// injected clock. Elements are reachable both by key and in age order
// through the chronological methods, and Touch promotes an element to
// newest; eviction policies are written by the caller over the
// chronological iteration. None of the types are safe for concurrent
// mutation.
package ordered

import (
	"iter"

	"github.com/ddirect/aged/internal/ordcore"
)

// base carries the operations common to all four container shapes.
type base[K, V any] struct {
	core *ordcore.Core[K, V]
}

func (b base[K, V]) Len() int {
	return b.core.Len()
}

func (b base[K, V]) Empty() bool {
	return b.core.Len() == 0
}

func (b base[K, V]) Clear() {
	b.core.Clear()
}

// Find returns the first element with a key equivalent to k, or a handle
// that is not Present.
func (b base[K, V]) Find(k K) *Item[K, V] {
	return item(b.core.Find(k))
}

func (b base[K, V]) Exists(k K) bool {
	return b.core.Find(k) != nil
}

func (b base[K, V]) Count(k K) int {
	return b.core.Count(k)
}

// LowerBound returns the first element whose key is not less than k.
func (b base[K, V]) LowerBound(k K) *Item[K, V] {
	return item(b.core.LowerBound(k))
}

// UpperBound returns the first element whose key is greater than k.
func (b base[K, V]) UpperBound(k K) *Item[K, V] {
	return item(b.core.UpperBound(k))
}

// EqualRange yields the elements equivalent to k in associative order,
// which preserves insertion order between equal keys.
func (b base[K, V]) EqualRange(k K) iter.Seq[*Item[K, V]] {
	return items(b.core.EqualRange(k))
}

// Delete removes the element behind it from both indices. It panics if the
// element is no longer in the container.
func (b base[K, V]) Delete(it *Item[K, V]) {
	b.core.Delete(elem(it))
}

// Touch restamps the element to the clock's current time and makes it the
// newest. The associative position is unchanged. O(1).
func (b base[K, V]) Touch(it *Item[K, V]) {
	b.core.Touch(elem(it))
}

// TouchKey touches every element equivalent to k and returns the count.
func (b base[K, V]) TouchKey(k K) int {
	return b.core.TouchKey(k)
}

// Oldest returns the element least recently inserted or touched.
func (b base[K, V]) Oldest() *Item[K, V] {
	return item(b.core.Oldest())
}

func (b base[K, V]) Newest() *Item[K, V] {
	return item(b.core.Newest())
}

// Ascend yields all elements in associative key order. The container must
// not be mutated during the iteration.
func (b base[K, V]) Ascend() iter.Seq[*Item[K, V]] {
	return items(b.core.Ascend())
}

func (b base[K, V]) Descend() iter.Seq[*Item[K, V]] {
	return items(b.core.Descend())
}

// From yields elements in associative order starting at the lower bound of
// k.
func (b base[K, V]) From(k K) iter.Seq[*Item[K, V]] {
	return items(b.core.From(k))
}

// Chronological yields all elements oldest to newest. The container must
// not be mutated during the iteration; use RemoveChronological to evict.
func (b base[K, V]) Chronological() iter.Seq[*Item[K, V]] {
	return items(b.core.Chronological())
}

func (b base[K, V]) ChronologicalReverse() iter.Seq[*Item[K, V]] {
	return items(b.core.ChronologicalReverse())
}

// RemoveChronological yields elements oldest first, removing each after
// its step unless the loop body already deleted it. Breaking out leaves
// the remaining elements in place, so a policy loop can stop as soon as
// its predicate fails.
func (b base[K, V]) RemoveChronological() iter.Seq[*Item[K, V]] {
	return items(b.core.RemoveChronological())
}
