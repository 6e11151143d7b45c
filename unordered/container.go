// Package unordered provides hash-indexed associative containers in which
// every element also carries a timestamp taken from an injected clock.
// The bucket array grows along a prime-like sequence so that the load
// factor never exceeds its configured maximum, and rehashing preserves the
// temporal order exactly. Cross-container equality is deliberately not
// provided; use the ordered package when containers need to be compared.
// None of the types are safe for concurrent mutation.
package unordered

import (
	"iter"

	"github.com/ddirect/aged/internal/hashcore"
)

// base carries the operations common to all four container shapes.
type base[K, V any] struct {
	core *hashcore.Core[K, V]
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

// Find returns the first element with a key equal to k, or a handle that
// is not Present.
func (b base[K, V]) Find(k K) *Item[K, V] {
	return item(b.core.Find(k))
}

func (b base[K, V]) Exists(k K) bool {
	return b.core.Find(k) != nil
}

func (b base[K, V]) Count(k K) int {
	return b.core.Count(k)
}

// EqualRange yields the elements equal to k in insertion order.
func (b base[K, V]) EqualRange(k K) iter.Seq[*Item[K, V]] {
	return items(b.core.EqualRange(k))
}

// Delete removes the element behind it from both indices. It panics if the
// element is no longer in the container.
func (b base[K, V]) Delete(it *Item[K, V]) {
	b.core.Delete(elem(it))
}

// Touch restamps the element to the clock's current time and makes it the
// newest. Buckets are unchanged. O(1).
func (b base[K, V]) Touch(it *Item[K, V]) {
	b.core.Touch(elem(it))
}

// TouchKey touches every element equal to k and returns the count.
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

// All yields every element in an unspecified order; equal keys stay
// together. The container must not be mutated during the iteration.
func (b base[K, V]) All() iter.Seq[*Item[K, V]] {
	return items(b.core.All())
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
// the remaining elements in place.
func (b base[K, V]) RemoveChronological() iter.Seq[*Item[K, V]] {
	return items(b.core.RemoveChronological())
}

func (b base[K, V]) LoadFactor() float64 {
	return b.core.LoadFactor()
}

func (b base[K, V]) MaxLoadFactor() float64 {
	return b.core.MaxLoadFactor()
}

// SetMaxLoadFactor raises the load factor limit. Values below the current
// limit are clamped to it.
func (b base[K, V]) SetMaxLoadFactor(f float64) {
	b.core.SetMaxLoadFactor(f)
}

// Rehash sets the bucket count to at least max(n, size/MaxLoadFactor),
// rounded up along the growth sequence.
func (b base[K, V]) Rehash(n int) {
	b.core.Rehash(n)
}

// Reserve sizes the bucket array so that n elements fit without another
// rehash.
func (b base[K, V]) Reserve(n int) {
	b.core.Reserve(n)
}

func (b base[K, V]) BucketCount() int {
	return b.core.BucketCount()
}

// Bucket returns the index of the bucket k would occupy.
func (b base[K, V]) Bucket(k K) int {
	return b.core.Bucket(k)
}

func (b base[K, V]) BucketSize(i int) int {
	return b.core.BucketSize(i)
}

// BucketItems yields the elements chained in bucket i.
func (b base[K, V]) BucketItems(i int) iter.Seq[*Item[K, V]] {
	return items(b.core.BucketItems(i))
}
