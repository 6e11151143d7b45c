// Package hashcore implements the unordered aged container core: an open
// hash table with an externally managed bucket array joined with a temporal
// list over the same nodes. Equal keys form a contiguous run inside their
// bucket chain, in insertion order; rehashing relinks chains without
// disturbing runs or the temporal list.
package hashcore

import (
	"fmt"
	"iter"
	"math"

	"github.com/ddirect/aged"
	"github.com/ddirect/aged/internal/chrono"
)

// bucketCounts is the prime-like growth sequence for the bucket array.
var bucketCounts = []int{
	13, 29, 53, 97, 193, 389, 769, 1543, 3079, 6151, 12289, 24593,
	49157, 98317, 196613, 393241, 786433, 1572869, 3145739, 6291469,
	12582917, 25165843, 50331653, 100663319, 201326611, 402653189,
	805306457, 1610612741,
}

// suggestedBucketCount returns the smallest entry of the growth sequence
// that is at least n, saturating at the last entry.
func suggestedBucketCount(n int) int {
	for _, c := range bucketCounts {
		if c >= n {
			return c
		}
	}
	return bucketCounts[len(bucketCounts)-1]
}

type Core[K, V any] struct {
	buckets []*Element[K, V]
	list    chrono.List[Element[K, V]]
	hash    func(K) uint64
	eq      func(K, K) bool
	maxLoad float64
	clock   aged.Clock
}

func New[K, V any](clock aged.Clock, hash func(K) uint64, eq func(K, K) bool) *Core[K, V] {
	if clock == nil {
		panic(fmt.Errorf("hashcore: nil clock"))
	}
	if hash == nil || eq == nil {
		panic(fmt.Errorf("hashcore: nil hasher or equality"))
	}
	c := &Core[K, V]{
		buckets: make([]*Element[K, V], suggestedBucketCount(0)),
		hash:    hash,
		eq:      eq,
		maxLoad: 1,
		clock:   clock,
	}
	c.list = chrono.New(func(e *Element[K, V]) *chrono.Links[Element[K, V]] {
		return &e.links
	})
	return c
}

func (c *Core[K, V]) Len() int {
	return c.list.Len()
}

func (c *Core[K, V]) Clock() aged.Clock {
	return c.clock
}

func (c *Core[K, V]) KeyEqual(a, b K) bool {
	return c.eq(a, b)
}

func (c *Core[K, V]) index(hash uint64) int {
	return int(hash % uint64(len(c.buckets)))
}

// Find returns the first element of k's run, or nil.
func (c *Core[K, V]) Find(k K) *Element[K, V] {
	for e := c.buckets[c.index(c.hash(k))]; e != nil; e = e.chain {
		if c.eq(k, e.key) {
			return e
		}
	}
	return nil
}

func (c *Core[K, V]) Count(k K) int {
	n := 0
	for e := c.Find(k); e != nil && c.eq(k, e.key); e = e.chain {
		n++
	}
	return n
}

// EqualRange yields k's run in insertion order.
func (c *Core[K, V]) EqualRange(k K) iter.Seq[*Element[K, V]] {
	return func(yield func(*Element[K, V]) bool) {
		for e := c.Find(k); e != nil && c.eq(k, e.key); e = e.chain {
			if !yield(e) {
				return
			}
		}
	}
}

func (c *Core[K, V]) InsertUnique(k K, v V) (*Element[K, V], bool) {
	if e := c.Find(k); e != nil {
		return e, false
	}
	e := &Element[K, V]{key: k, Value: v}
	c.commit(e)
	return e, true
}

func (c *Core[K, V]) GetOrCreate(k K) (*Element[K, V], bool) {
	if e := c.Find(k); e != nil {
		return e, true
	}
	e := &Element[K, V]{key: k}
	c.commit(e)
	return e, false
}

func (c *Core[K, V]) InsertMulti(k K, v V) *Element[K, V] {
	e := &Element[K, V]{key: k, Value: v}
	c.commit(e)
	return e
}

// commit grows the bucket array if needed, stamps the element from the
// clock, links it at the temporal tail and chains it into its bucket.
func (c *Core[K, V]) commit(e *Element[K, V]) {
	c.maybeRehash(1)
	e.hash = c.hash(e.key)
	e.when = c.clock.Now()
	c.list.PushBack(e)
	c.chainLink(e)
}

// chainLink inserts e after the last element of its key's run, or at the
// chain head when the key is new. Runs stay contiguous either way.
func (c *Core[K, V]) chainLink(e *Element[K, V]) {
	i := c.index(e.hash)
	var last *Element[K, V]
	for x := c.buckets[i]; x != nil; x = x.chain {
		if c.eq(e.key, x.key) {
			last = x
			for last.chain != nil && c.eq(e.key, last.chain.key) {
				last = last.chain
			}
			break
		}
	}
	if last != nil {
		e.chain = last.chain
		last.chain = e
	} else {
		e.chain = c.buckets[i]
		c.buckets[i] = e
	}
}

func (c *Core[K, V]) Delete(e *Element[K, V]) {
	if !e.Present() {
		panic(fmt.Errorf("hashcore: deleting element not in container"))
	}
	c.chainUnlink(e)
	c.list.Remove(e)
}

func (c *Core[K, V]) chainUnlink(e *Element[K, V]) {
	i := c.index(e.hash)
	if c.buckets[i] == e {
		c.buckets[i] = e.chain
	} else {
		x := c.buckets[i]
		for x.chain != e {
			x = x.chain
		}
		x.chain = e.chain
	}
	e.chain = nil
}

// DeleteKey removes every element equivalent to k and returns how many
// were removed. The run successor is taken before each unlink.
func (c *Core[K, V]) DeleteKey(k K) int {
	n := 0
	e := c.Find(k)
	for e != nil && c.eq(k, e.key) {
		succ := e.chain
		c.Delete(e)
		e = succ
		n++
	}
	return n
}

// Clear walks the temporal list with the successor captured before each
// unlink, then drops the chains. The bucket array keeps its size.
func (c *Core[K, V]) Clear() {
	for e := c.list.Front(); e != nil; {
		succ := c.list.Next(e)
		c.list.Remove(e)
		e.chain = nil
		e = succ
	}
	clear(c.buckets)
}

func (c *Core[K, V]) Touch(e *Element[K, V]) {
	if !e.Present() {
		panic(fmt.Errorf("hashcore: touching element not in container"))
	}
	e.when = c.clock.Now()
	c.list.MoveToBack(e)
}

func (c *Core[K, V]) TouchKey(k K) int {
	now := c.clock.Now()
	n := 0
	e := c.Find(k)
	for e != nil && c.eq(k, e.key) {
		succ := e.chain
		e.when = now
		c.list.MoveToBack(e)
		e = succ
		n++
	}
	return n
}

func (c *Core[K, V]) Oldest() *Element[K, V] {
	return c.list.Front()
}

func (c *Core[K, V]) Newest() *Element[K, V] {
	return c.list.Back()
}

func (c *Core[K, V]) Chronological() iter.Seq[*Element[K, V]] {
	return func(yield func(*Element[K, V]) bool) {
		for e := c.list.Front(); e != nil; e = c.list.Next(e) {
			if !yield(e) {
				return
			}
		}
	}
}

func (c *Core[K, V]) ChronologicalReverse() iter.Seq[*Element[K, V]] {
	return func(yield func(*Element[K, V]) bool) {
		for e := c.list.Back(); e != nil; e = c.list.Prev(e) {
			if !yield(e) {
				return
			}
		}
	}
}

// RemoveChronological yields the oldest element and removes it after each
// step, unless the loop body already deleted it.
func (c *Core[K, V]) RemoveChronological() iter.Seq[*Element[K, V]] {
	return func(yield func(*Element[K, V]) bool) {
		for c.Len() > 0 {
			e := c.list.Front()
			if !yield(e) {
				return
			}
			if e.Present() {
				c.Delete(e)
			}
		}
	}
}

// All yields every element; the order is unspecified beyond runs staying
// together.
func (c *Core[K, V]) All() iter.Seq[*Element[K, V]] {
	return func(yield func(*Element[K, V]) bool) {
		for _, head := range c.buckets {
			for e := head; e != nil; e = e.chain {
				if !yield(e) {
					return
				}
			}
		}
	}
}

func (c *Core[K, V]) LoadFactor() float64 {
	return float64(c.Len()) / float64(len(c.buckets))
}

func (c *Core[K, V]) MaxLoadFactor() float64 {
	return c.maxLoad
}

// SetMaxLoadFactor raises the load factor limit; values below the current
// limit are clamped to it, so the bucket invariant can never be broken in
// place.
func (c *Core[K, V]) SetMaxLoadFactor(f float64) {
	if math.IsNaN(f) || f <= 0 {
		panic(fmt.Errorf("hashcore: invalid max load factor %v", f))
	}
	c.maxLoad = math.Max(f, c.maxLoad)
}

// Rehash sets the bucket count to the suggested count for at least
// max(n, size/maxLoadFactor) and relinks every chain.
func (c *Core[K, V]) Rehash(n int) {
	need := max(n, int(math.Ceil(float64(c.Len())/c.maxLoad)))
	count := suggestedBucketCount(need)
	if count != len(c.buckets) {
		c.relink(count)
	}
}

func (c *Core[K, V]) Reserve(n int) {
	c.Rehash(int(math.Ceil(float64(n) / c.maxLoad)))
}

func (c *Core[K, V]) maybeRehash(additional int) {
	need := c.Len() + additional
	if float64(need) > float64(len(c.buckets))*c.maxLoad {
		c.relink(suggestedBucketCount(need))
	}
}

// relink redistributes all chains into a fresh bucket array using the
// cached hashes. Old chains are drained in order with tail appends, which
// keeps every equal-key run contiguous and in insertion order. The
// temporal list is untouched.
func (c *Core[K, V]) relink(count int) {
	old := c.buckets
	c.buckets = make([]*Element[K, V], count)
	tails := make([]*Element[K, V], count)
	for _, head := range old {
		for e := head; e != nil; {
			succ := e.chain
			i := c.index(e.hash)
			e.chain = nil
			if tails[i] != nil {
				tails[i].chain = e
			} else {
				c.buckets[i] = e
			}
			tails[i] = e
			e = succ
		}
	}
}

func (c *Core[K, V]) BucketCount() int {
	return len(c.buckets)
}

func (c *Core[K, V]) Bucket(k K) int {
	return c.index(c.hash(k))
}

func (c *Core[K, V]) BucketSize(i int) int {
	n := 0
	for e := c.buckets[i]; e != nil; e = e.chain {
		n++
	}
	return n
}

// BucketItems yields the elements chained in bucket i.
func (c *Core[K, V]) BucketItems(i int) iter.Seq[*Element[K, V]] {
	return func(yield func(*Element[K, V]) bool) {
		for e := c.buckets[i]; e != nil; e = e.chain {
			if !yield(e) {
				return
			}
		}
	}
}

// Clone copies every element into a fresh core sharing the clock, hasher
// and equality. The two indices are rebuilt independently: the chains from
// the source's bucket order, so equal-key runs keep their insertion order,
// and the temporal list from its chronological order, with the source
// timestamps. Both survive even after the orders have diverged through
// touches.
func (c *Core[K, V]) Clone() *Core[K, V] {
	o := New[K, V](c.clock, c.hash, c.eq)
	o.maxLoad = c.maxLoad
	o.Rehash(len(c.buckets))
	clones := make(map[*Element[K, V]]*Element[K, V], c.Len())
	for _, head := range c.buckets {
		for a := head; a != nil; a = a.chain {
			e := &Element[K, V]{key: a.key, Value: a.Value, hash: a.hash, when: a.when}
			o.chainLink(e)
			clones[a] = e
		}
	}
	for a := c.list.Front(); a != nil; a = c.list.Next(a) {
		o.list.PushBack(clones[a])
	}
	return o
}
