// Package ordcore implements the ordered aged container core: a treap keyed
// by a three-way comparator joined with a temporal list over the same nodes.
// The treap follows the classic parent-pointer formulation; the minimum
// priority sits at the root and a zero priority marks an unlinked node.
package ordcore

import (
	"fmt"
	"iter"
	"math/rand/v2"

	"github.com/ddirect/aged"
	"github.com/ddirect/aged/internal/chrono"
)

type Core[K, V any] struct {
	root  *Element[K, V]
	list  chrono.List[Element[K, V]]
	cmp   func(K, K) int
	clock aged.Clock
}

func New[K, V any](clock aged.Clock, cmp func(K, K) int) *Core[K, V] {
	if clock == nil {
		panic(fmt.Errorf("ordcore: nil clock"))
	}
	if cmp == nil {
		panic(fmt.Errorf("ordcore: nil comparator"))
	}
	c := &Core[K, V]{cmp: cmp, clock: clock}
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

func (c *Core[K, V]) Compare(a, b K) int {
	return c.cmp(a, b)
}

// Find returns the first element equivalent to k in associative order, or
// nil.
func (c *Core[K, V]) Find(k K) *Element[K, V] {
	e := c.LowerBound(k)
	if e != nil && c.cmp(k, e.key) == 0 {
		return e
	}
	return nil
}

func (c *Core[K, V]) Count(k K) int {
	n := 0
	for e := c.Find(k); e != nil && c.cmp(k, e.key) == 0; e = c.next(e) {
		n++
	}
	return n
}

// LowerBound returns the first element whose key is not less than k, or
// nil.
func (c *Core[K, V]) LowerBound(k K) *Element[K, V] {
	var res *Element[K, V]
	for x := c.root; x != nil; {
		if c.cmp(x.key, k) < 0 {
			x = x.right
		} else {
			res = x
			x = x.left
		}
	}
	return res
}

// UpperBound returns the first element whose key is greater than k, or nil.
func (c *Core[K, V]) UpperBound(k K) *Element[K, V] {
	var res *Element[K, V]
	for x := c.root; x != nil; {
		if c.cmp(x.key, k) <= 0 {
			x = x.right
		} else {
			res = x
			x = x.left
		}
	}
	return res
}

// EqualRange yields the elements equivalent to k in associative order,
// which for multi containers is their insertion order.
func (c *Core[K, V]) EqualRange(k K) iter.Seq[*Element[K, V]] {
	return func(yield func(*Element[K, V]) bool) {
		for e := c.Find(k); e != nil && c.cmp(k, e.key) == 0; e = c.next(e) {
			if !yield(e) {
				return
			}
		}
	}
}

// InsertUnique probes for k first and only allocates on a miss, so a
// rejected insertion leaves no trace. The new element is stamped from the
// clock and linked at the temporal tail.
func (c *Core[K, V]) InsertUnique(k K, v V) (*Element[K, V], bool) {
	pos, parent := c.findSlot(k)
	if x := *pos; x != nil {
		return x, false
	}
	e := &Element[K, V]{key: k, Value: v}
	c.commit(e, pos, parent)
	return e, true
}

// GetOrCreate returns the element for k, inserting one with a zero value
// stamped now when it is missing. The second result reports whether the
// element already existed.
func (c *Core[K, V]) GetOrCreate(k K) (*Element[K, V], bool) {
	pos, parent := c.findSlot(k)
	if x := *pos; x != nil {
		return x, true
	}
	e := &Element[K, V]{key: k}
	c.commit(e, pos, parent)
	return e, false
}

// InsertMulti links the new element at the upper bound of its key, keeping
// insertion order within equal-key runs.
func (c *Core[K, V]) InsertMulti(k K, v V) *Element[K, V] {
	e := &Element[K, V]{key: k, Value: v}
	pos, parent := c.multiSlot(k)
	c.commit(e, pos, parent)
	return e
}

// findSlot locates k for unique insertion. *pos is the equivalent element
// when present, otherwise the attachment point under parent.
func (c *Core[K, V]) findSlot(k K) (pos **Element[K, V], parent *Element[K, V]) {
	pos = &c.root
	for x := *pos; x != nil; x = *pos {
		cc := c.cmp(k, x.key)
		if cc == 0 {
			break
		}
		parent = x
		if cc < 0 {
			pos = &x.left
		} else {
			pos = &x.right
		}
	}
	return pos, parent
}

// multiSlot locates the upper-bound attachment point for k; equivalent keys
// descend right so the new element lands after the existing run.
func (c *Core[K, V]) multiSlot(k K) (pos **Element[K, V], parent *Element[K, V]) {
	pos = &c.root
	for x := *pos; x != nil; x = *pos {
		parent = x
		if c.cmp(k, x.key) < 0 {
			pos = &x.left
		} else {
			pos = &x.right
		}
	}
	return pos, parent
}

func (c *Core[K, V]) commit(e *Element[K, V], pos **Element[K, V], parent *Element[K, V]) {
	e.when = c.clock.Now()
	c.list.PushBack(e)
	e.pri = rand.Uint64() | 1
	e.parent = parent
	*pos = e
	c.rotateUp(e)
}

// cloneLink threads a copied element into the tree only; the temporal list
// is threaded by the caller in a separate pass. Callers must insert in
// associative order so equal-key runs keep their order.
func (c *Core[K, V]) cloneLink(e *Element[K, V]) {
	pos, parent := c.multiSlot(e.key)
	e.pri = rand.Uint64() | 1
	e.parent = parent
	*pos = e
	c.rotateUp(e)
}

func (c *Core[K, V]) Delete(e *Element[K, V]) {
	if !e.Present() {
		panic(fmt.Errorf("ordcore: deleting element not in container"))
	}
	c.unlink(e)
	c.list.Remove(e)
}

// DeleteKey removes every element equivalent to k and returns how many
// were removed. The successor is taken before each unlink.
func (c *Core[K, V]) DeleteKey(k K) int {
	n := 0
	e := c.Find(k)
	for e != nil && c.cmp(k, e.key) == 0 {
		succ := c.next(e)
		c.Delete(e)
		e = succ
		n++
	}
	return n
}

// Clear walks the temporal list with the successor captured before each
// unlink, then drops the tree root.
func (c *Core[K, V]) Clear() {
	for e := c.list.Front(); e != nil; {
		succ := c.list.Next(e)
		c.list.Remove(e)
		e.pri = 0
		e.parent, e.left, e.right = nil, nil, nil
		e = succ
	}
	c.root = nil
}

// Touch restamps e from the clock and splices it to the temporal tail. The
// tree is not modified.
func (c *Core[K, V]) Touch(e *Element[K, V]) {
	if !e.Present() {
		panic(fmt.Errorf("ordcore: touching element not in container"))
	}
	e.when = c.clock.Now()
	c.list.MoveToBack(e)
}

// TouchKey touches every element equivalent to k and returns the count.
// Now is read once; ties within the range are broken by range order.
func (c *Core[K, V]) TouchKey(k K) int {
	now := c.clock.Now()
	n := 0
	e := c.Find(k)
	for e != nil && c.cmp(k, e.key) == 0 {
		succ := c.next(e)
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

func (c *Core[K, V]) First() *Element[K, V] {
	if c.root == nil {
		return nil
	}
	return c.root.min()
}

func (c *Core[K, V]) Last() *Element[K, V] {
	if c.root == nil {
		return nil
	}
	return c.root.max()
}

// Ascend yields all elements in associative order. The container must not
// be mutated during the iteration.
func (c *Core[K, V]) Ascend() iter.Seq[*Element[K, V]] {
	return func(yield func(*Element[K, V]) bool) {
		for e := c.First(); e != nil; e = c.next(e) {
			if !yield(e) {
				return
			}
		}
	}
}

func (c *Core[K, V]) Descend() iter.Seq[*Element[K, V]] {
	return func(yield func(*Element[K, V]) bool) {
		for e := c.Last(); e != nil; e = c.prev(e) {
			if !yield(e) {
				return
			}
		}
	}
}

// From yields elements in associative order starting at the lower bound of
// k.
func (c *Core[K, V]) From(k K) iter.Seq[*Element[K, V]] {
	return func(yield func(*Element[K, V]) bool) {
		for e := c.LowerBound(k); e != nil; e = c.next(e) {
			if !yield(e) {
				return
			}
		}
	}
}

// Chronological yields all elements oldest to newest. The container must
// not be mutated during the iteration; use RemoveChronological to evict.
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
// step, unless the loop body already deleted it. Stopping early keeps the
// rest of the container intact, which is what client eviction loops need.
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

// Clone copies every element into a fresh core sharing the clock and
// comparator. The two indices are rebuilt independently: the tree from the
// source's associative order and the temporal list from its chronological
// order, with the source timestamps. Both traversals of the clone match
// the source even after the two orders have diverged through touches.
func (c *Core[K, V]) Clone() *Core[K, V] {
	o := New[K, V](c.clock, c.cmp)
	clones := make(map[*Element[K, V]]*Element[K, V], c.Len())
	for a := c.First(); a != nil; a = c.next(a) {
		e := &Element[K, V]{key: a.key, Value: a.Value, when: a.when}
		o.cloneLink(e)
		clones[a] = e
	}
	for a := c.list.Front(); a != nil; a = c.list.Next(a) {
		o.list.PushBack(clones[a])
	}
	return o
}

// EqualTo reports whether both cores hold pairwise-equal elements in
// associative order. Temporal order is not observed.
func (c *Core[K, V]) EqualTo(o *Core[K, V], valueEq func(V, V) bool) bool {
	if c.Len() != o.Len() {
		return false
	}
	b := o.First()
	for a := c.First(); a != nil; a = c.next(a) {
		if c.cmp(a.key, b.key) != 0 || !valueEq(a.Value, b.Value) {
			return false
		}
		b = o.next(b)
	}
	return true
}

// CompareTo orders two cores lexicographically over their associative
// sequences.
func (c *Core[K, V]) CompareTo(o *Core[K, V], valueCmp func(V, V) int) int {
	a, b := c.First(), o.First()
	for a != nil && b != nil {
		if cc := c.cmp(a.key, b.key); cc != 0 {
			return cc
		}
		if cc := valueCmp(a.Value, b.Value); cc != 0 {
			return cc
		}
		a, b = c.next(a), o.next(b)
	}
	switch {
	case a != nil:
		return 1
	case b != nil:
		return -1
	default:
		return 0
	}
}

func (e *Element[K, V]) min() *Element[K, V] {
	for e.left != nil {
		e = e.left
	}
	return e
}

func (e *Element[K, V]) max() *Element[K, V] {
	for e.right != nil {
		e = e.right
	}
	return e
}

func (c *Core[K, V]) next(e *Element[K, V]) *Element[K, V] {
	if e.right != nil {
		return e.right.min()
	}
	p := e.parent
	for p != nil && p.right == e {
		e, p = p, p.parent
	}
	return p
}

func (c *Core[K, V]) prev(e *Element[K, V]) *Element[K, V] {
	if e.left != nil {
		return e.left.max()
	}
	p := e.parent
	for p != nil && p.left == e {
		e, p = p, p.parent
	}
	return p
}

// rotateUp restores the heap property after linking a new node.
func (c *Core[K, V]) rotateUp(x *Element[K, V]) {
	for x.parent != nil && x.parent.pri > x.pri {
		if x.parent.left == x {
			c.rotateRight(x.parent)
		} else {
			c.rotateLeft(x.parent)
		}
	}
}

// unlink rotates x down to a leaf respecting priorities, then detaches it.
func (c *Core[K, V]) unlink(x *Element[K, V]) {
	for x.left != nil || x.right != nil {
		if x.right == nil || x.left != nil && x.left.pri < x.right.pri {
			c.rotateRight(x)
		} else {
			c.rotateLeft(x)
		}
	}
	switch p := x.parent; {
	case p == nil:
		c.root = nil
	case p.left == x:
		p.left = nil
	default:
		p.right = nil
	}
	x.parent = nil
	x.pri = 0
}

func (c *Core[K, V]) rotateLeft(x *Element[K, V]) {
	y := x.right
	x.right = y.left
	if y.left != nil {
		y.left.parent = x
	}
	c.replaceChild(x, y)
	y.left = x
	x.parent = y
}

func (c *Core[K, V]) rotateRight(x *Element[K, V]) {
	y := x.left
	x.left = y.right
	if y.right != nil {
		y.right.parent = x
	}
	c.replaceChild(x, y)
	y.right = x
	x.parent = y
}

func (c *Core[K, V]) replaceChild(x, y *Element[K, V]) {
	y.parent = x.parent
	switch {
	case x.parent == nil:
		c.root = y
	case x.parent.left == x:
		x.parent.left = y
	default:
		x.parent.right = y
	}
}
