package ordered_test

import (
	"slices"
	"testing"
	"time"

	"github.com/ddirect/aged/ordered"
	"github.com/stretchr/testify/assert"
)

func Test_SetBasic(t *testing.T) {
	s := ordered.NewSet[string](newClock())

	_, added := s.Insert("b")
	assert.True(t, added)
	_, added = s.Insert("a")
	assert.True(t, added)
	it, added := s.Insert("b")
	assert.False(t, added)
	assert.Equal(t, "b", it.Key())
	assert.Equal(t, 2, s.Len())

	assert.Equal(t, []string{"a", "b"}, keys(s.Ascend()))
	assert.True(t, s.DeleteKey("a"))
	assert.False(t, s.DeleteKey("a"))
	assert.Equal(t, 1, s.Len())
}

func Test_SetFunc(t *testing.T) {
	// order by length only; keys comparing equal collapse
	s := ordered.NewSetFunc[string](newClock(), func(a, b string) int {
		la, lb := len(a), len(b)
		switch {
		case la < lb:
			return -1
		case la > lb:
			return 1
		default:
			return 0
		}
	})

	_, added := s.Insert("aa")
	assert.True(t, added)
	it, added := s.Insert("bb")
	assert.False(t, added)
	assert.Equal(t, "aa", it.Key())
	_, added = s.Insert("c")
	assert.True(t, added)
	assert.Equal(t, []string{"c", "aa"}, keys(s.Ascend()))
}

func Test_SetFrom(t *testing.T) {
	s := ordered.NewSetFrom(newClock(), slices.Values([]int{3, 1, 2, 1}))
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []int{1, 2, 3}, keys(s.Ascend()))
	assert.Equal(t, []int{3, 1, 2}, keys(s.Chronological()))
}

func Test_MultiSetFrom(t *testing.T) {
	s := ordered.NewMultiSetFrom(newClock(), slices.Values([]int{3, 1, 1}))
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 2, s.Count(1))
}

func Test_SetEqualCompare(t *testing.T) {
	clock := newClock()
	a := ordered.NewSet[int](clock)
	b := ordered.NewSet[int](clock)

	a.Insert(1)
	a.Insert(2)
	b.Insert(2)
	b.Insert(1)

	assert.True(t, a.Equal(b))
	assert.Equal(t, 0, a.Compare(b))

	b.Insert(3)
	assert.False(t, a.Equal(b))
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
}

func Test_SetClone(t *testing.T) {
	clock := newClock()
	s := ordered.NewSet[int](clock)
	for _, k := range []int{3, 1, 2} {
		s.Insert(k)
		clock.Advance(time.Second)
	}

	c := s.Clone()
	assert.True(t, s.Equal(c))
	assert.Equal(t, keys(s.Chronological()), keys(c.Chronological()))

	c.DeleteKey(1)
	assert.True(t, s.Exists(1))
}

// A session cache: every access touches the entry, and a sweep evicts
// whatever has not been seen within the timeout.
func Test_SetAging(t *testing.T) {
	const timeout = 10 * time.Second

	clock := newClock()
	s := ordered.NewSet[string](clock)

	sweep := func() (evicted []string) {
		for it := range s.RemoveChronological() {
			if clock.Now().Sub(it.When()) <= timeout {
				break
			}
			evicted = append(evicted, it.Key())
		}
		return
	}

	s.Insert("alice")
	clock.Advance(4 * time.Second)
	s.Insert("bob")
	clock.Advance(4 * time.Second)
	s.Insert("carol")

	assert.Empty(t, sweep())

	// alice is now 11s old, the rest are younger
	clock.Advance(3 * time.Second)
	assert.Equal(t, []string{"alice"}, sweep())
	assert.Equal(t, 2, s.Len())

	// a touch keeps bob alive past the next sweep
	assert.Equal(t, 1, s.TouchKey("bob"))
	clock.Advance(8 * time.Second)
	assert.Equal(t, []string{"carol"}, sweep())
	assert.Equal(t, []string{"bob"}, keys(s.Chronological()))

	clock.Advance(timeout + time.Second)
	assert.Equal(t, []string{"bob"}, sweep())
	assert.Equal(t, 0, s.Len())
}
