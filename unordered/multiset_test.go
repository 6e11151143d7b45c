package unordered_test

import (
	"testing"
	"time"

	"github.com/ddirect/aged/unordered"
	"github.com/stretchr/testify/assert"
)

func Test_MultiSetBasic(t *testing.T) {
	clock := newClock()
	s := unordered.NewMultiSet[int](clock)

	first := s.Insert(5)
	clock.Advance(time.Second)
	second := s.Insert(5)
	s.Insert(3)

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 2, s.Count(5))
	assert.True(t, first.When().Before(second.When()))
	assert.Same(t, first, s.Find(5))
	assert.Equal(t, []int{5, 5}, keys(s.EqualRange(5)))

	assert.Equal(t, 2, s.DeleteKey(5))
	assert.False(t, first.Present())
	assert.False(t, second.Present())
	assert.Equal(t, 1, s.Len())
}

func Test_MultiSetFunc(t *testing.T) {
	// all keys collide so equal runs share one chain
	s := unordered.NewMultiSetFunc[string](newClock(),
		func(string) uint64 { return 7 },
		func(a, b string) bool { return a == b })

	s.Insert("a")
	s.Insert("b")
	s.Insert("a")

	assert.Equal(t, 2, s.Count("a"))
	assert.Equal(t, 1, s.Count("b"))
	assert.Equal(t, 2, s.DeleteKey("a"))
	assert.Equal(t, 1, s.Len())
}
