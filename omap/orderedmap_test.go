package omap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapKeepsInsertionOrder(t *testing.T) {
	req := require.New(t)

	m := New[string, int]()
	m.Set("vsnprintf", 1)
	m.Set("malloc", 2)
	m.Set("free", 3)
	m.Set("malloc", 20)

	req.Equal(3, m.Len())
	req.Equal([]string{"vsnprintf", "malloc", "free"}, m.Keys())

	v, ok := m.Get("malloc")
	req.True(ok)
	req.Equal(20, v)

	_, ok = m.Get("realloc")
	req.False(ok)

	var seen []int
	m.Each(func(k string, v int) { seen = append(seen, v) })
	req.Equal([]int{1, 20, 3}, seen)
}

func TestKeysIsACopy(t *testing.T) {
	m := New[int, string]()
	m.Set(1, "a")
	keys := m.Keys()
	keys[0] = 99
	require.Equal(t, []int{1}, m.Keys())
}
