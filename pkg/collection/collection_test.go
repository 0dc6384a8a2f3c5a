package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortByDoesNotMutate(t *testing.T) {
	in := []int{3, 1, 2}
	out := SortBy(in, func(a, b int) bool { return a < b })
	assert.Equal(t, []int{1, 2, 3}, out)
	assert.Equal(t, []int{3, 1, 2}, in)
}

func TestSum(t *testing.T) {
	type order struct{ total float64 }
	orders := []order{{10}, {20.5}}
	assert.Equal(t, 30.5, Sum(orders, func(o order) float64 { return o.total }))
	assert.Equal(t, 0.0, Sum(nil, func(o order) float64 { return o.total }))
}

func TestTake(t *testing.T) {
	s := []int{1, 2, 3}
	assert.Equal(t, []int{1, 2}, Take(s, 2))
	assert.Equal(t, s, Take(s, 10))
	assert.Empty(t, Take(s, 0))
	assert.Empty(t, Take(s, -1))
}

func TestGroupBy(t *testing.T) {
	grouped := GroupBy([]string{"dog", "cat", "dove"}, func(s string) byte { return s[0] })
	assert.Len(t, grouped['d'], 2)
	assert.Len(t, grouped['c'], 1)
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, Unique([]int{1, 2, 1, 3, 2}))
}
