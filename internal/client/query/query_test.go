package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_SetSearchResetsPage(t *testing.T) {
	c := New(10)
	c.SetPagination(4, 0)

	s := c.SetSearch("asha")
	assert.Equal(t, State{Page: 1, PageSize: 10, Search: "asha"}, s)
}

func TestController_SetPaginationKeepsSearch(t *testing.T) {
	c := New(10)
	c.SetSearch("asha")

	s := c.SetPagination(3, 25)
	assert.Equal(t, "asha", s.Search)
	assert.Equal(t, 3, s.Page)
	assert.Equal(t, 25, s.PageSize)

	s = c.SetPagination(0, -1)
	assert.Equal(t, 3, s.Page)
	assert.Equal(t, 25, s.PageSize)
}

func TestController_EveryMutationTriggers(t *testing.T) {
	c := New(10)

	var got []State
	unsub := c.Subscribe(func(s State) { got = append(got, s) })

	c.SetSearch("a")
	c.SetSearch("a")
	c.SetPagination(2, 0)
	c.SetTotal(42)

	require.Len(t, got, 3)
	assert.Equal(t, "a", got[1].Search)
	assert.Equal(t, 2, got[2].Page)
	assert.Equal(t, 42, c.Snapshot().Total)

	unsub()
	c.SetSearch("b")
	assert.Len(t, got, 3)
}

func TestController_LastSearchWins(t *testing.T) {
	c := New(10)
	var last string
	c.Subscribe(func(s State) { last = s.Search })

	for _, term := range []string{"a", "as", "ash", "asha"} {
		c.SetSearch(term)
	}
	assert.Equal(t, "asha", last)
	assert.Equal(t, "asha", c.Snapshot().Search)
}

func TestController_SubscribersInOrder(t *testing.T) {
	c := New(5)
	var order []int
	c.Subscribe(func(State) { order = append(order, 1) })
	c.Subscribe(func(State) { order = append(order, 2) })

	c.SetSearch("x")
	assert.Equal(t, []int{1, 2}, order)
}

func TestState_Pages(t *testing.T) {
	assert.Equal(t, 1, State{PageSize: 10}.Pages())
	assert.Equal(t, 3, State{PageSize: 10, Total: 21}.Pages())
	assert.Equal(t, 2, State{PageSize: 10, Total: 20}.Pages())

	assert.True(t, State{Page: 1, PageSize: 10, Total: 11}.HasNext())
	assert.False(t, State{Page: 2, PageSize: 10, Total: 11}.HasNext())
}

func TestNew_ClampsPageSize(t *testing.T) {
	assert.Equal(t, 1, New(0).Snapshot().PageSize)
	c := New(10)
	c.SetTotal(-5)
	assert.Zero(t, c.Snapshot().Total)
}
