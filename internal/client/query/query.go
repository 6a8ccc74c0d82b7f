// Package query owns the pagination and search state of a list screen and
// announces every change so the owner can refetch.
package query

import "sync"

// State is the current query. Total is the last server-reported count and
// is only meaningful after a successful fetch.
type State struct {
	Page     int
	PageSize int
	Search   string
	Total    int
}

// Pages is the number of pages implied by Total, at least 1.
func (s State) Pages() int {
	if s.PageSize <= 0 || s.Total <= 0 {
		return 1
	}
	return (s.Total + s.PageSize - 1) / s.PageSize
}

// HasNext reports whether a page after the current one exists.
func (s State) HasNext() bool { return s.Page < s.Pages() }

// Controller serializes mutations of a State. Each mutation other than
// SetTotal is a refetch trigger delivered to subscribers in call order.
type Controller struct {
	mu    sync.Mutex
	state State
	subs  map[int]func(State)
	next  int
}

// New returns a controller on page 1 with the given page size.
func New(pageSize int) *Controller {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Controller{
		state: State{Page: 1, PageSize: pageSize},
		subs:  make(map[int]func(State)),
	}
}

// Subscribe registers fn to be called with the new state after every
// triggering mutation. The returned func unsubscribes.
func (c *Controller) Subscribe(fn func(State)) func() {
	c.mu.Lock()
	id := c.next
	c.next++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// SetSearch replaces the search term and returns to page 1.
func (c *Controller) SetSearch(term string) State {
	return c.mutate(func(s *State) {
		s.Search = term
		s.Page = 1
	})
}

// SetPagination moves to page with the given size, keeping the search term.
// Values below 1 leave the corresponding field unchanged.
func (c *Controller) SetPagination(page, pageSize int) State {
	return c.mutate(func(s *State) {
		if page >= 1 {
			s.Page = page
		}
		if pageSize >= 1 {
			s.PageSize = pageSize
		}
	})
}

// SetTotal records the server-reported total. It does not trigger a fetch.
func (c *Controller) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	c.mu.Lock()
	c.state.Total = total
	c.mu.Unlock()
}

func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) mutate(fn func(*State)) State {
	c.mu.Lock()
	fn(&c.state)
	s := c.state
	subs := make([]func(State), 0, len(c.subs))
	for i := 0; i < c.next; i++ {
		if f, ok := c.subs[i]; ok {
			subs = append(subs, f)
		}
	}
	c.mu.Unlock()

	for _, f := range subs {
		f(s)
	}
	return s
}
