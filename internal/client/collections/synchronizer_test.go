package collections

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/client"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/models"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/normalize"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/notify"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/clock"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func page(ids ...string) normalize.Page {
	items := make([]models.Entity, 0, len(ids))
	for _, id := range ids {
		items = append(items, models.Entity{ID: id})
	}
	return normalize.Page{Items: items, Total: len(items), Via: normalize.ViaList}
}

func static(p normalize.Page, err error) Fetcher {
	return func(context.Context) (normalize.Page, error) { return p, err }
}

// gated holds back the answer to request n until gates[n] is closed.
type gated struct {
	gates   []chan struct{}
	results []normalize.Page
}

func newGated(results ...normalize.Page) *gated {
	g := &gated{results: results}
	for range results {
		g.gates = append(g.gates, make(chan struct{}))
	}
	return g
}

// refresh issues request n. The fetcher is registered right before the
// refresh so the answer is tied to that request, whichever goroutine runs
// first.
func (g *gated) refresh(ctx context.Context, s *Synchronizer, n int) <-chan struct{} {
	s.Register("users", func(context.Context) (normalize.Page, error) {
		<-g.gates[n]
		return g.results[n], nil
	})
	return s.Refresh(ctx, "users")
}

func wait(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("refresh did not settle")
	}
}

func TestRefresh_LaterRequestWinsOverSlowerEarlierOne(t *testing.T) {
	g := newGated(page("a1", "a2"), page("b1"))
	s := New(WithClock(clock.Fake(t0)))

	ctx := context.Background()
	doneA := g.refresh(ctx, s, 0)
	doneB := g.refresh(ctx, s, 1)

	close(g.gates[1])
	wait(t, doneB)

	st, ok := s.State("users")
	require.True(t, ok)
	assert.Equal(t, []string{"b1"}, models.IDs(st.Items))
	assert.False(t, st.Loading, "the latest fetch settled")
	assert.EqualValues(t, 2, st.Seq)

	close(g.gates[0])
	wait(t, doneA)

	st, _ = s.State("users")
	assert.Equal(t, []string{"b1"}, models.IDs(st.Items))
	assert.EqualValues(t, 2, st.Seq)
}

func TestRefresh_InOrderResolutionAppliesBoth(t *testing.T) {
	g := newGated(page("a1"), page("b1"))
	var applied []uint64
	s := New(OnChange(func(_ string, st State) {
		if !st.Loading || st.Seq > 0 {
			applied = append(applied, st.Seq)
		}
	}))

	ctx := context.Background()
	doneA := g.refresh(ctx, s, 0)
	doneB := g.refresh(ctx, s, 1)

	close(g.gates[0])
	wait(t, doneA)
	st, _ := s.State("users")
	assert.True(t, st.Loading, "second fetch still in flight")
	assert.Equal(t, []string{"a1"}, models.IDs(st.Items))

	close(g.gates[1])
	wait(t, doneB)
	st, _ = s.State("users")
	assert.False(t, st.Loading)
	assert.Equal(t, []string{"b1"}, models.IDs(st.Items))
	assert.Equal(t, []uint64{1, 2}, applied)
}

func TestRefresh_ManyOverlappingHighestSeqWins(t *testing.T) {
	const n = 6
	results := make([]normalize.Page, n)
	for i := range results {
		results[i] = page(fmt.Sprintf("r%d", i))
	}
	g := newGated(results...)
	s := New()

	ctx := context.Background()
	dones := make([]<-chan struct{}, n)
	for i := range dones {
		dones[i] = g.refresh(ctx, s, i)
	}

	// Resolve in a scrambled order.
	for _, i := range []int{3, 5, 0, 4, 1, 2} {
		close(g.gates[i])
		wait(t, dones[i])
	}

	st, _ := s.State("users")
	assert.Equal(t, []string{"r5"}, models.IDs(st.Items))
	assert.False(t, st.Loading)
}

func TestRefresh_LoadingSetSynchronously(t *testing.T) {
	g := newGated(page("a"))
	s := New()

	done := g.refresh(context.Background(), s, 0)
	st, _ := s.State("users")
	assert.True(t, st.Loading)

	close(g.gates[0])
	wait(t, done)
	st, _ = s.State("users")
	assert.False(t, st.Loading)
}

func TestRefresh_PartialFailureIsIndependent(t *testing.T) {
	rec := &notify.Recorder{}
	clk := clock.Fake(t0)
	s := New(WithClock(clk), WithNotifier(rec))
	s.Register("active", static(page("f1", "f2"), nil))
	s.Register("private", static(normalize.Page{}, fmt.Errorf("%w: boom", client.ErrUnavailable)))

	wait(t, s.Refresh(context.Background()))

	active, _ := s.State("active")
	assert.Equal(t, []string{"f1", "f2"}, models.IDs(active.Items))
	assert.NoError(t, active.Err)
	assert.Equal(t, client.KindNone, active.Kind)
	assert.Equal(t, t0, active.LastFetchedAt)

	private, _ := s.State("private")
	assert.Empty(t, private.Items)
	assert.NotNil(t, private.Items)
	assert.ErrorIs(t, private.Err, client.ErrUnavailable)
	assert.Equal(t, client.KindTransport, private.Kind)
	assert.False(t, private.Loading)

	notes := rec.All()
	require.Len(t, notes, 1)
	assert.Equal(t, notify.LevelError, notes[0].Level)
	assert.Contains(t, notes[0].Message, "private")
}

func TestRefresh_FailureClearsStaleItems(t *testing.T) {
	var fail bool
	s := New()
	s.Register("users", func(context.Context) (normalize.Page, error) {
		if fail {
			return normalize.Page{}, &client.StatusError{Method: http.MethodGet, Path: "/users", Code: http.StatusUnauthorized}
		}
		return page("u1"), nil
	})

	ctx := context.Background()
	wait(t, s.Refresh(ctx, "users"))
	fail = true
	wait(t, s.Refresh(ctx, "users"))

	st, _ := s.State("users")
	assert.Empty(t, st.Items)
	assert.Zero(t, st.Total)
	assert.Equal(t, client.KindAuth, st.Kind)

	fail = false
	wait(t, s.Refresh(ctx, "users"))
	st, _ = s.State("users")
	assert.NoError(t, st.Err)
	assert.Equal(t, client.KindNone, st.Kind)
	assert.Len(t, st.Items, 1)
}

func TestRefresh_UnrecognizedShapeIsNotAnError(t *testing.T) {
	rec := &notify.Recorder{}
	s := New(WithNotifier(rec))
	s.Register("users", static(normalize.Empty(), nil))

	wait(t, s.Refresh(context.Background(), "users"))

	st, _ := s.State("users")
	assert.NoError(t, st.Err)
	assert.Equal(t, client.KindShape, st.Kind)
	assert.Empty(t, st.Items)
	assert.Empty(t, rec.All())
}

func TestRefresh_UnknownCollectionIgnored(t *testing.T) {
	s := New()
	wait(t, s.Refresh(context.Background(), "nope"))

	_, ok := s.State("nope")
	assert.False(t, ok)
}

func TestState_ReturnsCopy(t *testing.T) {
	s := New()
	s.Register("users", static(page("u1"), nil))
	s.Refresh(context.Background())
	s.Wait()

	st, _ := s.State("users")
	st.Items[0] = models.Entity{ID: "mutated"}

	again, _ := s.State("users")
	assert.Equal(t, "u1", again.Items[0].ID)
}

func TestRegister_KeepsStateOnReplace(t *testing.T) {
	s := New()
	s.Register("users", static(page("u1"), nil))
	s.Refresh(context.Background())
	s.Wait()

	s.Register("users", static(page("u2"), errors.New("x")))
	st, _ := s.State("users")
	assert.Equal(t, []string{"u1"}, models.IDs(st.Items))
	assert.Equal(t, []string{"users"}, s.Names())
}
