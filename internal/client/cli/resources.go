package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/collections"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/countdown"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/models"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/views"
)

// Resources mounts the resources view (starting its countdowns) and prints
// both collections.
func (a *App) Resources(ctx context.Context) error {
	a.show(screenResources)
	if err := await(ctx, a.resources.Mount(ctx)); err != nil {
		return err
	}
	a.printResources()
	return nil
}

// Resource opens the detail of a resource with its participants.
func (a *App) Resource(ctx context.Context, id string) error {
	name := views.CollectionActive
	if st := a.resources.State(); containsID(st.Private, id) {
		name = views.CollectionPrivate
	}
	if err := await(ctx, a.resources.Select(ctx, name, id)); err != nil {
		return err
	}

	st := a.resources.State().Detail
	if !st.Open {
		return nil
	}
	printlnFn(renderEntity(st.Entity, []string{"name", "type", "participantCount", "createdAt", "expiresAt"}, a.clk.Now()))
	if left, ok := a.resources.DetailCountdown(); ok {
		printlnFn("Time left: " + countdownTag(left))
	}

	rows := make([][]string, 0, len(st.Related))
	for _, p := range st.Related {
		rows = append(rows, []string{orDash(p.ID), orDash(p.String("name")), orDash(p.String("email")), formatRelative(p.Time("joinedAt"), a.clk.Now())})
	}
	printlnFn(headerStyle.Render(fmt.Sprintf("Participants (%d)", len(rows))))
	if len(rows) > 0 {
		printlnFn(renderTable([]string{"ID", "NAME", "EMAIL", "JOINED"}, rows))
	}
	return nil
}

// CloseDetail closes any open detail panel and releases its countdown.
func (a *App) CloseDetail(context.Context) error {
	a.users.CloseDetail()
	a.resources.CloseDetail()
	return nil
}

// Timers prints every countdown of the resources view.
func (a *App) Timers(context.Context) error {
	st := a.resources.State()
	var rows [][]string
	for _, c := range []struct {
		name  string
		state collections.State
	}{
		{views.CollectionActive, st.Active},
		{views.CollectionPrivate, st.Private},
	} {
		names := make(map[string]string, len(c.state.Items))
		for _, e := range c.state.Items {
			names[e.ID] = e.String("name")
		}
		for _, id := range a.resources.CountdownIDs(c.name) {
			if rem, ok := a.resources.Countdown(c.name, id); ok {
				rows = append(rows, []string{c.name, id, orDash(names[id]), countdownTag(rem)})
			}
		}
	}
	if left, ok := a.sessionLeft(); ok {
		rows = append(rows, []string{"session", "-", "-", countdownTag(left)})
	}

	if len(rows) == 0 {
		printlnFn(mutedStyle.Render("No countdowns running"))
		return nil
	}
	printlnFn(renderTable([]string{"COLLECTION", "ID", "NAME", "TIME LEFT"}, rows))
	printlnFn(mutedStyle.Render(fmt.Sprintf("%d of %d timers ticking", a.resources.ActiveTimers(), a.resources.TrackedTimers())))
	return nil
}

// Refresh refetches the screen shown last.
func (a *App) Refresh(ctx context.Context) error {
	a.mu.Lock()
	cur := a.current
	a.mu.Unlock()

	switch cur {
	case screenUsers:
		if err := await(ctx, a.users.Refresh(ctx)); err != nil {
			return err
		}
		a.printUsers()
	case screenResources:
		if err := await(ctx, a.resources.Refresh(ctx)); err != nil {
			return err
		}
		a.printResources()
	default:
		printlnFn("Nothing to refresh; open users or resources first")
	}
	return nil
}

func (a *App) show(s screen) {
	a.mu.Lock()
	a.current = s
	a.mu.Unlock()
}

func (a *App) printResources() {
	st := a.resources.State()
	now := a.clk.Now()

	printlnFn(headerStyle.Render(fmt.Sprintf("Active (%d)", len(st.Active.Items))))
	printlnFn(renderCollection(st.Active, now, func(id string) (countdown.Remaining, bool) {
		return a.resources.Countdown(views.CollectionActive, id)
	}))
	printlnFn(headerStyle.Render(fmt.Sprintf("Private (%d)", len(st.Private.Items))))
	printlnFn(renderCollection(st.Private, now, func(id string) (countdown.Remaining, bool) {
		return a.resources.Countdown(views.CollectionPrivate, id)
	}))
}

func renderCollection(st collections.State, now time.Time, left func(id string) (countdown.Remaining, bool)) string {
	if st.Err != nil {
		return errorStyle.Render("failed: " + st.Err.Error())
	}
	if len(st.Items) == 0 {
		return mutedStyle.Render("  none")
	}

	rows := make([][]string, 0, len(st.Items))
	for _, e := range st.Items {
		timer := "-"
		if rem, ok := left(e.ID); ok {
			timer = countdownTag(rem)
		}
		rows = append(rows, []string{
			e.ID,
			orDash(e.String("name")),
			strings.ToUpper(orDash(e.String("type"))),
			formatNumber(int64(e.Int("participantCount"))),
			orDash(firstNonEmpty(e.String("creator.name"), "System")),
			formatRelative(e.Time("createdAt"), now),
			timer,
		})
	}
	return renderTable([]string{"ID", "NAME", "TYPE", "PARTICIPANTS", "CREATED BY", "CREATED", "TIME LEFT"}, rows)
}

func containsID(st collections.State, id string) bool {
	return slices.Contains(models.IDs(st.Items), id)
}

func firstNonEmpty(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}
	return ""
}
