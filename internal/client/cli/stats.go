package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/notify"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/services"
)

// Stats prints the user, resource and report counters. A failing source
// is reported and the others are still shown.
func (a *App) Stats(ctx context.Context) error {
	sources := []struct {
		title string
		fetch func(context.Context) (map[string]any, error)
	}{
		{"Users", a.userService.Stats},
		{"Resources", a.resourceService.Stats},
		{"Reports", a.reportService.Stats},
	}

	var firstErr error
	for _, s := range sources {
		m, err := s.fetch(ctx)
		if err != nil {
			a.printErr("Failed to load "+s.title+" stats", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		printlnFn(renderStats(s.title, m))
	}

	if daily, err := a.userService.DailyActive(ctx, services.DefaultAnalyticsDays); err == nil && len(daily.Items) > 0 {
		last := daily.Items[len(daily.Items)-1]
		printlnFn("Daily active (latest): " + formatNumber(int64(last.Int("count"))))
	}
	if growth, err := a.userService.Growth(ctx, services.DefaultAnalyticsDays); err == nil && len(growth.Items) > 0 {
		n := 0
		for _, g := range growth.Items {
			n += g.Int("count")
		}
		printlnFn(fmt.Sprintf("New users (%d days): %s", services.DefaultAnalyticsDays, formatNumber(int64(n))))
	}
	return firstErr
}

// Reports lists moderation reports, optionally filtered by status.
func (a *App) Reports(ctx context.Context, status string) error {
	filters := map[string]string{}
	if status != "" {
		filters["status"] = status
	}
	p, err := a.reportService.List(ctx, filters)
	if err != nil {
		a.printErr("Failed to load reports", err)
		return err
	}

	now := a.clk.Now()
	rows := make([][]string, 0, len(p.Items))
	for _, r := range p.Items {
		rows = append(rows, []string{
			r.ID,
			orDash(r.String("reason")),
			orDash(r.String("reportedBy.name")),
			formatRelative(r.Time("createdAt"), now),
			orDash(r.String("status")),
		})
	}
	if len(rows) == 0 {
		printlnFn(mutedStyle.Render("No reports"))
		return nil
	}
	printlnFn(renderTable([]string{"ID", "REASON", "REPORTED BY", "CREATED", "STATUS"}, rows))
	printlnFn(mutedStyle.Render(formatNumber(int64(p.Total)) + " reports"))
	return nil
}

// Report moves a report to a new status, or deletes it after confirmation.
func (a *App) Report(ctx context.Context, action, id string) error {
	var err error
	msg := "Report updated"
	if action == "delete" {
		if !confirm(a.reader, fmt.Sprintf("Delete report %s?", id), os.Stdout) {
			printlnFn("Cancelled")
			return nil
		}
		err = a.reportService.Delete(ctx, id)
		msg = "Report deleted"
	} else {
		_, err = a.reportService.Update(ctx, id, map[string]any{"status": action})
	}

	if err != nil {
		a.notifier.Notify(ctx, notify.Notification{Level: notify.LevelError, Message: "Failed to update report", Err: err})
		a.flushNotifications()
		return err
	}
	a.notifier.Notify(ctx, notify.Notification{Level: notify.LevelSuccess, Message: msg})
	a.flushNotifications()
	return nil
}

// Notices prints every notification shown in this session.
func (a *App) Notices(context.Context) error {
	all := a.notes.All()
	if len(all) == 0 {
		printlnFn(mutedStyle.Render("No notifications"))
		return nil
	}
	for _, n := range all {
		printlnFn(noticeLine(n))
	}
	return nil
}
