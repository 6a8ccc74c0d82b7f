package cli

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/countdown"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/models"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/notify"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	expiredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	adminStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	roleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

const dateTimeLayout = "Jan 2, 2006 15:04"

func countdownTag(r countdown.Remaining) string {
	if r.Expired {
		return expiredStyle.Render(r.String())
	}
	return runningStyle.Render(r.String())
}

func roleTag(role string) string {
	if role == "" {
		return "-"
	}
	if role == "admin" {
		return adminStyle.Render(strings.ToUpper(role))
	}
	return roleStyle.Render(strings.ToUpper(role))
}

func noticeLine(n notify.Notification) string {
	msg := n.Message
	if n.Err != nil {
		msg += ": " + n.Err.Error()
	}
	switch n.Level {
	case notify.LevelError:
		return errorStyle.Render("✗ " + msg)
	case notify.LevelSuccess:
		return successStyle.Render("✓ " + msg)
	default:
		return "• " + msg
	}
}

// renderTable lays rows out in aligned columns under a header.
func renderTable(headers []string, rows [][]string) string {
	return layout(headers, rows, 2)
}

func renderRows(rows [][]string) string {
	return layout(nil, rows, 2)
}

// layout renders a borderless table; gap is the space after each column.
func layout(headers []string, rows [][]string, gap int) string {
	cell := lipgloss.NewStyle().PaddingRight(gap)
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		StyleFunc(func(_, _ int) lipgloss.Style { return cell }).
		Rows(rows...)
	if len(headers) > 0 {
		t = t.Headers(headers...)
	}

	lines := strings.Split(strings.TrimRight(t.String(), "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}

func formatNumber(n int64) string { return humanize.Comma(n) }

// formatValue renders an attribute for display: integral numbers with
// thousands separators, other numbers with one decimal.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1e15 {
			return formatNumber(int64(x))
		}
		return humanize.FormatFloat("#,###.#", x)
	case string:
		if x == "" {
			return "-"
		}
		return x
	case bool:
		if x {
			return "yes"
		}
		return "no"
	case map[string]any:
		return fmt.Sprintf("{%d fields}", len(x))
	case []any:
		return fmt.Sprintf("[%d items]", len(x))
	default:
		return fmt.Sprint(x)
	}
}

func formatPercent(f float64) string { return fmt.Sprintf("%.1f%%", f) }

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(dateTimeLayout)
}

func formatRelative(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// renderEntity prints the listed attributes first, then the remaining
// scalar ones in name order.
func renderEntity(e models.Entity, first []string, now time.Time) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("ID: "+e.ID) + "\n")

	seen := map[string]bool{"_id": true, "id": true, "__v": true}
	rows := make([][]string, 0, len(e.Attrs))
	add := func(k string) {
		if seen[k] {
			return
		}
		seen[k] = true
		v, ok := e.Value(k)
		if !ok {
			return
		}
		rows = append(rows, []string{"  " + k + ":", attrString(e, k, v, now)})
	}
	for _, k := range first {
		add(k)
	}
	keys := make([]string, 0, len(e.Attrs))
	for k := range e.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		add(k)
	}

	b.WriteString(layout(nil, rows, 1))
	return b.String()
}

func attrString(e models.Entity, key string, v any, now time.Time) string {
	if strings.HasSuffix(key, "At") || strings.HasSuffix(key, "_at") {
		if t := e.Time(key); !t.IsZero() {
			return formatDateTime(t) + mutedStyle.Render(" ("+formatRelative(t, now)+")")
		}
	}
	if key == "role" {
		return roleTag(e.String(key))
	}
	return formatValue(v)
}

// renderStats prints a flat object of counters in key order.
func renderStats(title string, m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		v := m[k]
		if f, ok := v.(float64); ok && strings.Contains(strings.ToLower(k), "percent") {
			rows = append(rows, []string{"  " + k, formatPercent(f)})
			continue
		}
		rows = append(rows, []string{"  " + k, formatValue(v)})
	}
	if len(rows) == 0 {
		return headerStyle.Render(title) + "\n  " + mutedStyle.Render("no data")
	}
	return headerStyle.Render(title) + "\n" + renderRows(rows)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
