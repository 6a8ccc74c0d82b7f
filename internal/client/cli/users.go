package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/views"
)

// Users fetches the current page of users and prints it.
func (a *App) Users(ctx context.Context) error {
	a.show(screenUsers)
	if err := await(ctx, a.users.Mount(ctx)); err != nil {
		return err
	}
	a.printUsers()
	return nil
}

// Search filters users by term and returns to the first page.
func (a *App) Search(ctx context.Context, term string) error {
	a.show(screenUsers)
	if err := await(ctx, a.users.Search(ctx, term)); err != nil {
		return err
	}
	a.printUsers()
	return nil
}

// Page moves to a page of the user list: "page <n> [size]".
func (a *App) Page(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: page <n> [size]")
		return nil
	}
	page, err := strconv.Atoi(args[0])
	if err != nil || page < 1 {
		printlnFn("Page must be a positive number")
		return nil
	}
	size := 0
	if len(args) > 1 {
		if size, err = strconv.Atoi(args[1]); err != nil || size < 1 {
			printlnFn("Page size must be a positive number")
			return nil
		}
	}

	a.show(screenUsers)
	if err := await(ctx, a.users.Paginate(ctx, page, size)); err != nil {
		return err
	}
	a.printUsers()
	return nil
}

// User shows one user; the list row first, then the fetched record.
func (a *App) User(ctx context.Context, id string) error {
	if err := await(ctx, a.users.Select(ctx, id)); err != nil {
		return err
	}
	st := a.users.State().Detail
	if !st.Open {
		return nil
	}
	printlnFn(renderEntity(st.Entity, []string{"name", "email", "role", "isActive", "isBanned", "createdAt", "lastLogin"}, a.clk.Now()))
	return nil
}

// UpdateUser changes fields of a user: "update <id> key=value...". The list
// is refetched only when the update succeeded.
func (a *App) UpdateUser(ctx context.Context, id string, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: update <id> key=value ...")
		return nil
	}
	fields, err := parseFields(args)
	if err != nil {
		a.printErr("Invalid field", err)
		return nil
	}
	done, err := a.users.Update(ctx, id, fields)
	if err != nil {
		return err
	}
	if err := await(ctx, done); err != nil {
		return err
	}
	a.show(screenUsers)
	a.printUsers()
	return nil
}

// parseFields turns key=value arguments into a JSON object. true, false
// and numbers keep their JSON type; everything else is a string.
func parseFields(args []string) (map[string]any, error) {
	fields := make(map[string]any, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("expected key=value, got %q", arg)
		}
		switch {
		case v == "true":
			fields[k] = true
		case v == "false":
			fields[k] = false
		default:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				fields[k] = f
			} else {
				fields[k] = v
			}
		}
	}
	return fields, nil
}

// DeleteUser asks for confirmation and deletes a user. The list is
// refreshed only when the deletion succeeded.
func (a *App) DeleteUser(ctx context.Context, id string) error {
	if !confirm(a.reader, fmt.Sprintf("Delete user %s?", id), os.Stdout) {
		printlnFn("Cancelled")
		return nil
	}
	done, err := a.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if err := await(ctx, done); err != nil {
		return err
	}
	a.printUsers()
	return nil
}

func (a *App) printUsers() {
	printlnFn(renderUsers(a.users.State(), a.clk.Now()))
}

func renderUsers(st views.UsersState, now time.Time) string {
	rows := make([][]string, 0, len(st.List.Items))
	for _, u := range st.List.Items {
		status := "active"
		switch active, _ := u.Value("isActive"); {
		case u.Bool("isBanned"):
			status = "banned"
		case active == false:
			status = "inactive"
		}
		rows = append(rows, []string{
			u.ID,
			orDash(u.String("name")),
			orDash(u.String("email")),
			status,
			formatRelative(u.Time("createdAt"), now),
			roleTag(u.String("role")),
		})
	}

	out := renderTable([]string{"ID", "NAME", "EMAIL", "STATUS", "JOINED", "ROLE"}, rows)
	if len(rows) == 0 {
		out = mutedStyle.Render("No users")
	}

	q := st.Query
	footer := fmt.Sprintf("Page %d/%d · %s users", q.Page, q.Pages(), formatNumber(int64(q.Total)))
	if q.Search != "" {
		footer += fmt.Sprintf(" · search %q", q.Search)
	}
	if q.HasNext() {
		footer += fmt.Sprintf(" · next: page %d", q.Page+1)
	}
	return out + "\n" + mutedStyle.Render(footer)
}
