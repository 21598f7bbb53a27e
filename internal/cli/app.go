package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"teambudget/internal/auditlog"
	"teambudget/internal/budget"
	"teambudget/internal/product"
	"teambudget/internal/purchase"
	"teambudget/internal/spend"
	"teambudget/internal/team"
	"teambudget/internal/transaction"
	"teambudget/internal/user"
)

// Deps bundles everything the interactive tool needs.
type Deps struct {
	Teams        team.Repository
	Users        user.Repository
	Products     product.Repository
	Budgets      *budget.Service
	Transactions transaction.Repository
	Logs         auditlog.Repository
	Purchaser    *purchase.Service
	Planner      *spend.Planner
}

// App drives the interactive terminal session. All menus run inside a single
// dispatch loop per level; no handler re-invokes its own menu.
type App struct {
	Deps

	scanner *bufio.Scanner
	out     io.Writer
}

// NewApp creates an App reading from stdin and writing to stdout.
func NewApp(deps Deps) *App {
	return &App{
		Deps:    deps,
		scanner: bufio.NewScanner(os.Stdin),
		out:     os.Stdout,
	}
}

// Run starts the login loop: pick a user, land on the matching dashboard,
// return here on logout. It ends when the operator picks Exit or input ends.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "Welcome to the Budget Tool!")

	for {
		users, err := a.Users.List(ctx)
		if err != nil {
			return fmt.Errorf("listing users: %w", err)
		}
		if len(users) == 0 {
			fmt.Fprintln(a.out, "No users exist yet. Run `teambudget setup create insert` first.")
			return nil
		}

		fmt.Fprintln(a.out, "\nPlease select your username:")
		for i, u := range users {
			fmt.Fprintf(a.out, "  %d) %s (%s)\n", i+1, u.Username, teamLabel(&u))
		}
		fmt.Fprintln(a.out, "  0) Exit")

		choice, ok := a.promptInt("Choose an option")
		if !ok || choice == 0 {
			fmt.Fprintln(a.out, "Goodbye!")
			return nil
		}
		if choice < 1 || choice > len(users) {
			fmt.Fprintln(a.out, "Invalid selection.")
			continue
		}

		u := users[choice-1]
		fmt.Fprintf(a.out, "Logged in as %s (%s)\n", u.Username, roleLabel(&u))

		if u.IsAdmin {
			err = a.adminDashboard(ctx, &u)
		} else {
			err = a.userDashboard(ctx, &u)
		}
		if err != nil {
			return err
		}
	}
}

func teamLabel(u *user.User) string {
	if u.TeamName != nil {
		return *u.TeamName
	}
	return "No Team"
}

func roleLabel(u *user.User) string {
	if u.IsAdmin {
		return "Admin"
	}
	return "User"
}

// promptLine reads one trimmed input line. ok is false when input is closed.
func (a *App) promptLine(label string) (string, bool) {
	fmt.Fprintf(a.out, "%s: ", label)
	if !a.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.scanner.Text()), true
}

// promptInt keeps asking until it reads a number or input ends.
func (a *App) promptInt(label string) (int, bool) {
	for {
		line, ok := a.promptLine(label)
		if !ok {
			return 0, false
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintf(a.out, "Invalid input %q. Please enter a number.\n", line)
			continue
		}
		return n, true
	}
}

// promptDecimal keeps asking until it reads a decimal amount or input ends.
func (a *App) promptDecimal(label string) (decimal.Decimal, bool) {
	for {
		line, ok := a.promptLine(label)
		if !ok {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(line)
		if err != nil {
			fmt.Fprintf(a.out, "Invalid amount %q.\n", line)
			continue
		}
		return d, true
	}
}

// promptDate keeps asking until it reads a YYYY-MM-DD date or input ends.
func (a *App) promptDate(label string) (time.Time, bool) {
	for {
		line, ok := a.promptLine(label + " (YYYY-MM-DD)")
		if !ok {
			return time.Time{}, false
		}
		t, err := time.Parse("2006-01-02", line)
		if err != nil {
			fmt.Fprintf(a.out, "Invalid date %q.\n", line)
			continue
		}
		return t, true
	}
}

// promptYesNo treats "y"/"yes" (any case) as true.
func (a *App) promptYesNo(label string) (bool, bool) {
	line, ok := a.promptLine(label + " (y/n)")
	if !ok {
		return false, false
	}
	line = strings.ToLower(line)
	return line == "y" || line == "yes", true
}
