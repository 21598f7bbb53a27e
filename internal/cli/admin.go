package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"teambudget/internal/budget"
	"teambudget/internal/product"
	"teambudget/internal/team"
	"teambudget/internal/user"
)

// adminDashboard is the management entry point. Each level is its own
// dispatch loop; "Back" returns to the level above.
func (a *App) adminDashboard(ctx context.Context, admin *user.User) error {
	fmt.Fprintln(a.out, "Welcome to the Admin Dashboard!")

	for {
		fmt.Fprintln(a.out, "\nWhat would you like to manage?")
		fmt.Fprintln(a.out, "  1) Users")
		fmt.Fprintln(a.out, "  2) Teams")
		fmt.Fprintln(a.out, "  3) Budgets")
		fmt.Fprintln(a.out, "  4) Products")
		fmt.Fprintln(a.out, "  5) Spend All Current Budgets")
		fmt.Fprintln(a.out, "  6) View Audit Log")
		fmt.Fprintln(a.out, "  0) Exit")

		choice, ok := a.promptInt("Choose an option")
		if !ok {
			return nil
		}

		var err error
		switch choice {
		case 1:
			err = a.manageUsers(ctx)
		case 2:
			err = a.manageTeams(ctx)
		case 3:
			err = a.manageBudgets(ctx, admin)
		case 4:
			err = a.manageProducts(ctx)
		case 5:
			fmt.Fprintln(a.out, "Spending all available budgets...")
			err = a.Planner.SpendAllCurrent(ctx)
		case 6:
			err = a.viewAuditLog(ctx)
		case 0:
			fmt.Fprintln(a.out, "Exiting Admin Dashboard...")
			return nil
		default:
			fmt.Fprintln(a.out, "Invalid selection.")
		}
		if err != nil {
			return err
		}
	}
}

func (a *App) manageUsers(ctx context.Context) error {
	for {
		fmt.Fprintln(a.out, "\nUsers:")
		fmt.Fprintln(a.out, "  1) Add User")
		fmt.Fprintln(a.out, "  2) Remove User")
		fmt.Fprintln(a.out, "  3) Move User to Another Team")
		fmt.Fprintln(a.out, "  4) View All Users")
		fmt.Fprintln(a.out, "  0) Back")

		choice, ok := a.promptInt("Choose an option")
		if !ok {
			return nil
		}

		switch choice {
		case 1:
			if err := a.addUser(ctx); err != nil {
				return err
			}
		case 2:
			u, err := a.pickUser(ctx, "Select the user to remove")
			if err != nil {
				return err
			}
			if u == nil {
				continue
			}
			if err := a.Users.Delete(ctx, u.ID); err != nil {
				if errors.Is(err, user.ErrNotFound) {
					fmt.Fprintln(a.out, "User not found.")
					continue
				}
				return err
			}
			fmt.Fprintf(a.out, "User %q removed successfully.\n", u.Username)
		case 3:
			if err := a.moveUser(ctx); err != nil {
				return err
			}
		case 4:
			users, err := a.Users.List(ctx)
			if err != nil {
				return err
			}
			for _, u := range users {
				fmt.Fprintf(a.out, "  - %s (%s, %s)\n", u.Username, teamLabel(&u), roleLabel(&u))
			}
		case 0:
			return nil
		default:
			fmt.Fprintln(a.out, "Invalid selection.")
		}
	}
}

func (a *App) addUser(ctx context.Context) error {
	username, ok := a.promptLine("Enter the username")
	if !ok || username == "" {
		return nil
	}

	tm, err := a.pickTeamOrNone(ctx, "Select the user's team")
	if err != nil {
		return err
	}

	isAdmin, ok := a.promptYesNo("Is this user an admin?")
	if !ok {
		return nil
	}

	u := &user.User{Username: username, IsAdmin: isAdmin}
	if tm != nil {
		u.TeamID = &tm.ID
	}

	if err := a.Users.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrDuplicateUsername) {
			fmt.Fprintf(a.out, "Username %q is already taken.\n", username)
			return nil
		}
		return err
	}

	fmt.Fprintf(a.out, "User %q added successfully.\n", username)
	return nil
}

func (a *App) moveUser(ctx context.Context) error {
	u, err := a.pickUser(ctx, "Select the user to move")
	if err != nil || u == nil {
		return err
	}

	tm, err := a.pickTeamOrNone(ctx, "Select the new team")
	if err != nil {
		return err
	}

	newTeam := "No Team"
	var newTeamID *uuid.UUID
	if tm != nil {
		newTeam = tm.Name
		newTeamID = &tm.ID
	}

	if err := a.Users.UpdateTeam(ctx, u.ID, newTeamID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			fmt.Fprintln(a.out, "User not found.")
			return nil
		}
		return err
	}

	fmt.Fprintf(a.out, "User %q moved to %s.\n", u.Username, newTeam)
	return nil
}

func (a *App) manageTeams(ctx context.Context) error {
	for {
		fmt.Fprintln(a.out, "\nTeams:")
		fmt.Fprintln(a.out, "  1) Add Team")
		fmt.Fprintln(a.out, "  2) Remove Team")
		fmt.Fprintln(a.out, "  3) View All Teams")
		fmt.Fprintln(a.out, "  0) Back")

		choice, ok := a.promptInt("Choose an option")
		if !ok {
			return nil
		}

		switch choice {
		case 1:
			name, ok := a.promptLine("Enter the team name")
			if !ok || name == "" {
				continue
			}
			if err := a.Teams.Create(ctx, &team.Team{Name: name}); err != nil {
				if errors.Is(err, team.ErrDuplicateName) {
					fmt.Fprintf(a.out, "Team %q already exists.\n", name)
					continue
				}
				return err
			}
			fmt.Fprintf(a.out, "Team %q added successfully.\n", name)
		case 2:
			tm, err := a.pickTeam(ctx, "Select the team to remove")
			if err != nil || tm == nil {
				if err != nil {
					return err
				}
				continue
			}
			if err := a.Teams.Delete(ctx, tm.ID); err != nil {
				if errors.Is(err, team.ErrNotFound) {
					fmt.Fprintln(a.out, "Team not found.")
					continue
				}
				return err
			}
			fmt.Fprintf(a.out, "Team %q removed successfully.\n", tm.Name)
		case 3:
			teams, err := a.Teams.List(ctx)
			if err != nil {
				return err
			}
			for _, tm := range teams {
				fmt.Fprintf(a.out, "  - %s\n", tm.Name)
			}
		case 0:
			return nil
		default:
			fmt.Fprintln(a.out, "Invalid selection.")
		}
	}
}

func (a *App) manageBudgets(ctx context.Context, admin *user.User) error {
	for {
		fmt.Fprintln(a.out, "\nBudgets:")
		fmt.Fprintln(a.out, "  1) Add Budget")
		fmt.Fprintln(a.out, "  2) Remove Budget")
		fmt.Fprintln(a.out, "  3) View All Current Budgets")
		fmt.Fprintln(a.out, "  0) Back")

		choice, ok := a.promptInt("Choose an option")
		if !ok {
			return nil
		}

		switch choice {
		case 1:
			if err := a.addBudget(ctx, admin); err != nil {
				return err
			}
		case 2:
			if err := a.removeBudget(ctx, admin); err != nil {
				return err
			}
		case 3:
			budgets, err := a.Budgets.ListCurrent(ctx)
			if err != nil {
				return err
			}
			for _, b := range budgets {
				fmt.Fprintf(a.out, "  - %s: €%s (Valid: %s - %s)\n",
					b.Name, b.Amount.String(),
					b.StartDate.Format("2006-01-02"), b.EndDate.Format("2006-01-02"))
			}
		case 0:
			return nil
		default:
			fmt.Fprintln(a.out, "Invalid selection.")
		}
	}
}

func (a *App) addBudget(ctx context.Context, admin *user.User) error {
	tm, err := a.pickTeam(ctx, "Select the team")
	if err != nil || tm == nil {
		return err
	}

	name, ok := a.promptLine("Enter the budget name")
	if !ok || name == "" {
		return nil
	}
	amount, ok := a.promptDecimal("Enter the budget amount")
	if !ok {
		return nil
	}
	start, ok := a.promptDate("Enter the start date")
	if !ok {
		return nil
	}
	end, ok := a.promptDate("Enter the end date")
	if !ok {
		return nil
	}
	if end.Before(start) {
		fmt.Fprintln(a.out, "End date must not be before the start date.")
		return nil
	}

	b := &budget.Budget{Name: name, TeamID: tm.ID, Amount: amount, StartDate: start, EndDate: end}
	err = a.Budgets.Create(ctx, admin.Username, b)
	switch {
	case errors.Is(err, budget.ErrOverlap):
		fmt.Fprintf(a.out, "Cannot add budget %q. A conflicting budget already exists for this team.\n", name)
	case errors.Is(err, budget.ErrDuplicateName):
		fmt.Fprintf(a.out, "Budget %q already exists.\n", name)
	case errors.Is(err, team.ErrNotFound):
		fmt.Fprintln(a.out, "Team not found.")
	case err != nil:
		return err
	default:
		fmt.Fprintf(a.out, "Budget %q (€%s) added to team %s from %s to %s.\n",
			name, amount.String(), tm.Name, start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	return nil
}

func (a *App) removeBudget(ctx context.Context, admin *user.User) error {
	tm, err := a.pickTeam(ctx, "Select the team")
	if err != nil || tm == nil {
		return err
	}

	budgets, err := a.Budgets.ListByTeam(ctx, tm.ID)
	if err != nil {
		return err
	}
	if len(budgets) == 0 {
		fmt.Fprintln(a.out, "This team has no budgets.")
		return nil
	}

	fmt.Fprintln(a.out, "\nSelect the budget to remove:")
	for i, b := range budgets {
		fmt.Fprintf(a.out, "  %d) %s: €%s (%s)\n", i+1, b.Name, b.Amount.String(), b.Status)
	}
	fmt.Fprintln(a.out, "  0) Back")

	choice, ok := a.promptInt("Choose an option")
	if !ok || choice == 0 {
		return nil
	}
	if choice < 1 || choice > len(budgets) {
		fmt.Fprintln(a.out, "Invalid selection.")
		return nil
	}

	b := budgets[choice-1]
	if err := a.Budgets.Remove(ctx, admin.Username, b.ID); err != nil {
		if errors.Is(err, budget.ErrNotFound) {
			fmt.Fprintln(a.out, "Budget not found.")
			return nil
		}
		return err
	}

	fmt.Fprintf(a.out, "Budget %q removed successfully.\n", b.Name)
	return nil
}

func (a *App) manageProducts(ctx context.Context) error {
	for {
		fmt.Fprintln(a.out, "\nProducts:")
		fmt.Fprintln(a.out, "  1) Add Product")
		fmt.Fprintln(a.out, "  2) Remove Product")
		fmt.Fprintln(a.out, "  3) View All Products")
		fmt.Fprintln(a.out, "  0) Back")

		choice, ok := a.promptInt("Choose an option")
		if !ok {
			return nil
		}

		switch choice {
		case 1:
			name, ok := a.promptLine("Enter the product name")
			if !ok || name == "" {
				continue
			}
			price, ok := a.promptDecimal("Enter the product price")
			if !ok {
				continue
			}
			if price.Sign() <= 0 {
				fmt.Fprintln(a.out, "Price must be positive.")
				continue
			}
			if err := a.Products.Create(ctx, &product.Product{Name: name, Price: price}); err != nil {
				if errors.Is(err, product.ErrDuplicateName) {
					fmt.Fprintf(a.out, "Product %q already exists.\n", name)
					continue
				}
				return err
			}
			fmt.Fprintf(a.out, "Product %q added successfully at €%s.\n", name, price.String())
		case 2:
			p, err := a.pickProduct(ctx, "Select the product to remove")
			if err != nil || p == nil {
				if err != nil {
					return err
				}
				continue
			}
			if err := a.Products.Delete(ctx, p.ID); err != nil {
				if errors.Is(err, product.ErrNotFound) {
					fmt.Fprintln(a.out, "Product not found.")
					continue
				}
				return err
			}
			fmt.Fprintf(a.out, "Product %q removed successfully.\n", p.Name)
		case 3:
			products, err := a.Products.List(ctx)
			if err != nil {
				return err
			}
			for _, p := range products {
				fmt.Fprintf(a.out, "  - %s (€%s)\n", p.Name, p.Price.String())
			}
		case 0:
			return nil
		default:
			fmt.Fprintln(a.out, "Invalid selection.")
		}
	}
}

func (a *App) viewAuditLog(ctx context.Context) error {
	entries, err := a.Logs.List(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "The audit log is empty.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(a.out, "  [%s] %s: %s\n", e.CreatedAt.Format("2006-01-02 15:04"), e.Actor, e.Message)
	}
	return nil
}

// pickTeam shows a numbered team list and returns the chosen team, or nil
// when the operator backs out.
func (a *App) pickTeam(ctx context.Context, label string) (*team.Team, error) {
	teams, err := a.Teams.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		fmt.Fprintln(a.out, "No teams exist yet.")
		return nil, nil
	}

	fmt.Fprintf(a.out, "\n%s:\n", label)
	for i, tm := range teams {
		fmt.Fprintf(a.out, "  %d) %s\n", i+1, tm.Name)
	}
	fmt.Fprintln(a.out, "  0) Back")

	choice, ok := a.promptInt("Choose an option")
	if !ok || choice == 0 || choice < 1 || choice > len(teams) {
		return nil, nil
	}
	return &teams[choice-1], nil
}

// pickTeamOrNone is pickTeam with an explicit "no team" entry.
func (a *App) pickTeamOrNone(ctx context.Context, label string) (*team.Team, error) {
	teams, err := a.Teams.List(ctx)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "\n%s:\n", label)
	for i, tm := range teams {
		fmt.Fprintf(a.out, "  %d) %s\n", i+1, tm.Name)
	}
	fmt.Fprintln(a.out, "  0) No team")

	choice, ok := a.promptInt("Choose an option")
	if !ok || choice < 1 || choice > len(teams) {
		return nil, nil
	}
	return &teams[choice-1], nil
}

func (a *App) pickUser(ctx context.Context, label string) (*user.User, error) {
	users, err := a.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		fmt.Fprintln(a.out, "No users exist yet.")
		return nil, nil
	}

	fmt.Fprintf(a.out, "\n%s:\n", label)
	for i, u := range users {
		fmt.Fprintf(a.out, "  %d) %s (%s)\n", i+1, u.Username, teamLabel(&u))
	}
	fmt.Fprintln(a.out, "  0) Back")

	choice, ok := a.promptInt("Choose an option")
	if !ok || choice == 0 || choice < 1 || choice > len(users) {
		return nil, nil
	}
	return &users[choice-1], nil
}

func (a *App) pickProduct(ctx context.Context, label string) (*product.Product, error) {
	products, err := a.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		fmt.Fprintln(a.out, "No products exist yet.")
		return nil, nil
	}

	fmt.Fprintf(a.out, "\n%s:\n", label)
	for i, p := range products {
		fmt.Fprintf(a.out, "  %d) %s (€%s)\n", i+1, p.Name, p.Price.String())
	}
	fmt.Fprintln(a.out, "  0) Back")

	choice, ok := a.promptInt("Choose an option")
	if !ok || choice == 0 || choice < 1 || choice > len(products) {
		return nil, nil
	}
	return &products[choice-1], nil
}
