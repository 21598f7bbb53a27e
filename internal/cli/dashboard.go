package cli

import (
	"context"
	"errors"
	"fmt"

	"teambudget/internal/purchase"
	"teambudget/internal/user"
)

// userDashboard shows the member's team budgets and handles purchases until
// logout. Returns only on fatal storage errors.
func (a *App) userDashboard(ctx context.Context, u *user.User) error {
	fmt.Fprintf(a.out, "Welcome, %s! You are in team: %s.\n", u.Username, teamLabel(u))

	if u.TeamID == nil {
		fmt.Fprintln(a.out, "You are not part of any team.")
		return nil
	}

	for {
		budgets, err := a.Budgets.ListByTeam(ctx, *u.TeamID)
		if err != nil {
			return fmt.Errorf("listing team budgets: %w", err)
		}
		if len(budgets) == 0 {
			fmt.Fprintln(a.out, "No budgets assigned to your team.")
			return nil
		}

		fmt.Fprintln(a.out, "\nAvailable Budgets:")
		for _, b := range budgets {
			fmt.Fprintf(a.out, "  - %s: €%s (%s) (Valid: %s - %s)\n",
				b.Name, b.Amount.String(), b.Status,
				b.StartDate.Format("2006-01-02"), b.EndDate.Format("2006-01-02"))
		}

		fmt.Fprintln(a.out, "\nWhat would you like to do?")
		fmt.Fprintln(a.out, "  1) Buy a Product")
		fmt.Fprintln(a.out, "  2) View Transactions")
		fmt.Fprintln(a.out, "  0) Logout")

		choice, ok := a.promptInt("Choose an option")
		if !ok {
			return nil
		}

		switch choice {
		case 1:
			if err := a.buyProduct(ctx, u); err != nil {
				return err
			}
		case 2:
			if err := a.viewTransactions(ctx, u); err != nil {
				return err
			}
		case 0:
			fmt.Fprintln(a.out, "Logging out...")
			return nil
		default:
			fmt.Fprintln(a.out, "Invalid selection.")
		}
	}
}

func (a *App) buyProduct(ctx context.Context, u *user.User) error {
	products, err := a.Products.List(ctx)
	if err != nil {
		return fmt.Errorf("listing products: %w", err)
	}
	if len(products) == 0 {
		fmt.Fprintln(a.out, "No products available.")
		return nil
	}

	fmt.Fprintln(a.out, "\nSelect a product to purchase:")
	for i, p := range products {
		fmt.Fprintf(a.out, "  %d) %s (€%s)\n", i+1, p.Name, p.Price.String())
	}
	fmt.Fprintln(a.out, "  0) Back")

	choice, ok := a.promptInt("Choose an option")
	if !ok || choice == 0 {
		return nil
	}
	if choice < 1 || choice > len(products) {
		fmt.Fprintln(a.out, "Invalid product selection.")
		return nil
	}

	p := products[choice-1]
	fmt.Fprintf(a.out, "Checking budget for purchase: %s (€%s)\n", p.Name, p.Price.String())

	_, err = a.Purchaser.Purchase(ctx, u, &p)
	switch {
	case errors.Is(err, purchase.ErrNoActiveBudget):
		fmt.Fprintln(a.out, "No active budget available for this purchase.")
	case errors.Is(err, purchase.ErrInsufficientFunds):
		fmt.Fprintf(a.out, "Not enough total funds across all budgets to purchase %q.\n", p.Name)
	case err != nil:
		return fmt.Errorf("purchasing %q: %w", p.Name, err)
	default:
		fmt.Fprintf(a.out, "Successfully purchased %q for €%s.\n", p.Name, p.Price.String())
	}
	return nil
}

func (a *App) viewTransactions(ctx context.Context, u *user.User) error {
	txs, err := a.Transactions.ListByUser(ctx, u.ID)
	if err != nil {
		return fmt.Errorf("listing transactions: %w", err)
	}
	if len(txs) == 0 {
		fmt.Fprintln(a.out, "No transactions found.")
		return nil
	}

	fmt.Fprintln(a.out, "\nYour Transactions:")
	for _, tx := range txs {
		fmt.Fprintf(a.out, "  - Product: %s, Amount: €%s, Date: %s\n",
			tx.ProductName, tx.Amount.String(), tx.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
