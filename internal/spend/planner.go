package spend

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"teambudget/internal/budget"
	"teambudget/internal/product"
	"teambudget/internal/purchase"
	"teambudget/internal/user"
)

// Planner spends down every currently active budget by buying one product per
// team member. The allocation is a greedy heuristic: for each budget it fixes
// the most expensive product that fits the per-member share and buys it for
// members in order until the tracked remainder runs out. It never revisits a
// budget for a second, cheaper product.
type Planner struct {
	budgets   budget.Repository
	products  product.Repository
	users     user.Repository
	purchaser *purchase.Service
}

// NewPlanner creates a new Planner.
func NewPlanner(budgets budget.Repository, products product.Repository, users user.Repository, purchaser *purchase.Service) *Planner {
	return &Planner{budgets: budgets, products: products, users: users, purchaser: purchaser}
}

// SpendAllCurrent runs one bulk spend pass over all current budgets. A single
// budget's failure or skip never stops the pass; only a storage failure while
// listing budgets or products aborts it.
func (pl *Planner) SpendAllCurrent(ctx context.Context) error {
	budgets, err := pl.budgets.ListCurrent(ctx)
	if err != nil {
		return fmt.Errorf("listing current budgets: %w", err)
	}
	if len(budgets) == 0 {
		log.Info().Msg("no active budgets to spend")
		return nil
	}

	products, err := pl.products.List(ctx)
	if err != nil {
		return fmt.Errorf("listing products: %w", err)
	}
	if len(products) == 0 {
		log.Info().Msg("no products available for purchase")
		return nil
	}

	for _, b := range budgets {
		if err := pl.spendBudget(ctx, b, products); err != nil {
			log.Error().Err(err).Str("budget", b.Name).Msg("budget spend failed, moving on")
		}
	}

	return nil
}

func (pl *Planner) spendBudget(ctx context.Context, b budget.Budget, products []product.Product) error {
	members, err := pl.users.ListByTeam(ctx, b.TeamID)
	if err != nil {
		return fmt.Errorf("listing team members: %w", err)
	}
	if len(members) == 0 {
		log.Info().Str("budget", b.Name).Msg("team has no members, skipping")
		return nil
	}

	remaining := b.Amount
	maxPerMember := remaining.Div(decimal.NewFromInt(int64(len(members)))).Floor()

	best := pickProduct(products, maxPerMember)
	if best == nil {
		log.Info().
			Str("budget", b.Name).
			Str("maxPerMember", maxPerMember.String()).
			Msg("no product fits the per-member share, skipping")
		return nil
	}

	log.Info().
		Str("budget", b.Name).
		Str("product", best.Name).
		Str("price", best.Price.String()).
		Int("members", len(members)).
		Msg("spending budget")

	for i := range members {
		m := &members[i]
		if remaining.LessThan(best.Price) {
			log.Info().Str("user", m.Username).Msg("budget exhausted before this member's turn")
			continue
		}

		if _, err := pl.purchaser.PurchaseFromBudgets(ctx, []budget.Budget{b}, best, m); err != nil {
			return fmt.Errorf("buying %q for %s: %w", best.Name, m.Username, err)
		}
		remaining = remaining.Sub(best.Price)
	}

	log.Info().
		Str("budget", b.Name).
		Str("remaining", remaining.String()).
		Msg("budget pass finished")
	return nil
}

// pickProduct returns the most expensive product whose price does not exceed
// the limit, or nil when none qualifies.
func pickProduct(products []product.Product, limit decimal.Decimal) *product.Product {
	var best *product.Product
	for i := range products {
		p := &products[i]
		if p.Price.GreaterThan(limit) {
			continue
		}
		if best == nil || p.Price.GreaterThan(best.Price) {
			best = p
		}
	}
	return best
}
