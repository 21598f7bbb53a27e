package purchase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"teambudget/internal/auditlog"
	"teambudget/internal/budget"
	"teambudget/internal/product"
	"teambudget/internal/transaction"
	"teambudget/internal/user"
)

// ErrNoTeam is returned when the buyer does not belong to any team.
var ErrNoTeam = errors.New("user has no team")

// ErrNoActiveBudget is returned when the buyer's team has no current budget.
var ErrNoActiveBudget = errors.New("no active budget available")

// ErrInsufficientFunds is returned when the team's current budgets together
// cannot cover the product price. No deduction happens in that case.
var ErrInsufficientFunds = errors.New("not enough funds across current budgets")

// Service allocates product purchases onto budgets. A purchase may be funded
// by several budgets but always records exactly one transaction for the full
// product price.
type Service struct {
	budgets      budget.Repository
	transactions transaction.Repository
	logs         auditlog.Repository
}

// NewService creates a new purchase Service.
func NewService(budgets budget.Repository, transactions transaction.Repository, logs auditlog.Repository) *Service {
	return &Service{budgets: budgets, transactions: transactions, logs: logs}
}

// Purchase buys one product for one user. It selects the team's current
// budgets soonest-expiring first, rejects the purchase up front when their
// combined funds fall short, and otherwise splits the price across them.
func (s *Service) Purchase(ctx context.Context, u *user.User, p *product.Product) (*transaction.Transaction, error) {
	if u.TeamID == nil {
		return nil, ErrNoTeam
	}

	all, err := s.budgets.ListByTeam(ctx, *u.TeamID)
	if err != nil {
		return nil, fmt.Errorf("resolving team budgets: %w", err)
	}

	// ListByTeam is already priority ordered, so the current budgets come out
	// soonest-expiring first.
	var current []budget.Budget
	for _, b := range all {
		if b.Status == budget.StatusCurrent {
			current = append(current, b)
		}
	}
	if len(current) == 0 {
		return nil, ErrNoActiveBudget
	}

	total := decimal.Zero
	for _, b := range current {
		total = total.Add(b.Amount)
	}
	if total.LessThan(p.Price) {
		return nil, ErrInsufficientFunds
	}

	return s.PurchaseFromBudgets(ctx, current, p, u)
}

// PurchaseFromBudgets pays for the product from the given budgets in order,
// deducting from each until the price is covered, then records the
// transaction. Callers are responsible for ensuring the budgets together can
// cover the price.
func (s *Service) PurchaseFromBudgets(ctx context.Context, budgets []budget.Budget, p *product.Product, u *user.User) (*transaction.Transaction, error) {
	if u.TeamID == nil {
		return nil, ErrNoTeam
	}

	remaining := p.Price
	for _, b := range budgets {
		if remaining.Sign() <= 0 {
			break
		}

		deduction := decimal.Min(remaining, b.Amount)
		if deduction.Sign() <= 0 {
			continue
		}

		log.Debug().
			Str("budget", b.Name).
			Str("amount", deduction.String()).
			Msg("deducting from budget")

		if err := s.budgets.Deduct(ctx, b.ID, deduction); err != nil {
			return nil, fmt.Errorf("deducting from budget %q: %w", b.Name, err)
		}
		remaining = remaining.Sub(deduction)
	}

	tx := &transaction.Transaction{
		UserID:      u.ID,
		ProductID:   p.ID,
		TeamID:      *u.TeamID,
		Amount:      p.Price,
		ProductName: p.Name,
	}
	if err := s.transactions.Insert(ctx, tx); err != nil {
		return nil, fmt.Errorf("recording transaction: %w", err)
	}

	if err := s.logs.Insert(ctx, u.Username, fmt.Sprintf("Purchased %q for €%s", p.Name, p.Price.String())); err != nil {
		log.Warn().Err(err).Str("user", u.Username).Msg("audit log write failed")
	}

	log.Info().
		Str("user", u.Username).
		Str("product", p.Name).
		Str("price", p.Price.String()).
		Msg("purchase completed")

	return tx, nil
}
