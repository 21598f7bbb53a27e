package purchase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teambudget/internal/auditlog"
	"teambudget/internal/budget"
	"teambudget/internal/product"
	"teambudget/internal/purchase"
	"teambudget/internal/transaction"
	"teambudget/internal/user"
)

// fakeBudgetRepo keeps budgets in memory in insertion order and mirrors the
// real repository's annotate-and-sort behavior.
type fakeBudgetRepo struct {
	budgets []*budget.Budget
}

func (f *fakeBudgetRepo) Create(_ context.Context, b *budget.Budget) error {
	cp := *b
	f.budgets = append(f.budgets, &cp)
	return nil
}

func (f *fakeBudgetRepo) GetByID(_ context.Context, id uuid.UUID) (*budget.Budget, error) {
	for _, b := range f.budgets {
		if b.ID == id {
			cp := *b
			return &cp, nil
		}
	}
	return nil, budget.ErrNotFound
}

func (f *fakeBudgetRepo) ListByTeam(_ context.Context, teamID uuid.UUID) ([]budget.Budget, error) {
	var out []budget.Budget
	for _, b := range f.budgets {
		if b.TeamID == teamID {
			out = append(out, *b)
		}
	}
	budget.Annotate(out, time.Now())
	budget.SortByPriority(out)
	return out, nil
}

func (f *fakeBudgetRepo) ListCurrent(_ context.Context) ([]budget.Budget, error) {
	var out []budget.Budget
	for _, b := range f.budgets {
		if b.StatusOn(time.Now()) == budget.StatusCurrent {
			cp := *b
			cp.Status = budget.StatusCurrent
			out = append(out, cp)
		}
	}
	budget.SortByPriority(out)
	return out, nil
}

func (f *fakeBudgetRepo) Deduct(_ context.Context, id uuid.UUID, amount decimal.Decimal) error {
	for _, b := range f.budgets {
		if b.ID == id {
			b.Amount = b.Amount.Sub(amount)
			return nil
		}
	}
	return budget.ErrNotFound
}

func (f *fakeBudgetRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, b := range f.budgets {
		if b.ID == id {
			f.budgets = append(f.budgets[:i], f.budgets[i+1:]...)
			return nil
		}
	}
	return budget.ErrNotFound
}

func (f *fakeBudgetRepo) amountOf(t *testing.T, id uuid.UUID) decimal.Decimal {
	t.Helper()
	b, err := f.GetByID(context.Background(), id)
	require.NoError(t, err)
	return b.Amount
}

type fakeTransactionRepo struct {
	inserted []transaction.Transaction
}

func (f *fakeTransactionRepo) Insert(_ context.Context, tx *transaction.Transaction) error {
	tx.ID = uuid.New()
	tx.CreatedAt = time.Now()
	f.inserted = append(f.inserted, *tx)
	return nil
}

func (f *fakeTransactionRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]transaction.Transaction, error) {
	var out []transaction.Transaction
	for _, tx := range f.inserted {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out, nil
}

type fakeAuditLog struct {
	entries []auditlog.Entry
	err     error
}

func (f *fakeAuditLog) Insert(_ context.Context, actor, message string) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, auditlog.Entry{Actor: actor, Message: message})
	return nil
}

func (f *fakeAuditLog) List(_ context.Context) ([]auditlog.Entry, error) {
	return f.entries, nil
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// currentBudget builds a budget whose window contains today and ends the
// given number of days from now.
func currentBudget(teamID uuid.UUID, name, amount string, endsInDays int) *budget.Budget {
	now := time.Now()
	return &budget.Budget{
		ID:        uuid.New(),
		Name:      name,
		TeamID:    teamID,
		Amount:    money(amount),
		StartDate: now.AddDate(0, 0, -10),
		EndDate:   now.AddDate(0, 0, endsInDays),
	}
}

func memberOf(teamID uuid.UUID, username string) *user.User {
	return &user.User{ID: uuid.New(), Username: username, TeamID: &teamID}
}

func setup(budgets ...*budget.Budget) (*purchase.Service, *fakeBudgetRepo, *fakeTransactionRepo, *fakeAuditLog) {
	budgetRepo := &fakeBudgetRepo{budgets: budgets}
	txRepo := &fakeTransactionRepo{}
	logs := &fakeAuditLog{}
	return purchase.NewService(budgetRepo, txRepo, logs), budgetRepo, txRepo, logs
}

func TestPurchase_SingleBudget(t *testing.T) {
	teamID := uuid.New()
	b := currentBudget(teamID, "annual", "100", 60)
	svc, budgetRepo, txRepo, _ := setup(b)

	p := &product.Product{ID: uuid.New(), Name: "Software", Price: money("40")}
	u := memberOf(teamID, "frank")

	tx, err := svc.Purchase(context.Background(), u, p)
	require.NoError(t, err)

	assert.True(t, money("60").Equal(budgetRepo.amountOf(t, b.ID)))
	require.Len(t, txRepo.inserted, 1)
	assert.True(t, money("40").Equal(tx.Amount))
	assert.Equal(t, teamID, tx.TeamID)
}

func TestPurchase_SplitsAcrossBudgets(t *testing.T) {
	teamID := uuid.New()
	soon := currentBudget(teamID, "short-term", "30", 10)
	late := currentBudget(teamID, "long-term", "50", 90)
	svc, budgetRepo, txRepo, _ := setup(late, soon) // insertion order should not matter

	p := &product.Product{ID: uuid.New(), Name: "Hardware", Price: money("40")}
	u := memberOf(teamID, "frank")

	tx, err := svc.Purchase(context.Background(), u, p)
	require.NoError(t, err)

	assert.True(t, budgetRepo.amountOf(t, soon.ID).IsZero(),
		"soonest-expiring budget is drained first")
	assert.True(t, money("40").Equal(budgetRepo.amountOf(t, late.ID)),
		"remainder comes from the later budget")
	require.Len(t, txRepo.inserted, 1, "exactly one transaction regardless of funding split")
	assert.True(t, money("40").Equal(tx.Amount))
}

func TestPurchase_SkipsZeroAmountBudget(t *testing.T) {
	teamID := uuid.New()
	empty := currentBudget(teamID, "drained", "0", 10)
	funded := currentBudget(teamID, "funded", "50", 90)
	svc, budgetRepo, txRepo, _ := setup(empty, funded)

	p := &product.Product{ID: uuid.New(), Name: "Software", Price: money("40")}

	_, err := svc.Purchase(context.Background(), memberOf(teamID, "frank"), p)
	require.NoError(t, err)

	assert.True(t, budgetRepo.amountOf(t, empty.ID).IsZero())
	assert.True(t, money("10").Equal(budgetRepo.amountOf(t, funded.ID)))
	assert.Len(t, txRepo.inserted, 1)
}

func TestPurchase_NoActiveBudget(t *testing.T) {
	teamID := uuid.New()
	now := time.Now()
	expired := &budget.Budget{
		ID: uuid.New(), Name: "old", TeamID: teamID, Amount: money("500"),
		StartDate: now.AddDate(0, 0, -60), EndDate: now.AddDate(0, 0, -30),
	}
	svc, _, txRepo, _ := setup(expired)

	p := &product.Product{ID: uuid.New(), Name: "Software", Price: money("40")}

	_, err := svc.Purchase(context.Background(), memberOf(teamID, "frank"), p)
	assert.ErrorIs(t, err, purchase.ErrNoActiveBudget)
	assert.Empty(t, txRepo.inserted)
}

func TestPurchase_InsufficientFunds(t *testing.T) {
	teamID := uuid.New()
	a := currentBudget(teamID, "a", "30", 10)
	b := currentBudget(teamID, "b", "5", 90)
	svc, budgetRepo, txRepo, _ := setup(a, b)

	p := &product.Product{ID: uuid.New(), Name: "Hardware", Price: money("40")}

	_, err := svc.Purchase(context.Background(), memberOf(teamID, "frank"), p)
	assert.ErrorIs(t, err, purchase.ErrInsufficientFunds)

	assert.True(t, money("30").Equal(budgetRepo.amountOf(t, a.ID)), "no partial spend")
	assert.True(t, money("5").Equal(budgetRepo.amountOf(t, b.ID)), "no partial spend")
	assert.Empty(t, txRepo.inserted)
}

func TestPurchase_NoTeam(t *testing.T) {
	svc, _, _, _ := setup()

	p := &product.Product{ID: uuid.New(), Name: "Software", Price: money("40")}
	u := &user.User{ID: uuid.New(), Username: "loner"}

	_, err := svc.Purchase(context.Background(), u, p)
	assert.ErrorIs(t, err, purchase.ErrNoTeam)
}

func TestPurchase_AuditFailureDoesNotAbort(t *testing.T) {
	teamID := uuid.New()
	b := currentBudget(teamID, "annual", "100", 60)
	budgetRepo := &fakeBudgetRepo{budgets: []*budget.Budget{b}}
	txRepo := &fakeTransactionRepo{}
	logs := &fakeAuditLog{err: errors.New("log table unavailable")}
	svc := purchase.NewService(budgetRepo, txRepo, logs)

	p := &product.Product{ID: uuid.New(), Name: "Software", Price: money("40")}

	tx, err := svc.Purchase(context.Background(), memberOf(teamID, "frank"), p)
	require.NoError(t, err, "audit log is a best-effort side channel")
	assert.NotNil(t, tx)
	assert.Len(t, txRepo.inserted, 1)
}

func TestPurchase_RecordsAuditEntry(t *testing.T) {
	teamID := uuid.New()
	b := currentBudget(teamID, "annual", "100", 60)
	svc, _, _, logs := setup(b)

	p := &product.Product{ID: uuid.New(), Name: "Congress", Price: money("100")}

	_, err := svc.Purchase(context.Background(), memberOf(teamID, "frank"), p)
	require.NoError(t, err)

	require.Len(t, logs.entries, 1)
	assert.Equal(t, "frank", logs.entries[0].Actor)
	assert.Contains(t, logs.entries[0].Message, "Congress")
}
