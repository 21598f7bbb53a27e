package budget_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teambudget/internal/auditlog"
	"teambudget/internal/budget"
)

type memoryBudgetRepo struct {
	budgets map[uuid.UUID]*budget.Budget
}

func newMemoryBudgetRepo() *memoryBudgetRepo {
	return &memoryBudgetRepo{budgets: map[uuid.UUID]*budget.Budget{}}
}

func (m *memoryBudgetRepo) Create(_ context.Context, b *budget.Budget) error {
	b.ID = uuid.New()
	cp := *b
	m.budgets[b.ID] = &cp
	return nil
}

func (m *memoryBudgetRepo) GetByID(_ context.Context, id uuid.UUID) (*budget.Budget, error) {
	b, ok := m.budgets[id]
	if !ok {
		return nil, budget.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *memoryBudgetRepo) ListByTeam(_ context.Context, _ uuid.UUID) ([]budget.Budget, error) {
	return nil, nil
}

func (m *memoryBudgetRepo) ListCurrent(_ context.Context) ([]budget.Budget, error) {
	return nil, nil
}

func (m *memoryBudgetRepo) Deduct(_ context.Context, id uuid.UUID, amount decimal.Decimal) error {
	b, ok := m.budgets[id]
	if !ok {
		return budget.ErrNotFound
	}
	b.Amount = b.Amount.Sub(amount)
	return nil
}

func (m *memoryBudgetRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.budgets[id]; !ok {
		return budget.ErrNotFound
	}
	delete(m.budgets, id)
	return nil
}

type recordingAuditLog struct {
	entries []auditlog.Entry
	err     error
}

func (r *recordingAuditLog) Insert(_ context.Context, actor, message string) error {
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, auditlog.Entry{Actor: actor, Message: message})
	return nil
}

func (r *recordingAuditLog) List(_ context.Context) ([]auditlog.Entry, error) {
	return r.entries, nil
}

func TestServiceCreate_AttributesActor(t *testing.T) {
	repo := newMemoryBudgetRepo()
	logs := &recordingAuditLog{}
	svc := budget.NewService(repo, logs)

	b := &budget.Budget{Name: "annual", TeamID: uuid.New(), Amount: decimal.NewFromInt(1500)}
	require.NoError(t, svc.Create(context.Background(), "Admin", b))

	require.Len(t, logs.entries, 1)
	assert.Equal(t, "Admin", logs.entries[0].Actor)
	assert.Contains(t, logs.entries[0].Message, "annual")
}

func TestServiceCreate_AuditFailureIsSwallowed(t *testing.T) {
	repo := newMemoryBudgetRepo()
	logs := &recordingAuditLog{err: errors.New("log table unavailable")}
	svc := budget.NewService(repo, logs)

	b := &budget.Budget{Name: "annual", TeamID: uuid.New(), Amount: decimal.NewFromInt(1500)}
	assert.NoError(t, svc.Create(context.Background(), "Admin", b))
}

func TestServiceRemove(t *testing.T) {
	repo := newMemoryBudgetRepo()
	logs := &recordingAuditLog{}
	svc := budget.NewService(repo, logs)

	b := &budget.Budget{Name: "annual", TeamID: uuid.New(), Amount: decimal.NewFromInt(1500)}
	require.NoError(t, svc.Create(context.Background(), "Admin", b))

	require.NoError(t, svc.Remove(context.Background(), "Admin", b.ID))

	_, err := repo.GetByID(context.Background(), b.ID)
	assert.ErrorIs(t, err, budget.ErrNotFound)

	require.Len(t, logs.entries, 2)
	assert.Contains(t, logs.entries[1].Message, "Removed")
}

func TestServiceRemove_UnknownBudget(t *testing.T) {
	repo := newMemoryBudgetRepo()
	logs := &recordingAuditLog{}
	svc := budget.NewService(repo, logs)

	err := svc.Remove(context.Background(), "Admin", uuid.New())
	assert.ErrorIs(t, err, budget.ErrNotFound)
	assert.Empty(t, logs.entries, "nothing is logged for a rejected removal")
}
