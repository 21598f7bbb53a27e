package budget

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a budget record is not found.
var ErrNotFound = errors.New("budget not found")

// ErrDuplicateName is returned when a budget with the same name already exists.
var ErrDuplicateName = errors.New("budget name already exists")

// ErrOverlap is returned when a new budget's validity window overlaps an
// existing budget of the same team.
var ErrOverlap = errors.New("budget window overlaps an existing budget for this team")

// Repository provides access to the budgets table.
type Repository interface {
	// Create inserts a new budget. It fails with team.ErrNotFound when the
	// owning team does not exist and with ErrOverlap when the window collides
	// with an existing budget of the same team.
	Create(ctx context.Context, budget *Budget) error
	GetByID(ctx context.Context, id uuid.UUID) (*Budget, error)
	// ListByTeam returns the team's budgets annotated with status and ordered
	// current < upcoming < expired, soonest-expiring first within a status.
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]Budget, error)
	// ListCurrent returns every budget across all teams whose window contains
	// today, soonest-expiring first.
	ListCurrent(ctx context.Context) ([]Budget, error)
	// Deduct decreases the stored amount. Callers must never deduct more than
	// the current amount; the allocator guarantees this by construction.
	Deduct(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error
	Delete(ctx context.Context, id uuid.UUID) error
}
