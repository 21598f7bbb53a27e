package budget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"teambudget/internal/team"
)

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new budget record after verifying the owning team exists
// and that the validity window does not overlap an existing budget of the
// same team.
func (r *PostgresRepository) Create(ctx context.Context, b *Budget) error {
	var teamExists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM teams WHERE id = $1)`, b.TeamID).Scan(&teamExists)
	if err != nil {
		return fmt.Errorf("checking team: %w", err)
	}
	if !teamExists {
		return team.ErrNotFound
	}

	// Symmetric four-way window test: catches partial overlap and full
	// containment in either direction. BETWEEN is inclusive, so windows that
	// share a boundary day conflict.
	var overlaps bool
	err = r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM budgets
			WHERE team_id = $1 AND (
				($2::date BETWEEN start_date AND end_date) OR
				($3::date BETWEEN start_date AND end_date) OR
				(start_date BETWEEN $2::date AND $3::date) OR
				(end_date BETWEEN $2::date AND $3::date)
			)
		)`, b.TeamID, b.StartDate, b.EndDate).Scan(&overlaps)
	if err != nil {
		return fmt.Errorf("checking budget overlap: %w", err)
	}
	if overlaps {
		return ErrOverlap
	}

	query := `
		INSERT INTO budgets (name, team_id, amount, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err = r.pool.QueryRow(ctx, query,
		b.Name, b.TeamID, b.Amount, b.StartDate, b.EndDate).Scan(&b.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateName
		}
		return fmt.Errorf("inserting budget: %w", err)
	}

	b.Status = b.StatusOn(time.Now())
	return nil
}

// GetByID retrieves a single budget by its UUID, annotated with status.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Budget, error) {
	query := `
		SELECT id, name, team_id, amount, start_date, end_date
		FROM budgets
		WHERE id = $1`

	var b Budget
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Name, &b.TeamID, &b.Amount, &b.StartDate, &b.EndDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying budget: %w", err)
	}

	b.Status = b.StatusOn(time.Now())
	return &b, nil
}

// ListByTeam retrieves all budgets of one team. Status is computed once per
// query and the result is sorted with a stable comparator: status rank first,
// end date ascending within the same rank.
func (r *PostgresRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]Budget, error) {
	query := `
		SELECT id, name, team_id, amount, start_date, end_date
		FROM budgets
		WHERE team_id = $1`

	budgets, err := r.queryBudgets(ctx, query, teamID)
	if err != nil {
		return nil, err
	}

	Annotate(budgets, time.Now())
	SortByPriority(budgets)
	return budgets, nil
}

// ListCurrent retrieves every budget across all teams whose window contains
// today, ordered soonest-expiring first. The cutoff day comes from the client
// clock, the same one ListByTeam classifies with, so the two never disagree
// when the server runs in another timezone.
func (r *PostgresRepository) ListCurrent(ctx context.Context) ([]Budget, error) {
	query := `
		SELECT id, name, team_id, amount, start_date, end_date
		FROM budgets
		WHERE start_date <= $1::date AND end_date >= $1::date
		ORDER BY end_date ASC`

	budgets, err := r.queryBudgets(ctx, query, time.Now().Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	for i := range budgets {
		budgets[i].Status = StatusCurrent
	}
	return budgets, nil
}

// Deduct decreases the stored amount by the given value. No lower bound is
// enforced here; callers verify sufficiency before deducting.
func (r *PostgresRepository) Deduct(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE budgets SET amount = amount - $1 WHERE id = $2`, amount, id)
	if err != nil {
		return fmt.Errorf("deducting from budget: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a budget by its UUID.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM budgets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) queryBudgets(ctx context.Context, query string, args ...any) ([]Budget, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}
	defer rows.Close()

	var budgets []Budget
	for rows.Next() {
		var b Budget
		if err := rows.Scan(&b.ID, &b.Name, &b.TeamID, &b.Amount, &b.StartDate, &b.EndDate); err != nil {
			return nil, fmt.Errorf("scanning budget row: %w", err)
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating budget rows: %w", err)
	}

	if budgets == nil {
		budgets = []Budget{}
	}

	return budgets, nil
}
