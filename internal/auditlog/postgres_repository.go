package auditlog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// Insert appends a log entry.
func (r *PostgresRepository) Insert(ctx context.Context, actor, message string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO logs (actor, message) VALUES ($1, $2)`, actor, message)
	if err != nil {
		return fmt.Errorf("inserting log entry: %w", err)
	}
	return nil
}

// List retrieves all log entries, oldest first.
func (r *PostgresRepository) List(ctx context.Context) ([]Entry, error) {
	query := `
		SELECT id, actor, message, created_at
		FROM logs
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing log entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Actor, &e.Message, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning log row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating log rows: %w", err)
	}

	if entries == nil {
		entries = []Entry{}
	}

	return entries, nil
}
