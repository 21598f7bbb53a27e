package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"
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

// Insert appends a transaction record.
func (r *PostgresRepository) Insert(ctx context.Context, tx *Transaction) error {
	query := `
		INSERT INTO transactions (user_id, product_id, team_id, amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		tx.UserID, tx.ProductID, tx.TeamID, tx.Amount).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}

	return nil
}

// ListByUser retrieves one user's transactions with product names, oldest
// first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Transaction, error) {
	query := `
		SELECT t.id, t.user_id, t.product_id, t.team_id, t.amount, p.name, t.created_at
		FROM transactions t
		JOIN products p ON t.product_id = p.id
		WHERE t.user_id = $1
		ORDER BY t.created_at ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []Transaction
	for rows.Next() {
		var tx Transaction
		err := rows.Scan(&tx.ID, &tx.UserID, &tx.ProductID, &tx.TeamID, &tx.Amount, &tx.ProductName, &tx.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction row: %w", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	if txs == nil {
		txs = []Transaction{}
	}

	return txs, nil
}
