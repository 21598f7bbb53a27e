package transaction

import (
	"context"

	"github.com/google/uuid"
)

// Repository provides append and read access to the transactions table.
// Transactions are never mutated or deleted.
type Repository interface {
	Insert(ctx context.Context, tx *Transaction) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Transaction, error)
}
