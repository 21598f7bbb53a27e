package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction represents a row in the transactions table. The team is a
// denormalized copy of the buyer's team at purchase time. ProductName is
// joined in on reads for display.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	ProductID   uuid.UUID
	TeamID      uuid.UUID
	Amount      decimal.Decimal
	ProductName string
	CreatedAt   time.Time
}
