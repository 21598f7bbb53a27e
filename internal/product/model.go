package product

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a row in the products table.
type Product struct {
	ID    uuid.UUID
	Name  string
	Price decimal.Decimal
}
