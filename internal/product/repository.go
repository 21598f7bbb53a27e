package product

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a product record is not found.
var ErrNotFound = errors.New("product not found")

// ErrDuplicateName is returned when a product with the same name already exists.
var ErrDuplicateName = errors.New("product name already exists")

// Repository provides CRUD operations on the products table.
type Repository interface {
	Create(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
