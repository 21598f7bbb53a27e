package team

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a team record is not found.
var ErrNotFound = errors.New("team not found")

// ErrDuplicateName is returned when a team with the same name already exists.
var ErrDuplicateName = errors.New("team name already exists")

// Repository provides CRUD operations on the teams table.
type Repository interface {
	Create(ctx context.Context, team *Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*Team, error)
	List(ctx context.Context) ([]Team, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
