package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a user record is not found.
var ErrNotFound = errors.New("user not found")

// ErrDuplicateUsername is returned when a user with the same username already exists.
var ErrDuplicateUsername = errors.New("username already exists")

// Repository provides CRUD operations on the users table.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	List(ctx context.Context) ([]User, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]User, error)
	UpdateTeam(ctx context.Context, id uuid.UUID, teamID *uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
