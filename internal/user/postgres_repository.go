package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

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

// Create inserts a new user record.
func (r *PostgresRepository) Create(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (username, team_id, is_admin)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query, u.Username, u.TeamID, u.IsAdmin).Scan(&u.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return ErrDuplicateUsername
			case "23503":
				return team.ErrNotFound
			}
		}
		return fmt.Errorf("inserting user: %w", err)
	}

	return nil
}

// GetByID retrieves a single user by its UUID with the team name joined in.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `
		SELECT u.id, u.username, u.team_id, t.name, u.is_admin
		FROM users u
		LEFT JOIN teams t ON u.team_id = t.id
		WHERE u.id = $1`

	var u User
	err := r.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Username, &u.TeamID, &u.TeamName, &u.IsAdmin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying user: %w", err)
	}

	return &u, nil
}

// List retrieves all users with team names, ordered by team name then username
// for stable display.
func (r *PostgresRepository) List(ctx context.Context) ([]User, error) {
	query := `
		SELECT u.id, u.username, u.team_id, t.name, u.is_admin
		FROM users u
		LEFT JOIN teams t ON u.team_id = t.id
		ORDER BY t.name, u.username`

	return r.queryUsers(ctx, query)
}

// ListByTeam retrieves the members of one team, ordered by team name then
// username. A team with no members yields an empty slice.
func (r *PostgresRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]User, error) {
	query := `
		SELECT u.id, u.username, u.team_id, t.name, u.is_admin
		FROM users u
		LEFT JOIN teams t ON u.team_id = t.id
		WHERE u.team_id = $1
		ORDER BY t.name, u.username`

	return r.queryUsers(ctx, query, teamID)
}

// UpdateTeam moves a user to another team, or to no team when teamID is nil.
func (r *PostgresRepository) UpdateTeam(ctx context.Context, id uuid.UUID, teamID *uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `UPDATE users SET team_id = $1 WHERE id = $2`, teamID, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return team.ErrNotFound
		}
		return fmt.Errorf("updating user team: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a user by its UUID.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) queryUsers(ctx context.Context, query string, args ...any) ([]User, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.TeamID, &u.TeamName, &u.IsAdmin); err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating user rows: %w", err)
	}

	if users == nil {
		users = []User{}
	}

	return users, nil
}
