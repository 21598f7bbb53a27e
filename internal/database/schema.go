package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// tables in drop order: dependents first, referenced tables last.
var tables = []string{"transactions", "budgets", "products", "users", "teams", "logs"}

var createStatements = []string{
	`CREATE TABLE IF NOT EXISTS teams (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		username TEXT NOT NULL UNIQUE,
		team_id UUID REFERENCES teams(id) ON DELETE SET NULL,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL UNIQUE,
		price NUMERIC NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS budgets (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL UNIQUE,
		team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		amount NUMERIC NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID REFERENCES users(id) ON DELETE CASCADE,
		product_id UUID REFERENCES products(id) ON DELETE CASCADE,
		team_id UUID REFERENCES teams(id) ON DELETE CASCADE,
		amount NUMERIC NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS logs (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		actor TEXT NOT NULL,
		message TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// CreateTables creates all storage tables if they do not already exist.
func (db *DB) CreateTables(ctx context.Context) error {
	for _, stmt := range createStatements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("creating table: %w", err)
		}
	}
	log.Info().Msg("all tables created")
	return nil
}

// DropTables drops all storage tables.
func (db *DB) DropTables(ctx context.Context) error {
	for _, table := range tables {
		if _, err := db.pool.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)); err != nil {
			return fmt.Errorf("dropping table %s: %w", table, err)
		}
	}
	log.Info().Msg("all tables dropped")
	return nil
}
