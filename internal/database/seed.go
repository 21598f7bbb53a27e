package database

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"sigs.k8s.io/yaml"
)

//go:embed seed.yaml
var defaultSeed []byte

// SeedData describes the mock dataset inserted by `setup insert`.
type SeedData struct {
	Teams    []string      `json:"teams"`
	Users    []SeedUser    `json:"users"`
	Products []SeedProduct `json:"products"`
	Budgets  []SeedBudget  `json:"budgets"`
	Logs     []SeedLog     `json:"logs"`
}

// SeedUser is a user entry in the seed file. Team is the team name, empty for
// users without a team.
type SeedUser struct {
	Username string `json:"username"`
	Team     string `json:"team"`
	Admin    bool   `json:"admin"`
}

// SeedProduct is a product entry in the seed file.
type SeedProduct struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

// SeedBudget is a budget entry in the seed file. Validity windows are day
// offsets from the day the seed runs.
type SeedBudget struct {
	Name            string `json:"name"`
	Team            string `json:"team"`
	Amount          string `json:"amount"`
	StartOffsetDays int    `json:"startOffsetDays"`
	EndOffsetDays   int    `json:"endOffsetDays"`
}

// SeedLog is a starter audit log entry in the seed file.
type SeedLog struct {
	Actor   string `json:"actor"`
	Message string `json:"message"`
}

// LoadSeed parses seed data from the given file, or the embedded default
// dataset when path is empty.
func LoadSeed(path string) (*SeedData, error) {
	raw := defaultSeed
	if path != "" {
		var err error
		raw, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading seed file: %w", err)
		}
	}

	var data SeedData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parsing seed data: %w", err)
	}
	return &data, nil
}

// Seed inserts the given dataset. Existing rows with conflicting names are
// left alone, so seeding is safe to repeat.
func (db *DB) Seed(ctx context.Context, data *SeedData) error {
	for _, name := range data.Teams {
		if _, err := db.pool.Exec(ctx,
			`INSERT INTO teams (name) VALUES ($1) ON CONFLICT DO NOTHING`, name); err != nil {
			return fmt.Errorf("seeding team %q: %w", name, err)
		}
	}

	for _, u := range data.Users {
		var teamName *string
		if u.Team != "" {
			teamName = &u.Team
		}
		if _, err := db.pool.Exec(ctx, `
			INSERT INTO users (username, team_id, is_admin)
			VALUES ($1, (SELECT id FROM teams WHERE name = $2), $3)
			ON CONFLICT DO NOTHING`,
			u.Username, teamName, u.Admin); err != nil {
			return fmt.Errorf("seeding user %q: %w", u.Username, err)
		}
	}

	for _, p := range data.Products {
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return fmt.Errorf("seed product %q: bad price %q: %w", p.Name, p.Price, err)
		}
		if _, err := db.pool.Exec(ctx,
			`INSERT INTO products (name, price) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			p.Name, price); err != nil {
			return fmt.Errorf("seeding product %q: %w", p.Name, err)
		}
	}

	today := time.Now()
	for _, b := range data.Budgets {
		amount, err := decimal.NewFromString(b.Amount)
		if err != nil {
			return fmt.Errorf("seed budget %q: bad amount %q: %w", b.Name, b.Amount, err)
		}
		start := today.AddDate(0, 0, b.StartOffsetDays)
		end := today.AddDate(0, 0, b.EndOffsetDays)
		if _, err := db.pool.Exec(ctx, `
			INSERT INTO budgets (name, team_id, amount, start_date, end_date)
			VALUES ($1, (SELECT id FROM teams WHERE name = $2), $3, $4, $5)
			ON CONFLICT DO NOTHING`,
			b.Name, b.Team, amount, start, end); err != nil {
			return fmt.Errorf("seeding budget %q: %w", b.Name, err)
		}
	}

	for _, l := range data.Logs {
		if _, err := db.pool.Exec(ctx,
			`INSERT INTO logs (actor, message) VALUES ($1, $2)`, l.Actor, l.Message); err != nil {
			return fmt.Errorf("seeding log entry: %w", err)
		}
	}

	log.Info().
		Int("teams", len(data.Teams)).
		Int("users", len(data.Users)).
		Int("products", len(data.Products)).
		Int("budgets", len(data.Budgets)).
		Msg("mock data inserted")
	return nil
}
