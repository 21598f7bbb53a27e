package database_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teambudget/internal/database"
)

func TestLoadSeed_Default(t *testing.T) {
	data, err := database.LoadSeed("")
	require.NoError(t, err)

	assert.Equal(t, []string{"Marketing", "Field Office"}, data.Teams)
	require.Len(t, data.Users, 6)
	assert.Equal(t, "Admin", data.Users[0].Username)
	assert.True(t, data.Users[0].Admin)
	assert.Empty(t, data.Users[0].Team, "the admin belongs to no team")

	require.Len(t, data.Products, 4)
	for _, p := range data.Products {
		price, err := decimal.NewFromString(p.Price)
		require.NoError(t, err, "product %q", p.Name)
		assert.True(t, price.IsPositive(), "product %q", p.Name)
	}

	require.Len(t, data.Budgets, 4)
	marketing := 0
	for _, b := range data.Budgets {
		_, err := decimal.NewFromString(b.Amount)
		require.NoError(t, err, "budget %q", b.Name)
		assert.Less(t, b.StartOffsetDays, b.EndOffsetDays, "budget %q", b.Name)
		if b.Team == "Marketing" {
			marketing++
			assert.LessOrEqual(t, b.StartOffsetDays, 0, "budget %q should be active on seed day", b.Name)
			assert.GreaterOrEqual(t, b.EndOffsetDays, 0, "budget %q should be active on seed day", b.Name)
		}
	}
	assert.Equal(t, 2, marketing, "two concurrently active Marketing budgets")
}

func TestLoadSeed_CustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	content := `
teams:
  - QA
users:
  - username: Zoe
    team: QA
products:
  - name: Keyboard
    price: "25.00"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	data, err := database.LoadSeed(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"QA"}, data.Teams)
	require.Len(t, data.Users, 1)
	assert.Equal(t, "QA", data.Users[0].Team)
	assert.Empty(t, data.Budgets)
}

func TestLoadSeed_MissingFile(t *testing.T) {
	_, err := database.LoadSeed(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadSeed_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("teams: {not: [a, list"), 0o600))

	_, err := database.LoadSeed(path)
	assert.Error(t, err)
}
