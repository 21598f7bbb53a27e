package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"teambudget/internal/database"
)

var setupCmd = &cobra.Command{
	Use:   "setup [delete] [create] [insert]",
	Short: "Manage the storage schema and mock data",
	Long: `setup resets or seeds storage. Pass any combination of the actions:

  delete  drop all tables
  create  create all tables
  insert  insert the mock dataset (set SEED_FILE to use your own)

Actions always run in the order delete, create, insert.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSetup,
}

func runSetup(cmd *cobra.Command, args []string) error {
	actions := map[string]bool{}
	for _, arg := range args {
		switch arg {
		case "delete", "create", "insert":
			actions[arg] = true
		default:
			return fmt.Errorf("unknown setup action %q (want delete, create, or insert)", arg)
		}
	}

	ctx := cmd.Context()
	cfg, db, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if actions["delete"] {
		if err := db.DropTables(ctx); err != nil {
			return err
		}
	}
	if actions["create"] {
		if err := db.CreateTables(ctx); err != nil {
			return err
		}
	}
	if actions["insert"] {
		data, err := database.LoadSeed(cfg.SeedFile)
		if err != nil {
			return err
		}
		if err := db.Seed(ctx, data); err != nil {
			return err
		}
	}

	fmt.Println("Operation complete.")
	return nil
}
