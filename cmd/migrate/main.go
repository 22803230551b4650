package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jwilson7981/job-tracker-sub000/internal/config"
	"github.com/jwilson7981/job-tracker-sub000/internal/database"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Migration error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	args := os.Args[1:]
	if len(args) == 0 {
		return fmt.Errorf("usage: migrate [up|down|status|version|repair|seed]")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := zap.NewNop()
	gdb, err := database.NewDatabase(&cfg.Database, log)
	if err != nil {
		return err
	}
	db, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	defer db.Close()

	if err := goose.SetDialect(database.Dialect); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	ctx := context.Background()
	dir := database.MigrationsDir()

	switch args[0] {
	case "up":
		if err := database.Migrate(ctx, gdb); err != nil {
			return err
		}
		fmt.Println("Migrations applied successfully")

	case "down":
		if err := goose.DownContext(ctx, db, dir); err != nil {
			return fmt.Errorf("failed to run down migration: %w", err)
		}
		fmt.Println("Migration rolled back successfully")

	case "status":
		if err := goose.StatusContext(ctx, db, dir); err != nil {
			return fmt.Errorf("failed to get migration status: %w", err)
		}

	case "version":
		if err := goose.VersionContext(ctx, db, dir); err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}

	case "repair":
		if err := database.RepairColumns(gdb); err != nil {
			return err
		}
		if err := database.NormalizeJobStatuses(gdb); err != nil {
			return err
		}
		fmt.Println("Schema repaired")

	case "seed":
		if err := database.Seed(ctx, gdb, log); err != nil {
			return err
		}
		fmt.Println("Seed data loaded")

	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}

	return nil
}
