package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	"lumera/config"
	logs "lumera/internal/infra/log"
	"lumera/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	pgLib "github.com/slighter12/go-lib/database/postgres"
	"gorm.io/gorm"
)

// Supported subcommands:
// - up:      Apply every pending migration
// - down:    Roll back the last N migrations
// - version: Print the applied schema version
// - seed:    Insert the configured launch coupons

func main() {
	downCmd := flag.NewFlagSet("down", flag.ExitOnError)
	downSteps := downCmd.Int("steps", 1, "Number of migrations to roll back")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	if err := run(context.Background(), downCmd, downSteps); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, downCmd *flag.FlagSet, downSteps *int) error {
	cfg, err := config.New()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	logger, err := logs.New(logs.Params{Config: cfg})
	if err != nil {
		return errors.Wrap(err, "failed to create logger")
	}

	db, sqlDB, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	switch os.Args[1] {
	case "up":
		return postgres.MigrateUp(sqlDB, logger)
	case "down":
		if err := downCmd.Parse(os.Args[2:]); err != nil {
			return errors.Wrap(err, "failed to parse down flags")
		}
		if *downSteps < 1 {
			return errors.New("steps must be at least 1")
		}

		return postgres.MigrateDown(sqlDB, *downSteps, logger)
	case "version":
		version, dirty, err := postgres.MigrationVersion(sqlDB)
		if err != nil {
			return err
		}
		fmt.Printf("version=%d dirty=%t\n", version, dirty)

		return nil
	case "seed":
		if cfg.Seed == nil || len(cfg.Seed.Coupons) == 0 {
			logger.Info("No seed coupons configured")

			return nil
		}

		return postgres.SeedCoupons(ctx, db, cfg.Seed.Coupons, logger)
	default:
		printUsage()

		return errors.New("unknown subcommand")
	}
}

func openDatabase(cfg *config.Config) (*gorm.DB, *sql.DB, error) {
	if cfg.Postgres == nil {
		return nil, nil, errors.New("postgres is not configured")
	}

	db, err := pgLib.New(cfg.Postgres)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	return db, sqlDB, nil
}

func printUsage() {
	fmt.Println("Usage: migrate <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  up                  Apply every pending migration")
	fmt.Println("  down -steps N       Roll back the last N migrations")
	fmt.Println("  version             Print the applied schema version")
	fmt.Println("  seed                Insert the configured launch coupons")
}
