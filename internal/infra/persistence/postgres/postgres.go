package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"lumera/config"
	"lumera/internal/domain/lifecycle"
	"lumera/internal/errors"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const (
	poolCheckInterval = 5 * time.Second
	poolWaitWarnAfter = 50 * time.Millisecond
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the accounts and orders database. On start it pings, migrates and
// seeds according to config, then watches the connection pool for waits.
func New(params Params) (*gorm.DB, error) {
	if params.Config.Postgres == nil {
		return nil, errors.New("postgres is not configured")
	}

	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}
	// Multi-step writes use txManager.Execute explicitly.
	db = db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(params.Logger, params.Config),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping PostgreSQL")
			}

			if err := prepareSchema(ctx, db, sqlDB, params.Config, params.Logger); err != nil {
				return err
			}

			go watchPool(watchCtx, params.Logger, sqlDB)

			return nil
		},
		OnStop: func(_ context.Context) error {
			stopWatch()

			return errors.WithStack(sqlDB.Close())
		},
	})

	return db, nil
}

// prepareSchema applies pending migrations and seeds launch data when enabled.
func prepareSchema(ctx context.Context, db *gorm.DB, sqlDB *sql.DB, cfg *config.Config, logger *slog.Logger) error {
	if cfg.Migrations != nil && cfg.Migrations.AutoMigrate {
		if err := MigrateUp(sqlDB, logger); err != nil {
			return err
		}
	}

	if cfg.Seed != nil && cfg.Seed.Enabled {
		if err := SeedCoupons(ctx, db, cfg.Seed.Coupons, logger); err != nil {
			return err
		}
	}

	return nil
}

func watchPool(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB) {
	ticker := time.NewTicker(poolCheckInterval)
	defer ticker.Stop()

	prev := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := sqlDB.Stats()
			if level, attrs, waited := poolWaits(prev, cur); waited {
				logger.LogAttrs(ctx, level, "Postgres pool wait", attrs...)
			}
			prev = cur
		}
	}
}

// poolWaits describes the connection waits between two pool snapshots.
// Checkout bursts that queue for connections show up here before they show up as latency.
func poolWaits(prev, cur sql.DBStats) (slog.Level, []slog.Attr, bool) {
	waits := cur.WaitCount - prev.WaitCount
	if waits <= 0 {
		return slog.LevelDebug, nil, false
	}

	waited := cur.WaitDuration - prev.WaitDuration
	attrs := []slog.Attr{
		slog.Int64("waits", waits),
		slog.Duration("waited", waited),
		slog.Duration("avg_wait", waited/time.Duration(waits)),
		slog.Int("open_conns", cur.OpenConnections),
		slog.Int("in_use", cur.InUse),
		slog.Int("idle", cur.Idle),
		slog.Int("max_open_conns", cur.MaxOpenConnections),
	}

	if waited >= poolWaitWarnAfter {
		return slog.LevelWarn, attrs, true
	}

	return slog.LevelDebug, attrs, true
}
