package postgres

import (
	"database/sql"
	"embed"
	"log/slog"

	"lumera/internal/errors"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const migrationsTable = "lumera_schema_migrations"

// newMigrator builds a migrate instance over the embedded SQL files.
func newMigrator(sqlDB *sql.DB) (*migrate.Migrate, error) {
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, errors.Wrap(err, "could not open embedded migrations")
	}

	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{
		MigrationsTable: migrationsTable,
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not create migration driver")
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, errors.Wrap(err, "could not create migrate instance")
	}

	return m, nil
}

// MigrateUp applies every pending migration.
func MigrateUp(sqlDB *sql.DB, logger *slog.Logger) error {
	m, err := newMigrator(sqlDB)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "could not run migrations")
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return errors.Wrap(err, "could not read migration version")
	}

	logger.Info("Database schema is up to date",
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty),
	)

	return nil
}

// MigrateDown rolls back the given number of migrations.
func MigrateDown(sqlDB *sql.DB, steps int, logger *slog.Logger) error {
	m, err := newMigrator(sqlDB)
	if err != nil {
		return err
	}

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "could not roll back migrations")
	}

	logger.Info("Rolled back migrations", slog.Int("steps", steps))

	return nil
}

// MigrationVersion reports the applied schema version.
func MigrationVersion(sqlDB *sql.DB) (uint, bool, error) {
	m, err := newMigrator(sqlDB)
	if err != nil {
		return 0, false, err
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}

	return version, dirty, errors.WithStack(err)
}
