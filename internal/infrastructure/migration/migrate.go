package migration

import (
	"database/sql"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// Migrator applies versioned SQL migrations to the platform schema
// (users, forum content, notifications, business directory). It wraps
// golang-migrate with a file:// source.
type Migrator struct {
	m   *migrate.Migrate
	log *zap.Logger
}

// New builds a Migrator on top of an open postgres connection.
func New(db *sql.DB, migrationsPath string, log *zap.Logger) (*Migrator, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("postgres migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"postgres",
		driver,
	)
	if err != nil {
		return nil, fmt.Errorf("init migrator: %w", err)
	}

	return &Migrator{m: m, log: log}, nil
}

// Up applies every pending migration.
func (mg *Migrator) Up() error {
	mg.log.Info("Applying pending migrations")

	err := mg.m.Up()
	if err == migrate.ErrNoChange {
		mg.log.Info("Schema already up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}

	return mg.logCurrentVersion("Migrations applied")
}

// Down rolls the schema all the way back.
func (mg *Migrator) Down() error {
	mg.log.Info("Rolling back all migrations")

	err := mg.m.Down()
	if err == migrate.ErrNoChange {
		mg.log.Info("Nothing to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}

	mg.log.Info("Schema rolled back to empty")
	return nil
}

// Steps moves the schema n versions forward, or backward when n is negative.
func (mg *Migrator) Steps(n int) error {
	mg.log.Info("Stepping migrations", zap.Int("steps", n))

	err := mg.m.Steps(n)
	if err == migrate.ErrNoChange {
		mg.log.Info("Schema already up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate steps: %w", err)
	}

	return mg.logCurrentVersion("Migration steps applied")
}

// GoTo migrates the schema to an exact version, in either direction.
func (mg *Migrator) GoTo(version uint) error {
	mg.log.Info("Migrating to version", zap.Uint("target_version", version))

	err := mg.m.Migrate(version)
	if err == migrate.ErrNoChange {
		mg.log.Info("Already at target version")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate to version %d: %w", version, err)
	}

	mg.log.Info("Schema now at version", zap.Uint("version", version))
	return nil
}

// Version reports the current schema version and whether it is dirty.
// A schema with no applied migrations reports version 0.
func (mg *Migrator) Version() (uint, bool, error) {
	version, dirty, err := mg.m.Version()
	if err == migrate.ErrNilVersion {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read schema version: %w", err)
	}
	return version, dirty, nil
}

// Force records a version without running any SQL. It exists to clear a
// dirty flag left behind by a failed migration.
func (mg *Migrator) Force(version int) error {
	mg.log.Warn("Forcing schema version", zap.Int("version", version))

	if err := mg.m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}

	mg.log.Info("Schema version forced", zap.Int("version", version))
	return nil
}

// Drop wipes every table in the database, data included.
func (mg *Migrator) Drop() error {
	mg.log.Warn("Dropping all tables")

	if err := mg.m.Drop(); err != nil {
		return fmt.Errorf("drop schema: %w", err)
	}

	mg.log.Info("All tables dropped")
	return nil
}

// Close releases the migration source and database handles.
func (mg *Migrator) Close() error {
	sourceErr, dbErr := mg.m.Close()
	if sourceErr != nil {
		return fmt.Errorf("close migration source: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("close migration database: %w", dbErr)
	}
	return nil
}

func (mg *Migrator) logCurrentVersion(msg string) error {
	version, dirty, err := mg.m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("read schema version: %w", err)
	}
	mg.log.Info(msg, zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}
