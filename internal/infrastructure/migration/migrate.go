package migration

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// Runner drives schema migrations for the billing database. It wraps
// golang-migrate with file-based sources; the migration SQL lives in
// the migrations/ directory at the repository root.
type Runner struct {
	m   *migrate.Migrate
	log *zap.Logger
}

// NewRunner builds a Runner on top of an open postgres connection
func NewRunner(db *sql.DB, dir string, log *zap.Logger) (*Runner, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("postgres migration driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("migrate instance: %w", err)
	}
	return &Runner{m: m, log: log}, nil
}

// Apply runs every pending migration
func (r *Runner) Apply() error {
	r.log.Info("applying pending migrations")
	if err := r.m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			r.log.Info("schema already up to date")
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}
	r.logVersion("migrations applied")
	return nil
}

// Rollback reverts every applied migration
func (r *Runner) Rollback() error {
	r.log.Info("rolling back all migrations")
	if err := r.m.Down(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			r.log.Info("nothing to roll back")
			return nil
		}
		return fmt.Errorf("rollback migrations: %w", err)
	}
	r.log.Info("all migrations rolled back")
	return nil
}

// Step applies n migrations forward, or reverts -n backward
func (r *Runner) Step(n int) error {
	r.log.Info("stepping migrations", zap.Int("n", n))
	if err := r.m.Steps(n); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			r.log.Info("schema already up to date")
			return nil
		}
		return fmt.Errorf("step migrations: %w", err)
	}
	r.logVersion("migration step complete")
	return nil
}

// MigrateTo moves the schema to an exact version, up or down
func (r *Runner) MigrateTo(version uint) error {
	r.log.Info("migrating to version", zap.Uint("target", version))
	if err := r.m.Migrate(version); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			r.log.Info("already at target version")
			return nil
		}
		return fmt.Errorf("migrate to version %d: %w", version, err)
	}
	r.logVersion("migration complete")
	return nil
}

// Version reports the current schema version. A fresh database with no
// applied migrations reports version 0 and no error.
func (r *Runner) Version() (uint, bool, error) {
	version, dirty, err := r.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read migration version: %w", err)
	}
	return version, dirty, nil
}

// Force overwrites the recorded schema version without running any
// SQL. Only for repairing a dirty state after a failed migration.
func (r *Runner) Force(version int) error {
	r.log.Warn("forcing migration version", zap.Int("version", version))
	if err := r.m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	return nil
}

// Drop destroys every object in the database
func (r *Runner) Drop() error {
	r.log.Warn("dropping database schema, all data will be lost")
	if err := r.m.Drop(); err != nil {
		return fmt.Errorf("drop database: %w", err)
	}
	r.log.Info("database schema dropped")
	return nil
}

// Close releases the source and database handles
func (r *Runner) Close() error {
	sourceErr, dbErr := r.m.Close()
	if sourceErr != nil {
		return fmt.Errorf("close migration source: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("close migration database: %w", dbErr)
	}
	return nil
}

func (r *Runner) logVersion(msg string) {
	version, dirty, err := r.m.Version()
	if err != nil {
		return
	}
	r.log.Info(msg, zap.Uint("version", version), zap.Bool("dirty", dirty))
}
