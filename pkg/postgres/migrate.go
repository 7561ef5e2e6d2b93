package postgres

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // register postgres driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // register file source driver
)

// MigrationSource turns a directory path into a golang-migrate source URL.
// Values already carrying a scheme are returned unchanged.
func MigrationSource(dir string) (string, error) {
	if strings.Contains(dir, "://") {
		return dir, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("postgres: resolve migrations dir: %w", err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}

// RunMigrations applies all pending migrations found in dir. It returns nil
// when the schema is already current.
func RunMigrations(dsn, dir string) error {
	m, err := newMigrator(dsn, dir)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: run migrations up: %w", err)
	}
	return nil
}

// RunMigrationsDown rolls back every applied migration.
func RunMigrationsDown(dsn, dir string) error {
	m, err := newMigrator(dsn, dir)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: run migrations down: %w", err)
	}
	return nil
}

// MigrationVersion reports the applied schema version. A fresh database
// returns version 0.
func MigrationVersion(dsn, dir string) (uint, bool, error) {
	m, err := newMigrator(dsn, dir)
	if err != nil {
		return 0, false, err
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("postgres: read migration version: %w", err)
	}
	return version, dirty, nil
}

func newMigrator(dsn, dir string) (*migrate.Migrate, error) {
	source, err := MigrationSource(dir)
	if err != nil {
		return nil, err
	}
	m, err := migrate.New(source, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: create migrator: %w", err)
	}
	return m, nil
}
