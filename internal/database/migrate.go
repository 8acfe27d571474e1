package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrationsFS embed.FS

// newMigrator opens a dedicated connection for golang-migrate so that
// closing the migrator never tears down the service pool.
func (s *service) newMigrator() (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations/"+string(s.dialect))
	if err != nil {
		return nil, fmt.Errorf("load migrations: %w", err)
	}

	conn, err := sql.Open(s.driverName, s.dsn)
	if err != nil {
		return nil, fmt.Errorf("open migration connection: %w", err)
	}

	var driver migratedb.Driver
	switch s.dialect {
	case Postgres:
		driver, err = pgxmigrate.WithInstance(conn, &pgxmigrate.Config{})
	case SQLite:
		driver, err = sqlitemigrate.WithInstance(conn, &sqlitemigrate.Config{})
	default:
		err = fmt.Errorf("no migration driver for %q", s.dialect)
	}
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, string(s.dialect), driver)
	if err != nil {
		_ = driver.Close()
		return nil, fmt.Errorf("init migrator: %w", err)
	}
	return m, nil
}

// Migrate applies every pending up migration.
func (s *service) Migrate(ctx context.Context) error {
	return s.runMigration(ctx, func(m *migrate.Migrate) error { return m.Up() })
}

// MigrateDown reverts every applied migration.
func (s *service) MigrateDown(ctx context.Context) error {
	return s.runMigration(ctx, func(m *migrate.Migrate) error { return m.Down() })
}

// MigrationVersion reports the current schema version and dirty flag.
func (s *service) MigrationVersion() (uint, bool, error) {
	m, err := s.newMigrator()
	if err != nil {
		return 0, false, err
	}
	defer m.Close()
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

func (s *service) runMigration(ctx context.Context, step func(*migrate.Migrate) error) error {
	m, err := s.newMigrator()
	if err != nil {
		return err
	}
	defer m.Close()

	done := make(chan error, 1)
	go func() { done <- step(m) }()

	select {
	case <-ctx.Done():
		m.GracefulStop <- true
		<-done
		return ctx.Err()
	case err := <-done:
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migrate %s: %w", s.dialect, err)
		}
		return nil
	}
}
