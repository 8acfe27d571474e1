package testsupport

import (
	"context"
	"testing"

	"notely/internal/config"
	"notely/internal/database"
)

// MustOpenDatabase opens and migrates the database described by cfg and
// registers cleanup.
func MustOpenDatabase(t testing.TB, cfg *config.Config) database.Service {
	t.Helper()

	db, err := database.New(cfg.Database)
	if err != nil {
		t.Fatalf("database.New: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("db.Migrate: %v", err)
	}
	return db
}

// MustOpenSQLite opens a migrated SQLite database in a temp directory.
func MustOpenSQLite(t testing.TB) database.Service {
	t.Helper()
	return MustOpenDatabase(t, NewConfig(t))
}
