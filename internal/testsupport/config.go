package testsupport

import (
	"path/filepath"
	"testing"

	"notely/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config with a temp SQLite file and temp upload
// directory per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Env = "test"
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.SQLitePath = filepath.Join(base, "notely.db")
	cfg.Storage.PublicDir = filepath.Join(base, "public")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithMaxMusicMB overrides the music upload limit.
func WithMaxMusicMB(mb int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Storage.MaxMusicMB = mb
	}
}
