package config

import (
	"path/filepath"
	"strings"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Default returns the configuration used before file and env overrides.
func Default() Config {
	return Config{
		Env: "development",
		Server: Server{
			Port:         8080,
			AppName:      "notely",
			AllowOrigins: "http://localhost:3000, http://localhost:5173",
			BodyLimitMB:  16,
		},
		Database: Database{
			Driver:     DriverSQLite,
			Host:       "localhost",
			Port:       5432,
			Name:       "notely",
			User:       "notely",
			Schema:     "public",
			SSLMode:    "disable",
			SQLitePath: "notely.db",
		},
		Auth: Auth{
			TokenTTLHours: 72,
		},
		Storage: Storage{
			PublicDir:  "public",
			MaxMusicMB: 10,
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
		Cache: Cache{
			ProfileSize: 512,
		},
	}
}

// Normalize trims and canonicalizes free-form values in place.
func (c *Config) Normalize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	if c.Database.Driver == "pgx" || c.Database.Driver == "postgresql" {
		c.Database.Driver = DriverPostgres
	}
	if c.Database.Driver == "sqlite3" {
		c.Database.Driver = DriverSQLite
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Storage.PublicDir != "" {
		c.Storage.PublicDir = filepath.Clean(c.Storage.PublicDir)
	}
	if c.Database.SQLitePath != "" && c.Database.SQLitePath != ":memory:" {
		c.Database.SQLitePath = filepath.Clean(c.Database.SQLitePath)
	}
}

// TokenTTL returns the signed token lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLHours) * time.Hour
}

// FilesDir is the directory generic uploads are written to.
func (c *Config) FilesDir() string {
	return filepath.Join(c.Storage.PublicDir, "files")
}

// MusicDir is the directory audio uploads are written to.
func (c *Config) MusicDir() string {
	return filepath.Join(c.Storage.PublicDir, "music")
}

// MaxMusicBytes is the accepted upper bound for a single audio upload.
func (c *Config) MaxMusicBytes() int64 {
	return int64(c.Storage.MaxMusicMB) << 20
}

// BodyLimitBytes is the request body ceiling handed to fiber.
func (c *Config) BodyLimitBytes() int {
	return c.Server.BodyLimitMB << 20
}
