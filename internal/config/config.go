// Package config loads, normalizes, and validates notely configuration.
//
// Settings come from three layers applied in order: built-in defaults, an
// optional TOML file, and environment variables (a .env file is loaded by
// the CLI before Load runs). Always obtain settings through Load so the
// server receives sanitized paths and clear validation errors.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Server contains HTTP listener configuration.
type Server struct {
	Port         int    `toml:"port"`
	AppName      string `toml:"app_name"`
	AllowOrigins string `toml:"allow_origins"`
	BodyLimitMB  int    `toml:"body_limit_mb"`
	EnablePprof  bool   `toml:"enable_pprof"`
}

// Database selects the SQL backend and its connection parameters.
type Database struct {
	Driver     string `toml:"driver"`
	URL        string `toml:"url"`
	Host       string `toml:"host"`
	Port       int    `toml:"port"`
	Name       string `toml:"name"`
	User       string `toml:"user"`
	Password   string `toml:"password"`
	Schema     string `toml:"schema"`
	SSLMode    string `toml:"sslmode"`
	SQLitePath string `toml:"sqlite_path"`
}

// Auth contains token signing settings.
type Auth struct {
	JWTSecret     string `toml:"jwt_secret"`
	TokenTTLHours int    `toml:"token_ttl_hours"`
}

// Storage describes where uploads are written.
type Storage struct {
	PublicDir  string `toml:"public_dir"`
	MaxMusicMB int    `toml:"max_music_mb"`
}

// Logging configures the application logger.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Cache sizes in-memory lookups.
type Cache struct {
	ProfileSize int `toml:"profile_size"`
}

// Config is the root configuration document.
type Config struct {
	Env      string   `toml:"env"`
	Server   Server   `toml:"server"`
	Database Database `toml:"database"`
	Auth     Auth     `toml:"auth"`
	Storage  Storage  `toml:"storage"`
	Logging  Logging  `toml:"logging"`
	Cache    Cache    `toml:"cache"`
}

// Load builds a Config from defaults, the TOML file at path (skipped when
// path is empty), and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("config file %s does not exist", path)
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsDevelopment reports whether the configured environment is local.
func (c *Config) IsDevelopment() bool {
	switch c.Env {
	case "", "dev", "development", "local", "test":
		return true
	}
	return false
}

func (c *Config) applyEnv() error {
	setString(&c.Env, "APP_ENV")
	if err := setInt(&c.Server.Port, "PORT"); err != nil {
		return err
	}
	setString(&c.Server.AllowOrigins, "ALLOW_ORIGINS")

	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Database.URL, "DB_URL")
	setString(&c.Database.Host, "DB_HOST")
	if err := setInt(&c.Database.Port, "DB_PORT"); err != nil {
		return err
	}
	setString(&c.Database.Name, "DB_DATABASE")
	setString(&c.Database.User, "DB_USERNAME")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.Schema, "DB_SCHEMA")
	setString(&c.Database.SSLMode, "DB_SSLMODE")
	setString(&c.Database.SQLitePath, "SQLITE_PATH")

	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.Storage.PublicDir, "PUBLIC_DIR")
	setString(&c.Logging.Level, "LOG_LEVEL")
	setString(&c.Logging.Format, "LOG_FORMAT")
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		*dst = strings.TrimSpace(v)
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%s: expected integer, got %q", key, v)
	}
	*dst = n
	return nil
}
