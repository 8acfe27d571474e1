package config

import (
	"errors"
	"fmt"
)

// devSecret is only accepted when running in a development environment.
const devSecret = "notely-dev-secret-change-me"

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateAuth(); err != nil {
		return err
	}
	if err := c.validateStorage(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.BodyLimitMB <= 0 {
		return errors.New("server.body_limit_mb must be positive")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.URL == "" && c.Database.Host == "" {
			return errors.New("database.host or database.url is required for postgres")
		}
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return errors.New("database.sqlite_path is required for sqlite")
		}
	default:
		return fmt.Errorf("database.driver: unsupported value %q", c.Database.Driver)
	}
	return nil
}

func (c *Config) validateAuth() error {
	if c.Auth.JWTSecret == "" {
		if !c.IsDevelopment() {
			return errors.New("auth.jwt_secret is required. Set JWT_SECRET")
		}
		c.Auth.JWTSecret = devSecret
	}
	if c.Auth.TokenTTLHours <= 0 {
		return errors.New("auth.token_ttl_hours must be positive")
	}
	return nil
}

func (c *Config) validateStorage() error {
	if c.Storage.PublicDir == "" {
		return errors.New("storage.public_dir must be set")
	}
	if c.Storage.MaxMusicMB <= 0 {
		return errors.New("storage.max_music_mb must be positive")
	}
	if c.Cache.ProfileSize <= 0 {
		return errors.New("cache.profile_size must be positive")
	}
	if c.Storage.MaxMusicMB >= c.Server.BodyLimitMB {
		return fmt.Errorf("storage.max_music_mb (%d) must be below server.body_limit_mb (%d)", c.Storage.MaxMusicMB, c.Server.BodyLimitMB)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "text", "json", "auto":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
