// Package config loads service configuration from a YAML file, .env files and
// environment variables, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"portfolio/app/logger"
)

// Storage backends for the comment store.
const (
	StorageBadger = "badger"
	StorageRedis  = "redis"
)

// Config is the root configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	Redis    RedisConfig    `yaml:"redis"`
	Content  ContentConfig  `yaml:"content"`
	Logging  logger.Config  `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host" env:"SERVER_HOST"`
	Port         int           `yaml:"port" env:"SERVER_PORT"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT"`
}

// Address returns host:port.
func (c *ServerConfig) Address() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// DatabaseConfig points at the PostgreSQL content backend.
// When Enabled is false the content service runs on seed data only.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled" env:"DB_ENABLED"`
	Host     string `yaml:"host" env:"DB_HOST"`
	Port     int    `yaml:"port" env:"DB_PORT"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	Database string `yaml:"database" env:"DB_NAME"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE"`
}

// DSN returns the lib/pq connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// StorageConfig selects where submitted comments are persisted.
type StorageConfig struct {
	Backend    string `yaml:"backend" env:"STORAGE_BACKEND"`
	BadgerPath string `yaml:"badger_path" env:"BADGER_PATH"`
	InMemory   bool   `yaml:"in_memory" env:"BADGER_IN_MEMORY"`
}

// RedisConfig holds the Redis connection used by the redis storage backend.
type RedisConfig struct {
	Address  string `yaml:"address" env:"REDIS_ADDRESS"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB"`
}

// ContentConfig tunes the content service.
type ContentConfig struct {
	LoadTimeout time.Duration `yaml:"load_timeout" env:"CONTENT_LOAD_TIMEOUT"`
}

// SetDefaults fills every unset field.
func (c *Config) SetDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = StorageBadger
	}
	if c.Storage.BadgerPath == "" {
		c.Storage.BadgerPath = "data/badger"
	}
	if c.Redis.Address == "" {
		c.Redis.Address = "localhost:6379"
	}
	if c.Content.LoadTimeout == 0 {
		c.Content.LoadTimeout = 10 * time.Second
	}
	c.Logging.SetDefaults()
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port: must be between 1 and 65535, got %d", c.Server.Port)
	}
	switch c.Storage.Backend {
	case StorageBadger, StorageRedis:
	default:
		return fmt.Errorf("storage.backend: must be %q or %q, got %q", StorageBadger, StorageRedis, c.Storage.Backend)
	}
	if c.Database.Enabled && c.Database.Database == "" {
		return errors.New("database.database: required when database is enabled")
	}
	if c.Content.LoadTimeout < 0 {
		return errors.New("content.load_timeout: must not be negative")
	}
	return nil
}

// Load reads path (a missing file is not an error), applies .env files and
// environment overrides, then defaults, then validates.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("load environment files: %w", err)
	}

	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := parseYAML(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
