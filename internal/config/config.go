// Package config loads server configuration from an optional YAML file,
// a per-environment dotenv file, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/nasermirzaei89/env"
	"gopkg.in/yaml.v3"
)

// Storage engines.
const (
	StoreMongo  = "mongo"
	StoreSQLite = "sqlite"
)

// Config holds process-wide settings, loaded once at startup.
type Config struct {
	Env        string `yaml:"env"`
	Port       string `yaml:"port"`
	Store      string `yaml:"store"`
	DBURL      string `yaml:"db_url"`
	DBName     string `yaml:"db_name"`
	SQLitePath string `yaml:"sqlite_path"`
	LogDev     *bool  `yaml:"log_dev,omitempty"`
}

// Options controls where Load looks for configuration.
type Options struct {
	// File is an optional YAML config file. Empty skips it.
	File string
	// EnvDir holds .env.<APP_ENV> files. Empty means the working directory.
	EnvDir string
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Env:    "development",
		Port:   "8080",
		Store:  StoreSQLite,
		DBURL:  "mongodb://localhost:27017",
		DBName: "comments",
	}
}

// Load builds a Config. Later sources win: defaults, the YAML file,
// .env.<APP_ENV>, then the process environment. Variables already set in
// the environment are never overwritten by the dotenv file.
func Load(opts Options) (Config, error) {
	cfg := Defaults()

	if opts.File != "" {
		if err := readFile(opts.File, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.Env = env.GetString("APP_ENV", cfg.Env)

	dotenv := filepath.Join(opts.EnvDir, ".env."+cfg.Env)
	if _, err := os.Stat(dotenv); err == nil {
		if err := godotenv.Load(dotenv); err != nil {
			return Config{}, fmt.Errorf("loading %s: %w", dotenv, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("checking %s: %w", dotenv, err)
	}

	cfg.Port = env.GetString("PORT", cfg.Port)
	cfg.Store = env.GetString("STORE_DRIVER", cfg.Store)
	cfg.DBURL = env.GetString("DB_URL", cfg.DBURL)
	cfg.DBName = env.GetString("DB_NAME", cfg.DBName)
	cfg.SQLitePath = env.GetString("SQLITE_PATH", cfg.SQLitePath)

	logDev := cfg.Env == "development"
	if cfg.LogDev != nil {
		logDev = *cfg.LogDev
	}
	logDev = env.GetBool("LOG_DEV", logDev)
	cfg.LogDev = &logDev

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports settings that cannot be used.
func (c Config) Validate() error {
	switch c.Store {
	case StoreMongo:
		if c.DBURL == "" {
			return fmt.Errorf("db_url is required for the %s store", StoreMongo)
		}
		if c.DBName == "" {
			return fmt.Errorf("db_name is required for the %s store", StoreMongo)
		}
	case StoreSQLite:
	default:
		return fmt.Errorf("unknown store %q (want %s or %s)", c.Store, StoreMongo, StoreSQLite)
	}

	if c.Port == "" {
		return fmt.Errorf("port is required")
	}

	return nil
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}

// DevLogging reports whether human-readable debug logging is enabled.
func (c Config) DevLogging() bool {
	return c.LogDev != nil && *c.LogDev
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path) // nolint:gosec
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	return nil
}
