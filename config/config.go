/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package config loads indexstore settings from YAML files, .env files and the environment.
package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/suparena/indexstore/errors"
)

// Supported record store backends.
const (
	BackendMemory   = "memory"
	BackendDynamoDB = "dynamodb"
	BackendSQLite   = "sqlite"
)

// Config holds configuration for building a storage context.
type Config struct {
	// Backend selects the record store implementation.
	// Default: "memory"
	Backend string `yaml:"backend"`

	// LogLevel is one of debug, info, warn, error.
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFormat is "text" or "json".
	// Default: "text"
	LogFormat string `yaml:"log_format"`

	DynamoDB DynamoDBConfig `yaml:"dynamodb"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
}

// DynamoDBConfig configures the DynamoDB record store.
type DynamoDBConfig struct {
	Region    string `yaml:"region"`
	TableName string `yaml:"table_name"`

	// AccessKeyID and SecretAccessKey are optional; when empty the default
	// AWS credential chain is used.
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`

	// Endpoint overrides the service endpoint, e.g. for DynamoDB Local.
	Endpoint string `yaml:"endpoint"`

	// MaxRetries is the number of retries per query page for transient errors.
	// Default: 3
	MaxRetries int `yaml:"max_retries"`

	// PageSize is the number of items requested per query page.
	// Default: 100
	PageSize int32 `yaml:"page_size"`
}

// SQLiteConfig configures the SQLite record store.
type SQLiteConfig struct {
	// Path is the database file. Required for the sqlite backend.
	Path string `yaml:"path"`
}

// Default returns an in-memory configuration.
func Default() Config {
	return Config{
		Backend:   BackendMemory,
		LogLevel:  "info",
		LogFormat: "text",
		DynamoDB: DynamoDBConfig{
			MaxRetries: 3,
			PageSize:   100,
		},
	}
}

// Load builds a Config from, in increasing precedence: defaults, the YAML file at
// path (skipped when path is empty), a .env file in the working directory, and
// environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// A missing .env file is not an error; the environment may already be populated.
	if err := godotenv.Load(); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	setString(&c.Backend, "INDEXSTORE_BACKEND")
	setString(&c.LogLevel, "INDEXSTORE_LOG_LEVEL")
	setString(&c.LogFormat, "INDEXSTORE_LOG_FORMAT")
	setString(&c.SQLite.Path, "INDEXSTORE_SQLITE_PATH")
	setString(&c.DynamoDB.TableName, "INDEXSTORE_DDB_TABLE")
	setString(&c.DynamoDB.Endpoint, "INDEXSTORE_DDB_ENDPOINT")
	setString(&c.DynamoDB.Region, "AWS_REGION")
	setString(&c.DynamoDB.AccessKeyID, "AWS_ACCESS_KEY_ID")
	setString(&c.DynamoDB.SecretAccessKey, "AWS_SECRET_ACCESS_KEY")

	if v := os.Getenv("INDEXSTORE_DDB_MAX_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.NewValidationError("INDEXSTORE_DDB_MAX_RETRIES", err.Error())
		}
		c.DynamoDB.MaxRetries = n
	}
	if v := os.Getenv("INDEXSTORE_DDB_PAGE_SIZE"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return errors.NewValidationError("INDEXSTORE_DDB_PAGE_SIZE", err.Error())
		}
		c.DynamoDB.PageSize = int32(n)
	}
	return nil
}

// Validate fills in defaults and rejects settings no backend can use.
func (c *Config) Validate() error {
	if c.Backend == "" {
		c.Backend = BackendMemory
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	if c.DynamoDB.MaxRetries < 0 {
		c.DynamoDB.MaxRetries = 0
	}
	if c.DynamoDB.PageSize <= 0 {
		c.DynamoDB.PageSize = 100
	}

	switch c.Backend {
	case BackendMemory:
	case BackendDynamoDB:
		if c.DynamoDB.TableName == "" {
			return errors.NewValidationError("dynamodb.table_name", "required for the dynamodb backend")
		}
	case BackendSQLite:
		if c.SQLite.Path == "" {
			return errors.NewValidationError("sqlite.path", "required for the sqlite backend")
		}
	default:
		return errors.NewValidationError("backend", fmt.Sprintf("unsupported backend %q", c.Backend))
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		return errors.NewValidationError("log_format", fmt.Sprintf("unsupported format %q", c.LogFormat))
	}
	return nil
}
