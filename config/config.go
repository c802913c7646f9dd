// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/SamuelRCrider/xplicit-go/core"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "XPLICIT"

// Config holds every runtime setting
type Config struct {
	// WordListPath is a YAML word list; empty means the built-in list
	WordListPath string `envconfig:"WORD_LIST"`

	OutputDir  string `envconfig:"OUTPUT_DIR" default:"output" validate:"required"`
	ReportName string `envconfig:"REPORT_NAME" default:"Explicit Report.xlsx" validate:"required"`
	Schema     string `envconfig:"SCHEMA" default:"catalog" validate:"oneof=basic catalog"`
	Workers    int    `envconfig:"WORKERS" default:"4" validate:"min=1,max=64"`

	AuditLogPath       string `envconfig:"AUDIT_LOG" default:"logs/audit.log"`
	AuditLevel         string `envconfig:"AUDIT_LEVEL" default:"standard" validate:"oneof=minimal standard verbose"`
	AuditRotationSize  int64  `envconfig:"AUDIT_ROTATION_SIZE" default:"10485760" validate:"min=0"`
	AuditRetentionDays int    `envconfig:"AUDIT_RETENTION_DAYS" default:"30" validate:"min=0"`
	AuditConsole       bool   `envconfig:"AUDIT_CONSOLE" default:"false"`

	WatchDir          string        `envconfig:"WATCH_DIR" default:"inbox"`
	DataDir           string        `envconfig:"DATA_DIR" default:"data" validate:"required"`
	DBFileName        string        `envconfig:"DB_FILE_NAME" default:"xplicit.db" validate:"required"`
	StabilityInterval time.Duration `envconfig:"STABILITY_INTERVAL" default:"2s" validate:"min=0"`

	LogLevel             string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	MCPRequestsPerMinute int    `envconfig:"MCP_REQUESTS_PER_MINUTE" default:"0" validate:"min=0"`
}

// Load reads a .env file if present, then XPLICIT_* environment variables,
// and validates the result
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	cfg.Schema = strings.ToLower(strings.TrimSpace(cfg.Schema))
	cfg.AuditLevel = strings.ToLower(strings.TrimSpace(cfg.AuditLevel))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(errs))
			for _, fe := range errs {
				msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("invalid settings: %s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// DBPath is the full path of the processed-file database
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, c.DBFileName)
}

// TransformSchema returns the configured field schema
func (c *Config) TransformSchema() core.Schema {
	return core.Schema(c.Schema)
}

// AuditConfig returns the audit logger settings
func (c *Config) AuditConfig() core.AuditConfig {
	return core.AuditConfig{
		Path:          c.AuditLogPath,
		Level:         core.AuditLogLevel(c.AuditLevel),
		RotationSize:  c.AuditRotationSize,
		RetentionDays: c.AuditRetentionDays,
		EnableConsole: c.AuditConsole,
	}
}

// LoadWords returns the configured word list, or the built-in one when no
// path is set
func (c *Config) LoadWords() (*core.WordList, error) {
	if c.WordListPath == "" {
		return core.DefaultWordList(), nil
	}
	return core.LoadWordList(c.WordListPath)
}
