// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/spf13/pflag"
)

// StructuredConfig is the top-level configuration container for the bridge.
// It aggregates all sub-configurations and is populated by merging values
// from defaults, environment variables, an optional JSON file and
// command-line flags.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Tamanu holds the remote EHR endpoint and credentials.
	Tamanu Tamanu `envPrefix:"TAMANU_"`

	// LIMS holds the local identities used while writing.
	LIMS LIMS `envPrefix:"LIMS_"`

	// Storage holds configuration for the local store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Sync holds the settings of the sync command.
	Sync Sync `envPrefix:"SYNC_"`

	// Tasks holds the settings of the tasks command.
	Tasks Tasks `envPrefix:"TASKS_"`

	// Metrics holds the run metrics export settings.
	Metrics Metrics `envPrefix:"METRICS_"`

	// Verbose switches logging to the Debug level.
	// Env: VERBOSE
	Verbose bool `env:"VERBOSE"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Tamanu holds the remote endpoint settings.
type Tamanu struct {
	// Host is the base URL of the Tamanu instance.
	// Env: TAMANU_HOST
	Host string `env:"HOST"`

	// User holds the credentials in the "<username>:<password>" form.
	// Env: TAMANU_USER
	User string `env:"USER"`

	// RequestTimeout bounds every HTTP request to Tamanu.
	// Env: TAMANU_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// PageSize is the _count requested per page of resources.
	// Env: TAMANU_PAGE_SIZE
	PageSize int `env:"PAGE_SIZE"`
}

// LIMS holds the local identities.
type LIMS struct {
	// User is the acting user local edits are permission checked against.
	// Env: LIMS_USER
	User string `env:"USER"`

	// ServiceUser is the identity that owns patients after lock-down.
	// Env: LIMS_SERVICE_USER
	ServiceUser string `env:"SERVICE_USER"`
}

// Storage groups the configuration of the local store.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// Driver is "sqlite3" or "pgx".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the connection string passed to the driver.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Sync holds the settings of the sync command.
type Sync struct {
	// Resource is the remote resource type to synchronize.
	// Env: SYNC_RESOURCE
	Resource string `env:"RESOURCE"`

	// Since is the _lastUpdated window in dhm shorthand (e.g. "1d").
	// Env: SYNC_SINCE
	Since string `env:"SINCE"`

	// Cache is the directory holding the modification cache file. Empty
	// keeps the cache in memory for the run.
	// Env: SYNC_CACHE
	Cache string `env:"CACHE"`

	// CacheSince is the cache retention window in dhm shorthand.
	// Env: SYNC_CACHE_SINCE
	CacheSince string `env:"CACHE_SINCE"`

	// Dry rolls back every unit of work.
	// Env: SYNC_DRY
	Dry bool `env:"DRY"`

	// MaxRetries bounds the retries of a conflicting unit of work.
	// Env: SYNC_MAX_RETRIES
	MaxRetries int `env:"MAX_RETRIES"`
}

// Tasks holds the settings of the tasks command.
type Tasks struct {
	// MaxTasks is the maximum number of tasks processed per run.
	// Env: TASKS_MAX_TASKS
	MaxTasks int `env:"MAX_TASKS"`

	// SendObservations adds one Observation per reportable analysis to the
	// posted DiagnosticReport. A pointer so an explicit false survives the
	// merge.
	// Env: TASKS_SEND_OBSERVATIONS
	SendObservations *bool `env:"SEND_OBSERVATIONS"`
}

// Metrics holds the run metrics export settings.
type Metrics struct {
	// Textfile is the path of the node-exporter textfile the run metrics are
	// written to. Empty disables the export.
	// Env: METRICS_TEXTFILE
	Textfile string `env:"TEXTFILE"`
}

// Default values applied before any other source.
const (
	DefaultDriver         = "sqlite3"
	DefaultDSN            = "lims.db"
	DefaultUser           = "tamanu"
	DefaultSince          = "1d"
	DefaultCacheSince     = "7d"
	DefaultMaxRetries     = 3
	DefaultMaxTasks       = 10
	DefaultPageSize       = 100
	DefaultRequestTimeout = 30 * time.Second
)

func defaultConfig() *StructuredConfig {
	sendObservations := true
	return &StructuredConfig{
		Tamanu: Tamanu{
			RequestTimeout: DefaultRequestTimeout,
			PageSize:       DefaultPageSize,
		},
		LIMS: LIMS{
			User:        DefaultUser,
			ServiceUser: DefaultUser,
		},
		Storage: Storage{
			DB: DB{Driver: DefaultDriver, DSN: DefaultDSN},
		},
		Sync: Sync{
			Since:      DefaultSince,
			CacheSince: DefaultCacheSince,
			MaxRetries: DefaultMaxRetries,
		},
		Tasks: Tasks{
			MaxTasks:         DefaultMaxTasks,
			SendObservations: &sendObservations,
		},
	}
}

// GetStructuredConfig loads and merges the configuration from all available
// sources. fs is the already parsed flag set of the running command; only
// flags explicitly set on the command line take part in the merge.
func GetStructuredConfig(fs *pflag.FlagSet) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(fs).
		withJSON().
		build()
}
