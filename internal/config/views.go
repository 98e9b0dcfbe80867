// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// Credentials is a Tamanu username/password pair.
type Credentials struct {
	Username string
	Password string
}

// Remote holds the validated Tamanu endpoint settings.
type Remote struct {
	// Host is the base URL without a trailing slash.
	Host string
	Credentials
	RequestTimeout time.Duration
	PageSize       int
}

// CommonConfig holds the settings every command needs.
type CommonConfig struct {
	// DB holds the local store driver and DSN.
	DB DB
	// User is the acting LIMS user.
	User string
	// MetricsTextfile is the node-exporter textfile path, empty disables it.
	MetricsTextfile string
	// Verbose switches logging to Debug.
	Verbose bool
}

// SyncConfig is the validated view used by the sync command.
type SyncConfig struct {
	CommonConfig
	Remote Remote
	// Resource is the remote resource type to synchronize.
	Resource string
	// Since is the _lastUpdated window.
	Since time.Duration
	// CachePath is the directory of the modification cache file.
	CachePath string
	// CacheSince is the cache retention window.
	CacheSince time.Duration
	// Dry rolls back every unit of work and leaves the cache untouched.
	Dry bool
	// MaxRetries bounds the retries of a conflicting resource.
	MaxRetries int
	// ServiceUser owns patients after lock-down.
	ServiceUser string
}

// TasksConfig is the validated view used by the tasks command.
type TasksConfig struct {
	CommonConfig
	// Remote is nil when no Tamanu host is configured.
	Remote *Remote
	// MaxTasks bounds the tasks processed in one run.
	MaxTasks int
	// SendObservations adds observations to the posted reports.
	SendObservations bool
}

// GetCommonConfig builds and validates the settings shared by all commands.
func GetCommonConfig(fs *pflag.FlagSet) (*CommonConfig, error) {
	cfg, err := GetStructuredConfig(fs)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	common, err := cfg.commonView()
	if err != nil {
		return nil, err
	}
	return &common, nil
}

// GetSyncConfig builds and validates the sync command configuration.
func GetSyncConfig(fs *pflag.FlagSet) (*SyncConfig, error) {
	cfg, err := GetStructuredConfig(fs)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}
	return cfg.syncView()
}

// GetTasksConfig builds and validates the tasks command configuration.
func GetTasksConfig(fs *pflag.FlagSet) (*TasksConfig, error) {
	cfg, err := GetStructuredConfig(fs)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}
	return cfg.tasksView()
}
