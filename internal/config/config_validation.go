// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/MKhiriev/lims-tamanu-bridge/internal/utils"
	"github.com/MKhiriev/lims-tamanu-bridge/models"
)

// SupportedDrivers lists the database/sql drivers the local store runs on.
var SupportedDrivers = []string{"sqlite3", "pgx"}

// SupportedResources lists the remote resource types the sync command
// accepts.
var SupportedResources = []string{models.ResourceTypePatient, models.ResourceTypeServiceRequest}

// ParseCredentials splits a "<username>:<password>" pair.
func ParseCredentials(raw string) (Credentials, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 2 || parts[0] == "" {
		return Credentials{}, ErrInvalidCredentials
	}
	return Credentials{Username: parts[0], Password: parts[1]}, nil
}

func (cfg *StructuredConfig) commonView() (CommonConfig, error) {
	common := CommonConfig{
		DB:              cfg.Storage.DB,
		User:            cfg.LIMS.User,
		MetricsTextfile: cfg.Metrics.Textfile,
		Verbose:         cfg.Verbose,
	}
	return common, common.validate()
}

func (cfg *StructuredConfig) remoteView() (Remote, error) {
	if strings.TrimSpace(cfg.Tamanu.Host) == "" {
		return Remote{}, ErrMissingHost
	}

	creds, err := ParseCredentials(cfg.Tamanu.User)
	if err != nil {
		return Remote{}, err
	}

	return Remote{
		Host:           strings.TrimRight(strings.TrimSpace(cfg.Tamanu.Host), "/"),
		Credentials:    creds,
		RequestTimeout: cfg.Tamanu.RequestTimeout,
		PageSize:       cfg.Tamanu.PageSize,
	}, nil
}

func (c CommonConfig) validate() error {
	if !slices.Contains(SupportedDrivers, c.DB.Driver) {
		return fmt.Errorf("%w: unsupported driver %q", ErrInvalidStorageConfigs, c.DB.Driver)
	}
	if c.DB.DSN == "" {
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	}
	if c.User == "" {
		return ErrMissingUser
	}
	return nil
}

// syncView validates the sync settings in the order the operator is told
// about them: host, credentials, windows, resource type, storage.
func (cfg *StructuredConfig) syncView() (*SyncConfig, error) {
	remote, err := cfg.remoteView()
	if err != nil {
		return nil, err
	}

	since, err := utils.ParseDHM(cfg.Sync.Since)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSince, cfg.Sync.Since)
	}
	cacheSince, err := utils.ParseDHM(cfg.Sync.CacheSince)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSince, cfg.Sync.CacheSince)
	}

	if !slices.Contains(SupportedResources, cfg.Sync.Resource) {
		return nil, ErrInvalidResource
	}

	common, err := cfg.commonView()
	if err != nil {
		return nil, err
	}

	serviceUser := cfg.LIMS.ServiceUser
	if serviceUser == "" {
		serviceUser = DefaultUser
	}
	maxRetries := cfg.Sync.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &SyncConfig{
		CommonConfig: common,
		Remote:       remote,
		Resource:     cfg.Sync.Resource,
		Since:        since,
		CachePath:    cfg.Sync.Cache,
		CacheSince:   cacheSince,
		Dry:          cfg.Sync.Dry,
		MaxRetries:   maxRetries,
		ServiceUser:  serviceUser,
	}, nil
}

// tasksView validates the tasks settings. The remote endpoint is optional:
// without it no session is available and notifications are skipped.
func (cfg *StructuredConfig) tasksView() (*TasksConfig, error) {
	common, err := cfg.commonView()
	if err != nil {
		return nil, err
	}

	if cfg.Tasks.MaxTasks < 1 {
		return nil, fmt.Errorf("%w: max tasks must be positive", ErrInvalidTasksConfigs)
	}

	tasksCfg := &TasksConfig{
		CommonConfig:     common,
		MaxTasks:         cfg.Tasks.MaxTasks,
		SendObservations: cfg.Tasks.SendObservations == nil || *cfg.Tasks.SendObservations,
	}

	if cfg.Tamanu.Host != "" {
		remote, err := cfg.remoteView()
		if err != nil {
			return nil, err
		}
		tasksCfg.Remote = &remote
	}

	return tasksCfg, nil
}
