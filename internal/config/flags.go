// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/spf13/pflag"
)

// Flag names shared by the commands.
const (
	FlagTamanuHost      = "tamanu_host"
	FlagTamanuUser      = "tamanu_user"
	FlagSenaiteUser     = "senaite_user"
	FlagServiceUser     = "service_user"
	FlagResource        = "resource"
	FlagSince           = "since"
	FlagCache           = "cache"
	FlagCacheSince      = "cache_since"
	FlagDry             = "dry"
	FlagMaxRetries      = "max_retries"
	FlagMaxTasks        = "max_tasks"
	FlagNoObservations  = "no_observations"
	FlagRequestTimeout  = "request_timeout"
	FlagPageSize        = "page_size"
	FlagDBDriver        = "db_driver"
	FlagDBDSN           = "db_dsn"
	FlagConfig          = "config"
	FlagMetricsTextfile = "metrics_textfile"
	FlagVerbose         = "verbose"
)

// RegisterCommonFlags registers the flags every command accepts.
//
// Flags:
//
//	--db_driver local store driver (sqlite3 or pgx)
//	--db_dsn local store DSN
//	--config json file path with configs
//	--metrics_textfile node-exporter textfile to write run metrics to
//	--senaite_user LIMS user performing the edits
//	-v/--verbose verbose logging
func RegisterCommonFlags(fs *pflag.FlagSet) {
	fs.String(FlagDBDriver, DefaultDriver, "Local store driver: sqlite3 or pgx")
	fs.String(FlagDBDSN, DefaultDSN, "Local store DSN")
	fs.String(FlagConfig, "", "JSON config file path")
	fs.String(FlagMetricsTextfile, "", "Node exporter textfile to write run metrics to")
	fs.String(FlagSenaiteUser, DefaultUser, "SENAITE user")
	fs.BoolP(FlagVerbose, "v", false, "Verbose logging")
}

// RegisterTamanuFlags registers the remote endpoint flags.
//
// Flags:
//
//	--tamanu_host URL of the Tamanu instance
//	--tamanu_user credentials in the <username>:<password> form
//	--request_timeout timeout of every request (e.g., "30s", "1m")
//	--page_size resources requested per page
func RegisterTamanuFlags(fs *pflag.FlagSet) {
	fs.String(FlagTamanuHost, "", "URL from the Tamanu instance to extract the data from")
	fs.String(FlagTamanuUser, "", "User and password in the <username>:<password> form")
	fs.Duration(FlagRequestTimeout, DefaultRequestTimeout, "Timeout of every request to Tamanu")
	fs.Int(FlagPageSize, DefaultPageSize, "Resources requested per page")
}

// RegisterSyncFlags registers the flags of the sync command.
//
// Flags:
//
//	-r/--resource resource type to sync (Patient, ServiceRequest)
//	-s/--since last updated since, dhm shorthand
//	-c/--cache local filesystem path for cached content
//	--cache_since retention of cached entries, dhm shorthand
//	-d/--dry run in dry mode
//	--max_retries retries of a conflicting resource
//	--service_user LIMS user patients are locked down to
func RegisterSyncFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagResource, "r", "", "Resource type to sync. Supported: Patient, ServiceRequest")
	fs.StringP(FlagSince, "s", DefaultSince, "Last updated since. Supports d (days), h (hours), m (minutes)")
	fs.StringP(FlagCache, "c", "", "The local filesystem path for cached content")
	fs.String(FlagCacheSince, DefaultCacheSince, "Time to keep cached content since their last update date")
	fs.BoolP(FlagDry, "d", false, "Run in dry mode")
	fs.Int(FlagMaxRetries, DefaultMaxRetries, "Retries of a resource on concurrent modification")
	fs.String(FlagServiceUser, DefaultUser, "SENAITE user patients are locked down to")
}

// RegisterTasksFlags registers the flags of the tasks command.
//
// Flags:
//
//	-m/--max_tasks maximum tasks to be processed
//	--no_observations do not send observations with diagnostic reports
func RegisterTasksFlags(fs *pflag.FlagSet) {
	fs.IntP(FlagMaxTasks, "m", DefaultMaxTasks, "Maximum tasks to be processed")
	fs.Bool(FlagNoObservations, false, "Do not send observations with diagnostic reports")
}

// parseFlags collects the flags explicitly set on the command line. Flags
// left at their default do not take part in the merge, so env and JSON
// values are not masked by flag defaults.
func parseFlags(fs *pflag.FlagSet) (*StructuredConfig, error) {
	cfg := &StructuredConfig{}
	r := flagReader{fs: fs}

	r.str(FlagTamanuHost, &cfg.Tamanu.Host)
	r.str(FlagTamanuUser, &cfg.Tamanu.User)
	r.duration(FlagRequestTimeout, &cfg.Tamanu.RequestTimeout)
	r.integer(FlagPageSize, &cfg.Tamanu.PageSize)

	r.str(FlagSenaiteUser, &cfg.LIMS.User)
	r.str(FlagServiceUser, &cfg.LIMS.ServiceUser)

	r.str(FlagDBDriver, &cfg.Storage.DB.Driver)
	r.str(FlagDBDSN, &cfg.Storage.DB.DSN)

	r.str(FlagResource, &cfg.Sync.Resource)
	r.str(FlagSince, &cfg.Sync.Since)
	r.str(FlagCache, &cfg.Sync.Cache)
	r.str(FlagCacheSince, &cfg.Sync.CacheSince)
	r.boolean(FlagDry, &cfg.Sync.Dry)
	r.integer(FlagMaxRetries, &cfg.Sync.MaxRetries)

	r.integer(FlagMaxTasks, &cfg.Tasks.MaxTasks)
	var noObservations bool
	if r.boolean(FlagNoObservations, &noObservations) {
		send := !noObservations
		cfg.Tasks.SendObservations = &send
	}

	r.str(FlagMetricsTextfile, &cfg.Metrics.Textfile)
	r.boolean(FlagVerbose, &cfg.Verbose)
	r.str(FlagConfig, &cfg.JSONFilePath)

	return cfg, r.err
}

// flagReader copies changed flags into config fields, remembering the
// first lookup error.
type flagReader struct {
	fs  *pflag.FlagSet
	err error
}

func (r *flagReader) changed(name string) bool {
	f := r.fs.Lookup(name)
	return f != nil && f.Changed
}

func (r *flagReader) str(name string, dst *string) bool {
	if !r.changed(name) {
		return false
	}
	v, err := r.fs.GetString(name)
	r.keep(err)
	*dst = v
	return err == nil
}

func (r *flagReader) integer(name string, dst *int) bool {
	if !r.changed(name) {
		return false
	}
	v, err := r.fs.GetInt(name)
	r.keep(err)
	*dst = v
	return err == nil
}

func (r *flagReader) boolean(name string, dst *bool) bool {
	if !r.changed(name) {
		return false
	}
	v, err := r.fs.GetBool(name)
	r.keep(err)
	*dst = v
	return err == nil
}

func (r *flagReader) duration(name string, dst *time.Duration) bool {
	if !r.changed(name) {
		return false
	}
	v, err := r.fs.GetDuration(name)
	r.keep(err)
	*dst = v
	return err == nil
}

func (r *flagReader) keep(err error) {
	if err != nil && r.err == nil {
		r.err = err
	}
}
