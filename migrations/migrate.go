// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migrations holds the embedded schema of the local store, one
// directory per SQL dialect, applied with goose.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed sqlite/*.sql postgres/*.sql
var embedMigrations embed.FS

// ErrUnsupportedDriver is returned for drivers without a migration set.
var ErrUnsupportedDriver = errors.New("unsupported driver")

// dialects maps a database/sql driver name to its goose dialect and
// migrations directory.
var dialects = map[string]struct {
	dialect string
	dir     string
}{
	"sqlite3": {dialect: "sqlite3", dir: "sqlite"},
	"pgx":     {dialect: "postgres", dir: "postgres"},
}

// Migrate applies every pending migration for driver to db.
func Migrate(db *sql.DB, driver string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	d, ok := dialects[driver]
	if !ok {
		return fmt.Errorf("migration error: %w: %q", ErrUnsupportedDriver, driver)
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(d.dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, d.dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
