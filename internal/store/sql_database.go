// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/lims-tamanu-bridge/internal/config"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/logger"
	"github.com/MKhiriev/lims-tamanu-bridge/migrations"
)

// querier is implemented by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ErrorClassificator decides how a driver error affects the unit of work.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// DB wraps the connection pool together with the SQL dialect and error
// classifier of its driver.
type DB struct {
	*sql.DB
	driver             string
	dialect            dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnect opens the database named by cfg.Driver.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case driverSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	case driverPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

// Migrate applies the embedded schema migrations of the driver.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}

// Driver returns the database/sql driver name.
func (db *DB) Driver() string {
	return db.driver
}

// builder returns a squirrel statement builder using the placeholder format
// of the dialect.
func (db *DB) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(db.dialect.placeholder)
}

// classify wraps driver errors that signal a concurrent writer with
// [ErrConflict]. Other errors are returned unchanged.
func (db *DB) classify(err error) error {
	if err == nil || db.errorClassificator == nil {
		return err
	}
	switch db.errorClassificator.Classify(err) {
	case Conflict, Retryable:
		return fmt.Errorf("%w: %w", ErrConflict, err)
	default:
		return err
	}
}
