// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/lims-tamanu-bridge/internal/logger"
)

// newSQLiteMockDB returns a DB using the SQLite dialect over sqlmock.
func newSQLiteMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return &DB{
		DB:                 conn,
		driver:             driverSQLite,
		dialect:            sqliteDialect,
		errorClassificator: NewSQLiteErrorClassifier(),
		logger:             logger.Nop(),
	}, mock
}

// newPostgresMockDB returns a DB using the PostgreSQL dialect over sqlmock.
func newPostgresMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return &DB{
		DB:                 conn,
		driver:             driverPostgres,
		dialect:            postgresDialect,
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             logger.Nop(),
	}, mock
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

type objectFixture struct {
	uid          string
	portalType   string
	title        string
	tamanuUID    driver.Value
	tamanu       string
	reviewStatus string
	fields       string
	security     string
	version      int64
}

func (f objectFixture) values(now time.Time) []driver.Value {
	return []driver.Value{
		f.uid, f.uid[:4], f.portalType, "", f.title, f.tamanuUID, f.tamanu,
		f.reviewStatus, "admin", f.fields, f.security, now, now, f.version,
	}
}

func objectRows(now time.Time, fixtures ...objectFixture) *sqlmock.Rows {
	rows := sqlmock.NewRows(objectColumns)
	for _, f := range fixtures {
		rows.AddRow(f.values(now)...)
	}
	return rows
}
