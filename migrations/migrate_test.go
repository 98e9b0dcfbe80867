// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"database/sql"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_ = mock // goose talks to the db on its own; no expectations means every call fails

	err = Migrate(db, "sqlite3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration error")
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	err := Migrate(db, "sqlite3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db is nil")
}

func TestMigrate_UnsupportedDriver(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = Migrate(db, "mysql")
	assert.True(t, errors.Is(err, ErrUnsupportedDriver))
}

// TestEmbeddedMigrations_SameVersions verifies that every dialect ships the
// same migration files with goose annotations.
func TestEmbeddedMigrations_SameVersions(t *testing.T) {
	sqliteFiles, err := fs.Glob(embedMigrations, "sqlite/*.sql")
	require.NoError(t, err)
	postgresFiles, err := fs.Glob(embedMigrations, "postgres/*.sql")
	require.NoError(t, err)

	require.NotEmpty(t, sqliteFiles)
	require.Len(t, postgresFiles, len(sqliteFiles))

	for i := range sqliteFiles {
		assert.Equal(t,
			strings.TrimPrefix(sqliteFiles[i], "sqlite/"),
			strings.TrimPrefix(postgresFiles[i], "postgres/"))

		body, err := fs.ReadFile(embedMigrations, sqliteFiles[i])
		require.NoError(t, err)
		assert.Contains(t, string(body), "-- +goose Up")
		assert.Contains(t, string(body), "-- +goose Down")
	}
}
