// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{dsn: "lims.db", want: "lims.db?_busy_timeout=5000&_foreign_keys=on"},
		{dsn: "file:lims.db?cache=shared", want: "file:lims.db?cache=shared&_busy_timeout=5000&_foreign_keys=on"},
		{dsn: "lims.db?_busy_timeout=100", want: "lims.db?_busy_timeout=100&_foreign_keys=on"},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			assert.Equal(t, tt.want, sqliteDSN(tt.dsn))
		})
	}
}

func TestSQLiteFilePath(t *testing.T) {
	assert.Equal(t, "data/lims.db", sqliteFilePath("file:data/lims.db?cache=shared"))
	assert.Equal(t, "lims.db", sqliteFilePath("lims.db"))
	assert.Empty(t, sqliteFilePath(":memory:"))
	assert.Empty(t, sqliteFilePath("file:test?mode=memory&cache=shared"))
}

func TestCreateLocalDBDirIfNotExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "dir")

	require.NoError(t, createLocalDBDirIfNotExists(filepath.Join(dir, "lims.db")))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
