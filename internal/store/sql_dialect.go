// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"regexp"

	sq "github.com/Masterminds/squirrel"
)

const (
	driverSQLite   = "sqlite3"
	driverPostgres = "pgx"
)

var jsonKeyRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// dialect holds the SQL differences between the supported drivers.
type dialect struct {
	placeholder sq.PlaceholderFormat
	// jsonText renders the expression extracting a top-level text value
	// of a JSON column.
	jsonText func(column, key string) string
	// popTask is the statement removing the oldest queued token.
	popTask string
}

var sqliteDialect = dialect{
	placeholder: sq.Question,
	jsonText: func(column, key string) string {
		return fmt.Sprintf("json_extract(%s, '$.%s')", column, key)
	},
	popTask: `DELETE FROM task_queue
		WHERE seq = (SELECT MIN(seq) FROM task_queue)
		RETURNING token`,
}

var postgresDialect = dialect{
	placeholder: sq.Dollar,
	jsonText: func(column, key string) string {
		return fmt.Sprintf("%s->>'%s'", column, key)
	},
	popTask: `DELETE FROM task_queue
		WHERE seq = (SELECT seq FROM task_queue ORDER BY seq LIMIT 1 FOR UPDATE SKIP LOCKED)
		RETURNING token`,
}

// jsonField validates key and renders the dialect specific extraction.
func (d dialect) jsonField(column, key string) (string, error) {
	if !jsonKeyRegex.MatchString(key) {
		return "", fmt.Errorf("%w: invalid field name %q", ErrBuildingSQLQuery, key)
	}
	return d.jsonText(column, key), nil
}
