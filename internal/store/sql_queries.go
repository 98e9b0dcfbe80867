// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"slices"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/lims-tamanu-bridge/models"
)

var objectColumns = []string{
	"uid",
	"id",
	"portal_type",
	"parent_uid",
	"title",
	"tamanu_uid",
	"tamanu",
	"review_status",
	"creator",
	"fields",
	"security",
	"created_at",
	"modified_at",
	"version",
}

const (
	findObjectVersion = `SELECT version FROM objects WHERE uid = ?`

	pushTask = `INSERT INTO task_queue (token, created_at) VALUES (?, ?)
		ON CONFLICT (token) DO NOTHING`

	listTasks = `SELECT token FROM task_queue ORDER BY seq`

	findUserByName = `SELECT user_id, name, fullname, roles FROM users WHERE name = ?`

	nextCounter = `INSERT INTO id_counters (name, value) VALUES (?, 1)
		ON CONFLICT (name) DO UPDATE SET value = id_counters.value + 1
		RETURNING value`
)

// rebind rewrites the ? placeholders of a static query for the dialect.
func (db *DB) rebind(query string) string {
	out, err := db.dialect.placeholder.ReplacePlaceholders(query)
	if err != nil {
		return query
	}
	return out
}

// buildSearchObjectsQuery builds the catalog search for query, sorted by
// creation date with the insertion order as tie-break, newest first.
func buildSearchObjectsQuery(db *DB, query models.ObjectQuery) (string, []any, error) {
	sb := db.builder().
		Select(objectColumns...).
		From("objects")

	if query.PortalType != "" {
		sb = sb.Where(sq.Eq{"portal_type": string(query.PortalType)})
	}
	if query.Title != "" {
		if query.TitleInsensitive {
			sb = sb.Where("LOWER(TRIM(title)) = ?", strings.ToLower(strings.TrimSpace(query.Title)))
		} else {
			sb = sb.Where(sq.Eq{"title": query.Title})
		}
	}
	if query.ParentUID != "" {
		sb = sb.Where(sq.Eq{"parent_uid": query.ParentUID})
	}
	if query.TamanuUID != "" {
		sb = sb.Where(sq.Eq{"tamanu_uid": query.TamanuUID})
	}
	if query.ReviewStatus != "" {
		sb = sb.Where(sq.Eq{"review_status": query.ReviewStatus})
	}

	keys := make([]string, 0, len(query.Fields))
	for key := range query.Fields {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		expr, err := db.dialect.jsonField("fields", key)
		if err != nil {
			return "", nil, err
		}
		sb = sb.Where(expr+" = ?", query.Fields[key])
	}

	sb = sb.OrderBy("created_at DESC", "seq DESC")
	if query.Limit > 0 {
		sb = sb.Limit(query.Limit)
	}

	q, args, err := sb.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return q, args, nil
}

// buildGetObjectQuery selects a single object by uid.
func buildGetObjectQuery(db *DB, uid string) (string, []any, error) {
	q, args, err := db.builder().
		Select(objectColumns...).
		From("objects").
		Where(sq.Eq{"uid": uid}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return q, args, nil
}

// buildInsertObjectQuery inserts a row encoded by encodeObject.
func buildInsertObjectQuery(db *DB, row objectRow) (string, []any, error) {
	q, args, err := db.builder().
		Insert("objects").
		Columns(objectColumns...).
		Values(
			row.UID,
			row.ID,
			row.PortalType,
			row.ParentUID,
			row.Title,
			row.TamanuUID,
			row.Tamanu,
			row.ReviewStatus,
			row.Creator,
			row.Fields,
			row.Security,
			row.CreatedAt,
			row.ModifiedAt,
			row.Version,
		).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return q, args, nil
}

// buildUpdateObjectQuery rewrites every mutable column of the row and bumps
// the version, guarded by the version the caller read.
func buildUpdateObjectQuery(db *DB, row objectRow, readVersion int64, modified time.Time) (string, []any, error) {
	q, args, err := db.builder().
		Update("objects").
		Set("id", row.ID).
		Set("parent_uid", row.ParentUID).
		Set("title", row.Title).
		Set("tamanu_uid", row.TamanuUID).
		Set("tamanu", row.Tamanu).
		Set("review_status", row.ReviewStatus).
		Set("fields", row.Fields).
		Set("security", row.Security).
		Set("modified_at", modified).
		Set("version", sq.Expr("version + 1")).
		Where(sq.Eq{"uid": row.UID, "version": readVersion}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return q, args, nil
}
