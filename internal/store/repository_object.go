// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/lims-tamanu-bridge/internal/logger"
	"github.com/MKhiriev/lims-tamanu-bridge/models"
)

// objectRepository is the SQL implementation of [ObjectRepository] over the
// "objects" table. JSON columns hold the remote payload, the type specific
// fields and the object security.
type objectRepository struct {
	q  querier
	db *DB
}

func newObjectRepository(q querier, db *DB) ObjectRepository {
	return &objectRepository{q: q, db: db}
}

// objectRow is the column encoding of a [models.Object].
type objectRow struct {
	UID          string
	ID           string
	PortalType   string
	ParentUID    string
	Title        string
	TamanuUID    sql.NullString
	Tamanu       string
	ReviewStatus string
	Creator      string
	Fields       string
	Security     string
	CreatedAt    time.Time
	ModifiedAt   time.Time
	Version      int64
}

func encodeObject(obj *models.Object) (objectRow, error) {
	tamanu, err := json.Marshal(obj.Tamanu)
	if err != nil {
		return objectRow{}, fmt.Errorf("%w: tamanu: %w", ErrEncodingColumn, err)
	}
	fields := obj.Fields
	if fields == nil {
		fields = map[string]any{}
	}
	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return objectRow{}, fmt.Errorf("%w: fields: %w", ErrEncodingColumn, err)
	}
	security, err := json.Marshal(obj.Security)
	if err != nil {
		return objectRow{}, fmt.Errorf("%w: security: %w", ErrEncodingColumn, err)
	}

	return objectRow{
		UID:          obj.UID,
		ID:           obj.ID,
		PortalType:   string(obj.PortalType),
		ParentUID:    obj.ParentUID,
		Title:        obj.Title,
		TamanuUID:    sql.NullString{String: obj.TamanuUID, Valid: obj.TamanuUID != ""},
		Tamanu:       string(tamanu),
		ReviewStatus: obj.ReviewStatus,
		Creator:      obj.Creator,
		Fields:       string(fieldsJSON),
		Security:     string(security),
		CreatedAt:    obj.CreatedAt,
		ModifiedAt:   obj.ModifiedAt,
		Version:      obj.Version,
	}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanObject(s rowScanner) (*models.Object, error) {
	var (
		obj                      models.Object
		portalType               string
		tamanuUID                sql.NullString
		tamanu, fields, security []byte
	)
	if err := s.Scan(
		&obj.UID,
		&obj.ID,
		&portalType,
		&obj.ParentUID,
		&obj.Title,
		&tamanuUID,
		&tamanu,
		&obj.ReviewStatus,
		&obj.Creator,
		&fields,
		&security,
		&obj.CreatedAt,
		&obj.ModifiedAt,
		&obj.Version,
	); err != nil {
		return nil, err
	}

	obj.PortalType = models.PortalType(portalType)
	obj.TamanuUID = tamanuUID.String
	if err := decodeJSONColumn(tamanu, &obj.Tamanu); err != nil {
		return nil, fmt.Errorf("tamanu: %w", err)
	}
	if err := decodeJSONColumn(fields, &obj.Fields); err != nil {
		return nil, fmt.Errorf("fields: %w", err)
	}
	if err := decodeJSONColumn(security, &obj.Security); err != nil {
		return nil, fmt.Errorf("security: %w", err)
	}
	if obj.Fields == nil {
		obj.Fields = map[string]any{}
	}
	obj.CreatedAt = obj.CreatedAt.UTC()
	obj.ModifiedAt = obj.ModifiedAt.UTC()

	return &obj, nil
}

func decodeJSONColumn(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingColumn, err)
	}
	return nil
}

// Get returns the object with uid.
func (r *objectRepository) Get(ctx context.Context, uid string) (*models.Object, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetObjectQuery(r.db, uid)
	if err != nil {
		log.Err(err).Str("func", "objectRepository.Get").Msg("failed to create query")
		return nil, err
	}

	obj, err := scanObject(r.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, uid)
	}
	if err != nil {
		log.Err(err).Str("func", "objectRepository.Get").Str("uid", uid).Msg("failed to scan object row")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, r.db.classify(err))
	}

	return obj, nil
}

// Search returns the objects matching query, newest first.
func (r *objectRepository) Search(ctx context.Context, query models.ObjectQuery) ([]*models.Object, error) {
	log := logger.FromContext(ctx)

	q, args, err := buildSearchObjectsQuery(r.db, query)
	if err != nil {
		log.Err(err).Str("func", "objectRepository.Search").Msg("failed to create query")
		return nil, err
	}

	rows, err := r.q.QueryContext(ctx, q, args...)
	if err != nil {
		log.Err(err).
			Str("func", "objectRepository.Search").
			Str("portal_type", string(query.PortalType)).
			Msg("failed to execute search query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}
	defer rows.Close()

	results := make([]*models.Object, 0, 8)
	for rows.Next() {
		obj, scanErr := scanObject(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "objectRepository.Search").Msg("failed to scan object row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		results = append(results, obj)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "objectRepository.Search").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, r.db.classify(rowsErr))
	}

	return results, nil
}

// FindByTamanuUID returns the object linked to tamanuUID, or nil.
func (r *objectRepository) FindByTamanuUID(ctx context.Context, tamanuUID string) (*models.Object, error) {
	if tamanuUID == "" {
		return nil, nil
	}

	found, err := r.Search(ctx, models.ObjectQuery{TamanuUID: tamanuUID, Limit: 2})
	if err != nil {
		return nil, err
	}

	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		return found[0], nil
	default:
		logger.FromContext(ctx).Error().
			Str("func", "objectRepository.FindByTamanuUID").
			Str("tamanu_uid", tamanuUID).
			Msg("more than one object linked to the same remote resource")
		return nil, fmt.Errorf("%w: %d objects linked to %s", ErrIntegrity, len(found), tamanuUID)
	}
}

// Create inserts obj. A unique violation on uid or tamanu_uid is returned
// wrapped with [ErrConflict].
func (r *objectRepository) Create(ctx context.Context, obj *models.Object) error {
	log := logger.FromContext(ctx)

	now := time.Now().UTC()
	if obj.CreatedAt.IsZero() {
		obj.CreatedAt = now
	}
	obj.ModifiedAt = now
	obj.Version = 1

	row, err := encodeObject(obj)
	if err != nil {
		log.Err(err).Str("func", "objectRepository.Create").Str("uid", obj.UID).Msg("failed to encode object")
		return err
	}

	query, args, err := buildInsertObjectQuery(r.db, row)
	if err != nil {
		log.Err(err).Str("func", "objectRepository.Create").Msg("failed to create query")
		return err
	}

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "objectRepository.Create").
			Str("uid", obj.UID).
			Str("portal_type", string(obj.PortalType)).
			Msg("failed to insert object")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
	}

	return nil
}

// Update writes obj guarded by its Version.
func (r *objectRepository) Update(ctx context.Context, obj *models.Object) error {
	log := logger.FromContext(ctx)

	row, err := encodeObject(obj)
	if err != nil {
		log.Err(err).Str("func", "objectRepository.Update").Str("uid", obj.UID).Msg("failed to encode object")
		return err
	}

	modified := time.Now().UTC()
	query, args, err := buildUpdateObjectQuery(r.db, row, obj.Version, modified)
	if err != nil {
		log.Err(err).Str("func", "objectRepository.Update").Msg("failed to create query")
		return err
	}

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "objectRepository.Update").Str("uid", obj.UID).Msg("failed to update object")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return r.updateMissed(ctx, obj)
	}

	obj.Version++
	obj.ModifiedAt = modified
	return nil
}

// updateMissed tells a missing object apart from a stale version.
func (r *objectRepository) updateMissed(ctx context.Context, obj *models.Object) error {
	log := logger.FromContext(ctx)

	var current int64
	err := r.q.QueryRowContext(ctx, r.db.rebind(findObjectVersion), obj.UID).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrNotFound, obj.UID)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrScanningRow, r.db.classify(err))
	}

	log.Warn().
		Str("func", "objectRepository.Update").
		Str("uid", obj.UID).
		Int64("db_version", current).
		Int64("provided_version", obj.Version).
		Msg("optimistic lock failed: version mismatch")
	return fmt.Errorf("%w: %s", ErrVersionConflict, obj.UID)
}
