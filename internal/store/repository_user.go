// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/lims-tamanu-bridge/internal/logger"
	"github.com/MKhiriev/lims-tamanu-bridge/models"
)

// userRepository is the SQL implementation of [UserRepository] over the
// "users" table.
type userRepository struct {
	q  querier
	db *DB
}

func newUserRepository(q querier, db *DB) UserRepository {
	return &userRepository{q: q, db: db}
}

// FindUserByName returns the account with the login name.
//
// Error handling:
//   - no such user → [ErrUserNotFound].
//   - undecodable roles column → [ErrEncodingColumn].
//   - any other driver-level error → wrapped with [ErrScanningRow].
func (r *userRepository) FindUserByName(ctx context.Context, name string) (models.User, error) {
	log := logger.FromContext(ctx)

	var (
		user  models.User
		roles []byte
	)
	err := r.q.QueryRowContext(ctx, r.db.rebind(findUserByName), name).
		Scan(&user.UserID, &user.Name, &user.Fullname, &roles)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("%w: %s", ErrUserNotFound, name)
	}
	if err != nil {
		log.Err(err).Str("func", "userRepository.FindUserByName").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, r.db.classify(err))
	}

	if err = decodeJSONColumn(roles, &user.Roles); err != nil {
		log.Err(err).Str("func", "userRepository.FindUserByName").Str("name", name).Msg("invalid roles column")
		return models.User{}, err
	}

	return user, nil
}
