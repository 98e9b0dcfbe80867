// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/lims-tamanu-bridge/internal/logger"
)

// counterRepository is the SQL implementation of [CounterRepository] over
// the "id_counters" table.
type counterRepository struct {
	q  querier
	db *DB
}

func newCounterRepository(q querier, db *DB) CounterRepository {
	return &counterRepository{q: q, db: db}
}

// Next increments the counter for key, creating it at 1, and returns the
// new value.
func (r *counterRepository) Next(ctx context.Context, key string) (int64, error) {
	var value int64
	if err := r.q.QueryRowContext(ctx, r.db.rebind(nextCounter), key).Scan(&value); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "counterRepository.Next").
			Str("key", key).
			Msg("failed to increment counter")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
	}
	return value, nil
}
