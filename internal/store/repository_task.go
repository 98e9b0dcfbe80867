// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/lims-tamanu-bridge/internal/logger"
)

// taskQueueRepository is the SQL implementation of [TaskQueueStore]. The
// "task_queue" table keeps tokens unique; seq orders them.
type taskQueueRepository struct {
	q  querier
	db *DB
}

func newTaskQueueRepository(q querier, db *DB) TaskQueueStore {
	return &taskQueueRepository{q: q, db: db}
}

// Push implements [TaskQueueStore]. A token already queued is left where it
// is and false is returned.
func (r *taskQueueRepository) Push(ctx context.Context, token string) (bool, error) {
	log := logger.FromContext(ctx)

	result, err := r.q.ExecContext(ctx, r.db.rebind(pushTask), token, time.Now().UTC())
	if err != nil {
		log.Err(err).Str("func", "taskQueueRepository.Push").Str("token", token).Msg("failed to queue task")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected > 0, nil
}

// Pop implements [TaskQueueStore] with a single DELETE ... RETURNING
// statement, so concurrent consumers never receive the same token.
func (r *taskQueueRepository) Pop(ctx context.Context) (string, bool, error) {
	log := logger.FromContext(ctx)

	var token string
	err := r.q.QueryRowContext(ctx, r.db.dialect.popTask).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		log.Err(err).Str("func", "taskQueueRepository.Pop").Msg("failed to pop task")
		return "", false, fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
	}

	return token, true, nil
}

// List implements [TaskQueueStore].
func (r *taskQueueRepository) List(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx)

	rows, err := r.q.QueryContext(ctx, listTasks)
	if err != nil {
		log.Err(err).Str("func", "taskQueueRepository.List").Msg("failed to list tasks")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}
	defer rows.Close()

	tokens := make([]string, 0)
	for rows.Next() {
		var token string
		if err = rows.Scan(&token); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		tokens = append(tokens, token)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "taskQueueRepository.List").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return tokens, nil
}
