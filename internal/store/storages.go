// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/lims-tamanu-bridge/internal/logger"
)

// Storages is the [Transactor] over the SQL database.
type Storages struct {
	db  *DB
	dry bool
}

// StoragesOption configures [Storages].
type StoragesOption func(*Storages)

// WithDryRun makes every unit of work roll back instead of committing.
func WithDryRun(dry bool) StoragesOption {
	return func(s *Storages) {
		s.dry = dry
	}
}

// NewStorages constructs the transactor over db.
func NewStorages(db *DB, opts ...StoragesOption) *Storages {
	s := &Storages{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Repositories returns repositories running outside of any transaction.
func (s *Storages) Repositories() *Repositories {
	return newRepositories(s.db, s.db)
}

// InTx implements [Transactor]. Driver errors signalling a concurrent
// writer, on commit included, are returned wrapped with [ErrConflict].
func (s *Storages) InTx(ctx context.Context, fn TxFunc) error {
	log := logger.FromContext(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "Storages.InTx").Msg("error during opening transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, s.db.classify(err))
	}
	defer tx.Rollback()

	if err = fn(ctx, newRepositories(tx, s.db)); err != nil {
		return err
	}

	if s.dry {
		log.Debug().Str("func", "Storages.InTx").Msg("dry mode: rolling back unit of work")
		return nil
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "Storages.InTx").Msg("error committing transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, s.db.classify(err))
	}

	return nil
}
