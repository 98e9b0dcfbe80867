// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/lims-tamanu-bridge/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ObjectRepository stores local LIMS objects.
type ObjectRepository interface {
	// Get returns the object with uid, or [ErrNotFound].
	Get(ctx context.Context, uid string) (*models.Object, error)
	// Search returns the objects matching query, newest first.
	Search(ctx context.Context, query models.ObjectQuery) ([]*models.Object, error)
	// FindByTamanuUID returns the object linked to the remote uid, or nil
	// when none is. More than one linked object is [ErrIntegrity].
	FindByTamanuUID(ctx context.Context, tamanuUID string) (*models.Object, error)
	// Create inserts obj, filling CreatedAt, ModifiedAt and Version.
	Create(ctx context.Context, obj *models.Object) error
	// Update writes obj if its Version is still current, then bumps
	// Version and ModifiedAt. A stale Version is [ErrVersionConflict].
	Update(ctx context.Context, obj *models.Object) error
}

// TaskQueueStore persists the outbound task tokens in insertion order.
type TaskQueueStore interface {
	// Push appends token unless it is already queued. It reports whether
	// the token was added.
	Push(ctx context.Context, token string) (bool, error)
	// Pop removes and returns the oldest token. ok is false when the queue
	// is empty.
	Pop(ctx context.Context) (token string, ok bool, err error)
	// List returns the queued tokens, oldest first.
	List(ctx context.Context) ([]string, error)
}

// UserRepository looks up LIMS accounts.
type UserRepository interface {
	FindUserByName(ctx context.Context, name string) (models.User, error)
}

// CounterRepository hands out monotonically increasing numbers per key.
type CounterRepository interface {
	Next(ctx context.Context, key string) (int64, error)
}

// TxFunc is a unit of work run against repositories bound to one
// transaction.
type TxFunc func(ctx context.Context, repos *Repositories) error

// Transactor runs units of work.
type Transactor interface {
	// InTx runs fn in a transaction, committing when fn returns nil.
	InTx(ctx context.Context, fn TxFunc) error
}

// ModificationCache remembers the remote modification time of every
// resource synced, so unchanged resources are skipped on the next run.
type ModificationCache interface {
	// IsUpToDate reports whether the cached time for uid is at or after
	// modified.
	IsUpToDate(uid string, modified time.Time) bool
	// Get returns the cached timestamp of uid.
	Get(uid string) (string, bool)
	// Set records modified for uid and writes the cache back.
	Set(ctx context.Context, uid string, modified time.Time) error
}
