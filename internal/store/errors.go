// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNotFound is returned when the object addressed by uid does not
	// exist.
	ErrNotFound = errors.New("object not found")

	// ErrUserNotFound is returned when no user has the requested name.
	ErrUserNotFound = errors.New("no user was found")

	// ErrVersionConflict is returned when an optimistic-locking check fails:
	// the object was modified by someone else since it was read.
	ErrVersionConflict = errors.New("object version conflict occurred")

	// ErrConflict is returned when the database rejects a statement because
	// of a concurrent writer: a unique violation on insert, a serialization
	// failure, a deadlock or a busy database. The unit of work may succeed
	// when retried.
	ErrConflict = errors.New("concurrent modification")

	// ErrIntegrity is returned when more than one object is linked to the
	// same remote uid. It is never retried.
	ErrIntegrity = errors.New("data integrity error")

	// ErrUnsupportedDriver is returned for database drivers the store does
	// not know.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrEncodingColumn is returned when a JSON column cannot be encoded or
	// decoded.
	ErrEncodingColumn = errors.New("failed to encode json column")
)

// IsConflict reports whether err is a concurrent-modification failure the
// caller may retry.
func IsConflict(err error) bool {
	return errors.Is(err, ErrVersionConflict) || errors.Is(err, ErrConflict)
}
