// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells [DB.classify] how a failed statement affects
// the unit of work it ran in.
type ErrorClassification int

const (
	// NonRetryable errors abort the unit of work for good.
	NonRetryable ErrorClassification = iota

	// Retryable errors come from a concurrent transaction: a serialization
	// failure, a deadlock or a lock that could not be taken.
	Retryable

	// Conflict means a concurrent writer got there first, such as a second
	// object linked to the same remote uid. The whole unit of work has to
	// be re-read and retried.
	Conflict
)

// PostgresErrorClassifier implements [ErrorClassificator] for the pgx
// driver.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier].
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// pgClassifications lists the SQLSTATE codes that are not [NonRetryable].
// See https://www.postgresql.org/docs/current/errcodes-appendix.html.
var pgClassifications = map[string]ErrorClassification{
	pgerrcode.TransactionRollback:  Retryable, // 40000
	pgerrcode.SerializationFailure: Retryable, // 40001
	pgerrcode.DeadlockDetected:     Retryable, // 40P01
	pgerrcode.LockNotAvailable:     Retryable, // 55P03
	pgerrcode.UniqueViolation:      Conflict,  // 23505
}

// Classify implements [ErrorClassificator]. Errors that are not
// *pgconn.PgError, connection failures included, are [NonRetryable]: a
// lost database is not something a retried unit of work recovers from.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return NonRetryable
	}
	return ClassifyPgError(pgErr)
}

// ClassifyPgError maps the SQLSTATE of pgErr to an [ErrorClassification].
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	if class, ok := pgClassifications[pgErr.Code]; ok {
		return class
	}
	return NonRetryable
}
