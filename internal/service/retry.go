// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/lims-tamanu-bridge/internal/logger"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/store"
)

// DefaultRetryBackoff is the wait between two attempts of a conflicting
// unit of work.
const DefaultRetryBackoff = 200 * time.Millisecond

// RetryConflicts runs fn again, up to maxRetries more times, while it fails
// with a concurrent modification. It returns the number of attempts made.
// Exhaustion is reported as [ErrConflictExhausted].
func RetryConflicts(ctx context.Context, maxRetries int, backoff time.Duration, fn func(ctx context.Context) error) (int, error) {
	log := logger.FromContext(ctx)

	if maxRetries < 0 {
		maxRetries = 0
	}
	if backoff <= 0 {
		backoff = DefaultRetryBackoff
	}

	attempts := 0
	b := retry.WithMaxRetries(uint64(maxRetries), retry.NewConstant(backoff))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempts++
		err := fn(ctx)
		if store.IsConflict(err) {
			log.Warn().
				Err(err).
				Str("func", "RetryConflicts").
				Int("attempt", attempts).
				Msg("concurrent modification, retrying")
			return retry.RetryableError(err)
		}
		return err
	})
	if store.IsConflict(err) {
		return attempts, fmt.Errorf("%w: %w", ErrConflictExhausted, err)
	}
	return attempts, err
}
