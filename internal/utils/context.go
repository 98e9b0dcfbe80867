// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides small helpers shared across the application:
// context keys for the acting LIMS user, timestamp and duration parsing,
// identifier generation, the HTTP client and bearer token inspection.
package utils

import (
	"context"

	"github.com/MKhiriev/lims-tamanu-bridge/models"
)

// contextKey is a private type for context keys.
type contextKey string

// String implements fmt.Stringer.
func (c contextKey) String() string {
	return string(c)
}

// ActingUserCtxKey is the key the acting LIMS user is stored under.
var ActingUserCtxKey = contextKey("actingUser")

// WithActingUser returns a copy of ctx carrying user as the identity
// performing local edits.
func WithActingUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, ActingUserCtxKey, user)
}

// GetActingUserFromContext returns the acting user stored in ctx.
//
//	user, ok := utils.GetActingUserFromContext(ctx)
//	if !ok {
//	    // no user: edits are not permission checked
//	}
func GetActingUserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(ActingUserCtxKey).(models.User)
	return user, ok
}
