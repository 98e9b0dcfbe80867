// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

// Sentinel errors returned by the Tamanu session. HTTP statuses are mapped
// by mapHTTPError; transport failures are wrapped with [ErrConnection].
var (
	// ErrConnection is returned when the remote host cannot be reached or
	// the request times out.
	ErrConnection = errors.New("connection error")

	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrServerError  = errors.New("remote server error")

	// ErrInvalidResponse is returned when a response body is not the JSON
	// document expected.
	ErrInvalidResponse = errors.New("invalid response")

	// ErrMissingCredentials is returned by Login when no username is
	// configured.
	ErrMissingCredentials = errors.New("missing credentials")
)
