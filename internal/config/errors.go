// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by the command views. Their messages are shown
// to the operator as is.
var (
	// ErrMissingHost indicates the Tamanu host is not set.
	ErrMissingHost = errors.New("Remote URL is missing")
	// ErrInvalidCredentials indicates Tamanu credentials missing or not in
	// the <username>:<password> form.
	ErrInvalidCredentials = errors.New("Credentials are missing or not valid format")
	// ErrInvalidResource indicates an unsupported resource type.
	ErrInvalidResource = errors.New("Resource type is missing or not valid")
	// ErrMissingUser indicates the acting LIMS user is not set.
	ErrMissingUser = errors.New("SENAITE user is missing")
	// ErrInvalidSince indicates a since or cache_since value that is not a
	// dhm shorthand.
	ErrInvalidSince = errors.New("Since is not a valid dhm")
	// ErrInvalidStorageConfigs indicates invalid local store settings
	// (for example, empty DSN or unsupported driver).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidTasksConfigs indicates invalid tasks settings
	// (for example, non-positive max tasks).
	ErrInvalidTasksConfigs = errors.New("invalid tasks configuration")
)
