// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks payloads before they leave the bridge.
//
// A Validator accepts the value to check and, optionally, the names of the
// fields to restrict the check to. Without field names every rule of the
// value's type is applied.
package validators

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/validator_mock.go -package=mock

// Validator validates a value, optionally restricted to the named fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
