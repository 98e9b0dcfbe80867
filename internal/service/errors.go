// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	// ErrConflictExhausted is returned when a resource kept conflicting with
	// concurrent writers after every retry.
	ErrConflictExhausted = errors.New("ConflictError: exhausted retries")

	ErrUnknownResourceKind = errors.New("Resource type is missing or not valid")
	ErrUnknownTaskKind     = errors.New("unknown task")

	ErrObjectNotFound = errors.New("object not found")
	ErrNotASample     = errors.New("object is not a sample")
)

// ErrLineageCycle is returned when following the retests of a sample leads
// back to a sample already visited.
var ErrLineageCycle = errors.New("sample lineage has a cycle")
