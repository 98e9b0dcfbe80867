// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidResourceType = errors.New("invalid resource type")
	ErrEmptyID             = errors.New("id is required")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrInvalidLastUpdated  = errors.New("meta.lastUpdated is not a valid instant")
	ErrEmptyBasedOn        = errors.New("basedOn is required")
	ErrInvalidReference    = errors.New("invalid reference")
	ErrEmptyCode           = errors.New("code must have at least one coding")
	ErrInvalidCoding       = errors.New("coding requires a system and a code")
	ErrInvalidObservation  = errors.New("invalid observation")
	ErrMultipleValues      = errors.New("observation has more than one value")
	ErrInvalidAttachment   = errors.New("invalid attachment")
)
