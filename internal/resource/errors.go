// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package resource

import "errors"

// ErrMissingRequiredField is returned by readers when a field the resource
// cannot be interpreted without is absent.
var ErrMissingRequiredField = errors.New("resource is missing a required field")
