// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/lims-tamanu-bridge/models"
)

// Resolution is the outcome of resolving a remote resource to local
// objects: either the objects found or created, or the reason the resource
// cannot be synced. A Resolution with neither is an optional reference that
// was absent.
type Resolution struct {
	Objects []*models.Object
	// Created is set when the object was created by this resolution.
	Created bool
	// Linked is set when an existing object was linked by this resolution.
	Linked bool
	Skip    models.SkipReason
	Detail  string
}

func resolved(obj *models.Object, created bool) Resolution {
	if obj == nil {
		return Resolution{}
	}
	return Resolution{Objects: []*models.Object{obj}, Created: created}
}

func skipped(reason models.SkipReason, format string, args ...any) Resolution {
	return Resolution{Skip: reason, Detail: fmt.Sprintf(format, args...)}
}

// Skipped reports whether the resource must not be synced.
func (r Resolution) Skipped() bool {
	return r.Skip != ""
}

// Object returns the first resolved object, or nil.
func (r Resolution) Object() *models.Object {
	if len(r.Objects) == 0 {
		return nil
	}
	return r.Objects[0]
}

// UID returns the uid of the first resolved object, or "".
func (r Resolution) UID() string {
	if obj := r.Object(); obj != nil {
		return obj.UID
	}
	return ""
}

// UIDs returns the uids of all resolved objects.
func (r Resolution) UIDs() []string {
	uids := make([]string, 0, len(r.Objects))
	for _, obj := range r.Objects {
		uids = append(uids, obj.UID)
	}
	return uids
}

func (r Resolution) String() string {
	if r.Skipped() {
		return fmt.Sprintf("skip(%s): %s", r.Skip, r.Detail)
	}
	return fmt.Sprintf("resolved%v", r.UIDs())
}
