// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/lims-tamanu-bridge/internal/resource"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/store"
	"github.com/MKhiriev/lims-tamanu-bridge/models"
)

// syncPatient creates or updates the local patient of res and locks it
// down to the service user.
func (s *SyncService) syncPatient(ctx context.Context, repos *store.Repositories, res *resource.Resource) (syncOutcome, error) {
	patient := resource.AsPatient(res)
	writer := newObjectWriter(repos, s.uids, s.session.Host())
	resolver := newResolver(repos, s.session, writer, s.opts.ServiceUser)

	resolution, err := resolver.Patient(ctx, patient)
	if err != nil {
		return syncOutcome{}, err
	}
	if resolution.Skipped() {
		return skipResolution(resolution), nil
	}
	if resolution.Created {
		return syncOutcome{action: actionCreated, cache: true}, nil
	}

	obj := resolution.Object()
	if !resolution.Linked && obj.TamanuUID == res.UID() && !isNewer(obj, res) {
		return skipOutcome(models.SkipUpToDate, true, "patient %s is up to date", obj.UID), nil
	}

	for field, value := range patient.ObjectInfo() {
		obj.Set(field, value)
	}
	if fullname := patient.NameInfo().FullName(); fullname != "" {
		obj.Title = fullname
	}
	lockDown(obj, s.opts.ServiceUser)
	if obj.TamanuUID == res.UID() {
		writer.attach(obj, res)
	}

	if err = writer.save(ctx, obj); err != nil {
		return syncOutcome{}, err
	}
	return syncOutcome{action: actionEdited, cache: true}, nil
}
