// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the synchronization logic of the bridge: resolving
// remote resources to local objects, the sync of patients and lab requests,
// the outbound task queue and the DiagnosticReport notifier.
package service

import (
	"context"
	"time"

	"github.com/MKhiriev/lims-tamanu-bridge/internal/store"
	"github.com/MKhiriev/lims-tamanu-bridge/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// TaskHandler runs the tasks of one kind. It reports whether anything was
// sent to the remote system.
type TaskHandler interface {
	Process(ctx context.Context, repos *store.Repositories, obj *models.Object) (bool, error)
}

// Synchronizer pulls one kind of remote resources into the local store.
type Synchronizer interface {
	Sync(ctx context.Context, kind ResourceKind, since time.Duration) (*models.SyncReport, error)
}

// ReportNotifier queues and sends DiagnosticReport notifications.
type ReportNotifier interface {
	TaskHandler
	Notify(ctx context.Context, repos *store.Repositories, sample *models.Object) (bool, error)
	OnReportCreated(ctx context.Context, repos *store.Repositories, report *models.Object) (int, error)
}

var (
	_ Synchronizer   = (*SyncService)(nil)
	_ ReportNotifier = (*Notifier)(nil)
)
