// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/lims-tamanu-bridge/internal/adapter"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/logger"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/store"
)

// Dependencies are the collaborators of the services. Session is only
// needed to sync; Sessions only to send notifications.
type Dependencies struct {
	Storages store.Transactor
	Cache    store.ModificationCache
	Session  adapter.Session
	Sessions adapter.SessionProvider

	Sync             SyncOptions
	SendObservations bool
}

// Services bundles the services of one run. Sample transitions notify the
// remote system through the Notifier.
type Services struct {
	Sync     *SyncService
	Queue    *TaskQueue
	Notifier *Notifier
	Workflow *Workflow
}

// NewServices wires the services. Sync is nil without a session.
func NewServices(deps Dependencies, logger *logger.Logger) *Services {
	queue := NewTaskQueue()
	notifier := NewNotifier(queue, deps.Sessions, deps.SendObservations, logger)

	workflow := NewWorkflow()
	workflow.Subscribe(notifier.OnTransition)

	services := &Services{
		Queue:    queue,
		Notifier: notifier,
		Workflow: workflow,
	}
	if deps.Session != nil {
		services.Sync = NewSyncService(deps.Storages, deps.Cache, deps.Session, workflow, deps.Sync, logger)
	}
	return services
}
