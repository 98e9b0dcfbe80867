// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"context"
	"fmt"
	"io"

	"github.com/MKhiriev/lims-tamanu-bridge/internal/adapter"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/config"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/logger"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/service"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/store"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/workers"
)

// RunSync synchronizes the resources named by cfg with the local store.
func RunSync(ctx context.Context, cfg *config.SyncConfig, out io.Writer, log *logger.Logger) error {
	kind, err := service.ParseResourceKind(cfg.Resource)
	if err != nil {
		return err
	}

	session, err := adapter.NewTamanuSession(cfg.Remote, log)
	if err != nil {
		return err
	}

	cache, err := store.NewFileModificationCache(cfg.CachePath, cfg.CacheSince)
	if err != nil {
		return fmt.Errorf("error loading modification cache: %w", err)
	}

	a, err := Open(ctx, cfg.CommonConfig, cfg.Dry, out, log)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx = log.WithContext(ctx)
	if ctx, err = a.ActAs(ctx, cfg.User); err != nil {
		return err
	}

	log.Info().
		Str("func", "RunSync").
		Str("host", session.Host()).
		Str("cache", cfg.CachePath).
		Dur("cache_since", cfg.CacheSince).
		Msg("synchronizing with tamanu")
	if err = login(ctx, session); err != nil {
		return err
	}

	services := service.NewServices(service.Dependencies{
		Storages: a.storages,
		Cache:    cache,
		Session:  session,
		Sessions: adapter.NewSingleHostProvider(session),
		Sync: service.SyncOptions{
			MaxRetries:  cfg.MaxRetries,
			Dry:         cfg.Dry,
			ServiceUser: cfg.ServiceUser,
		},
	}, log)

	return a.Sync(ctx, services.Sync, kind, cfg.Since, cfg.Dry)
}

// RunTasks executes the queued outbound tasks. Without a configured Tamanu
// host the notifications are taken from the queue and reported as not sent.
func RunTasks(ctx context.Context, cfg *config.TasksConfig, out io.Writer, log *logger.Logger) error {
	a, err := Open(ctx, cfg.CommonConfig, false, out, log)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx = log.WithContext(ctx)
	if ctx, err = a.ActAs(ctx, cfg.User); err != nil {
		return err
	}

	sessions, err := taskSessions(ctx, cfg.Remote, log)
	if err != nil {
		return err
	}

	services := service.NewServices(service.Dependencies{
		Storages:         a.storages,
		Sessions:         sessions,
		SendObservations: cfg.SendObservations,
	}, log)

	worker := workers.NewTaskWorker(a.storages, services.Queue, cfg.MaxTasks, log)
	worker.Handle(service.TaskNotifyDiagnosticReport, services.Notifier)

	return a.Tasks(ctx, worker)
}

// taskSessions logs in to remote. Without a remote every pending
// notification is dequeued as not sent, which is warned about once.
func taskSessions(ctx context.Context, remote *config.Remote, log *logger.Logger) (adapter.SessionProvider, error) {
	if remote == nil {
		log.Warn().
			Str("func", "app.taskSessions").
			Msg("no remote host configured, pending notifications will be dropped without being sent")
		return nil, nil
	}

	session, err := adapter.NewTamanuSession(*remote, log)
	if err != nil {
		return nil, err
	}
	if err = login(ctx, session); err != nil {
		return nil, err
	}
	return adapter.NewSingleHostProvider(session), nil
}

// RunNotify queues the DiagnosticReport notification of a sample, or of
// the samples of a results report.
func RunNotify(ctx context.Context, cfg *config.CommonConfig, sampleUID, reportUID string, out io.Writer, log *logger.Logger) error {
	a, err := Open(ctx, *cfg, false, out, log)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx = log.WithContext(ctx)
	if ctx, err = a.ActAs(ctx, cfg.User); err != nil {
		return err
	}

	services := service.NewServices(service.Dependencies{Storages: a.storages}, log)
	return a.Notify(ctx, services.Notifier, sampleUID, reportUID)
}

// RunMigrate applies the pending schema migrations of the local store.
func RunMigrate(ctx context.Context, cfg *config.CommonConfig, out io.Writer, log *logger.Logger) error {
	a, err := Open(ctx, *cfg, false, out, log)
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Fprintf(out, "Local store %s is up to date\n", cfg.DB.Driver)
	return nil
}
