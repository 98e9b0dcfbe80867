// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/MKhiriev/lims-tamanu-bridge/internal/adapter"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/config"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/logger"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/metrics"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/service"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/store"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/utils"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/workers"
	"github.com/MKhiriev/lims-tamanu-bridge/models"
)

// App runs one command against the local store. Summaries go to out, logs
// to the logger.
type App struct {
	storages store.Transactor
	metrics  *metrics.RunMetrics
	textfile string
	out      io.Writer
	closer   io.Closer

	logger *logger.Logger
}

// Option configures an [App].
type Option func(*App)

// WithMetrics records the run in m and writes it to textfile when the run
// ends. An empty textfile keeps the metrics in memory.
func WithMetrics(m *metrics.RunMetrics, textfile string) Option {
	return func(a *App) {
		a.metrics = m
		a.textfile = textfile
	}
}

// New constructs an App over storages.
func New(storages store.Transactor, out io.Writer, log *logger.Logger, opts ...Option) *App {
	a := &App{
		storages: storages,
		out:      out,
		logger:   log,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Open connects the local store of common, applies the pending migrations
// and returns an App over it. In dry mode every unit of work is rolled
// back.
func Open(ctx context.Context, common config.CommonConfig, dry bool, out io.Writer, log *logger.Logger) (*App, error) {
	db, err := store.NewConnect(ctx, common.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting local store: %w", err)
	}
	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	a := New(store.NewStorages(db, store.WithDryRun(dry)), out, log,
		WithMetrics(metrics.New(nil), common.MetricsTextfile))
	a.closer = db
	return a, nil
}

// Close releases the local store.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// ActAs returns a copy of ctx carrying the local user name as the acting
// user of every edit.
func (a *App) ActAs(ctx context.Context, name string) (context.Context, error) {
	var user models.User
	err := a.storages.InTx(ctx, func(ctx context.Context, repos *store.Repositories) error {
		var err error
		user, err = repos.Users.FindUserByName(ctx, name)
		return err
	})
	if err != nil {
		a.logger.Err(err).Str("func", "App.ActAs").Str("user", name).Msg("error loading acting user")
		return ctx, fmt.Errorf("acting user %q: %w", name, err)
	}
	return utils.WithActingUser(ctx, user), nil
}

// Sync runs syncer for kind and prints its summary. The metrics of failed
// runs are written as well.
func (a *App) Sync(ctx context.Context, syncer service.Synchronizer, kind service.ResourceKind, since time.Duration, dry bool) error {
	a.logger.Info().
		Str("func", "App.Sync").
		Str("resource", kind.String()).
		Dur("since", since).
		Bool("dry", dry).
		Msg("synchronizing")

	report, err := syncer.Sync(ctx, kind, since)
	a.metrics.ObserveSync(report)
	a.writeMetrics()
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, RenderSyncSummary(report))
	if dry {
		fmt.Fprintln(a.out, MsgDryMode)
	}
	return nil
}

// Tasks runs the task worker and prints its summary.
func (a *App) Tasks(ctx context.Context, worker *workers.TaskWorker) error {
	err := workers.New(worker).Run(ctx)
	a.metrics.ObserveTasks(worker.Report())
	a.writeMetrics()
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, RenderTasksSummary(worker.Report()))
	return nil
}

// Notify queues the DiagnosticReport notifications of a sample, or of every
// sample of a results report when reportUID is set.
func (a *App) Notify(ctx context.Context, notifier service.ReportNotifier, sampleUID, reportUID string) error {
	if sampleUID == "" && reportUID == "" {
		return ErrMissingSample
	}

	queued := 0
	err := a.storages.InTx(ctx, func(ctx context.Context, repos *store.Repositories) error {
		queued = 0

		if reportUID != "" {
			report, err := repos.Objects.Get(ctx, reportUID)
			if err != nil {
				return fmt.Errorf("load report %s: %w", reportUID, err)
			}
			queued, err = notifier.OnReportCreated(ctx, repos, report)
			return err
		}

		sample, err := repos.Objects.Get(ctx, sampleUID)
		if err != nil {
			return fmt.Errorf("load sample %s: %w", sampleUID, err)
		}
		added, err := notifier.Notify(ctx, repos, sample)
		if added {
			queued = 1
		}
		return err
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Queued notifications: %d\n", queued)
	return nil
}

func (a *App) writeMetrics() {
	if err := a.metrics.WriteTextfile(a.textfile); err != nil {
		a.logger.Err(err).Str("func", "App.writeMetrics").Str("path", a.textfile).Msg("error writing metrics")
	}
}

// login opens the Tamanu session. Rejected or missing credentials are
// reported as [ErrCannotLogin].
func login(ctx context.Context, session *adapter.TamanuSession) error {
	err := session.Login(ctx)
	if errors.Is(err, adapter.ErrUnauthorized) || errors.Is(err, adapter.ErrMissingCredentials) {
		return fmt.Errorf("%w: %w", ErrCannotLogin, err)
	}
	return err
}
