// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/lims-tamanu-bridge/internal/adapter"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/logger"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/service"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/store"
	"github.com/MKhiriev/lims-tamanu-bridge/models"
)

// TaskWorker consumes the outbound task queue. Every task is taken and run
// in its own unit of work.
//
// A task whose handler cannot reach the remote system is put back by
// rolling its unit of work back, and the run stops. A task failing for any
// other reason is logged and dropped.
type TaskWorker struct {
	storages store.Transactor
	queue    *service.TaskQueue
	handlers map[service.TaskKind]service.TaskHandler
	// maxTasks bounds the tasks run by one Run; 0 means no bound.
	maxTasks int

	report models.TaskReport
	logger *logger.Logger
}

// NewTaskWorker constructs a TaskWorker.
func NewTaskWorker(storages store.Transactor, queue *service.TaskQueue, maxTasks int, logger *logger.Logger) *TaskWorker {
	if maxTasks < 0 {
		maxTasks = 0
	}
	return &TaskWorker{
		storages: storages,
		queue:    queue,
		handlers: make(map[service.TaskKind]service.TaskHandler),
		maxTasks: maxTasks,
		logger:   logger,
	}
}

// Handle registers handler for the tasks of kind.
func (w *TaskWorker) Handle(kind service.TaskKind, handler service.TaskHandler) {
	w.handlers[kind] = handler
}

// Report returns the summary of the last Run.
func (w *TaskWorker) Report() models.TaskReport {
	return w.report
}

// Run implements Worker. It runs tasks until the queue is empty, maxTasks
// tasks ran or a task cannot reach the remote system.
func (w *TaskWorker) Run(ctx context.Context) error {
	log := w.logger.GetChildLogger()
	ctx = log.WithContext(ctx)

	started := time.Now()
	w.report = models.TaskReport{}
	defer func() { w.report.Elapsed = time.Since(started) }()

	for w.maxTasks == 0 || w.report.Processed+w.report.Dropped < w.maxTasks {
		if err := ctx.Err(); err != nil {
			return err
		}

		done, err := w.runNext(ctx)
		if err != nil {
			log.Err(err).Str("func", "TaskWorker.Run").Msg("task queue processing stopped")
			w.countRemaining(ctx)
			return err
		}
		if done {
			break
		}
	}

	w.countRemaining(ctx)
	log.Info().
		Str("func", "TaskWorker.Run").
		Int("processed", w.report.Processed).
		Int("posted", w.report.Posted).
		Int("dropped", w.report.Dropped).
		Int("remaining", w.report.Remaining).
		Msg("task queue processed")
	return nil
}

// runNext takes the oldest task and runs it. done is true when the queue
// is empty.
func (w *TaskWorker) runNext(ctx context.Context) (bool, error) {
	log := logger.FromContext(ctx)

	var (
		done    bool
		outcome func()
	)
	err := w.storages.InTx(ctx, func(ctx context.Context, repos *store.Repositories) error {
		done, outcome = false, nil

		task, err := w.queue.Dequeue(ctx, repos)
		if err != nil {
			return err
		}
		if task == nil {
			done = true
			return nil
		}

		handler, ok := w.handlers[task.Kind]
		if !ok {
			log.Warn().Str("func", "TaskWorker.runNext").Str("token", task.Token.String()).Msg("no handler for task, dropped")
			outcome = func() { w.report.Dropped++ }
			return nil
		}

		sent, err := handler.Process(ctx, repos, task.Object)
		if errors.Is(err, adapter.ErrConnection) {
			return fmt.Errorf("run %s: %w", task.Token, err)
		}
		if err != nil {
			log.Err(err).Str("func", "TaskWorker.runNext").Str("token", task.Token.String()).Msg("task failed, dropped")
			outcome = func() { w.report.Dropped++ }
			return nil
		}

		outcome = func() {
			w.report.Processed++
			if sent {
				w.report.Posted++
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	if outcome != nil {
		outcome()
	}
	return done, nil
}

func (w *TaskWorker) countRemaining(ctx context.Context) {
	err := w.storages.InTx(ctx, func(ctx context.Context, repos *store.Repositories) error {
		pending, err := w.queue.Pending(ctx, repos)
		if err != nil {
			return err
		}
		w.report.Remaining = len(pending)
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "TaskWorker.countRemaining").Msg("error counting pending tasks")
	}
}
