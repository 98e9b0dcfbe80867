// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/lims-tamanu-bridge/internal/logger"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/store"
	"github.com/MKhiriev/lims-tamanu-bridge/models"
)

// TaskKind is a task the queue knows how to run.
type TaskKind int

const (
	TaskNotifyDiagnosticReport TaskKind = iota + 1
)

var taskNames = map[TaskKind]string{
	TaskNotifyDiagnosticReport: "notify_diagnostic_report",
}

// ParseTaskKind returns the kind of the task named name.
func ParseTaskKind(name string) (TaskKind, error) {
	for kind, n := range taskNames {
		if n == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTaskKind, name)
}

func (k TaskKind) String() string {
	if name, ok := taskNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TaskKind(%d)", int(k))
}

// Task is a dequeued task bound to the object it runs on.
type Task struct {
	Token  models.TaskToken
	Kind   TaskKind
	Object *models.Object
}

// TaskQueue adds and takes tasks from the persisted queue, one caller at a
// time within the process. Across processes every queue statement is
// atomic on its own.
type TaskQueue struct {
	mu sync.Mutex
}

// NewTaskQueue returns a TaskQueue.
func NewTaskQueue() *TaskQueue {
	return &TaskQueue{}
}

// Enqueue queues kind for obj unless the same task is already queued. It
// reports whether a task was added.
func (q *TaskQueue) Enqueue(ctx context.Context, repos *store.Repositories, kind TaskKind, obj *models.Object) (bool, error) {
	if _, ok := taskNames[kind]; !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownTaskKind, kind)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	token := models.NewTaskToken(obj.UID, kind.String())
	added, err := repos.Tasks.Push(ctx, token.String())
	if err != nil {
		return false, fmt.Errorf("enqueue %s: %w", token, err)
	}

	logger.FromContext(ctx).Debug().
		Str("func", "TaskQueue.Enqueue").
		Str("token", token.String()).
		Bool("added", added).
		Msg("task enqueued")
	return added, nil
}

// Dequeue takes the oldest task off the queue. Tokens that cannot be parsed
// or whose object no longer exists are discarded. It returns nil when the
// queue is empty.
func (q *TaskQueue) Dequeue(ctx context.Context, repos *store.Repositories) (*Task, error) {
	log := logger.FromContext(ctx)

	q.mu.Lock()
	defer q.mu.Unlock()

	for {
		raw, ok, err := repos.Tasks.Pop(ctx)
		if err != nil {
			return nil, fmt.Errorf("dequeue: %w", err)
		}
		if !ok {
			return nil, nil
		}

		token := models.TaskToken(raw)
		task, err := q.bind(ctx, repos, token)
		if err != nil {
			if errors.Is(err, models.ErrInvalidTaskToken) || errors.Is(err, ErrUnknownTaskKind) || errors.Is(err, ErrObjectNotFound) {
				log.Warn().Err(err).Str("func", "TaskQueue.Dequeue").Str("token", raw).Msg("task discarded")
				continue
			}
			return nil, err
		}
		return task, nil
	}
}

// Pending returns the queued tokens, oldest first.
func (q *TaskQueue) Pending(ctx context.Context, repos *store.Repositories) ([]string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	return repos.Tasks.List(ctx)
}

func (q *TaskQueue) bind(ctx context.Context, repos *store.Repositories, token models.TaskToken) (*Task, error) {
	uid, name, err := token.Split()
	if err != nil {
		return nil, err
	}
	kind, err := ParseTaskKind(name)
	if err != nil {
		return nil, err
	}
	obj, err := repos.Objects.Get(ctx, uid)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, uid)
	}
	if err != nil {
		return nil, fmt.Errorf("load object of %s: %w", token, err)
	}
	return &Task{Token: token, Kind: kind, Object: obj}, nil
}
