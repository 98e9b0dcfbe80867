// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import "context"

// Workers runs a fixed list of workers one after the other.
type Workers struct {
	workers []Worker
}

// New returns a Workers running workers in the order given.
func New(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run runs every worker in order and stops at the first failure.
func (w *Workers) Run(ctx context.Context) error {
	for _, worker := range w.workers {
		if err := worker.Run(ctx); err != nil {
			return err
		}
	}
	return nil
}
