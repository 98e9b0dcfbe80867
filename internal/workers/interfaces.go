// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs background jobs of the bridge to completion.
// It defines the Worker interface and a Workers aggregate that allows
// running several workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
// It defines a single Run method that starts the worker's execution.
//
// Implementations are expected to block until their work is done or ctx
// is cancelled.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) error {
//	    // process until there is nothing left
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}
