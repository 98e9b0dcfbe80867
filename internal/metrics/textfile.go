// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Gatherer returns the registry the collectors are registered with.
func (m *RunMetrics) Gatherer() prometheus.Gatherer {
	if m == nil {
		return prometheus.NewRegistry()
	}
	return m.gatherer
}

// WriteTextfile writes the collected metrics to path in the text exposition
// format. The file is replaced atomically. An empty path is a no-op.
func (m *RunMetrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.gatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
