// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/lims-tamanu-bridge/models"
)

const labelWidth = 32

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Width(labelWidth)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type summaryRow struct {
	label string
	value string
}

// RenderSyncSummary renders the end-of-run summary of a sync.
func RenderSyncSummary(r *models.SyncReport) string {
	rows := []summaryRow{
		{"Host", r.Host},
		{"Started", r.Started.Format(time.RFC3339)},
		{"Fetched", strconv.Itoa(r.Fetched)},
		{"Created", strconv.Itoa(r.Created)},
		{"Edited", strconv.Itoa(r.Edited)},
		{"Skipped", strconv.Itoa(r.TotalSkipped())},
	}
	for _, reason := range r.SkipReasons() {
		rows = append(rows, summaryRow{"  " + string(reason), strconv.Itoa(r.Skipped[reason])})
	}
	rows = append(rows,
		summaryRow{"Retries", strconv.Itoa(r.Retries)},
		summaryRow{"Elapsed", r.Elapsed.Round(time.Millisecond).String()},
	)
	return renderSummary(fmt.Sprintf("Synchronizing %s", r.Resource), rows)
}

// RenderTasksSummary renders the end-of-run summary of the task queue.
func RenderTasksSummary(r models.TaskReport) string {
	return renderSummary("Executing Tamanu-specific tasks", []summaryRow{
		{"Processed", strconv.Itoa(r.Processed)},
		{"Posted", strconv.Itoa(r.Posted)},
		{"Dropped", strconv.Itoa(r.Dropped)},
		{"Remaining", strconv.Itoa(r.Remaining)},
		{"Elapsed", r.Elapsed.Round(time.Millisecond).String()},
	})
}

func renderSummary(title string, rows []summaryRow) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, titleStyle.Render(title))
	for _, row := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(row.label), row.value))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
