// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/lims-tamanu-bridge/models"
)

func TestRenderSyncSummary(t *testing.T) {
	r := models.NewSyncReport(models.ResourceTypePatient, "https://tamanu.example")
	r.Fetched = 4
	r.Created = 1
	r.Edited = 2
	r.Retries = 1
	r.Skip(models.SkipUpToDate)
	r.Elapsed = 1234 * time.Millisecond

	got := RenderSyncSummary(r)

	assert.Contains(t, got, "Synchronizing Patient")
	assert.Regexp(t, `Host\s+https://tamanu\.example`, got)
	assert.Regexp(t, `Fetched\s+4`, got)
	assert.Regexp(t, `Edited\s+2`, got)
	assert.Regexp(t, `Skipped\s+1`, got)
	assert.Regexp(t, `up_to_date\s+1`, got)
	assert.Regexp(t, `Elapsed\s+1\.234s`, got)
}

func TestRenderTasksSummary(t *testing.T) {
	got := RenderTasksSummary(models.TaskReport{Processed: 3, Posted: 2, Dropped: 1, Remaining: 7})

	assert.Regexp(t, `Processed\s+3`, got)
	assert.Regexp(t, `Posted\s+2`, got)
	assert.Regexp(t, `Dropped\s+1`, got)
	assert.Regexp(t, `Remaining\s+7`, got)
}
