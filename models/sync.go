// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"sort"
	"time"
)

// SkipReason explains why a remote resource was not written locally.
type SkipReason string

const (
	SkipUpToDate          SkipReason = "up_to_date"
	SkipCategory          SkipReason = "unsupported_category"
	SkipMissingSpecimen   SkipReason = "missing_specimen"
	SkipMissingSampleType SkipReason = "missing_sample_type"
	SkipMissingKey        SkipReason = "missing_key"
	SkipStatus            SkipReason = "non_actionable_status"
	SkipSampleUpToDate    SkipReason = "sample_up_to_date"
	SkipFinalStatus       SkipReason = "final_status"
	SkipNoMatch           SkipReason = "no_match"
)

// SyncReport summarises one sync run.
type SyncReport struct {
	Resource string
	Host     string
	Fetched  int
	Created  int
	Edited   int
	Skipped  map[SkipReason]int
	Retries  int
	Dry      bool
	Started  time.Time
	Elapsed  time.Duration
}

// NewSyncReport returns an empty report for resource.
func NewSyncReport(resource, host string) *SyncReport {
	return &SyncReport{
		Resource: resource,
		Host:     host,
		Skipped:  make(map[SkipReason]int),
		Started:  time.Now(),
	}
}

// Skip counts a skipped resource.
func (r *SyncReport) Skip(reason SkipReason) {
	r.Skipped[reason]++
}

// TotalSkipped returns the number of skipped resources over all reasons.
func (r *SyncReport) TotalSkipped() int {
	total := 0
	for _, n := range r.Skipped {
		total += n
	}
	return total
}

// SkipReasons returns the reasons seen during the run in a stable order.
func (r *SyncReport) SkipReasons() []SkipReason {
	reasons := make([]SkipReason, 0, len(r.Skipped))
	for reason := range r.Skipped {
		reasons = append(reasons, reason)
	}
	sort.Slice(reasons, func(i, j int) bool { return reasons[i] < reasons[j] })
	return reasons
}

// TaskReport summarises one task queue run.
type TaskReport struct {
	Processed int
	Posted    int
	Dropped   int
	Remaining int
	Elapsed   time.Duration
}
