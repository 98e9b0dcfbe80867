// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "github.com/MKhiriev/lims-tamanu-bridge/models"

// DiagnosticReport statuses.
const (
	ReportStatusRegistered     = "registered"
	ReportStatusPartial        = "partial"
	ReportStatusPreliminary    = "preliminary"
	ReportStatusFinal          = "final"
	ReportStatusEnteredInError = "entered-in-error"
)

// reportStatuses maps the review status of a sample to the status of its
// DiagnosticReport. Statuses not listed are never reported.
var reportStatuses = map[string]string{
	models.SampleStatusReceived:     ReportStatusRegistered,
	models.SampleStatusToBeVerified: ReportStatusPartial,
	models.SampleStatusVerified:     ReportStatusPreliminary,
	models.SampleStatusPublished:    ReportStatusFinal,
	models.SampleStatusInvalid:      ReportStatusEnteredInError,
}

// observationStatuses maps the review status of an analysis to the status
// of its Observation. Other statuses map to "partial".
var observationStatuses = map[string]string{
	models.AnalysisStatusToBeVerified: "preliminary",
	models.AnalysisStatusVerified:     "final",
	models.AnalysisStatusPublished:    "final",
	models.AnalysisStatusRetracted:    "cancelled",
	models.AnalysisStatusRejected:     "cancelled",
}

const defaultObservationStatus = "partial"

// ReportStatus returns the DiagnosticReport status of a sample in
// reviewStatus. hasReport tells whether a results report exists: a received
// sample is only reported once it has one.
func ReportStatus(reviewStatus string, hasReport bool) (string, bool) {
	if reviewStatus == models.SampleStatusReceived && !hasReport {
		return "", false
	}
	status, ok := reportStatuses[reviewStatus]
	return status, ok
}

// ObservationStatus returns the Observation status of an analysis in
// reviewStatus.
func ObservationStatus(reviewStatus string) string {
	if status, ok := observationStatuses[reviewStatus]; ok {
		return status
	}
	return defaultObservationStatus
}
