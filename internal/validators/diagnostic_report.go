// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"encoding/base64"
	"fmt"
	"slices"
	"strings"

	"github.com/MKhiriev/lims-tamanu-bridge/internal/utils"
	"github.com/MKhiriev/lims-tamanu-bridge/models"
)

// Field names accepted by the DiagnosticReport validator.
const (
	FieldResourceType  = "resourceType"
	FieldID            = "id"
	FieldMeta          = "meta"
	FieldStatus        = "status"
	FieldBasedOn       = "basedOn"
	FieldCode          = "code"
	FieldResults       = "results"
	FieldPresentedForm = "presentedForm"
)

// reportStatuses are the DiagnosticReport statuses the remote system
// accepts.
var reportStatuses = []string{
	"registered",
	"partial",
	"preliminary",
	"final",
	"amended",
	"corrected",
	"appended",
	"cancelled",
	"entered-in-error",
	"unknown",
}

// observationStatuses are the Observation statuses the remote system
// accepts.
var observationStatuses = []string{
	"registered",
	"preliminary",
	"final",
	"amended",
	"corrected",
	"cancelled",
	"entered-in-error",
	"unknown",
	"partial",
}

// DiagnosticReportValidator checks outbound DiagnosticReport payloads.
type DiagnosticReportValidator struct{}

// NewDiagnosticReportValidator returns a Validator for
// [models.DiagnosticReport].
func NewDiagnosticReportValidator() Validator {
	return &DiagnosticReportValidator{}
}

// Validate implements Validator.
func (v *DiagnosticReportValidator) Validate(ctx context.Context, data any, fields ...string) error {
	switch value := data.(type) {
	case models.DiagnosticReport:
		return v.validateReport(ctx, value, fields...)
	case *models.DiagnosticReport:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.validateReport(ctx, *value, fields...)
	case models.Observation:
		return v.validateObservation(value)
	case *models.Observation:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.validateObservation(*value)
	default:
		return ErrUnsupportedType
	}
}

func (v *DiagnosticReportValidator) validateReport(ctx context.Context, report models.DiagnosticReport, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldResourceType, FieldID, FieldMeta, FieldStatus, FieldBasedOn, FieldCode, FieldResults, FieldPresentedForm}
	}

	for _, f := range fields {
		switch f {
		case FieldResourceType:
			if report.ResourceType != models.ResourceTypeDiagnosticReport {
				return fmt.Errorf("%w: %q", ErrInvalidResourceType, report.ResourceType)
			}
		case FieldID:
			if strings.TrimSpace(report.ID) == "" {
				return ErrEmptyID
			}
		case FieldMeta:
			if report.Meta.LastUpdated == "" {
				continue
			}
			if _, err := utils.ParseTime(report.Meta.LastUpdated); err != nil {
				return fmt.Errorf("%w: %q", ErrInvalidLastUpdated, report.Meta.LastUpdated)
			}
		case FieldStatus:
			if !slices.Contains(reportStatuses, report.Status) {
				return fmt.Errorf("%w: %q", ErrInvalidStatus, report.Status)
			}
		case FieldBasedOn:
			if len(report.BasedOn) == 0 {
				return ErrEmptyBasedOn
			}
			for i, ref := range report.BasedOn {
				if err := validateReference(ref); err != nil {
					return fmt.Errorf("basedOn at index %d: %w", i, err)
				}
			}
		case FieldCode:
			if len(report.Code.Coding) == 0 {
				return ErrEmptyCode
			}
			for i, coding := range report.Code.Coding {
				if coding.System == "" || coding.Code == "" {
					return fmt.Errorf("code at index %d: %w", i, ErrInvalidCoding)
				}
			}
		case FieldResults:
			for i, observation := range report.Results {
				if err := v.validateObservation(observation); err != nil {
					return fmt.Errorf("validation error at index %d: %w", i, err)
				}
			}
		case FieldPresentedForm:
			for i, attachment := range report.PresentedForm {
				if err := validateAttachment(attachment); err != nil {
					return fmt.Errorf("presentedForm at index %d: %w", i, err)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *DiagnosticReportValidator) validateObservation(observation models.Observation) error {
	if observation.ResourceType != models.ResourceTypeObservation {
		return fmt.Errorf("%w: resourceType %q", ErrInvalidObservation, observation.ResourceType)
	}
	if !slices.Contains(observationStatuses, observation.Status) {
		return fmt.Errorf("%w: %w: %q", ErrInvalidObservation, ErrInvalidStatus, observation.Status)
	}
	if observation.Code == nil {
		return fmt.Errorf("%w: code is required", ErrInvalidObservation)
	}
	if observation.ValueString != nil && observation.ValueQuantity != nil {
		return ErrMultipleValues
	}
	return nil
}

func validateReference(ref models.Reference) error {
	parts := strings.Split(ref.Reference, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return fmt.Errorf("%w: %q", ErrInvalidReference, ref.Reference)
	}
	if ref.Type != "" && ref.Type != parts[0] {
		return fmt.Errorf("%w: type %q does not match %q", ErrInvalidReference, ref.Type, ref.Reference)
	}
	return nil
}

func validateAttachment(attachment models.Attachment) error {
	if attachment.ContentType == "" {
		return fmt.Errorf("%w: contentType is required", ErrInvalidAttachment)
	}
	if attachment.Data == "" {
		return fmt.Errorf("%w: data is required", ErrInvalidAttachment)
	}
	if _, err := base64.StdEncoding.DecodeString(attachment.Data); err != nil {
		return fmt.Errorf("%w: data is not base64: %w", ErrInvalidAttachment, err)
	}
	return nil
}
