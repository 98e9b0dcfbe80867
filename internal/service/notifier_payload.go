// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/MKhiriev/lims-tamanu-bridge/internal/resource"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/store"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/utils"
	"github.com/MKhiriev/lims-tamanu-bridge/models"
)

// genericReportCoding codes reports whose request carried no LOINC panel.
var genericReportCoding = models.Coding{
	System:  resource.LOINCSystem,
	Code:    "11502-2",
	Display: "Laboratory report",
}

const pdfContentType = "application/pdf"

// buildReport builds the DiagnosticReport of source for the request target
// is linked to.
func (n *Notifier) buildReport(ctx context.Context, repos *store.Repositories, target, source, report *models.Object, status string) (models.DiagnosticReport, error) {
	id, err := n.reportID(ctx, repos, target, report)
	if err != nil {
		return models.DiagnosticReport{}, err
	}

	modified := source.ModifiedAt
	if report != nil && report.CreatedAt.After(modified) {
		modified = report.CreatedAt
	}

	payload := models.DiagnosticReport{
		ResourceType: models.ResourceTypeDiagnosticReport,
		ID:           id,
		Meta:         models.Meta{LastUpdated: utils.FormatTimestamp(modified)},
		Status:       status,
		BasedOn: []models.Reference{{
			Reference: models.ResourceTypeServiceRequest + "/" + target.TamanuUID,
			Type:      models.ResourceTypeServiceRequest,
		}},
		Code: reportCode(target),
	}

	if n.sendObservations {
		if payload.Results, err = observations(ctx, repos.Objects, target, source); err != nil {
			return models.DiagnosticReport{}, err
		}
	}

	if report != nil {
		if pdf := (models.Report{Object: *report}).Pdf(); pdf != "" {
			payload.PresentedForm = []models.Attachment{{
				ContentType: pdfContentType,
				Data:        pdf,
				Title:       source.ID,
			}}
		}
	}

	return payload, nil
}

// reportID returns the id of the DiagnosticReport of target: the uid of the
// results report when there is one, else the id issued earlier, else a new
// id kept on target for the next notifications.
func (n *Notifier) reportID(ctx context.Context, repos *store.Repositories, target, report *models.Object) (string, error) {
	if report != nil {
		return utils.UIDToUUID(report.UID), nil
	}
	if target.Tamanu.ReportID != "" {
		return target.Tamanu.ReportID, nil
	}

	target.Tamanu.ReportID = n.uids.Generate()
	if err := repos.Objects.Update(ctx, target); err != nil {
		return "", fmt.Errorf("keep report id of %s: %w", target.UID, err)
	}
	return target.Tamanu.ReportID, nil
}

// reportCode returns the LOINC codings of the request, else the generic
// laboratory report code.
func reportCode(target *models.Object) models.CodeableConcept {
	codings := resource.GetCodings(target.Tamanu.Data["code"], resource.LOINCSystem)
	if len(codings) == 0 {
		return models.CodeableConcept{Coding: []models.Coding{genericReportCoding}}
	}
	return models.CodeableConcept{Coding: codings}
}

// observations returns one Observation per reportable analysis of source,
// oldest analysis first.
func observations(ctx context.Context, objects store.ObjectRepository, target, source *models.Object) ([]models.Observation, error) {
	found, err := objects.Search(ctx, models.ObjectQuery{
		PortalType: models.PortalTypeAnalysis,
		ParentUID:  source.UID,
	})
	if err != nil {
		return nil, fmt.Errorf("search analyses of %s: %w", source.UID, err)
	}
	slices.Reverse(found)

	orderDetail := target.Tamanu.Data["orderDetail"]
	results := make([]models.Observation, 0, len(found))
	for _, obj := range found {
		analysis := models.Analysis{Object: *obj}
		if !analysis.IsReportable() {
			continue
		}
		results = append(results, observation(analysis, orderDetail))
	}
	return results, nil
}

func observation(analysis models.Analysis, orderDetail any) models.Observation {
	obs := models.Observation{
		ResourceType: models.ResourceTypeObservation,
		Status:       ObservationStatus(analysis.ReviewStatus),
		Code:         observationCode(analysis, orderDetail),
	}

	if analysis.IsQualitative() {
		value := analysis.FormattedResult()
		obs.ValueString = &value
		return obs
	}

	var value any
	if result := strings.TrimSpace(analysis.Result()); result != "" {
		value = result
		if f, err := strconv.ParseFloat(result, 64); err == nil {
			value = f
		}
	}
	obs.ValueQuantity = &models.Quantity{Value: value, Unit: analysis.Unit()}
	return obs
}

// observationCode returns the requested test concept the analysis was
// created for: by keyword, else by title. Only concepts carrying a SENAITE
// test coding are considered. Analyses that match no test get an empty
// concept.
func observationCode(analysis models.Analysis, orderDetail any) map[string]any {
	var tests []map[string]any
	for _, concept := range conceptList(orderDetail) {
		m, ok := concept.(map[string]any)
		if ok && len(resource.GetCodings(m, resource.SenaiteTestsSystem)) > 0 {
			tests = append(tests, m)
		}
	}

	if keyword := analysis.Keyword(); keyword != "" {
		for _, m := range tests {
			if slices.Contains(resource.GetCodes(m, resource.SenaiteTestsSystem), keyword) {
				return m
			}
		}
	}
	if analysis.Title != "" {
		for _, m := range tests {
			for _, coding := range resource.GetCodings(m, resource.SenaiteTestsSystem) {
				if coding.Display == analysis.Title || coding.Code == analysis.Title {
					return m
				}
			}
		}
	}
	return map[string]any{"coding": []any{}}
}
