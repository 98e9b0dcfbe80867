// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"slices"
)

// Analysis review statuses.
const (
	AnalysisStatusUnassigned   = "unassigned"
	AnalysisStatusAssigned     = "assigned"
	AnalysisStatusToBeVerified = "to_be_verified"
	AnalysisStatusVerified     = "verified"
	AnalysisStatusPublished    = "published"
	AnalysisStatusRetracted    = "retracted"
	AnalysisStatusRejected     = "rejected"
	AnalysisStatusOutOfStock   = "out_of_stock"
	AnalysisStatusCancelled    = "cancelled"
)

// AnalysisReportableStatuses are the statuses in which an analysis is
// included in results reports.
var AnalysisReportableStatuses = []string{
	AnalysisStatusToBeVerified,
	AnalysisStatusVerified,
	AnalysisStatusPublished,
	AnalysisStatusOutOfStock,
}

// Analysis field names.
const (
	FieldKeyword       = "Keyword"
	FieldResult        = "Result"
	FieldUnit          = "Unit"
	FieldStringResult  = "StringResult"
	FieldResultOptions = "ResultOptions"
	FieldHidden        = "Hidden"
	FieldInternalUse   = "InternalUse"
	FieldProfileKey    = "ProfileKey"
	FieldServices      = "Services"
	FieldPrefix        = "Prefix"
	FieldCode          = "Code"
)

// Analysis is a typed view over an Analysis object.
type Analysis struct {
	Object
}

// Keyword returns the service keyword the analysis was created from.
func (a Analysis) Keyword() string {
	return a.String(FieldKeyword)
}

// Unit returns the result unit.
func (a Analysis) Unit() string {
	return a.String(FieldUnit)
}

// Result returns the raw result as entered.
func (a Analysis) Result() string {
	if a.Fields == nil {
		return ""
	}
	switch v := a.Fields[FieldResult].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// ResultOptions returns the selectable results as (value, text) pairs.
func (a Analysis) ResultOptions() [][2]string {
	raw, _ := a.Fields[FieldResultOptions].([]any)
	options := make([][2]string, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		options = append(options, [2]string{fmt.Sprint(m["ResultValue"]), fmt.Sprint(m["ResultText"])})
	}
	return options
}

// IsQualitative reports whether the result is text or chosen from options.
func (a Analysis) IsQualitative() bool {
	return a.Bool(FieldStringResult) || len(a.ResultOptions()) > 0
}

// FormattedResult returns the result as displayed in reports: the option
// text for option-based results, the raw result otherwise.
func (a Analysis) FormattedResult() string {
	result := a.Result()
	for _, option := range a.ResultOptions() {
		if option[0] == result {
			return option[1]
		}
	}
	return result
}

// IsReportable reports whether the analysis is displayed in results
// reports.
func (a Analysis) IsReportable() bool {
	if a.Bool(FieldHidden) || a.Bool(FieldInternalUse) {
		return false
	}
	return slices.Contains(AnalysisReportableStatuses, a.ReviewStatus)
}
