// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Results report field names.
const (
	// FieldPdf holds the base64 encoded report document.
	FieldPdf = "Pdf"
	// FieldContainedSamples lists the uids of the samples a report covers.
	FieldContainedSamples = "ContainedAnalysisRequests"
)

// Report is a typed view over an ARReport object.
type Report struct {
	Object
}

// Pdf returns the base64 encoded document, or "".
func (r Report) Pdf() string {
	return r.String(FieldPdf)
}

// ContainedSamples returns the uids of the samples of the report. A report
// without the list covers its parent sample only.
func (r Report) ContainedSamples() []string {
	uids := r.Strings(FieldContainedSamples)
	if len(uids) == 0 && r.ParentUID != "" {
		return []string{r.ParentUID}
	}
	return uids
}
