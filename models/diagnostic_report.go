// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Coding is a code defined by a terminology system.
type Coding struct {
	System  string `json:"system,omitempty"`
	Code    string `json:"code,omitempty"`
	Display string `json:"display,omitempty"`
}

// CodeableConcept is a set of codings plus optional free text.
type CodeableConcept struct {
	Coding []Coding `json:"coding"`
	Text   string   `json:"text,omitempty"`
}

// Reference points at another remote resource.
type Reference struct {
	Reference string `json:"reference,omitempty"`
	Type      string `json:"type,omitempty"`
	Display   string `json:"display,omitempty"`
}

// Meta carries resource metadata.
type Meta struct {
	LastUpdated string `json:"lastUpdated,omitempty"`
}

// Attachment is an inline document.
type Attachment struct {
	ContentType string `json:"contentType,omitempty"`
	Data        string `json:"data,omitempty"`
	Title       string `json:"title,omitempty"`
}

// Quantity is a measured amount.
type Quantity struct {
	Value any    `json:"value"`
	Unit  string `json:"unit"`
}

// Observation is a single result posted back inside a DiagnosticReport.
type Observation struct {
	ResourceType  string         `json:"resourceType"`
	Status        string         `json:"status"`
	Code          map[string]any `json:"code"`
	ValueString   *string        `json:"valueString,omitempty"`
	ValueQuantity *Quantity      `json:"valueQuantity,omitempty"`
}

// DiagnosticReport is the payload notifying the remote system about the
// results of a sample.
type DiagnosticReport struct {
	ResourceType  string          `json:"resourceType"`
	ID            string          `json:"id"`
	Meta          Meta            `json:"meta"`
	Status        string          `json:"status"`
	BasedOn       []Reference     `json:"basedOn"`
	Code          CodeableConcept `json:"code"`
	Results       []Observation   `json:"results,omitempty"`
	PresentedForm []Attachment    `json:"presentedForm,omitempty"`
}

// Remote resource types exchanged with Tamanu.
const (
	ResourceTypeDiagnosticReport = "DiagnosticReport"
	ResourceTypeObservation      = "Observation"
	ResourceTypePatient          = "Patient"
	ResourceTypeServiceRequest   = "ServiceRequest"
)
