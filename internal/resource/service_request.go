// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package resource

import (
	"context"
	"strings"
)

// ServiceRequest statuses the sync reacts to.
const (
	StatusDraft          = "draft"
	StatusActive         = "active"
	StatusOnHold         = "on-hold"
	StatusRevoked        = "revoked"
	StatusCompleted      = "completed"
	StatusEnteredInError = "entered-in-error"
)

// Note is an annotation attached to a ServiceRequest.
type Note struct {
	Time string
	Text string
}

// ServiceRequest is a remote lab order.
type ServiceRequest struct {
	*Resource
}

// AsServiceRequest wraps r.
func AsServiceRequest(r *Resource) *ServiceRequest {
	if r == nil {
		return nil
	}
	return &ServiceRequest{r}
}

// Status returns the request status, e.g. "active" or "revoked".
func (s *ServiceRequest) Status() string {
	return s.GetString("status")
}

// Priority returns the request priority, e.g. "routine" or "stat".
func (s *ServiceRequest) Priority() string {
	return s.GetString("priority")
}

// LabTestID returns the lab request display id.
func (s *ServiceRequest) LabTestID() string {
	return identifierValue(s.GetList("identifier"), LabRequestIDSystem)
}

// Category returns the raw category list.
func (s *ServiceRequest) Category() any {
	return s.Get("category")
}

// OrderDetail returns the raw orderDetail list (the tests requested).
func (s *ServiceRequest) OrderDetail() any {
	return s.Get("orderDetail")
}

// Code returns the raw code concept (the panel requested).
func (s *ServiceRequest) Code() any {
	return s.Get("code")
}

// Notes returns the annotations of the request.
func (s *ServiceRequest) Notes() []Note {
	list := s.GetList("note")
	notes := make([]Note, 0, len(list))
	for _, item := range list {
		m := asMap(item)
		if m == nil {
			continue
		}
		notes = append(notes, Note{Time: asString(m["time"]), Text: asString(m["text"])})
	}
	return notes
}

// ClinicalInformation joins the text of every note with newlines.
func (s *ServiceRequest) ClinicalInformation() string {
	contents := make([]string, 0, 2)
	for _, n := range s.Notes() {
		if n.Text != "" {
			contents = append(contents, n.Text)
		}
	}
	return strings.Join(contents, "\n")
}

// Specimen resolves the first specimen of the request.
func (s *ServiceRequest) Specimen(ctx context.Context, resolver ReferenceResolver) (*Specimen, error) {
	list := s.GetList("specimen")
	if len(list) == 0 {
		return nil, nil
	}
	r, err := s.resolve(ctx, resolver, list[0])
	if err != nil || r == nil {
		return nil, err
	}
	return AsSpecimen(r), nil
}

// Encounter resolves the encounter the request was placed in.
func (s *ServiceRequest) Encounter(ctx context.Context, resolver ReferenceResolver) (*Encounter, error) {
	r, err := s.ResolveReference(ctx, resolver, "encounter")
	if err != nil || r == nil {
		return nil, err
	}
	return AsEncounter(r), nil
}

// Requester resolves the practitioner who placed the request.
func (s *ServiceRequest) Requester(ctx context.Context, resolver ReferenceResolver) (*Practitioner, error) {
	r, err := s.ResolveReference(ctx, resolver, "requester")
	if err != nil || r == nil {
		return nil, err
	}
	return AsPractitioner(r), nil
}

// PatientResource resolves the subject of the request.
func (s *ServiceRequest) PatientResource(ctx context.Context, resolver ReferenceResolver) (*Patient, error) {
	r, err := s.ResolveReference(ctx, resolver, "subject")
	if err != nil || r == nil {
		return nil, err
	}
	return AsPatient(r), nil
}

// ServiceProvider resolves the organization responsible for the encounter
// of the request.
func (s *ServiceRequest) ServiceProvider(ctx context.Context, resolver ReferenceResolver) (*Organization, error) {
	encounter, err := s.Encounter(ctx, resolver)
	if err != nil || encounter == nil {
		return nil, err
	}
	r, err := encounter.ResolveReference(ctx, resolver, "serviceProvider")
	if err != nil || r == nil {
		return nil, err
	}
	return AsOrganization(r), nil
}
