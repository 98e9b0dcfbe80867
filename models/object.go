// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"
)

// PortalType names the kind of a local LIMS object. Every row of the objects
// table carries one.
type PortalType string

const (
	PortalTypeClient      PortalType = "Client"
	PortalTypeContact     PortalType = "Contact"
	PortalTypePatient     PortalType = "Patient"
	PortalTypeSample      PortalType = "AnalysisRequest"
	PortalTypeAnalysis    PortalType = "Analysis"
	PortalTypeReport      PortalType = "ARReport"
	PortalTypeSampleType  PortalType = "SampleType"
	PortalTypeSamplePoint PortalType = "SamplePoint"
	PortalTypeWard        PortalType = "Ward"
	PortalTypeService     PortalType = "AnalysisService"
	PortalTypeProfile     PortalType = "AnalysisProfile"
	PortalTypeSpec        PortalType = "AnalysisSpec"
)

// Well-known folders new objects are created in when they have no natural
// parent object.
const (
	FolderClients  = "clients"
	FolderPatients = "patients"
	FolderSetup    = "setup"
)

// Object is a persisted local LIMS entity.
//
// Type specific values live in Fields, keyed by the schema field name
// (e.g. "MedicalRecordNumber", "Keyword"). Version is bumped by every
// update and used for optimistic locking.
type Object struct {
	UID          string         `json:"uid"`
	ID           string         `json:"id"`
	PortalType   PortalType     `json:"portal_type"`
	ParentUID    string         `json:"parent_uid"`
	Title        string         `json:"title"`
	TamanuUID    string         `json:"tamanu_uid,omitempty"`
	Tamanu       TamanuStorage  `json:"tamanu"`
	ReviewStatus string         `json:"review_status"`
	Creator      string         `json:"creator"`
	Fields       map[string]any `json:"fields"`
	Security     Security       `json:"security"`
	CreatedAt    time.Time      `json:"created_at"`
	ModifiedAt   time.Time      `json:"modified_at"`
	Version      int64          `json:"version"`
}

// TamanuStorage keeps the raw remote payload an object was last synced from,
// the host it came from and the remote modification time of that payload.
type TamanuStorage struct {
	Data     map[string]any `json:"data,omitempty"`
	Host     string         `json:"host,omitempty"`
	Modified time.Time      `json:"modified,omitempty"`
	// ReportID is the DiagnosticReport id issued for this object when no
	// results report exists yet, so later notifications reuse it.
	ReportID string `json:"report_id,omitempty"`
}

// IsTamanuContent reports whether the object is linked to a remote resource.
func (o Object) IsTamanuContent() bool {
	return o.TamanuUID != ""
}

// String returns the value of a string field, or "" when unset.
func (o Object) String(field string) string {
	if o.Fields == nil {
		return ""
	}
	if v, ok := o.Fields[field].(string); ok {
		return v
	}
	return ""
}

// Bool returns the value of a boolean field.
func (o Object) Bool(field string) bool {
	if o.Fields == nil {
		return false
	}
	v, _ := o.Fields[field].(bool)
	return v
}

// Strings returns a string list field. JSON decoded lists ([]any) are
// converted element-wise.
func (o Object) Strings(field string) []string {
	if o.Fields == nil {
		return nil
	}
	switch v := o.Fields[field].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Set stores value under field, allocating Fields when needed.
func (o *Object) Set(field string, value any) {
	if o.Fields == nil {
		o.Fields = make(map[string]any)
	}
	o.Fields[field] = value
}

// ObjectQuery describes a catalog search. Zero-valued members are ignored.
// Results are always sorted by creation date, newest first.
type ObjectQuery struct {
	PortalType PortalType
	Title      string
	// TitleInsensitive compares Title case-insensitively, ignoring
	// surrounding whitespace.
	TitleInsensitive bool
	ParentUID        string
	TamanuUID        string
	ReviewStatus     string
	// Fields filters on exact string values stored in Object.Fields.
	Fields map[string]string
	Limit  uint64
}

// Field names of clients and contacts.
const (
	FieldName         = "Name"
	FieldFirstname    = "Firstname"
	FieldMiddlename   = "Middlename"
	FieldSurname      = "Surname"
	FieldFullname     = "Fullname"
	FieldEmailAddress = "EmailAddress"
)
