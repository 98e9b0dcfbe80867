// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "slices"

// Sample review statuses.
const (
	SampleStatusDue          = "sample_due"
	SampleStatusReceived     = "sample_received"
	SampleStatusToBeVerified = "to_be_verified"
	SampleStatusVerified     = "verified"
	SampleStatusPublished    = "published"
	SampleStatusInvalid      = "invalid"
	SampleStatusCancelled    = "cancelled"
	SampleStatusRejected     = "rejected"
	SampleStatusDispatched   = "dispatched"
	SampleStatusStored       = "stored"
)

// SampleFinalStatuses are the statuses in which a sample no longer accepts
// edits coming from the remote system.
var SampleFinalStatuses = []string{
	SampleStatusVerified,
	SampleStatusPublished,
	SampleStatusInvalid,
	SampleStatusCancelled,
	SampleStatusRejected,
	SampleStatusDispatched,
	SampleStatusStored,
}

// IsSampleFinal reports whether status is one of [SampleFinalStatuses].
func IsSampleFinal(status string) bool {
	return slices.Contains(SampleFinalStatuses, status)
}

// Sample schema field names.
const (
	FieldClient              = "Client"
	FieldContact             = "Contact"
	FieldSampleType          = "SampleType"
	FieldSamplePoint         = "SamplePoint"
	FieldSite                = "Site"
	FieldDateSampled         = "DateSampled"
	FieldProfiles            = "Profiles"
	FieldMedicalRecordNumber = "MedicalRecordNumber"
	FieldPatientFullName     = "PatientFullName"
	FieldDateOfBirth         = "DateOfBirth"
	FieldSex                 = "Sex"
	FieldPriority            = "Priority"
	FieldClientSampleID      = "ClientSampleID"
	FieldCollector           = "Collector"
	FieldSampler             = "Sampler"
	FieldSpecification       = "Specification"
	FieldWard                = "Ward"
	FieldClinicalInformation = "ClinicalInformation"
	FieldInvalidated         = "Invalidated"
	FieldRetest              = "Retest"
	FieldDateReceived        = "DateReceived"
)

// FieldSpec describes how a schema field may be written by edits.
type FieldSpec struct {
	Name     string
	ReadOnly bool
	// WritePermission is checked against the acting user before the field is
	// written. Empty means [PermissionModifyPortalContent].
	WritePermission string
}

// SampleSchema lists the fields of a sample. Fields not listed here are
// unknown and silently dropped by edits.
var SampleSchema = []FieldSpec{
	{Name: FieldClient, ReadOnly: true},
	{Name: FieldContact},
	{Name: FieldSampleType},
	{Name: FieldSamplePoint},
	{Name: FieldSite},
	{Name: FieldDateSampled, WritePermission: PermissionFieldEditDateSampled},
	{Name: FieldProfiles},
	{Name: FieldMedicalRecordNumber},
	{Name: FieldPatientFullName},
	{Name: FieldDateOfBirth},
	{Name: FieldSex},
	{Name: FieldPriority, WritePermission: PermissionFieldEditPriority},
	{Name: FieldClientSampleID},
	{Name: FieldCollector},
	{Name: FieldSampler},
	{Name: FieldSpecification},
	{Name: FieldWard},
	{Name: FieldClinicalInformation, WritePermission: PermissionFieldEditRemarks},
	{Name: FieldInvalidated, ReadOnly: true},
	{Name: FieldRetest, ReadOnly: true},
	{Name: FieldDateReceived, ReadOnly: true},
}

// SampleField returns the schema entry for name.
func SampleField(name string) (FieldSpec, bool) {
	for _, f := range SampleSchema {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// statusFieldPermissions narrows field permissions once a sample leaves the
// reception stage. Statuses not listed keep the object's own security.
var statusFieldPermissions = map[string]map[string][]string{
	SampleStatusToBeVerified: {
		PermissionFieldEditDateSampled: {},
		PermissionFieldEditPriority:    {RoleManager, RoleLabManager},
	},
	SampleStatusVerified: {
		PermissionFieldEditDateSampled: {},
		PermissionFieldEditPriority:    {},
		PermissionFieldEditRemarks:     {RoleManager, RoleLabManager},
	},
}

// SamplePermissionRoles returns the roles holding permission on a sample in
// the given status.
func SamplePermissionRoles(obj Object, permission string) []string {
	if perms, ok := statusFieldPermissions[obj.ReviewStatus]; ok {
		if roles, ok := perms[permission]; ok {
			return roles
		}
	}
	return obj.Security.AllowedRoles(permission)
}

// CheckSamplePermission reports whether user holds permission on the sample.
func CheckSamplePermission(obj Object, permission string, user User) bool {
	allowed := SamplePermissionRoles(obj, permission)
	roles := append(slices.Clone(user.Roles), obj.Security.LocalRoles[user.Name]...)
	for _, role := range roles {
		if slices.Contains(allowed, role) {
			return true
		}
	}
	return false
}
