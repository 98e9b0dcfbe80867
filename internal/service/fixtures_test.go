// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"
	"testing"

	"github.com/MKhiriev/lims-tamanu-bridge/internal/logger"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/resource"
	"github.com/MKhiriev/lims-tamanu-bridge/models"
)

const (
	organizationJSON = `{
		"resourceType": "Organization",
		"id": "org-1",
		"name": "Central Hospital"
	}`

	practitionerJSON = `{
		"resourceType": "Practitioner",
		"id": "pr-1",
		"name": [{"use": "official", "given": ["Jane"], "family": "Doe"}],
		"telecom": [{"system": "email", "value": "jane@example.org"}]
	}`

	encounterJSON = `{
		"resourceType": "Encounter",
		"id": "enc-1",
		"location": [
			{"location": {"display": "Emergency"}, "physicalType": {"coding": [{"code": "bu"}]}},
			{"location": {"display": "Ward A"}, "physicalType": {"coding": [{"code": "wa"}]}}
		],
		"serviceProvider": {"reference": "Organization/org-1"}
	}`

	specimenJSON = `{
		"resourceType": "Specimen",
		"id": "spec-1",
		"type": {"coding": [{"code": "BLD", "display": "Blood"}]},
		"collection": {
			"collectedDateTime": "2026-03-01T07:30:00+00:00",
			"collector": {"reference": "Practitioner/pr-1", "display": "Jane Doe"}
		}
	}`
)

func patientJSON(id, mrn, lastUpdated string) string {
	return fmt.Sprintf(`{
		"resourceType": "Patient",
		"id": %q,
		"meta": {"lastUpdated": %q},
		"identifier": [{"system": %q, "value": %q}],
		"name": [{"use": "official", "given": ["John"], "family": "Smith"}],
		"gender": "male",
		"birthDate": "1980-01-02",
		"telecom": [{"system": "phone", "value": "+679 555 0101"}]
	}`, id, lastUpdated, resource.PatientMRNSystem, mrn)
}

func serviceRequestJSON(id, status, lastUpdated string) string {
	return fmt.Sprintf(`{
		"resourceType": "ServiceRequest",
		"id": %q,
		"meta": {"lastUpdated": %q},
		"status": %q,
		"priority": "stat",
		"identifier": [{"system": %q, "value": "LR-0001"}],
		"category": [{"coding": [{"system": %q, "code": %q}]}],
		"code": {"coding": [
			{"system": %q, "code": "58410-2", "display": "CBC panel"},
			{"system": %q, "code": "CBC", "display": "CBC panel"}
		]},
		"orderDetail": [{"coding": [{"system": %q, "code": "HB", "display": "Haemoglobin"}]}],
		"note": [{"text": "fasting"}],
		"subject": {"reference": "Patient/pat-1"},
		"requester": {"reference": "Practitioner/pr-1"},
		"encounter": {"reference": "Encounter/enc-1"},
		"specimen": [{"reference": "Specimen/spec-1"}]
	}`, id, lastUpdated, status, resource.LabRequestIDSystem,
		resource.SNOMEDSystem, resource.SNOMEDLaboratoryProcedure,
		resource.LOINCSystem, resource.SenaiteProfilesSystem, resource.SenaiteTestsSystem)
}

// syncFixture is a SyncService over in-memory collaborators with the
// referenced resources of one lab order registered in the session.
type syncFixture struct {
	store    *memStore
	cache    *memCache
	session  *fakeSession
	workflow *Workflow
	sync     *SyncService
}

func newSyncFixture(t *testing.T, dry bool) *syncFixture {
	t.Helper()

	st := newMemStore()
	st.dry = dry
	st.users["jane@example.org"] = models.User{UserID: 3, Name: "jane@example.org", Roles: []string{models.RoleLabClerk}}

	session := newFakeSession()
	session.add(t, organizationJSON)
	session.add(t, practitionerJSON)
	session.add(t, encounterJSON)
	session.add(t, specimenJSON)
	session.add(t, patientJSON("pat-1", "P001", "2026-03-01T07:00:00+00:00"))

	cache := newMemCache()
	workflow := NewWorkflow()
	sync := NewSyncService(st, cache, session, workflow, SyncOptions{
		MaxRetries:   3,
		RetryBackoff: 1,
		Dry:          dry,
		ServiceUser:  "tamanu",
	}, logger.Nop())

	return &syncFixture{store: st, cache: cache, session: session, workflow: workflow, sync: sync}
}

// addService puts an analysis service in the catalog.
func (f *syncFixture) addService(uid, keyword, title string) *models.Object {
	return f.store.put(&models.Object{
		UID:        uid,
		ID:         "analysisservice-" + keyword,
		PortalType: models.PortalTypeService,
		ParentUID:  models.FolderSetup,
		Title:      title,
		Fields: map[string]any{
			models.FieldKeyword: keyword,
			models.FieldUnit:    "g/dL",
		},
	})
}

// listRequest registers a ServiceRequest returned by the remote search.
func (f *syncFixture) listRequest(t *testing.T, raw string) *resource.Resource {
	t.Helper()
	res := f.session.add(t, raw)
	f.session.list(res)
	return res
}
