// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/lims-tamanu-bridge/internal/logger"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/resource"
	"github.com/MKhiriev/lims-tamanu-bridge/models"
)

const reportUID = "0123456789abcdef0123456789abcdef"

type notifierFixture struct {
	store    *memStore
	session  *fakeSession
	notifier *Notifier
}

func newNotifierFixture(t *testing.T, sendObservations bool) *notifierFixture {
	t.Helper()
	session := newFakeSession()
	return &notifierFixture{
		store:    newMemStore(),
		session:  session,
		notifier: NewNotifier(NewTaskQueue(), fakeProvider{session: session}, sendObservations, logger.Nop()),
	}
}

// linkedSample puts a sample linked to the lab request sr-1.
func (f *notifierFixture) linkedSample(t *testing.T, uid, status string) *models.Object {
	t.Helper()
	res := decode(t, serviceRequestJSON("sr-1", resource.StatusActive, srModified))
	return f.store.put(&models.Object{
		UID:          uid,
		ID:           "BLD-0001",
		PortalType:   models.PortalTypeSample,
		ReviewStatus: status,
		TamanuUID:    "sr-1",
		Tamanu:       models.TamanuStorage{Data: res.Raw(), Host: f.session.host, Modified: res.Modified()},
		Fields:       map[string]any{},
	})
}

func (f *notifierFixture) process(t *testing.T, uid string) (bool, error) {
	t.Helper()
	return f.notifier.Process(testContext(), f.store.repositories(), f.store.get(t, uid))
}

func TestReportStatus(t *testing.T) {
	tests := []struct {
		status    string
		hasReport bool
		want      string
		ok        bool
	}{
		{models.SampleStatusDue, false, "", false},
		{models.SampleStatusReceived, false, "", false},
		{models.SampleStatusReceived, true, ReportStatusRegistered, true},
		{models.SampleStatusToBeVerified, false, ReportStatusPartial, true},
		{models.SampleStatusVerified, false, ReportStatusPreliminary, true},
		{models.SampleStatusPublished, true, ReportStatusFinal, true},
		{models.SampleStatusInvalid, false, ReportStatusEnteredInError, true},
		{models.SampleStatusCancelled, false, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			got, ok := ReportStatus(tt.status, tt.hasReport)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "final", ObservationStatus(models.AnalysisStatusPublished))
	assert.Equal(t, "cancelled", ObservationStatus(models.AnalysisStatusRetracted))
	assert.Equal(t, "partial", ObservationStatus(models.AnalysisStatusAssigned))
}

func TestNotifier_Notify(t *testing.T) {
	f := newNotifierFixture(t, false)
	linked := f.linkedSample(t, "s1", models.SampleStatusReceived)
	local := putSample(f.store, "s9", models.SampleStatusReceived)
	repos := f.store.repositories()

	added, err := f.notifier.Notify(testContext(), repos, local)
	require.NoError(t, err)
	assert.False(t, added)

	added, err = f.notifier.Notify(testContext(), repos, linked)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = f.notifier.Notify(testContext(), repos, linked)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, []string{"s1-notify_diagnostic_report"}, f.store.tasks())

	_, err = f.notifier.Notify(testContext(), repos, &models.Object{UID: "c1", PortalType: models.PortalTypeClient})
	assert.ErrorIs(t, err, ErrNotASample)
}

func TestNotifier_NotifyRetestOfLinkedSample(t *testing.T) {
	f := newNotifierFixture(t, false)
	f.linkedSample(t, "s1", models.SampleStatusInvalid)
	retest := f.store.put(&models.Object{
		UID:          "s2",
		ID:           "BLD-0001-R01",
		PortalType:   models.PortalTypeSample,
		ReviewStatus: models.SampleStatusReceived,
		Fields:       map[string]any{models.FieldInvalidated: "s1"},
	})

	added, err := f.notifier.Notify(testContext(), f.store.repositories(), retest)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []string{"s2-notify_diagnostic_report"}, f.store.tasks())
}

func TestNotifier_TransitionsQueueNotifications(t *testing.T) {
	st := newMemStore()
	session := newFakeSession()
	services := NewServices(Dependencies{Storages: st, Sessions: fakeProvider{session: session}}, logger.Nop())
	assert.Nil(t, services.Sync)

	f := &notifierFixture{store: st, session: session, notifier: services.Notifier}
	sample := f.linkedSample(t, "s1", models.SampleStatusDue)
	repos := st.repositories()

	ok, err := services.Workflow.DoTransition(testContext(), repos, sample, TransitionReceive)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"s1-notify_diagnostic_report"}, st.tasks())

	st.state.tasks = nil
	ok, err = services.Workflow.DoTransition(testContext(), repos, sample, TransitionCancel)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, st.tasks())
}

func TestNotifier_OnReportCreated(t *testing.T) {
	f := newNotifierFixture(t, false)
	f.linkedSample(t, "s1", models.SampleStatusPublished)
	report := f.store.put(&models.Object{
		UID:        reportUID,
		PortalType: models.PortalTypeReport,
		ParentUID:  "s1",
		Fields:     map[string]any{models.FieldContainedSamples: []any{"s1", "gone"}},
	})

	queued, err := f.notifier.OnReportCreated(testContext(), f.store.repositories(), report)
	require.NoError(t, err)
	assert.Equal(t, 1, queued)
}

func TestNotifier_ProcessReceivedWithoutReport(t *testing.T) {
	f := newNotifierFixture(t, true)
	f.linkedSample(t, "s1", models.SampleStatusReceived)

	sent, err := f.process(t, "s1")
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Empty(t, f.session.postedReports())
}

func TestNotifier_ProcessSendsResults(t *testing.T) {
	f := newNotifierFixture(t, true)
	f.linkedSample(t, "s1", models.SampleStatusToBeVerified)
	putAnalysis(f.store, "HB", "s1", models.AnalysisStatusToBeVerified, map[string]any{
		models.FieldKeyword: "HB",
		models.FieldUnit:    "g/dL",
		models.FieldResult:  "13.5",
	})
	putAnalysis(f.store, "COV", "s1", models.AnalysisStatusVerified, map[string]any{
		models.FieldKeyword:      "COV",
		models.FieldStringResult: true,
		models.FieldResult:       "negative",
	})
	putAnalysis(f.store, "NA", "s1", models.AnalysisStatusUnassigned, map[string]any{
		models.FieldKeyword: "NA",
	})

	sent, err := f.process(t, "s1")
	require.NoError(t, err)
	require.True(t, sent)

	reports := f.session.postedReports()
	require.Len(t, reports, 1)
	report := reports[0]
	assert.Equal(t, models.ResourceTypeDiagnosticReport, report.ResourceType)
	assert.Equal(t, ReportStatusPartial, report.Status)
	assert.Equal(t, []models.Reference{{Reference: "ServiceRequest/sr-1", Type: "ServiceRequest"}}, report.BasedOn)
	require.Len(t, report.Code.Coding, 1)
	assert.Equal(t, "58410-2", report.Code.Coding[0].Code)
	assert.Empty(t, report.PresentedForm)

	require.NotEmpty(t, report.ID)
	assert.Equal(t, report.ID, f.store.get(t, "s1").Tamanu.ReportID)

	require.Len(t, report.Results, 2)
	hb := report.Results[0]
	assert.Equal(t, "preliminary", hb.Status)
	require.NotNil(t, hb.ValueQuantity)
	assert.Equal(t, 13.5, hb.ValueQuantity.Value)
	assert.Equal(t, "g/dL", hb.ValueQuantity.Unit)
	assert.Equal(t, []string{"HB"}, resource.GetCodes(hb.Code, resource.SenaiteTestsSystem))

	cov := report.Results[1]
	assert.Equal(t, "final", cov.Status)
	require.NotNil(t, cov.ValueString)
	assert.Equal(t, "negative", *cov.ValueString)
	assert.Nil(t, cov.ValueQuantity)
	assert.Equal(t, map[string]any{"coding": []any{}}, cov.Code)

	sent, err = f.process(t, "s1")
	require.NoError(t, err)
	require.True(t, sent)
	reports = f.session.postedReports()
	require.Len(t, reports, 2)
	assert.Equal(t, report.ID, reports[1].ID)
}

func TestNotifier_ProcessPublishedReport(t *testing.T) {
	f := newNotifierFixture(t, false)
	f.linkedSample(t, "s1", models.SampleStatusPublished)
	f.store.put(&models.Object{
		UID:        reportUID,
		PortalType: models.PortalTypeReport,
		ParentUID:  "s1",
		Fields:     map[string]any{models.FieldPdf: "JVBERi0xLjQ="},
	})

	sent, err := f.process(t, "s1")
	require.NoError(t, err)
	require.True(t, sent)

	report := f.session.postedReports()[0]
	assert.Equal(t, "01234567-89ab-cdef-0123-456789abcdef", report.ID)
	assert.Equal(t, ReportStatusFinal, report.Status)
	assert.Empty(t, report.Results)
	assert.Equal(t, []models.Attachment{{ContentType: "application/pdf", Data: "JVBERi0xLjQ=", Title: "BLD-0001"}}, report.PresentedForm)
	assert.Empty(t, f.store.get(t, "s1").Tamanu.ReportID)
}

func TestNotifier_ProcessRetest(t *testing.T) {
	f := newNotifierFixture(t, true)
	f.linkedSample(t, "s1", models.SampleStatusInvalid)
	putAnalysis(f.store, "HBold", "s1", models.AnalysisStatusRetracted, map[string]any{models.FieldKeyword: "HB", models.FieldResult: "30"})
	f.store.put(&models.Object{
		UID:          "s2",
		ID:           "BLD-0001-R01",
		PortalType:   models.PortalTypeSample,
		ReviewStatus: models.SampleStatusVerified,
		Fields:       map[string]any{models.FieldInvalidated: "s1"},
	})
	putAnalysis(f.store, "HBnew", "s2", models.AnalysisStatusVerified, map[string]any{models.FieldKeyword: "HB", models.FieldResult: "12"})

	sent, err := f.process(t, "s2")
	require.NoError(t, err)
	require.True(t, sent)

	report := f.session.postedReports()[0]
	assert.Equal(t, ReportStatusPreliminary, report.Status)
	assert.Equal(t, "ServiceRequest/sr-1", report.BasedOn[0].Reference)
	require.Len(t, report.Results, 1)
	assert.Equal(t, 12.0, report.Results[0].ValueQuantity.Value)
	assert.Equal(t, report.ID, f.store.get(t, "s1").Tamanu.ReportID)
}

func TestNotifier_ProcessRetestSendsRetestContent(t *testing.T) {
	f := newNotifierFixture(t, true)
	f.linkedSample(t, "s1", models.SampleStatusInvalid)
	putAnalysis(f.store, "HBold", "s1", models.AnalysisStatusRetracted, map[string]any{models.FieldKeyword: "HB", models.FieldResult: "30"})
	f.store.put(&models.Object{
		UID:          "s2",
		ID:           "BLD-0001-R01",
		PortalType:   models.PortalTypeSample,
		ReviewStatus: models.SampleStatusPublished,
		Fields:       map[string]any{models.FieldInvalidated: "s1"},
	})
	putAnalysis(f.store, "HBnew", "s2", models.AnalysisStatusPublished, map[string]any{models.FieldKeyword: "HB", models.FieldResult: "12"})
	f.store.put(&models.Object{
		UID:        reportUID,
		PortalType: models.PortalTypeReport,
		ParentUID:  "s2",
		Fields:     map[string]any{models.FieldPdf: "JVBERi0xLjQ="},
	})

	sent, err := f.process(t, "s2")
	require.NoError(t, err)
	require.True(t, sent)

	report := f.session.postedReports()[0]
	assert.Equal(t, ReportStatusFinal, report.Status)
	assert.Equal(t, "ServiceRequest/sr-1", report.BasedOn[0].Reference)
	require.Len(t, report.Results, 1)
	assert.Equal(t, 12.0, report.Results[0].ValueQuantity.Value)
	assert.Equal(t, []models.Attachment{{ContentType: "application/pdf", Data: "JVBERi0xLjQ=", Title: "BLD-0001-R01"}}, report.PresentedForm)
}

func TestObservationCode(t *testing.T) {
	var orderDetail any
	require.NoError(t, json.Unmarshal([]byte(`[
		{"coding": [{"system": "`+resource.SenaiteTestsSystem+`", "code": "HB", "display": "Haemoglobin"}]},
		{"coding": [{"system": "`+resource.LOINCSystem+`", "code": "2345-7", "display": "Glucose"}]},
		{"coding": [{"system": "`+resource.SenaiteTestsSystem+`", "code": "NA", "display": "Sodium"}]}
	]`), &orderDetail))
	concepts := orderDetail.([]any)

	tests := []struct {
		name     string
		analysis models.Analysis
		want     map[string]any
	}{
		{
			name:     "by keyword",
			analysis: models.Analysis{Object: models.Object{Title: "Hb", Fields: map[string]any{models.FieldKeyword: "HB"}}},
			want:     concepts[0].(map[string]any),
		},
		{
			name:     "by title of a test coding",
			analysis: models.Analysis{Object: models.Object{Title: "Sodium", Fields: map[string]any{models.FieldKeyword: "NA2"}}},
			want:     concepts[2].(map[string]any),
		},
		{
			name:     "title of a loinc coding only",
			analysis: models.Analysis{Object: models.Object{Title: "Glucose", Fields: map[string]any{models.FieldKeyword: "GLU"}}},
			want:     map[string]any{"coding": []any{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, observationCode(tt.analysis, orderDetail))
		})
	}
}

func TestNotifier_ProcessNotSent(t *testing.T) {
	t.Run("no session for host", func(t *testing.T) {
		f := newNotifierFixture(t, false)
		f.linkedSample(t, "s1", models.SampleStatusVerified)
		f.store.mutate(t, "s1", func(obj *models.Object) { obj.Tamanu.Host = "https://other.example" })

		sent, err := f.process(t, "s1")
		require.NoError(t, err)
		assert.False(t, sent)
	})

	t.Run("no remote configured", func(t *testing.T) {
		f := newNotifierFixture(t, false)
		f.notifier = NewNotifier(NewTaskQueue(), nil, false, logger.Nop())
		f.linkedSample(t, "s1", models.SampleStatusVerified)

		sent, err := f.process(t, "s1")
		require.NoError(t, err)
		assert.False(t, sent)
	})

	t.Run("local sample", func(t *testing.T) {
		f := newNotifierFixture(t, false)
		putSample(f.store, "s1", models.SampleStatusVerified)

		sent, err := f.process(t, "s1")
		require.NoError(t, err)
		assert.False(t, sent)
		assert.Empty(t, f.session.postedReports())
	})

	t.Run("invalid payload", func(t *testing.T) {
		f := newNotifierFixture(t, false)
		f.linkedSample(t, "s1", models.SampleStatusVerified)
		f.store.mutate(t, "s1", func(obj *models.Object) {
			obj.Tamanu.Data["code"] = map[string]any{"coding": []any{map[string]any{"system": resource.LOINCSystem}}}
		})

		sent, err := f.process(t, "s1")
		require.NoError(t, err)
		assert.False(t, sent)
		assert.Empty(t, f.session.postedReports())
	})

	t.Run("post fails", func(t *testing.T) {
		f := newNotifierFixture(t, false)
		f.linkedSample(t, "s1", models.SampleStatusVerified)
		errPost := errors.New("connection reset")
		f.session.postErr = errPost

		sent, err := f.process(t, "s1")
		assert.ErrorIs(t, err, errPost)
		assert.False(t, sent)
	})
}

func TestNotifier_NotASample(t *testing.T) {
	f := newNotifierFixture(t, false)
	_, err := f.notifier.Process(testContext(), f.store.repositories(), &models.Object{UID: "x", PortalType: models.PortalTypeAnalysis})
	assert.ErrorIs(t, err, ErrNotASample)
}
