// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/MKhiriev/lims-tamanu-bridge/internal/logger"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/resource"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/store"
	"github.com/MKhiriev/lims-tamanu-bridge/models"
)

// skipStatuses are the request statuses no new sample is created for.
var skipStatuses = []string{
	resource.StatusRevoked,
	resource.StatusDraft,
	resource.StatusEnteredInError,
	resource.StatusCompleted,
}

// priorities maps the request priority to the sample priority, 1 being the
// most urgent.
var priorities = map[string]string{
	"stat":    "1",
	"asap":    "3",
	"routine": "5",
}

const defaultPriority = "5"

func samplePriority(priority string) string {
	if p, ok := priorities[strings.ToLower(priority)]; ok {
		return p
	}
	return defaultPriority
}

// sampleRefs are the local objects a sample of a request refers to.
type sampleRefs struct {
	client      *models.Object
	contact     *models.Object
	patient     *models.Object
	sampleType  *models.Object
	samplePoint Resolution
	ward        Resolution
	services    Resolution
	profiles    Resolution
}

// syncServiceRequest creates or edits the sample of a lab request.
func (s *SyncService) syncServiceRequest(ctx context.Context, repos *store.Repositories, res *resource.Resource) (syncOutcome, error) {
	sr := resource.AsServiceRequest(res)

	if !slices.Contains(resource.GetCodes(sr.Category(), resource.SNOMEDSystem), resource.SNOMEDLaboratoryProcedure) {
		return skipOutcome(models.SkipCategory, true, "category is not a laboratory procedure"), nil
	}

	specimen, err := sr.Specimen(ctx, s.session)
	if err != nil {
		return syncOutcome{}, fmt.Errorf("resolve specimen: %w", err)
	}
	if specimen == nil {
		return skipOutcome(models.SkipMissingSpecimen, false, "no specimen"), nil
	}
	if !specimen.HasType() {
		return skipOutcome(models.SkipMissingSampleType, false, "specimen %s without type", specimen.UID()), nil
	}

	sample, err := repos.Objects.FindByTamanuUID(ctx, sr.UID())
	if err != nil {
		return syncOutcome{}, fmt.Errorf("find sample of %s: %w", sr.UID(), err)
	}
	if sample == nil && slices.Contains(skipStatuses, sr.Status()) {
		return skipOutcome(models.SkipStatus, false, "no sample for a %s request", sr.Status()), nil
	}
	if sample != nil {
		if !isNewer(sample, res) {
			return skipOutcome(models.SkipSampleUpToDate, true, "sample %s is up to date", sample.ID), nil
		}
		if models.IsSampleFinal(sample.ReviewStatus) {
			return skipOutcome(models.SkipFinalStatus, true, "sample %s is %s", sample.ID, sample.ReviewStatus), nil
		}
	}

	writer := newObjectWriter(repos, s.uids, s.session.Host())
	resolver := newResolver(repos, s.session, writer, s.opts.ServiceUser)

	refs, skip, err := s.resolveSampleRefs(ctx, resolver, sr, specimen)
	if err != nil || skip.Skipped() {
		return skipResolution(skip), err
	}

	values, err := s.sampleValues(ctx, repos, sr, specimen, refs)
	if err != nil {
		return syncOutcome{}, err
	}

	action := actionEdited
	if sample == nil {
		action = actionCreated
		if sample, err = s.createSample(ctx, repos, writer, res, refs, values); err != nil {
			return syncOutcome{}, err
		}
	} else {
		written := writer.editSample(ctx, sample, values)
		writer.attach(sample, res)
		if err = writer.save(ctx, sample); err != nil {
			return syncOutcome{}, err
		}
		logger.FromContext(ctx).Debug().
			Str("func", "SyncService.syncServiceRequest").
			Str("sample", sample.ID).
			Strs("fields", written).
			Msg("sample edited")
	}

	if transition, ok := remoteStatusTransitions[sr.Status()]; ok {
		if _, err = s.workflow.DoTransition(ctx, repos, sample, transition); err != nil {
			return syncOutcome{}, err
		}
	}

	return syncOutcome{action: action, cache: true}, nil
}

// resolveSampleRefs resolves every object the sample refers to. The
// returned Resolution is the first skip met.
func (s *SyncService) resolveSampleRefs(ctx context.Context, resolver *Resolver, sr *resource.ServiceRequest, specimen *resource.Specimen) (sampleRefs, Resolution, error) {
	var refs sampleRefs

	client, err := resolver.Client(ctx, sr)
	if err != nil || client.Skipped() {
		return refs, client, err
	}
	refs.client = client.Object()

	contact, err := resolver.Contact(ctx, sr, refs.client)
	if err != nil || contact.Skipped() {
		return refs, contact, err
	}
	refs.contact = contact.Object()

	patientRes, err := sr.PatientResource(ctx, s.session)
	if err != nil {
		return refs, Resolution{}, fmt.Errorf("resolve subject: %w", err)
	}
	patient, err := resolver.Patient(ctx, patientRes)
	if err != nil || patient.Skipped() {
		return refs, patient, err
	}
	refs.patient = patient.Object()

	sampleType, err := resolver.SampleType(ctx, specimen)
	if err != nil || sampleType.Skipped() {
		return refs, sampleType, err
	}
	refs.sampleType = sampleType.Object()

	if refs.samplePoint, err = resolver.SamplePoint(ctx, specimen); err != nil {
		return refs, Resolution{}, err
	}
	if refs.ward, err = resolver.Ward(ctx, sr); err != nil {
		return refs, Resolution{}, err
	}
	if refs.profiles, err = resolver.Profiles(ctx, sr); err != nil {
		return refs, Resolution{}, err
	}

	refs.services, err = resolver.Services(ctx, sr)
	if err != nil {
		return refs, Resolution{}, err
	}
	if refs.services.Skipped() {
		if len(refs.profiles.Objects) == 0 {
			return refs, refs.services, nil
		}
		refs.services = Resolution{}
	}

	return refs, Resolution{}, nil
}

// sampleValues returns the field values of the sample of sr.
func (s *SyncService) sampleValues(ctx context.Context, repos *store.Repositories, sr *resource.ServiceRequest, specimen *resource.Specimen, refs sampleRefs) (map[string]any, error) {
	specification, err := uniqueSpecification(ctx, repos, refs.sampleType)
	if err != nil {
		return nil, err
	}
	sampler, err := s.sampler(ctx, repos, specimen)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		models.FieldClient:              refs.client.UID,
		models.FieldContact:             refs.contact.UID,
		models.FieldSampleType:          refs.sampleType.UID,
		models.FieldSamplePoint:         refs.samplePoint.UID(),
		models.FieldDateSampled:         specimen.DateSampled(),
		models.FieldProfiles:            refs.profiles.UIDs(),
		models.FieldMedicalRecordNumber: refs.patient.String(resource.PatientFieldMRN),
		models.FieldPatientFullName:     refs.patient.Title,
		models.FieldDateOfBirth:         refs.patient.String(resource.PatientFieldBirthdate),
		models.FieldSex:                 refs.patient.String(resource.PatientFieldSex),
		models.FieldPriority:            samplePriority(sr.Priority()),
		models.FieldClientSampleID:      sr.LabTestID(),
		models.FieldCollector:           specimen.CollectorName(),
		models.FieldSampler:             sampler,
		models.FieldSpecification:       specification,
		models.FieldWard:                refs.ward.UID(),
		models.FieldClinicalInformation: sr.ClinicalInformation(),
	}, nil
}

// uniqueSpecification returns the specification of sampleType when there
// is exactly one.
func uniqueSpecification(ctx context.Context, repos *store.Repositories, sampleType *models.Object) (string, error) {
	specs, err := repos.Objects.Search(ctx, models.ObjectQuery{
		PortalType: models.PortalTypeSpec,
		Fields:     map[string]string{models.FieldSampleType: sampleType.UID},
		Limit:      2,
	})
	if err != nil {
		return "", fmt.Errorf("search specifications: %w", err)
	}
	if len(specs) != 1 {
		return "", nil
	}
	return specs[0].UID, nil
}

// sampler returns the LIMS user who collected specimen, matched by the
// collector email.
func (s *SyncService) sampler(ctx context.Context, repos *store.Repositories, specimen *resource.Specimen) (string, error) {
	collector, err := specimen.Collector(ctx, s.session)
	if err != nil {
		return "", fmt.Errorf("resolve collector: %w", err)
	}
	if collector == nil || collector.Email() == "" {
		return "", nil
	}
	user, err := repos.Users.FindUserByName(ctx, collector.Email())
	if errors.Is(err, store.ErrUserNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return user.Name, nil
}

// createSample creates the sample with one analysis per requested service
// and per service of the requested profiles.
func (s *SyncService) createSample(
	ctx context.Context,
	repos *store.Repositories,
	writer *objectWriter,
	res *resource.Resource,
	refs sampleRefs,
	values map[string]any,
) (*models.Object, error) {
	sample := writer.newObject(ctx, models.PortalTypeSample, refs.client.UID, "")
	for field, value := range values {
		sample.Set(field, value)
	}
	sample.Set(models.FieldPrefix, refs.sampleType.String(models.FieldPrefix))
	sample.ReviewStatus = models.SampleStatusDue

	id, err := writer.nextID(ctx, sample)
	if err != nil {
		return nil, err
	}
	sample.ID = id
	sample.Title = id

	writer.attach(sample, res)
	if err = writer.insert(ctx, sample); err != nil {
		return nil, err
	}

	services, err := sampleServices(ctx, repos, refs)
	if err != nil {
		return nil, err
	}
	for _, service := range services {
		analysis := writer.newObject(ctx, models.PortalTypeAnalysis, sample.UID, service.Title)
		analysis.ID = service.String(models.FieldKeyword)
		analysis.ReviewStatus = models.AnalysisStatusUnassigned
		for _, field := range []string{models.FieldKeyword, models.FieldUnit, models.FieldStringResult, models.FieldResultOptions} {
			if v, ok := service.Fields[field]; ok {
				analysis.Set(field, v)
			}
		}
		if err = writer.insert(ctx, analysis); err != nil {
			return nil, err
		}
	}

	logger.FromContext(ctx).Info().
		Str("func", "SyncService.createSample").
		Str("sample", sample.ID).
		Str("service_request", res.UID()).
		Int("analyses", len(services)).
		Msg("sample created")
	return sample, nil
}

// sampleServices returns the requested services followed by the services
// of the requested profiles, without duplicates.
func sampleServices(ctx context.Context, repos *store.Repositories, refs sampleRefs) ([]*models.Object, error) {
	services := slices.Clone(refs.services.Objects)
	for _, profile := range refs.profiles.Objects {
		for _, uid := range profile.Strings(models.FieldServices) {
			service, err := repos.Objects.Get(ctx, uid)
			if errors.Is(err, store.ErrNotFound) {
				logger.FromContext(ctx).Warn().
					Str("func", "sampleServices").
					Str("profile", profile.UID).
					Str("service", uid).
					Msg("profile refers to a missing service")
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("get service %s: %w", uid, err)
			}
			services = appendUnique(services, service)
		}
	}
	return services, nil
}
