// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/MKhiriev/lims-tamanu-bridge/internal/logger"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/resource"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/store"
	"github.com/MKhiriev/lims-tamanu-bridge/models"
)

// Resolver maps remote resources to their local counterparts, linking or
// creating them when needed. A Resolver is bound to one unit of work.
//
// Every lookup follows the same steps: the object already linked to the
// remote uid, else a lookup by the domain key (linked on success), else a
// new object.
type Resolver struct {
	session     resource.ReferenceResolver
	objects     store.ObjectRepository
	writer      *objectWriter
	serviceUser string
}

// newResolver returns a Resolver writing through repos.
func newResolver(repos *store.Repositories, session resource.ReferenceResolver, writer *objectWriter, serviceUser string) *Resolver {
	return &Resolver{
		session:     session,
		objects:     repos.Objects,
		writer:      writer,
		serviceUser: serviceUser,
	}
}

type lookupFunc func(ctx context.Context) (*models.Object, error)

type createFunc func(ctx context.Context) *models.Object

// resolveLinked runs the linked, lookup, create sequence for res.
func (r *Resolver) resolveLinked(ctx context.Context, res *resource.Resource, lookup lookupFunc, create createFunc) (Resolution, error) {
	uid := res.UID()
	if uid != "" {
		obj, err := r.objects.FindByTamanuUID(ctx, uid)
		if err != nil {
			return Resolution{}, fmt.Errorf("find object linked to %s: %w", uid, err)
		}
		if obj != nil {
			return resolved(obj, false), nil
		}
	}

	obj, err := lookup(ctx)
	if err != nil {
		return Resolution{}, err
	}
	if obj != nil {
		if uid != "" && !obj.IsTamanuContent() {
			r.writer.attach(obj, res)
			if err = r.writer.save(ctx, obj); err != nil {
				return Resolution{}, fmt.Errorf("link %s to %s: %w", obj.UID, uid, err)
			}
			linked := resolved(obj, false)
			linked.Linked = true
			return linked, nil
		}
		return resolved(obj, false), nil
	}

	obj = create(ctx)
	if uid != "" {
		r.writer.attach(obj, res)
	}
	if err = r.writer.insert(ctx, obj); err != nil {
		return Resolution{}, err
	}
	return resolved(obj, true), nil
}

// findOne returns the newest object matching query.
func (r *Resolver) findOne(ctx context.Context, query models.ObjectQuery) (*models.Object, error) {
	query.Limit = 1
	found, err := r.objects.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", query.PortalType, err)
	}
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

// findByTitle matches the title exactly first, then ignoring case and
// surrounding whitespace.
func (r *Resolver) findByTitle(ctx context.Context, portalType models.PortalType, title string) (*models.Object, error) {
	obj, err := r.findOne(ctx, models.ObjectQuery{PortalType: portalType, Title: title})
	if err != nil || obj != nil {
		return obj, err
	}
	return r.findOne(ctx, models.ObjectQuery{PortalType: portalType, Title: title, TitleInsensitive: true})
}

// Client resolves the organization responsible for the encounter of sr.
func (r *Resolver) Client(ctx context.Context, sr *resource.ServiceRequest) (Resolution, error) {
	org, err := sr.ServiceProvider(ctx, r.session)
	if err != nil {
		return Resolution{}, fmt.Errorf("resolve service provider: %w", err)
	}
	if org == nil {
		return skipped(models.SkipMissingKey, "no service provider for %s", sr.UID()), nil
	}
	name := strings.TrimSpace(org.Name())
	if name == "" {
		return skipped(models.SkipMissingKey, "service provider %s has no name", org.UID()), nil
	}

	return r.resolveLinked(ctx, org.Resource,
		func(ctx context.Context) (*models.Object, error) {
			return r.findOne(ctx, models.ObjectQuery{PortalType: models.PortalTypeClient, Title: name})
		},
		func(ctx context.Context) *models.Object {
			obj := r.writer.newObject(ctx, models.PortalTypeClient, models.FolderClients, name)
			obj.Set(models.FieldName, name)
			return obj
		})
}

// Contact resolves the requester of sr among the contacts of client.
func (r *Resolver) Contact(ctx context.Context, sr *resource.ServiceRequest, client *models.Object) (Resolution, error) {
	practitioner, err := sr.Requester(ctx, r.session)
	if err != nil {
		return Resolution{}, fmt.Errorf("resolve requester: %w", err)
	}
	if practitioner == nil {
		return skipped(models.SkipMissingKey, "no requester for %s", sr.UID()), nil
	}
	name := practitioner.NameInfo()
	fullname := name.FullName()
	if fullname == "" {
		return skipped(models.SkipMissingKey, "requester %s has no name", practitioner.UID()), nil
	}

	return r.resolveLinked(ctx, practitioner.Resource,
		func(ctx context.Context) (*models.Object, error) {
			return r.findOne(ctx, models.ObjectQuery{
				PortalType: models.PortalTypeContact,
				ParentUID:  client.UID,
				Fields:     map[string]string{models.FieldFullname: fullname},
			})
		},
		func(ctx context.Context) *models.Object {
			obj := r.writer.newObject(ctx, models.PortalTypeContact, client.UID, fullname)
			obj.Set(models.FieldFirstname, name.Firstname)
			obj.Set(models.FieldMiddlename, name.Middlename)
			obj.Set(models.FieldSurname, name.Surname)
			obj.Set(models.FieldFullname, fullname)
			obj.Set(models.FieldEmailAddress, practitioner.Email())
			return obj
		})
}

// Patient resolves a patient by its medical record number, active or not.
// New patients are locked down to the service user.
func (r *Resolver) Patient(ctx context.Context, patient *resource.Patient) (Resolution, error) {
	if patient == nil {
		return skipped(models.SkipMissingKey, "no patient"), nil
	}
	mrn := strings.TrimSpace(patient.MRN())
	if mrn == "" {
		return skipped(models.SkipMissingKey, "patient %s has no MRN", patient.UID()), nil
	}

	return r.resolveLinked(ctx, patient.Resource,
		func(ctx context.Context) (*models.Object, error) {
			return r.findOne(ctx, models.ObjectQuery{
				PortalType: models.PortalTypePatient,
				Fields:     map[string]string{resource.PatientFieldMRN: mrn},
			})
		},
		func(ctx context.Context) *models.Object {
			obj := r.writer.newObject(ctx, models.PortalTypePatient, models.FolderPatients, patient.NameInfo().FullName())
			for field, value := range patient.ObjectInfo() {
				obj.Set(field, value)
			}
			lockDown(obj, r.serviceUser)
			return obj
		})
}

// SampleType resolves the sample type of specimen by title. Sample types
// are never linked.
func (r *Resolver) SampleType(ctx context.Context, specimen *resource.Specimen) (Resolution, error) {
	if specimen == nil {
		return skipped(models.SkipMissingSpecimen, "no specimen"), nil
	}
	info, err := specimen.SampleTypeInfo()
	if err != nil {
		return skipped(models.SkipMissingSampleType, "%v", err), nil
	}
	title := strings.TrimSpace(info.Title)
	if title == "" {
		return skipped(models.SkipMissingKey, "specimen %s has no sample type title", specimen.UID()), nil
	}

	obj, err := r.findByTitle(ctx, models.PortalTypeSampleType, title)
	if err != nil || obj != nil {
		return resolved(obj, false), err
	}

	obj = r.writer.newObject(ctx, models.PortalTypeSampleType, models.FolderSetup, title)
	prefix := strings.TrimSpace(info.Prefix)
	if prefix == "" {
		prefix = derivePrefix(title)
	}
	obj.Set(models.FieldPrefix, prefix)
	if err = r.writer.insert(ctx, obj); err != nil {
		return Resolution{}, err
	}
	return resolved(obj, true), nil
}

// SamplePoint resolves the sample point of specimen from its body site. It
// is optional: a specimen without body site resolves to nothing.
func (r *Resolver) SamplePoint(ctx context.Context, specimen *resource.Specimen) (Resolution, error) {
	if specimen == nil {
		return Resolution{}, nil
	}
	info := specimen.SamplePointInfo()
	title := strings.TrimSpace(info.Title)
	if title == "" {
		return Resolution{}, nil
	}

	obj, err := r.findByTitle(ctx, models.PortalTypeSamplePoint, title)
	if err != nil || obj != nil {
		return resolved(obj, false), err
	}

	obj = r.writer.newObject(ctx, models.PortalTypeSamplePoint, models.FolderSetup, title)
	obj.Set(models.FieldCode, info.Code)
	if err = r.writer.insert(ctx, obj); err != nil {
		return Resolution{}, err
	}
	return resolved(obj, true), nil
}

// Ward resolves the last ward the patient of sr was located in. Wards have
// no remote counterpart and are never linked.
func (r *Resolver) Ward(ctx context.Context, sr *resource.ServiceRequest) (Resolution, error) {
	encounter, err := sr.Encounter(ctx, r.session)
	if err != nil {
		return Resolution{}, fmt.Errorf("resolve encounter: %w", err)
	}
	if encounter == nil {
		return Resolution{}, nil
	}
	title := strings.TrimSpace(encounter.WardName())
	if title == "" {
		return Resolution{}, nil
	}

	obj, err := r.findOne(ctx, models.ObjectQuery{PortalType: models.PortalTypeWard, Title: title})
	if err != nil || obj != nil {
		return resolved(obj, false), err
	}

	obj = r.writer.newObject(ctx, models.PortalTypeWard, models.FolderSetup, title)
	if err = r.writer.insert(ctx, obj); err != nil {
		return Resolution{}, err
	}
	return resolved(obj, true), nil
}

// Services resolves the tests requested in the order details of sr: by
// keyword, else by title. Tests without a match are left out; when none
// matches, the request is skipped.
func (r *Resolver) Services(ctx context.Context, sr *resource.ServiceRequest) (Resolution, error) {
	log := logger.FromContext(ctx)

	var services []*models.Object
	for _, concept := range conceptList(sr.OrderDetail()) {
		obj, err := r.matchCoded(ctx, models.PortalTypeService, models.FieldKeyword, resource.SenaiteTestsSystem, concept)
		if err != nil {
			return Resolution{}, err
		}
		if obj == nil {
			log.Warn().
				Str("func", "Resolver.Services").
				Str("service_request", sr.UID()).
				Strs("codes", resource.GetCodes(concept, "")).
				Msg("no service matches the requested test")
			continue
		}
		services = appendUnique(services, obj)
	}

	if len(services) == 0 {
		return skipped(models.SkipNoMatch, "no service matches the tests of %s", sr.UID()), nil
	}
	return Resolution{Objects: services}, nil
}

// Profiles resolves the panel requested in the code of sr: by profile key,
// else by title. Profiles are optional.
func (r *Resolver) Profiles(ctx context.Context, sr *resource.ServiceRequest) (Resolution, error) {
	var profiles []*models.Object
	for _, concept := range conceptList(sr.Code()) {
		obj, err := r.matchCoded(ctx, models.PortalTypeProfile, models.FieldProfileKey, resource.SenaiteProfilesSystem, concept)
		if err != nil {
			return Resolution{}, err
		}
		if obj != nil {
			profiles = appendUnique(profiles, obj)
		}
	}
	return Resolution{Objects: profiles}, nil
}

// matchCoded finds the object whose keyField equals a code of concept in
// system, else the object titled exactly after the display of one of those
// codings. Codings of other systems are ignored.
func (r *Resolver) matchCoded(ctx context.Context, portalType models.PortalType, keyField, system string, concept any) (*models.Object, error) {
	for _, code := range resource.GetCodes(concept, system) {
		obj, err := r.findOne(ctx, models.ObjectQuery{
			PortalType: portalType,
			Fields:     map[string]string{keyField: code},
		})
		if err != nil || obj != nil {
			return obj, err
		}
	}
	for _, coding := range resource.GetCodings(concept, system) {
		title := strings.TrimSpace(coding.Display)
		if title == "" {
			continue
		}
		obj, err := r.findOne(ctx, models.ObjectQuery{PortalType: portalType, Title: title})
		if err != nil || obj != nil {
			return obj, err
		}
	}
	return nil, nil
}

// conceptList returns v as a list of concepts.
func conceptList(v any) []any {
	switch c := v.(type) {
	case nil:
		return nil
	case []any:
		return c
	case map[string]any:
		return []any{c}
	}
	return nil
}

func appendUnique(objs []*models.Object, obj *models.Object) []*models.Object {
	if slices.ContainsFunc(objs, func(o *models.Object) bool { return o.UID == obj.UID }) {
		return objs
	}
	return append(objs, obj)
}

// derivePrefix builds a sample id prefix from the initials of title.
func derivePrefix(title string) string {
	var b strings.Builder
	for _, word := range strings.Fields(title) {
		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				b.WriteRune(unicode.ToUpper(r))
				break
			}
		}
	}
	if b.Len() < 2 {
		letters := strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				return unicode.ToUpper(r)
			}
			return -1
		}, title)
		if runes := []rune(letters); len(runes) > 3 {
			return string(runes[:3])
		}
		return letters
	}
	return b.String()
}
