// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/MKhiriev/lims-tamanu-bridge/internal/logger"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/resource"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/store"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/utils"
	"github.com/MKhiriev/lims-tamanu-bridge/models"
)

// objectWriter creates, edits and links local objects inside one unit of
// work.
type objectWriter struct {
	repos *store.Repositories
	uids  *utils.UUIDGenerator
	host  string
}

func newObjectWriter(repos *store.Repositories, uids *utils.UUIDGenerator, host string) *objectWriter {
	return &objectWriter{repos: repos, uids: uids, host: host}
}

// newObject returns an unsaved object owned by the acting user.
func (w *objectWriter) newObject(ctx context.Context, portalType models.PortalType, parentUID, title string) *models.Object {
	obj := &models.Object{
		UID:        w.uids.GenerateUID(),
		PortalType: portalType,
		ParentUID:  parentUID,
		Title:      title,
		Fields:     make(map[string]any),
	}
	if user, ok := utils.GetActingUserFromContext(ctx); ok {
		obj.Creator = user.Name
		obj.Security.GrantLocalRoles(user.Name, models.RoleOwner)
	}
	return obj
}

// insert assigns the object id and creates the object.
func (w *objectWriter) insert(ctx context.Context, obj *models.Object) error {
	if obj.ID == "" {
		id, err := w.nextID(ctx, obj)
		if err != nil {
			return err
		}
		obj.ID = id
	}
	if err := w.repos.Objects.Create(ctx, obj); err != nil {
		return fmt.Errorf("create %s %q: %w", obj.PortalType, obj.Title, err)
	}
	logger.FromContext(ctx).Debug().
		Str("func", "objectWriter.insert").
		Str("portal_type", string(obj.PortalType)).
		Str("uid", obj.UID).
		Str("id", obj.ID).
		Msg("object created")
	return nil
}

// save creates obj when it was never stored, updates it otherwise.
func (w *objectWriter) save(ctx context.Context, obj *models.Object) error {
	if obj.Version == 0 {
		return w.insert(ctx, obj)
	}
	if err := w.repos.Objects.Update(ctx, obj); err != nil {
		return fmt.Errorf("update %s %s: %w", obj.PortalType, obj.UID, err)
	}
	return nil
}

// nextID returns "<prefix>-<0000>" for samples and "<type>-<n>" for any
// other object.
func (w *objectWriter) nextID(ctx context.Context, obj *models.Object) (string, error) {
	key := strings.ToLower(string(obj.PortalType))
	format := "%s-%d"
	if obj.PortalType == models.PortalTypeSample {
		if prefix := obj.String(models.FieldPrefix); prefix != "" {
			key = prefix
		}
		format = "%s-%04d"
	}

	n, err := w.repos.Counters.Next(ctx, key)
	if err != nil {
		return "", fmt.Errorf("next id for %s: %w", key, err)
	}
	return fmt.Sprintf(format, key, n), nil
}

// attach links obj to res and keeps the payload it was synced from.
func (w *objectWriter) attach(obj *models.Object, res *resource.Resource) {
	obj.TamanuUID = res.UID()
	obj.Tamanu.Data = res.Raw()
	obj.Tamanu.Host = w.host
	obj.Tamanu.Modified = res.Modified()
}

// editSample writes values to a sample. Fields that are unknown to the
// sample schema, read-only, or that the acting user may not write in the
// current status are dropped. It returns the names of the fields written.
func (w *objectWriter) editSample(ctx context.Context, obj *models.Object, values map[string]any) []string {
	log := logger.FromContext(ctx)
	user, checked := utils.GetActingUserFromContext(ctx)

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	slices.Sort(names)

	written := make([]string, 0, len(names))
	for _, name := range names {
		spec, ok := models.SampleField(name)
		if !ok || spec.ReadOnly {
			log.Debug().Str("func", "objectWriter.editSample").Str("field", name).Msg("field is not writable, dropped")
			continue
		}
		permission := spec.WritePermission
		if permission == "" {
			permission = models.PermissionModifyPortalContent
		}
		if checked && !models.CheckSamplePermission(*obj, permission, user) {
			log.Debug().
				Str("func", "objectWriter.editSample").
				Str("field", name).
				Str("user", user.Name).
				Str("status", obj.ReviewStatus).
				Msg("no write permission for field, dropped")
			continue
		}
		obj.Set(name, values[name])
		written = append(written, name)
	}
	return written
}

// lockDown makes serviceUser the only owner of obj and restricts edits to
// owners.
func lockDown(obj *models.Object, serviceUser string) {
	if obj.Creator != "" && obj.Creator != serviceUser {
		obj.Security.RevokeLocalRoles(obj.Creator, models.RoleOwner)
	}
	if serviceUser != "" {
		obj.Security.GrantLocalRoles(serviceUser, models.RoleOwner)
	}
	obj.Security.ManagePermission(models.PermissionModifyPortalContent, models.RoleOwner)
}
