// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/MKhiriev/lims-tamanu-bridge/internal/adapter"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/logger"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/resource"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/store"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/utils"
	"github.com/MKhiriev/lims-tamanu-bridge/models"
)

// ResourceKind is a remote resource type the sync knows how to handle.
type ResourceKind int

const (
	KindPatient ResourceKind = iota + 1
	KindServiceRequest
)

// ParseResourceKind returns the kind named s.
func ParseResourceKind(s string) (ResourceKind, error) {
	switch s {
	case models.ResourceTypePatient:
		return KindPatient, nil
	case models.ResourceTypeServiceRequest:
		return KindServiceRequest, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownResourceKind, s)
}

func (k ResourceKind) String() string {
	switch k {
	case KindPatient:
		return models.ResourceTypePatient
	case KindServiceRequest:
		return models.ResourceTypeServiceRequest
	}
	return fmt.Sprintf("ResourceKind(%d)", int(k))
}

// progressEvery is the number of resources between two progress entries.
const progressEvery = 10

// SyncOptions tunes a [SyncService].
type SyncOptions struct {
	// MaxRetries bounds the retries of a resource on conflicts.
	MaxRetries int
	// RetryBackoff is the wait between retries.
	RetryBackoff time.Duration
	// Dry leaves the modification cache untouched. Rolling the units of
	// work back is up to the transactor.
	Dry bool
	// ServiceUser owns patients after lock-down.
	ServiceUser string
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// SyncService pulls remote resources and writes their local counterparts.
type SyncService struct {
	storages store.Transactor
	cache    store.ModificationCache
	session  adapter.Session
	workflow *Workflow
	uids     *utils.UUIDGenerator
	opts     SyncOptions

	logger *logger.Logger
}

// NewSyncService constructs a SyncService.
func NewSyncService(
	storages store.Transactor,
	cache store.ModificationCache,
	session adapter.Session,
	workflow *Workflow,
	opts SyncOptions,
	logger *logger.Logger,
) *SyncService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if workflow == nil {
		workflow = NewWorkflow()
	}
	return &SyncService{
		storages: storages,
		cache:    cache,
		session:  session,
		workflow: workflow,
		uids:     utils.NewUUIDGenerator(),
		opts:     opts,
		logger:   logger,
	}
}

type syncAction int

const (
	actionSkipped syncAction = iota
	actionCreated
	actionEdited
)

// syncOutcome is the result of syncing one resource.
type syncOutcome struct {
	action syncAction
	skip   models.SkipReason
	detail string
	// cache is set when the remote modification time must be remembered.
	cache bool
}

func skipOutcome(reason models.SkipReason, cache bool, format string, args ...any) syncOutcome {
	return syncOutcome{action: actionSkipped, skip: reason, detail: fmt.Sprintf(format, args...), cache: cache}
}

func skipResolution(r Resolution) syncOutcome {
	return syncOutcome{action: actionSkipped, skip: r.Skip, detail: r.Detail}
}

type syncHandler func(ctx context.Context, repos *store.Repositories, res *resource.Resource) (syncOutcome, error)

// Sync fetches the resources of kind modified within since and syncs them
// one by one, each in its own unit of work. The first failing resource
// aborts the run.
func (s *SyncService) Sync(ctx context.Context, kind ResourceKind, since time.Duration) (*models.SyncReport, error) {
	log := s.logger.GetChildLogger()
	ctx = log.WithContext(ctx)

	var handler syncHandler
	switch kind {
	case KindPatient:
		handler = s.syncPatient
	case KindServiceRequest:
		handler = s.syncServiceRequest
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownResourceKind, kind)
	}

	report := models.NewSyncReport(kind.String(), s.session.Host())
	report.Dry = s.opts.Dry
	defer func() { report.Elapsed = time.Since(report.Started) }()

	resources, err := s.fetch(ctx, kind, since)
	if err != nil {
		log.Err(err).Str("func", "SyncService.Sync").Str("resource", kind.String()).Msg("error fetching resources")
		return report, err
	}
	report.Fetched = len(resources)

	log.Info().
		Str("func", "SyncService.Sync").
		Str("resource", kind.String()).
		Int("count", len(resources)).
		Msg("resources fetched")

	for i, res := range resources {
		if err = ctx.Err(); err != nil {
			return report, err
		}
		if i > 0 && i%progressEvery == 0 {
			log.Info().
				Str("func", "SyncService.Sync").
				Int("done", i).
				Int("total", len(resources)).
				Msg("sync progress")
		}

		if err = s.syncResource(ctx, report, handler, res); err != nil {
			log.Err(err).
				Str("func", "SyncService.Sync").
				Str("uid", res.UID()).
				Str("payload", res.Dump()).
				Msg("error syncing resource")
			return report, err
		}
	}

	return report, nil
}

// fetch pages through the remote resources of kind.
func (s *SyncService) fetch(ctx context.Context, kind ResourceKind, since time.Duration) ([]*resource.Resource, error) {
	query := url.Values{}
	if since > 0 {
		query.Set("_lastUpdated", "gt"+utils.FormatTimestamp(s.opts.Now().Add(-since)))
	}
	switch kind {
	case KindPatient:
		query.Set("active", "true")
	case KindServiceRequest:
		query.Set("category", resource.SNOMEDSystem+"|"+resource.SNOMEDLaboratoryProcedure)
	}
	return s.session.GetResources(ctx, kind.String(), query)
}

// syncResource runs handler for res in a retried unit of work, then
// remembers res in the modification cache.
func (s *SyncService) syncResource(ctx context.Context, report *models.SyncReport, handler syncHandler, res *resource.Resource) error {
	log := logger.FromContext(ctx)

	if s.cache.IsUpToDate(res.UID(), res.Modified()) {
		log.Debug().Str("func", "SyncService.syncResource").Str("uid", res.UID()).Msg("up to date, skipped")
		report.Skip(models.SkipUpToDate)
		return nil
	}

	var out syncOutcome
	attempts, err := RetryConflicts(ctx, s.opts.MaxRetries, s.opts.RetryBackoff, func(ctx context.Context) error {
		return s.storages.InTx(ctx, func(ctx context.Context, repos *store.Repositories) error {
			var err error
			out, err = handler(ctx, repos, res)
			return err
		})
	})
	if attempts > 1 {
		report.Retries += attempts - 1
	}
	if err != nil {
		return err
	}

	switch out.action {
	case actionCreated:
		report.Created++
	case actionEdited:
		report.Edited++
	default:
		report.Skip(out.skip)
		log.Info().
			Str("func", "SyncService.syncResource").
			Str("uid", res.UID()).
			Str("reason", string(out.skip)).
			Str("detail", out.detail).
			Msg("resource skipped")
	}

	if !out.cache || s.opts.Dry {
		return nil
	}
	if err = s.cache.Set(ctx, res.UID(), res.Modified()); err != nil {
		log.Err(err).Str("func", "SyncService.syncResource").Str("uid", res.UID()).Msg("error writing modification cache")
	}
	return nil
}

// isNewer reports whether the remote modification time is after the one
// stored with obj. Unknown times always count as newer.
func isNewer(obj *models.Object, res *resource.Resource) bool {
	stored, remote := obj.Tamanu.Modified, res.Modified()
	if stored.IsZero() || remote.IsZero() {
		return true
	}
	return remote.After(stored)
}
