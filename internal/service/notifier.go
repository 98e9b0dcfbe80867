// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/lims-tamanu-bridge/internal/adapter"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/logger"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/store"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/utils"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/validators"
	"github.com/MKhiriev/lims-tamanu-bridge/models"
)

// Notifier sends DiagnosticReports about samples ordered by the remote
// system. Notifications are queued by [Notifier.Notify] and sent by
// [Notifier.Process] when the queue is consumed.
type Notifier struct {
	queue            *TaskQueue
	sessions         adapter.SessionProvider
	validator        validators.Validator
	uids             *utils.UUIDGenerator
	sendObservations bool

	logger *logger.Logger
}

// NewNotifier constructs a Notifier. sessions may be nil when no remote
// system is configured: processing then never sends anything.
func NewNotifier(queue *TaskQueue, sessions adapter.SessionProvider, sendObservations bool, logger *logger.Logger) *Notifier {
	return &Notifier{
		queue:            queue,
		sessions:         sessions,
		validator:        validators.NewDiagnosticReportValidator(),
		uids:             utils.NewUUIDGenerator(),
		sendObservations: sendObservations,
		logger:           logger,
	}
}

// Notify queues a DiagnosticReport notification for sample. It reports
// false, queueing nothing, when neither the sample nor the sample it is a
// retest of came from the remote system.
func (n *Notifier) Notify(ctx context.Context, repos *store.Repositories, sample *models.Object) (bool, error) {
	if sample.PortalType != models.PortalTypeSample {
		return false, fmt.Errorf("%w: %s is %s", ErrNotASample, sample.UID, sample.PortalType)
	}

	root, err := NewLineage(repos.Objects).Root(ctx, sample)
	if err != nil {
		return false, err
	}
	if !root.IsTamanuContent() {
		logger.FromContext(ctx).Debug().
			Str("func", "Notifier.Notify").
			Str("sample", sample.ID).
			Msg("sample is not linked to a remote resource, not notified")
		return false, nil
	}

	return n.queue.Enqueue(ctx, repos, TaskNotifyDiagnosticReport, sample)
}

// OnTransition notifies the remote system about the results of a sample
// after its review status changed.
func (n *Notifier) OnTransition(ctx context.Context, repos *store.Repositories, sample *models.Object, transition Transition) error {
	if transition == TransitionCancel || transition == TransitionReject {
		return nil
	}
	_, err := n.Notify(ctx, repos, sample)
	return err
}

// OnReportCreated notifies every sample covered by a new results report.
// It returns the number of notifications queued.
func (n *Notifier) OnReportCreated(ctx context.Context, repos *store.Repositories, report *models.Object) (int, error) {
	log := logger.FromContext(ctx)

	queued := 0
	for _, uid := range (models.Report{Object: *report}).ContainedSamples() {
		sample, err := repos.Objects.Get(ctx, uid)
		if errors.Is(err, store.ErrNotFound) {
			log.Warn().Str("func", "Notifier.OnReportCreated").Str("report", report.UID).Str("sample", uid).Msg("sample of report not found")
			continue
		}
		if err != nil {
			return queued, fmt.Errorf("load sample %s: %w", uid, err)
		}
		added, err := n.Notify(ctx, repos, sample)
		if err != nil {
			return queued, err
		}
		if added {
			queued++
		}
	}
	return queued, nil
}

// Process sends the DiagnosticReport of sample. Samples in a status that is
// not reported, or whose remote system has no session, are skipped and
// reported as not sent. The report of a retest is sent on behalf of the
// first sample of its chain, the one linked to the remote request.
func (n *Notifier) Process(ctx context.Context, repos *store.Repositories, sample *models.Object) (bool, error) {
	log := logger.FromContext(ctx)

	if sample.PortalType != models.PortalTypeSample {
		return false, fmt.Errorf("%w: %s is %s", ErrNotASample, sample.UID, sample.PortalType)
	}

	report, err := lastReport(ctx, repos.Objects, sample)
	if err != nil {
		return false, err
	}

	status, ok := ReportStatus(sample.ReviewStatus, report != nil)
	if !ok {
		log.Debug().
			Str("func", "Notifier.Process").
			Str("sample", sample.ID).
			Str("status", sample.ReviewStatus).
			Msg("status is not reported")
		return false, nil
	}

	target, err := NewLineage(repos.Objects).Root(ctx, sample)
	if err != nil {
		return false, err
	}
	if target.UID != sample.UID {
		log.Debug().
			Str("func", "Notifier.Process").
			Str("sample", sample.ID).
			Str("predecessor", target.ID).
			Msg("notifying on behalf of the invalidated sample")
	}

	return n.send(ctx, repos, target, sample, report, status)
}

// send posts the report of source to the remote request target is linked
// to.
func (n *Notifier) send(ctx context.Context, repos *store.Repositories, target, source, report *models.Object, status string) (bool, error) {
	log := logger.FromContext(ctx)

	if !target.IsTamanuContent() {
		log.Debug().Str("func", "Notifier.send").Str("sample", target.ID).Msg("sample is not linked, nothing to send")
		return false, nil
	}

	var session adapter.Session
	ok := false
	if n.sessions != nil {
		session, ok = n.sessions.SessionFor(ctx, target.Tamanu.Host)
	}
	if !ok {
		log.Warn().
			Str("func", "Notifier.send").
			Str("sample", target.ID).
			Str("host", target.Tamanu.Host).
			Msg("no session for the remote system of the sample")
		return false, nil
	}

	payload, err := n.buildReport(ctx, repos, target, source, report, status)
	if err != nil {
		return false, err
	}
	if err = n.validator.Validate(ctx, payload); err != nil {
		log.Err(err).Str("func", "Notifier.send").Str("sample", source.ID).Msg("invalid diagnostic report, not sent")
		return false, nil
	}

	if _, err = session.Post(ctx, models.ResourceTypeDiagnosticReport, payload); err != nil {
		return false, fmt.Errorf("post diagnostic report of %s: %w", source.ID, err)
	}

	log.Info().
		Str("func", "Notifier.send").
		Str("sample", source.ID).
		Str("report", payload.ID).
		Str("status", payload.Status).
		Int("observations", len(payload.Results)).
		Msg("diagnostic report sent")
	return true, nil
}

// lastReport returns the newest results report of sample, or nil.
func lastReport(ctx context.Context, objects store.ObjectRepository, sample *models.Object) (*models.Object, error) {
	reports, err := objects.Search(ctx, models.ObjectQuery{
		PortalType: models.PortalTypeReport,
		ParentUID:  sample.UID,
		Limit:      1,
	})
	if err != nil {
		return nil, fmt.Errorf("search reports of %s: %w", sample.UID, err)
	}
	if len(reports) == 0 {
		return nil, nil
	}
	return reports[0], nil
}
