// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/MKhiriev/lims-tamanu-bridge/internal/logger"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/resource"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/store"
	"github.com/MKhiriev/lims-tamanu-bridge/models"
)

// Transition is a sample workflow action.
type Transition string

const (
	TransitionReceive    Transition = "receive"
	TransitionSubmit     Transition = "submit"
	TransitionVerify     Transition = "verify"
	TransitionPublish    Transition = "publish"
	TransitionInvalidate Transition = "invalidate"
	TransitionCancel     Transition = "cancel"
	TransitionReject     Transition = "reject"
)

type transitionRule struct {
	from []string
	to   string
}

var sampleTransitions = map[Transition]transitionRule{
	TransitionReceive: {
		from: []string{models.SampleStatusDue},
		to:   models.SampleStatusReceived,
	},
	TransitionSubmit: {
		from: []string{models.SampleStatusReceived},
		to:   models.SampleStatusToBeVerified,
	},
	TransitionVerify: {
		from: []string{models.SampleStatusToBeVerified},
		to:   models.SampleStatusVerified,
	},
	TransitionPublish: {
		from: []string{models.SampleStatusVerified},
		to:   models.SampleStatusPublished,
	},
	TransitionInvalidate: {
		from: []string{models.SampleStatusVerified, models.SampleStatusPublished},
		to:   models.SampleStatusInvalid,
	},
	TransitionCancel: {
		from: []string{models.SampleStatusDue, models.SampleStatusReceived},
		to:   models.SampleStatusCancelled,
	},
	TransitionReject: {
		from: []string{models.SampleStatusDue, models.SampleStatusReceived, models.SampleStatusToBeVerified},
		to:   models.SampleStatusRejected,
	},
}

// analysisStatusOnTransition is the status analyses follow their sample to.
var analysisStatusOnTransition = map[Transition]string{
	TransitionCancel: models.AnalysisStatusCancelled,
	TransitionReject: models.AnalysisStatusRejected,
}

// remoteStatusTransitions maps the status of a ServiceRequest to the
// transition applied to its sample.
var remoteStatusTransitions = map[string]Transition{
	resource.StatusRevoked:        TransitionCancel,
	resource.StatusEnteredInError: TransitionReject,
}

// TransitionSubscriber is called after a sample transition was applied,
// inside the same unit of work.
type TransitionSubscriber func(ctx context.Context, repos *store.Repositories, sample *models.Object, transition Transition) error

// Workflow applies sample transitions and notifies subscribers.
type Workflow struct {
	subscribers []TransitionSubscriber
}

// NewWorkflow returns a Workflow without subscribers.
func NewWorkflow() *Workflow {
	return &Workflow{}
}

// Subscribe registers fn to be called after every transition.
func (w *Workflow) Subscribe(fn TransitionSubscriber) {
	w.subscribers = append(w.subscribers, fn)
}

// IsAllowed reports whether transition can be applied to sample now.
func (w *Workflow) IsAllowed(sample *models.Object, transition Transition) bool {
	rule, ok := sampleTransitions[transition]
	return ok && slices.Contains(rule.from, sample.ReviewStatus)
}

// DoTransition applies transition to sample and to its analyses, then
// calls the subscribers. It reports false when the transition is not
// allowed from the current status. Subscriber failures are logged and never
// undo the transition.
func (w *Workflow) DoTransition(ctx context.Context, repos *store.Repositories, sample *models.Object, transition Transition) (bool, error) {
	log := logger.FromContext(ctx)

	if !w.IsAllowed(sample, transition) {
		log.Debug().
			Str("func", "Workflow.DoTransition").
			Str("uid", sample.UID).
			Str("status", sample.ReviewStatus).
			Str("transition", string(transition)).
			Msg("transition not allowed")
		return false, nil
	}

	if status, ok := analysisStatusOnTransition[transition]; ok {
		analyses, err := repos.Objects.Search(ctx, models.ObjectQuery{
			PortalType: models.PortalTypeAnalysis,
			ParentUID:  sample.UID,
		})
		if err != nil {
			return false, fmt.Errorf("list analyses of %s: %w", sample.UID, err)
		}
		for _, analysis := range analyses {
			if slices.Contains([]string{models.AnalysisStatusVerified, models.AnalysisStatusPublished}, analysis.ReviewStatus) {
				continue
			}
			analysis.ReviewStatus = status
			if err = repos.Objects.Update(ctx, analysis); err != nil {
				return false, fmt.Errorf("%s analysis %s: %w", transition, analysis.UID, err)
			}
		}
	}

	sample.ReviewStatus = sampleTransitions[transition].to
	if err := repos.Objects.Update(ctx, sample); err != nil {
		return false, fmt.Errorf("%s sample %s: %w", transition, sample.UID, err)
	}

	log.Info().
		Str("func", "Workflow.DoTransition").
		Str("uid", sample.UID).
		Str("id", sample.ID).
		Str("transition", string(transition)).
		Msg("transition applied")

	for _, fn := range w.subscribers {
		if err := fn(ctx, repos, sample, transition); err != nil {
			if store.IsConflict(err) {
				return true, err
			}
			log.Err(err).
				Str("func", "Workflow.DoTransition").
				Str("uid", sample.UID).
				Str("transition", string(transition)).
				Msg("transition subscriber failed")
		}
	}
	return true, nil
}
