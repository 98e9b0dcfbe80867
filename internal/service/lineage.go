// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/lims-tamanu-bridge/internal/store"
	"github.com/MKhiriev/lims-tamanu-bridge/models"
)

// Lineage walks invalidation chains of samples. Samples are loaded once
// into an arena keyed by uid and referenced by uid only.
type Lineage struct {
	objects store.ObjectRepository
	arena   map[string]*models.Object
}

// NewLineage returns a Lineage reading samples from objects.
func NewLineage(objects store.ObjectRepository) *Lineage {
	return &Lineage{
		objects: objects,
		arena:   make(map[string]*models.Object),
	}
}

// Add puts sample in the arena.
func (l *Lineage) Add(sample *models.Object) {
	l.arena[sample.UID] = sample
}

// Sample returns the sample with uid, or nil when it does not exist.
func (l *Lineage) Sample(ctx context.Context, uid string) (*models.Object, error) {
	if obj, ok := l.arena[uid]; ok {
		return obj, nil
	}
	obj, err := l.objects.Get(ctx, uid)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load sample %s: %w", uid, err)
	}
	l.arena[uid] = obj
	return obj, nil
}

// Predecessor returns the sample sample is a retest of, or nil.
func (l *Lineage) Predecessor(ctx context.Context, sample *models.Object) (*models.Object, error) {
	uid := sample.String(models.FieldInvalidated)
	if uid == "" {
		return nil, nil
	}
	return l.Sample(ctx, uid)
}

// Chain returns sample followed by its predecessors, oldest last.
func (l *Lineage) Chain(ctx context.Context, sample *models.Object) ([]*models.Object, error) {
	l.Add(sample)

	chain := []*models.Object{sample}
	visited := map[string]bool{sample.UID: true}
	for current := sample; ; {
		pred, err := l.Predecessor(ctx, current)
		if err != nil {
			return nil, err
		}
		if pred == nil {
			return chain, nil
		}
		if visited[pred.UID] {
			return nil, fmt.Errorf("%w: %s", ErrLineageCycle, pred.UID)
		}
		visited[pred.UID] = true
		chain = append(chain, pred)
		current = pred
	}
}

// Root returns the first sample of the chain of sample.
func (l *Lineage) Root(ctx context.Context, sample *models.Object) (*models.Object, error) {
	chain, err := l.Chain(ctx, sample)
	if err != nil {
		return nil, err
	}
	return chain[len(chain)-1], nil
}
