// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/lims-tamanu-bridge/models"
)

func putRetest(st *memStore, uid, invalidated, status string) *models.Object {
	return st.put(&models.Object{
		UID:          uid,
		ID:           "BLD-" + uid,
		PortalType:   models.PortalTypeSample,
		ReviewStatus: status,
		Fields:       map[string]any{models.FieldInvalidated: invalidated},
	})
}

func TestLineage_Chain(t *testing.T) {
	st := newMemStore()
	root := putSample(st, "s1", models.SampleStatusInvalid)
	putRetest(st, "s2", "s1", models.SampleStatusInvalid)
	retest := putRetest(st, "s3", "s2", models.SampleStatusVerified)

	lineage := NewLineage(st.repositories().Objects)
	chain, err := lineage.Chain(testContext(), retest)
	require.NoError(t, err)
	require.Len(t, chain, 3)
	assert.Equal(t, "s3", chain[0].UID)
	assert.Equal(t, "s2", chain[1].UID)
	assert.Equal(t, "s1", chain[2].UID)

	got, err := lineage.Root(testContext(), retest)
	require.NoError(t, err)
	assert.Equal(t, root.UID, got.UID)

	got, err = lineage.Root(testContext(), root)
	require.NoError(t, err)
	assert.Equal(t, root.UID, got.UID)
}

func TestLineage_MissingPredecessor(t *testing.T) {
	st := newMemStore()
	retest := putRetest(st, "s2", "gone", models.SampleStatusDue)

	lineage := NewLineage(st.repositories().Objects)
	pred, err := lineage.Predecessor(testContext(), retest)
	require.NoError(t, err)
	assert.Nil(t, pred)

	root, err := lineage.Root(testContext(), retest)
	require.NoError(t, err)
	assert.Equal(t, "s2", root.UID)
}

func TestLineage_Cycle(t *testing.T) {
	st := newMemStore()
	putRetest(st, "s1", "s2", models.SampleStatusInvalid)
	s2 := putRetest(st, "s2", "s1", models.SampleStatusInvalid)

	_, err := NewLineage(st.repositories().Objects).Root(testContext(), s2)
	assert.ErrorIs(t, err, ErrLineageCycle)
}
