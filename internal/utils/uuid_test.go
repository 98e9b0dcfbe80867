// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDGenerator_Generate(t *testing.T) {
	g := NewUUIDGenerator()

	id := g.Generate()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.NotEqual(t, id, g.Generate())
}

func TestUUIDGenerator_GenerateUID(t *testing.T) {
	uid := NewUUIDGenerator().GenerateUID()

	assert.Len(t, uid, 32)
	assert.NotContains(t, uid, "-")
	assert.True(t, IsUID(uid))
}

func TestIsUID(t *testing.T) {
	assert.False(t, IsUID(""))
	assert.False(t, IsUID("0190a6b2-7c3d-7e4f-8a9b-0c1d2e3f4a5b"))
	assert.False(t, IsUID("ZZ90a6b27c3d7e4f8a9b0c1d2e3f4a5b"))
	assert.True(t, IsUID("0190a6b27c3d7e4f8a9b0c1d2e3f4a5b"))
}

func TestUIDToUUID(t *testing.T) {
	assert.Equal(t, "0190a6b2-7c3d-7e4f-8a9b-0c1d2e3f4a5b", UIDToUUID("0190a6b27c3d7e4f8a9b0c1d2e3f4a5b"))
	assert.Equal(t, "not-a-uid", UIDToUUID("not-a-uid"))
}
