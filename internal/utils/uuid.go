// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var uidRegex = regexp.MustCompile(`^[0-9a-f]{32}$`)

// UUIDGenerator mints identifiers for local objects and remote reports.
type UUIDGenerator struct {
}

// NewUUIDGenerator returns a generator backed by time-ordered UUIDv7.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a new UUID in its canonical dashed form.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// GenerateUID returns a new local object uid: 32 lowercase hex digits, no
// dashes, so uids can be joined with dashes unambiguously.
func (g *UUIDGenerator) GenerateUID() string {
	return strings.ReplaceAll(g.Generate(), "-", "")
}

// IsUID reports whether s has the shape of a local object uid.
func IsUID(s string) bool {
	return uidRegex.MatchString(s)
}

// UIDToUUID renders a local uid in the dashed UUID form the remote system
// expects as a resource id. Values that are not uids are returned as is.
func UIDToUUID(uid string) string {
	parsed, err := uuid.Parse(uid)
	if err != nil {
		return uid
	}
	return parsed.String()
}
