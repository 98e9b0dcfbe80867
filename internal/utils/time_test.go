// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimestamp_FixedWidthUTC(t *testing.T) {
	loc := time.FixedZone("FJT", 12*3600)
	ts := time.Date(2026, 1, 2, 15, 4, 5, 0, loc)

	assert.Equal(t, "2026-01-02T03:04:05.000Z", FormatTimestamp(ts))
}

func TestFormatTimestamp_SortsLikeTime(t *testing.T) {
	a := FormatTimestamp(time.Date(2026, 1, 2, 3, 4, 5, 900000000, time.UTC))
	b := FormatTimestamp(time.Date(2026, 1, 2, 3, 4, 6, 0, time.UTC))
	assert.Less(t, a, b)
}

func TestParseTime(t *testing.T) {
	want := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for _, in := range []string{
		"2026-01-02T03:04:05Z",
		"2026-01-02T15:04:05+12:00",
		"2026-01-02T03:04:05.000Z",
		"2026-01-02 03:04:05",
		"20260102030405",
	} {
		t.Run(in, func(t *testing.T) {
			got, err := ParseTime(in)
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %s", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}

	_, err := ParseTime("")
	assert.Error(t, err)
	_, err = ParseTime("yesterday")
	assert.Error(t, err)
}
