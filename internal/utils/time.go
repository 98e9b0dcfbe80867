// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the fixed-width UTC layout used for persisted
// timestamps. Values in this layout sort lexicographically in time order.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// ansiLayout is the compact layout older cache files were written with.
const ansiLayout = "20060102150405"

var parseLayouts = []string{
	time.RFC3339Nano,
	TimestampLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	ansiLayout,
	"2006-01-02",
}

// FormatTimestamp renders t in [TimestampLayout].
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTime parses the timestamp formats found in remote payloads, the
// local store and the modification cache. Values without a zone are UTC.
func ParseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp %q", raw)
}
