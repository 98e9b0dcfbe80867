// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDHM is returned by [ParseDHM] for values that are neither a
// number of days nor a days/hours/minutes shorthand.
var ErrInvalidDHM = errors.New("not a valid dhm")

var dhmRegex = regexp.MustCompile(`^(?:(\d+)d)?\s*(?:(\d+)h)?\s*(?:(\d+)m)?$`)

// ParseDHM parses a days/hours/minutes shorthand such as "1d", "2h",
// "1d 12h" or "90m". A bare number is a number of days.
func ParseDHM(raw string) (time.Duration, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDHM, raw)
	}

	if days, err := strconv.ParseFloat(value, 64); err == nil {
		if days < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDHM, raw)
		}
		return time.Duration(days * float64(24*time.Hour)), nil
	}

	m := dhmRegex.FindStringSubmatch(value)
	if m == nil || (m[1] == "" && m[2] == "" && m[3] == "") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDHM, raw)
	}

	var d time.Duration
	for i, unit := range []time.Duration{24 * time.Hour, time.Hour, time.Minute} {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDHM, raw)
		}
		d += time.Duration(n) * unit
	}
	return d, nil
}
