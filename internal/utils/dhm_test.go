// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDHM(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "1d", want: 24 * time.Hour},
		{in: "7d", want: 7 * 24 * time.Hour},
		{in: "2h", want: 2 * time.Hour},
		{in: "30m", want: 30 * time.Minute},
		{in: "1d 2h 3m", want: 26*time.Hour + 3*time.Minute},
		{in: "1d2h", want: 26 * time.Hour},
		{in: " 1D ", want: 24 * time.Hour},
		{in: "3", want: 72 * time.Hour},
		{in: "0", want: 0},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "2w", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "1h 1d", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDHM(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDHM)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
