// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("remote-secret"))
	require.NoError(t, err)
	return token
}

func TestTokenExpiry_ReadsExp(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signedToken(t, jwt.MapClaims{"exp": exp.Unix(), "userId": "u1"})

	got, err := TokenExpiry(token)
	require.NoError(t, err)
	assert.True(t, exp.Equal(got))
}

func TestTokenExpiry_NoExp(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"userId": "u1"})

	_, err := TokenExpiry(token)
	assert.ErrorIs(t, err, ErrNoExpiration)
}

func TestTokenExpiry_Garbage(t *testing.T) {
	_, err := TokenExpiry("not-a-token")
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()
	fresh := signedToken(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()})
	stale := signedToken(t, jwt.MapClaims{"exp": now.Add(10 * time.Second).Unix()})

	assert.False(t, TokenExpired(fresh, now, 30*time.Second))
	assert.True(t, TokenExpired(stale, now, 30*time.Second))
	// uninspectable tokens are left to the remote system
	assert.False(t, TokenExpired("opaque", now, 30*time.Second))
}
