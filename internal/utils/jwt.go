// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiration is returned by [TokenExpiry] for tokens without an "exp"
// claim.
var ErrNoExpiration = errors.New("token has no expiration")

// TokenExpiry returns the "exp" claim of a bearer token issued by the remote
// system. The signature is not verified: the token is only inspected to
// decide when to log in again.
func TokenExpiry(tokenString string) (time.Time, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, fmt.Errorf("parse token: %w", err)
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("read exp claim: %w", err)
	}
	if exp == nil {
		return time.Time{}, ErrNoExpiration
	}
	return exp.Time, nil
}

// TokenExpired reports whether the token expires within leeway of now.
// Tokens that cannot be inspected are treated as never expiring; the remote
// system rejects them with 401 when they are not valid.
func TokenExpired(tokenString string, now time.Time, leeway time.Duration) bool {
	exp, err := TokenExpiry(tokenString)
	if err != nil {
		return false
	}
	return !now.Add(leeway).Before(exp)
}
