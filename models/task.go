// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"strings"
)

// ErrInvalidTaskToken is returned when a queue token does not have the
// "<uid>-<task name>" form.
var ErrInvalidTaskToken = errors.New("invalid task token")

// TaskToken identifies a queued task: the uid of the object the task runs
// on and the task name, joined by a dash. Object uids never contain dashes.
type TaskToken string

// NewTaskToken builds the token for running name on the object uid.
func NewTaskToken(uid, name string) TaskToken {
	return TaskToken(uid + "-" + name)
}

// Split returns the object uid and task name of the token.
func (t TaskToken) Split() (uid, name string, err error) {
	raw := string(t)
	idx := strings.Index(raw, "-")
	if idx <= 0 || idx == len(raw)-1 {
		return "", "", ErrInvalidTaskToken
	}
	return raw[:idx], raw[idx+1:], nil
}

// String implements fmt.Stringer.
func (t TaskToken) String() string {
	return string(t)
}
