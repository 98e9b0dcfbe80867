// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app wires the local store, the Tamanu session and the services
// into the runs of the command line: sync, tasks, notify and migrate.
//
// All Msg* constants are operator-facing strings printed on standard output.
// Keeping them in one place keeps the wording stable for the scripts and
// cron jobs parsing it.
package app

import "errors"

const (
	// MsgDryMode is printed after a dry sync run.
	MsgDryMode = "Dry mode. No changes done"

	// MsgCannotLogin is shown when Tamanu rejects the configured
	// credentials.
	MsgCannotLogin = "Cannot login, wrong credentials"

	// MsgConflictExhausted is shown when a resource kept conflicting with
	// concurrent writers after every retry.
	MsgConflictExhausted = "ConflictError: exhausted retries"

	// MsgConnectionError is the format of the message shown when the remote
	// system cannot be reached. The verb receives the underlying error.
	MsgConnectionError = "ConnectionError: %s"

	// MsgErrorLine is the format of the single line printed on failure.
	MsgErrorLine = "ERROR: %s"
)

var (
	// ErrCannotLogin is returned when the login to Tamanu is rejected.
	ErrCannotLogin = errors.New(MsgCannotLogin)

	// ErrMissingSample is returned by the notify run without a sample or
	// report uid.
	ErrMissingSample = errors.New("Sample or report uid is missing")
)
