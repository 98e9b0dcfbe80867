// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/lims-tamanu-bridge/internal/adapter"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/config"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/service"
)

// Exit statuses of the commands, following sysexits.h.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUnavailable = 69 // EX_UNAVAILABLE
	ExitSoftware    = 70 // EX_SOFTWARE
)

// operatorErrors are shown with their own message, whatever wraps them.
var operatorErrors = []error{
	config.ErrMissingHost,
	config.ErrInvalidCredentials,
	config.ErrInvalidResource,
	service.ErrUnknownResourceKind,
	ErrCannotLogin,
	ErrMissingSample,
}

// ExitCode maps the error of a run to the exit status of the process.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, adapter.ErrConnection):
		return ExitUnavailable
	case errors.Is(err, service.ErrConflictExhausted):
		return ExitSoftware
	default:
		return ExitFailure
	}
}

// ErrorMessage returns the message shown to the operator for err.
func ErrorMessage(err error) string {
	if errors.Is(err, adapter.ErrConnection) {
		return fmt.Sprintf(MsgConnectionError, err)
	}
	if errors.Is(err, service.ErrConflictExhausted) {
		return MsgConflictExhausted
	}
	for _, known := range operatorErrors {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return err.Error()
}

// Fail prints the single error line of err to w and returns the exit status
// the process ends with.
func Fail(w io.Writer, err error) int {
	if err == nil {
		return ExitOK
	}
	fmt.Fprintf(w, MsgErrorLine+"\n", ErrorMessage(err))
	return ExitCode(err)
}
