// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter talks to the Tamanu EHR over HTTP.
//
// A [Session] logs in with a username and password, keeps the bearer token
// fresh, pages through FHIR search results and posts resources back. A
// [SessionProvider] picks the session serving the host a local object was
// synced from.
//
// HTTP statuses are mapped to the sentinel errors in errors.go so callers
// can use [errors.Is] (e.g. [ErrConnection] for unreachable hosts,
// [ErrUnauthorized] for rejected credentials).
package adapter

import (
	"context"
	"net/url"

	"github.com/MKhiriev/lims-tamanu-bridge/internal/resource"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// Session is an authenticated connection to one Tamanu host.
type Session interface {
	resource.ReferenceResolver

	// Host returns the base URL of the remote host.
	Host() string
	// GetResources searches resources of resourceType and follows the
	// "next" links until every page is read.
	GetResources(ctx context.Context, resourceType string, query url.Values) ([]*resource.Resource, error)
	// Post creates a resource of resourceType from payload and returns the
	// decoded response, if any.
	Post(ctx context.Context, resourceType string, payload any) (*resource.Resource, error)
}

// SessionProvider returns the session for a remote host.
type SessionProvider interface {
	// SessionFor returns the session serving host; ok is false when no
	// session is configured for it.
	SessionFor(ctx context.Context, host string) (Session, bool)
}
