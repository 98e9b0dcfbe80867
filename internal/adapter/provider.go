// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"strings"

	"github.com/MKhiriev/lims-tamanu-bridge/internal/logger"
)

// SingleHostProvider serves one configured session. Objects synced from any
// other host get no session.
type SingleHostProvider struct {
	session Session
}

// NewSingleHostProvider returns a provider for session. A nil session gives
// a provider that never returns one.
func NewSingleHostProvider(session Session) *SingleHostProvider {
	return &SingleHostProvider{session: session}
}

// SessionFor implements [SessionProvider].
func (p *SingleHostProvider) SessionFor(ctx context.Context, host string) (Session, bool) {
	if p == nil || p.session == nil || host == "" {
		return nil, false
	}
	if !sameHost(p.session.Host(), host) {
		logger.FromContext(ctx).Debug().
			Str("func", "SingleHostProvider.SessionFor").
			Str("host", host).
			Str("configured", p.session.Host()).
			Msg("no session for host")
		return nil, false
	}
	return p.session, true
}

func sameHost(a, b string) bool {
	norm := func(s string) string {
		s = strings.ToLower(strings.TrimRight(strings.TrimSpace(s), "/"))
		s = strings.TrimPrefix(s, "https://")
		return strings.TrimPrefix(s, "http://")
	}
	return norm(a) == norm(b)
}
