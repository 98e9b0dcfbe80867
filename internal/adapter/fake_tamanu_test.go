// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/lims-tamanu-bridge/internal/config"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/logger"
)

const (
	testUser     = "lab@tamanu.example"
	testPassword = "secret"
)

// fakeTamanu is an in-process Tamanu FHIR server.
type fakeTamanu struct {
	t      *testing.T
	server *httptest.Server

	mu sync.Mutex
	// validToken is the only bearer token accepted by FHIR routes.
	validToken string
	logins     int
	// pages are the search result pages served per resource type.
	pages    map[string][][]map[string]any
	queries  []string
	reads    map[string]map[string]any
	readHits int
	posted   []map[string]any
	// status forces every FHIR route to answer with it when set.
	status int
}

func newFakeTamanu(t *testing.T) *fakeTamanu {
	t.Helper()
	f := &fakeTamanu{
		t:          t,
		validToken: "token-1",
		pages:      make(map[string][][]map[string]any),
		reads:      make(map[string]map[string]any),
	}

	r := chi.NewRouter()
	r.Post(LoginPath, f.login)
	r.Route(FHIRPath, func(r chi.Router) {
		r.Use(f.auth)
		r.Get("/{type}", f.search)
		r.Get("/{type}/{id}", f.read)
		r.Post("/{type}", f.create)
	})

	f.server = httptest.NewServer(r)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeTamanu) session(t *testing.T) *TamanuSession {
	t.Helper()
	s, err := NewTamanuSession(config.Remote{
		Host:           f.server.URL,
		Credentials:    config.Credentials{Username: testUser, Password: testPassword},
		RequestTimeout: 5 * time.Second,
		PageSize:       2,
	}, logger.Nop())
	require.NoError(t, err)
	return s
}

func (f *fakeTamanu) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeTamanu) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins++

	if body.Email != testUser || body.Password != testPassword {
		f.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Incorrect username or password"})
		return
	}
	f.writeJSON(w, http.StatusOK, map[string]string{"token": f.validToken})
}

func (f *fakeTamanu) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		valid, status := f.validToken, f.status
		f.mu.Unlock()

		if r.Header.Get("Authorization") != "Bearer "+valid {
			f.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			return
		}
		if status != 0 {
			w.WriteHeader(status)
			_, _ = w.Write([]byte("forced failure"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *fakeTamanu) search(w http.ResponseWriter, r *http.Request) {
	resourceType := chi.URLParam(r, "type")

	f.mu.Lock()
	f.queries = append(f.queries, r.URL.RawQuery)
	pages := f.pages[resourceType]
	f.mu.Unlock()

	page := 0
	if p := r.URL.Query().Get("page"); p != "" {
		page = int(p[0] - '0')
	}

	entries := make([]map[string]any, 0)
	if page < len(pages) {
		for _, res := range pages[page] {
			entries = append(entries, map[string]any{"resource": res})
		}
	}
	bundle := map[string]any{"resourceType": "Bundle", "entry": entries}
	if page+1 < len(pages) {
		next := f.server.URL + FHIRPath + "/" + resourceType + "?page=" + string(rune('0'+page+1))
		bundle["link"] = []map[string]any{
			{"relation": "self", "url": r.URL.String()},
			{"relation": "next", "url": next},
		}
	}
	f.writeJSON(w, http.StatusOK, bundle)
}

func (f *fakeTamanu) read(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "type") + "/" + chi.URLParam(r, "id")

	f.mu.Lock()
	f.readHits++
	res, ok := f.reads[key]
	f.mu.Unlock()

	if !ok {
		f.writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	f.writeJSON(w, http.StatusOK, res)
}

func (f *fakeTamanu) create(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		f.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if !strings.EqualFold(payload["resourceType"].(string), chi.URLParam(r, "type")) {
		f.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "resource type mismatch"})
		return
	}

	f.mu.Lock()
	f.posted = append(f.posted, payload)
	f.mu.Unlock()

	f.writeJSON(w, http.StatusCreated, payload)
}

func (f *fakeTamanu) setPages(resourceType string, pages ...[]map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages[resourceType] = pages
}

func (f *fakeTamanu) setRead(key string, res map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads[key] = res
}

func (f *fakeTamanu) setStatus(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
}

func (f *fakeTamanu) loginCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.logins
}

func (f *fakeTamanu) readCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.readHits
}

func (f *fakeTamanu) receivedQueries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

func (f *fakeTamanu) postedPayloads() []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]any(nil), f.posted...)
}
