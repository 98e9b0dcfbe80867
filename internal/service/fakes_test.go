// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/lims-tamanu-bridge/internal/adapter"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/resource"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/store"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/utils"
	"github.com/MKhiriev/lims-tamanu-bridge/models"
)

// memState is the content of a memStore, copied for rollbacks.
type memState struct {
	objects  map[string]*models.Object
	seq      map[string]int64
	tasks    []string
	counters map[string]int64
}

func (s memState) clone() memState {
	c := memState{
		objects:  make(map[string]*models.Object, len(s.objects)),
		seq:      make(map[string]int64, len(s.seq)),
		tasks:    slices.Clone(s.tasks),
		counters: make(map[string]int64, len(s.counters)),
	}
	for k, v := range s.objects {
		c.objects[k] = cloneObject(v)
	}
	for k, v := range s.seq {
		c.seq[k] = v
	}
	for k, v := range s.counters {
		c.counters[k] = v
	}
	return c
}

// memStore is an in-memory [store.Transactor] with the same uniqueness and
// optimistic locking rules as the SQL store.
type memStore struct {
	mu      sync.Mutex
	state   memState
	users   map[string]models.User
	nextSeq int64
	clock   time.Time
	dry     bool

	// writes counts successful creates and updates.
	writes int
	// failWrites makes the next writes fail with a version conflict.
	failWrites int
	// commits counts committed units of work.
	commits int
	// race runs once before the next create of a linked sample, standing
	// for a concurrent writer. The objects it returns survive rollbacks.
	race     func() []*models.Object
	external []*models.Object
}

func newMemStore() *memStore {
	return &memStore{
		state: memState{
			objects:  make(map[string]*models.Object),
			seq:      make(map[string]int64),
			counters: make(map[string]int64),
		},
		users: map[string]models.User{
			"admin":  {UserID: 1, Name: "admin", Fullname: "Administrator", Roles: []string{models.RoleManager}},
			"tamanu": {UserID: 2, Name: "tamanu", Fullname: "Tamanu", Roles: []string{models.RoleLabClerk}},
		},
		clock: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

func cloneObject(obj *models.Object) *models.Object {
	raw, err := json.Marshal(obj)
	if err != nil {
		panic(err)
	}
	var c models.Object
	if err = json.Unmarshal(raw, &c); err != nil {
		panic(err)
	}
	return &c
}

// InTx implements store.Transactor. The whole store is locked for the unit
// of work, which is rolled back when fn fails or the store is dry.
func (m *memStore) InTx(ctx context.Context, fn store.TxFunc) error {
	m.mu.Lock()
	snapshot := m.state.clone()
	writes := m.writes
	m.mu.Unlock()

	err := fn(ctx, m.repositories())

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil || m.dry {
		m.state = snapshot
		m.writes = writes
		for _, obj := range m.external {
			m.nextSeq++
			m.state.seq[obj.UID] = m.nextSeq
			m.state.objects[obj.UID] = cloneObject(obj)
		}
		return err
	}
	m.commits++
	return nil
}

func (m *memStore) repositories() *store.Repositories {
	return &store.Repositories{
		Objects:  &memObjects{m},
		Tasks:    &memTasks{m},
		Users:    &memUsers{m},
		Counters: &memCounters{m},
	}
}

// put stores obj as is, for fixtures.
func (m *memStore) put(obj *models.Object) *models.Object {
	m.mu.Lock()
	defer m.mu.Unlock()
	if obj.Version == 0 {
		obj.Version = 1
	}
	if obj.CreatedAt.IsZero() {
		obj.CreatedAt = m.tick()
	}
	if obj.ModifiedAt.IsZero() {
		obj.ModifiedAt = obj.CreatedAt
	}
	m.nextSeq++
	m.state.seq[obj.UID] = m.nextSeq
	m.state.objects[obj.UID] = cloneObject(obj)
	return obj
}

func (m *memStore) get(t *testing.T, uid string) *models.Object {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.state.objects[uid]
	require.True(t, ok, "object %s not found", uid)
	return cloneObject(obj)
}

// mutate changes a stored object in place, bypassing version checks.
func (m *memStore) mutate(t *testing.T, uid string, fn func(obj *models.Object)) {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.state.objects[uid]
	require.True(t, ok, "object %s not found", uid)
	fn(obj)
}

func (m *memStore) find(query models.ObjectQuery) []*models.Object {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.search(query)
}

func (m *memStore) tasks() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.state.tasks)
}

func (m *memStore) writeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStore) search(query models.ObjectQuery) []*models.Object {
	var out []*models.Object
	for _, obj := range m.state.objects {
		if query.PortalType != "" && obj.PortalType != query.PortalType {
			continue
		}
		if query.Title != "" {
			if query.TitleInsensitive {
				if !strings.EqualFold(strings.TrimSpace(obj.Title), strings.TrimSpace(query.Title)) {
					continue
				}
			} else if obj.Title != query.Title {
				continue
			}
		}
		if query.ParentUID != "" && obj.ParentUID != query.ParentUID {
			continue
		}
		if query.TamanuUID != "" && obj.TamanuUID != query.TamanuUID {
			continue
		}
		if query.ReviewStatus != "" && obj.ReviewStatus != query.ReviewStatus {
			continue
		}
		match := true
		for key, want := range query.Fields {
			if v, ok := obj.Fields[key].(string); !ok || v != want {
				match = false
				break
			}
		}
		if match {
			out = append(out, cloneObject(obj))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return m.state.seq[out[i].UID] > m.state.seq[out[j].UID]
	})
	if query.Limit > 0 && uint64(len(out)) > query.Limit {
		out = out[:query.Limit]
	}
	return out
}

func (m *memStore) linkedTo(tamanuUID, except string) bool {
	for uid, obj := range m.state.objects {
		if uid != except && tamanuUID != "" && obj.TamanuUID == tamanuUID {
			return true
		}
	}
	return false
}

func (m *memStore) injectedFailure() error {
	if m.failWrites > 0 {
		m.failWrites--
		return fmt.Errorf("injected: %w", store.ErrVersionConflict)
	}
	return nil
}

type memObjects struct{ m *memStore }

func (r *memObjects) Get(_ context.Context, uid string) (*models.Object, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	obj, ok := r.m.state.objects[uid]
	if !ok {
		return nil, store.ErrNotFound
	}
	return cloneObject(obj), nil
}

func (r *memObjects) Search(_ context.Context, query models.ObjectQuery) ([]*models.Object, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.m.search(query), nil
}

func (r *memObjects) FindByTamanuUID(_ context.Context, tamanuUID string) (*models.Object, error) {
	if tamanuUID == "" {
		return nil, nil
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	found := r.m.search(models.ObjectQuery{TamanuUID: tamanuUID})
	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		return found[0], nil
	}
	return nil, store.ErrIntegrity
}

func (r *memObjects) Create(_ context.Context, obj *models.Object) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.injectedFailure(); err != nil {
		return err
	}
	if r.m.race != nil && obj.PortalType == models.PortalTypeSample && obj.TamanuUID != "" {
		race := r.m.race
		r.m.race = nil
		for _, other := range race() {
			r.m.nextSeq++
			r.m.state.seq[other.UID] = r.m.nextSeq
			r.m.state.objects[other.UID] = cloneObject(other)
			r.m.external = append(r.m.external, cloneObject(other))
		}
	}
	if _, ok := r.m.state.objects[obj.UID]; ok {
		return fmt.Errorf("uid %s: %w", obj.UID, store.ErrConflict)
	}
	if r.m.linkedTo(obj.TamanuUID, obj.UID) {
		return fmt.Errorf("tamanu_uid %s: %w", obj.TamanuUID, store.ErrConflict)
	}
	now := r.m.tick()
	if obj.CreatedAt.IsZero() {
		obj.CreatedAt = now
	}
	obj.ModifiedAt = now
	obj.Version = 1
	r.m.nextSeq++
	r.m.state.seq[obj.UID] = r.m.nextSeq
	r.m.state.objects[obj.UID] = cloneObject(obj)
	r.m.writes++
	return nil
}

func (r *memObjects) Update(_ context.Context, obj *models.Object) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.injectedFailure(); err != nil {
		return err
	}
	stored, ok := r.m.state.objects[obj.UID]
	if !ok {
		return store.ErrNotFound
	}
	if stored.Version != obj.Version {
		return store.ErrVersionConflict
	}
	if r.m.linkedTo(obj.TamanuUID, obj.UID) {
		return fmt.Errorf("tamanu_uid %s: %w", obj.TamanuUID, store.ErrConflict)
	}
	obj.Version++
	obj.ModifiedAt = r.m.tick()
	r.m.state.objects[obj.UID] = cloneObject(obj)
	r.m.writes++
	return nil
}

type memTasks struct{ m *memStore }

func (r *memTasks) Push(_ context.Context, token string) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if slices.Contains(r.m.state.tasks, token) {
		return false, nil
	}
	r.m.state.tasks = append(r.m.state.tasks, token)
	return true, nil
}

func (r *memTasks) Pop(_ context.Context) (string, bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if len(r.m.state.tasks) == 0 {
		return "", false, nil
	}
	token := r.m.state.tasks[0]
	r.m.state.tasks = r.m.state.tasks[1:]
	return token, true, nil
}

func (r *memTasks) List(_ context.Context) ([]string, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return slices.Clone(r.m.state.tasks), nil
}

type memUsers struct{ m *memStore }

func (r *memUsers) FindUserByName(_ context.Context, name string) (models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	user, ok := r.m.users[name]
	if !ok {
		return models.User{}, store.ErrUserNotFound
	}
	return user, nil
}

type memCounters struct{ m *memStore }

func (r *memCounters) Next(_ context.Context, key string) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.state.counters[key]++
	return r.m.state.counters[key], nil
}

// memCache is an in-memory [store.ModificationCache].
type memCache struct {
	mu      sync.Mutex
	entries map[string]string
	sets    int
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]string)}
}

func (c *memCache) IsUpToDate(uid string, modified time.Time) bool {
	if modified.IsZero() {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	cached, ok := c.entries[uid]
	return ok && utils.FormatTimestamp(modified) <= cached
}

func (c *memCache) Get(uid string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[uid]
	return v, ok
}

func (c *memCache) Set(_ context.Context, uid string, modified time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if !modified.IsZero() {
		c.entries[uid] = utils.FormatTimestamp(modified)
	}
	return nil
}

type postedPayload struct {
	resourceType string
	payload      any
}

// fakeSession is an in-memory [adapter.Session].
type fakeSession struct {
	mu        sync.Mutex
	host      string
	resources map[string][]*resource.Resource
	refs      map[string]*resource.Resource
	queries   []url.Values
	posted    []postedPayload
	fetchErr  error
	postErr   error
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		host:      "https://tamanu.example",
		resources: make(map[string][]*resource.Resource),
		refs:      make(map[string]*resource.Resource),
	}
}

var _ adapter.Session = (*fakeSession)(nil)

func (s *fakeSession) Host() string { return s.host }

func (s *fakeSession) GetResources(_ context.Context, resourceType string, query url.Values) ([]*resource.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, query)
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return slices.Clone(s.resources[resourceType]), nil
}

func (s *fakeSession) Resolve(_ context.Context, ref resource.Reference) (*resource.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refs[ref.ResourceType()+"/"+ref.ID()], nil
}

func (s *fakeSession) Post(_ context.Context, resourceType string, payload any) (*resource.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.postErr != nil {
		return nil, s.postErr
	}
	s.posted = append(s.posted, postedPayload{resourceType: resourceType, payload: payload})
	return nil, nil
}

func (s *fakeSession) postedReports() []models.DiagnosticReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	reports := make([]models.DiagnosticReport, 0, len(s.posted))
	for _, p := range s.posted {
		if r, ok := p.payload.(models.DiagnosticReport); ok {
			reports = append(reports, r)
		}
	}
	return reports
}

// add registers a resolvable resource decoded from raw JSON.
func (s *fakeSession) add(t *testing.T, raw string) *resource.Resource {
	t.Helper()
	res, err := resource.Decode([]byte(raw))
	require.NoError(t, err)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refs[res.Type()+"/"+res.UID()] = res
	return res
}

// list registers res as returned by the search of its type.
func (s *fakeSession) list(res ...*resource.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range res {
		s.resources[r.Type()] = append(s.resources[r.Type()], r)
	}
}

type fakeProvider struct {
	session *fakeSession
}

func (p fakeProvider) SessionFor(_ context.Context, host string) (adapter.Session, bool) {
	if p.session == nil || p.session.host != host {
		return nil, false
	}
	return p.session, true
}

// testContext returns a context with a disabled logger and the "tamanu"
// acting user.
func testContext() context.Context {
	nop := zerolog.Nop()
	ctx := nop.WithContext(context.Background())
	return utils.WithActingUser(ctx, models.User{UserID: 2, Name: "tamanu", Roles: []string{models.RoleLabClerk}})
}
