// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package resource wraps raw remote FHIR payloads fetched from Tamanu and
// exposes typed, read-only accessors over them.
//
// Readers never fail on missing optional data; they return zero values.
// Only structurally required fields (e.g. the type of a Specimen) produce
// [ErrMissingRequiredField].
package resource

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/lims-tamanu-bridge/internal/utils"
)

// Resource is an immutable remote resource payload.
type Resource struct {
	data map[string]any
	// parent is the resource this one is contained in, if any.
	parent *Resource
}

// New wraps data. The map must not be modified afterwards by the caller.
func New(data map[string]any) *Resource {
	if data == nil {
		data = map[string]any{}
	}
	return &Resource{data: data}
}

// Decode parses a JSON object into a Resource.
func Decode(raw []byte) (*Resource, error) {
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode resource: %w", err)
	}
	return New(data), nil
}

// UID returns the remote id of the resource.
func (r *Resource) UID() string {
	return r.GetString("id")
}

// Type returns the resourceType, e.g. "ServiceRequest".
func (r *Resource) Type() string {
	return r.GetString("resourceType")
}

// Modified returns meta.lastUpdated, or the zero time when absent or
// unparsable.
func (r *Resource) Modified() time.Time {
	meta := r.GetMap("meta")
	raw, _ := meta["lastUpdated"].(string)
	if raw == "" {
		return time.Time{}
	}
	t, err := utils.ParseTime(raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Get returns the raw value stored under key.
func (r *Resource) Get(key string) any {
	return r.data[key]
}

// GetString returns the string stored under key, or "".
func (r *Resource) GetString(key string) string {
	v, _ := r.data[key].(string)
	return v
}

// GetMap returns the object stored under key, or nil.
func (r *Resource) GetMap(key string) map[string]any {
	v, _ := r.data[key].(map[string]any)
	return v
}

// GetList returns the list stored under key, or nil.
func (r *Resource) GetList(key string) []any {
	v, _ := r.data[key].([]any)
	return v
}

// Raw returns a deep copy of the payload.
func (r *Resource) Raw() map[string]any {
	copied, _ := deepCopy(r.data).(map[string]any)
	return copied
}

// MarshalJSON implements json.Marshaler.
func (r *Resource) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.data)
}

// Dump returns the payload as JSON for diagnostic logs. It never fails.
func (r *Resource) Dump() string {
	b, err := json.Marshal(r.data)
	if err != nil {
		return "-- invalid json --"
	}
	return string(b)
}

// String implements fmt.Stringer.
func (r *Resource) String() string {
	return fmt.Sprintf("<%s %s>", r.Type(), r.UID())
}

// contained returns the resource embedded in the "contained" list under id,
// looking up the containing resources as well.
func (r *Resource) contained(id string) *Resource {
	for owner := r; owner != nil; owner = owner.parent {
		for _, item := range owner.GetList("contained") {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if cid, _ := m["id"].(string); cid == id {
				return &Resource{data: m, parent: owner}
			}
		}
	}
	return nil
}

func deepCopy(v any) any {
	switch value := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(value))
		for k, item := range value {
			out[k] = deepCopy(item)
		}
		return out
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = deepCopy(item)
		}
		return out
	default:
		return value
	}
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
