// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package resource

import (
	"context"
	"strings"
)

// Reference is a pointer from one resource to another, as found in
// payload fields like "subject" or "specimen".
type Reference struct {
	Reference string
	Type      string
	Display   string
}

// ReferenceResolver fetches the resource a reference points at.
type ReferenceResolver interface {
	Resolve(ctx context.Context, ref Reference) (*Resource, error)
}

// ReferenceFrom reads a reference object. ok is false when v is not a
// reference with a target.
func ReferenceFrom(v any) (Reference, bool) {
	m := asMap(v)
	if m == nil {
		return Reference{}, false
	}
	ref := Reference{
		Reference: asString(m["reference"]),
		Type:      asString(m["type"]),
		Display:   asString(m["display"]),
	}
	return ref, ref.Reference != ""
}

// IsContained reports whether the reference targets a contained resource.
func (r Reference) IsContained() bool {
	return strings.HasPrefix(r.Reference, "#")
}

// ID returns the id part of "Type/id" or of an absolute URL.
func (r Reference) ID() string {
	ref := strings.TrimPrefix(r.Reference, "#")
	ref = strings.TrimRight(ref, "/")
	if idx := strings.LastIndex(ref, "/"); idx >= 0 {
		return ref[idx+1:]
	}
	return ref
}

// ResourceType returns the explicit type, or the type part of the
// reference path.
func (r Reference) ResourceType() string {
	if r.Type != "" {
		return r.Type
	}
	parts := strings.Split(strings.TrimRight(r.Reference, "/"), "/")
	if len(parts) >= 2 {
		return parts[len(parts)-2]
	}
	return ""
}

// resolve fetches the resource referenced by the value under key. A missing
// reference yields nil without error.
func (r *Resource) resolve(ctx context.Context, resolver ReferenceResolver, v any) (*Resource, error) {
	ref, ok := ReferenceFrom(v)
	if !ok {
		return nil, nil
	}
	if ref.IsContained() {
		return r.contained(ref.ID()), nil
	}
	if resolver == nil {
		return nil, nil
	}
	return resolver.Resolve(ctx, ref)
}

// ResolveReference fetches the resource referenced under key.
func (r *Resource) ResolveReference(ctx context.Context, resolver ReferenceResolver, key string) (*Resource, error) {
	return r.resolve(ctx, resolver, r.Get(key))
}
