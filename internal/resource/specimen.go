// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package resource

import (
	"context"
	"fmt"
)

// SampleTypeInfo is the local SampleType derived from a Specimen.
type SampleTypeInfo struct {
	Title  string
	Prefix string
}

// SamplePointInfo is the local SamplePoint derived from a Specimen.
type SamplePointInfo struct {
	Title string
	Code  string
}

// Specimen is a remote Specimen resource.
type Specimen struct {
	*Resource
}

// AsSpecimen wraps r.
func AsSpecimen(r *Resource) *Specimen {
	if r == nil {
		return nil
	}
	return &Specimen{r}
}

// HasType reports whether the specimen carries a type concept.
func (s *Specimen) HasType() bool {
	return s.Get("type") != nil
}

// SampleTypeInfo returns the sample type from the first coding of the
// specimen type. The type is required; a type without codings yields an
// empty info.
func (s *Specimen) SampleTypeInfo() (SampleTypeInfo, error) {
	specimenType := s.GetMap("type")
	if specimenType == nil {
		return SampleTypeInfo{}, fmt.Errorf("%w: specimen %s without type", ErrMissingRequiredField, s.UID())
	}
	coding, ok := FirstCoding(specimenType)
	if !ok {
		return SampleTypeInfo{}, nil
	}
	return SampleTypeInfo{Title: coding.Display, Prefix: coding.Code}, nil
}

// SamplePointInfo returns the sample point from the collection body site.
func (s *Specimen) SamplePointInfo() SamplePointInfo {
	bodySite := asMap(s.collection()["bodySite"])
	coding, ok := FirstCoding(bodySite)
	if !ok {
		return SamplePointInfo{}
	}
	return SamplePointInfo{Title: coding.Display, Code: coding.Code}
}

// DateSampled returns collection.collectedDateTime as sent.
func (s *Specimen) DateSampled() string {
	return asString(s.collection()["collectedDateTime"])
}

// CollectorName returns the display name of the collector.
func (s *Specimen) CollectorName() string {
	ref, _ := ReferenceFrom(s.collection()["collector"])
	if ref.Display != "" {
		return ref.Display
	}
	return asString(asMap(s.collection()["collector"])["display"])
}

// Collector resolves the practitioner who collected the specimen.
func (s *Specimen) Collector(ctx context.Context, resolver ReferenceResolver) (*Practitioner, error) {
	r, err := s.resolve(ctx, resolver, s.collection()["collector"])
	if err != nil || r == nil {
		return nil, err
	}
	return AsPractitioner(r), nil
}

func (s *Specimen) collection() map[string]any {
	c := s.GetMap("collection")
	if c == nil {
		return map[string]any{}
	}
	return c
}
