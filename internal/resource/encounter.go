// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package resource

// Encounter is a remote Encounter resource.
type Encounter struct {
	*Resource
}

// AsEncounter wraps r.
func AsEncounter(r *Resource) *Encounter {
	if r == nil {
		return nil
	}
	return &Encounter{r}
}

// Locations returns the location entries of the encounter. When
// physicalType is set, only locations whose physical type has a coding with
// that code or display are returned.
func (e *Encounter) Locations(physicalType string) []map[string]any {
	list := e.GetList("location")
	matches := make([]map[string]any, 0, len(list))
	for _, item := range list {
		location := asMap(item)
		if location == nil {
			continue
		}
		if physicalType == "" || hasCodeOrDisplay(location["physicalType"], physicalType) {
			matches = append(matches, location)
		}
	}
	return matches
}

// WardName returns the display name of the last ward location.
func (e *Encounter) WardName() string {
	locations := e.Locations(WardPhysicalType)
	if len(locations) == 0 {
		return ""
	}
	ref, _ := ReferenceFrom(locations[len(locations)-1]["location"])
	if ref.Display != "" {
		return ref.Display
	}
	return asString(asMap(locations[len(locations)-1]["location"])["display"])
}

// ServiceProvider returns the reference to the responsible organization.
func (e *Encounter) ServiceProvider() (Reference, bool) {
	return ReferenceFrom(e.Get("serviceProvider"))
}

func hasCodeOrDisplay(concept any, value string) bool {
	for _, c := range GetCodings(concept, "") {
		if c.Code == value || c.Display == value {
			return true
		}
	}
	return false
}
