// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package resource

// Practitioner is a remote Practitioner resource.
type Practitioner struct {
	*Resource
}

// AsPractitioner wraps r.
func AsPractitioner(r *Resource) *Practitioner {
	if r == nil {
		return nil
	}
	return &Practitioner{r}
}

// NameInfo returns the official name, or the first one listed.
func (p *Practitioner) NameInfo() NameInfo {
	return nameInfo(p.GetList("name"))
}

// FullName returns the name as a single string.
func (p *Practitioner) FullName() string {
	return p.NameInfo().FullName()
}

// Email returns the first email contact point.
func (p *Practitioner) Email() string {
	return telecom(p.GetList("telecom"), "email")
}

// Organization is a remote Organization resource.
type Organization struct {
	*Resource
}

// AsOrganization wraps r.
func AsOrganization(r *Resource) *Organization {
	if r == nil {
		return nil
	}
	return &Organization{r}
}

// Name returns the organization name.
func (o *Organization) Name() string {
	return o.GetString("name")
}
