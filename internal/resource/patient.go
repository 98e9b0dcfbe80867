// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package resource

import (
	"strings"
)

// Patient field names written to the local Patient object.
const (
	PatientFieldMRN         = "MRN"
	PatientFieldFirstname   = "Firstname"
	PatientFieldMiddlename  = "Middlename"
	PatientFieldSurname     = "Surname"
	PatientFieldBirthdate   = "Birthdate"
	PatientFieldSex         = "Sex"
	PatientFieldMobilePhone = "MobilePhone"
	PatientFieldEmail       = "Email"
	PatientFieldAddress     = "Address"
)

// NameInfo is a person name split the way the LIMS stores it.
type NameInfo struct {
	Firstname  string
	Middlename string
	Surname    string
}

// FullName joins the non-empty parts with single spaces.
func (n NameInfo) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{n.Firstname, n.Middlename, n.Surname} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Patient is a remote Patient resource.
type Patient struct {
	*Resource
}

// AsPatient wraps r.
func AsPatient(r *Resource) *Patient {
	if r == nil {
		return nil
	}
	return &Patient{r}
}

// MRN returns the medical record number: the identifier in the MRN system,
// else the first identifier with a value.
func (p *Patient) MRN() string {
	return identifierValue(p.GetList("identifier"), PatientMRNSystem)
}

// NameInfo returns the official name, or the first one listed.
func (p *Patient) NameInfo() NameInfo {
	return nameInfo(p.GetList("name"))
}

// Birthdate returns birthDate as sent (YYYY-MM-DD).
func (p *Patient) Birthdate() string {
	return p.GetString("birthDate")
}

// Sex maps the FHIR gender to the LIMS sex codes.
func (p *Patient) Sex() string {
	switch p.GetString("gender") {
	case "male":
		return "m"
	case "female":
		return "f"
	case "other", "unknown":
		return "u"
	}
	return ""
}

// Phone returns the first phone contact point.
func (p *Patient) Phone() string {
	return telecom(p.GetList("telecom"), "phone")
}

// Email returns the first email contact point.
func (p *Patient) Email() string {
	return telecom(p.GetList("telecom"), "email")
}

// Address returns the first address as a single line.
func (p *Patient) Address() string {
	for _, item := range p.GetList("address") {
		m := asMap(item)
		if m == nil {
			continue
		}
		if text := asString(m["text"]); text != "" {
			return text
		}
		parts := make([]string, 0, 4)
		for _, line := range asList(m["line"]) {
			if s := asString(line); s != "" {
				parts = append(parts, s)
			}
		}
		for _, key := range []string{"city", "district", "country"} {
			if s := asString(m[key]); s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, ", ")
		}
	}
	return ""
}

// Active reports the active flag; absent means active.
func (p *Patient) Active() bool {
	v, ok := p.Get("active").(bool)
	return !ok || v
}

// ObjectInfo returns the field values written to the local Patient.
func (p *Patient) ObjectInfo() map[string]any {
	name := p.NameInfo()
	return map[string]any{
		PatientFieldMRN:         p.MRN(),
		PatientFieldFirstname:   name.Firstname,
		PatientFieldMiddlename:  name.Middlename,
		PatientFieldSurname:     name.Surname,
		PatientFieldBirthdate:   p.Birthdate(),
		PatientFieldSex:         p.Sex(),
		PatientFieldMobilePhone: p.Phone(),
		PatientFieldEmail:       p.Email(),
		PatientFieldAddress:     p.Address(),
	}
}

func identifierValue(identifiers []any, system string) string {
	first := ""
	for _, item := range identifiers {
		m := asMap(item)
		value := asString(m["value"])
		if value == "" {
			continue
		}
		if asString(m["system"]) == system {
			return value
		}
		if first == "" {
			first = value
		}
	}
	return first
}

func nameInfo(names []any) NameInfo {
	var chosen map[string]any
	for _, item := range names {
		m := asMap(item)
		if m == nil {
			continue
		}
		if chosen == nil {
			chosen = m
		}
		if asString(m["use"]) == "official" {
			chosen = m
			break
		}
	}
	if chosen == nil {
		return NameInfo{}
	}

	given := make([]string, 0, 2)
	for _, g := range asList(chosen["given"]) {
		if s := strings.TrimSpace(asString(g)); s != "" {
			given = append(given, s)
		}
	}
	info := NameInfo{Surname: strings.TrimSpace(asString(chosen["family"]))}
	if len(given) > 0 {
		info.Firstname = given[0]
		info.Middlename = strings.Join(given[1:], " ")
	}
	if info.Firstname == "" && info.Surname == "" {
		info.Firstname = strings.TrimSpace(asString(chosen["text"]))
	}
	return info
}

func telecom(points []any, system string) string {
	for _, item := range points {
		m := asMap(item)
		if asString(m["system"]) == system {
			if v := asString(m["value"]); v != "" {
				return v
			}
		}
	}
	return ""
}

func asList(v any) []any {
	l, _ := v.([]any)
	return l
}
