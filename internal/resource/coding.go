// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package resource

import (
	"github.com/MKhiriev/lims-tamanu-bridge/models"
)

// Coding systems used by the remote system and the LIMS catalog.
const (
	SNOMEDSystem          = "http://snomed.info/sct"
	LOINCSystem           = "http://loinc.org"
	SenaiteTestsSystem    = "https://www.senaite.com/testCodes.html"
	SenaiteProfilesSystem = "https://www.senaite.com/profileCodes.html"

	// PatientMRNSystem identifies the patient display id (MRN) identifier.
	PatientMRNSystem = "http://data-dictionary.tamanu-fiji.org/tamanu-mrid-system.html"
	// LabRequestIDSystem identifies the lab request display id identifier.
	LabRequestIDSystem = "http://data-dictionary.tamanu.org/tamanu-mrid-labrequest.html"
)

const (
	// SNOMEDLaboratoryProcedure is the SNOMED category of service requests
	// handled by the lab ("Laboratory procedure (procedure)").
	SNOMEDLaboratoryProcedure = "108252007"
	// WardPhysicalType is the encounter location physical type code that
	// designates a ward.
	WardPhysicalType = "wa"
)

// GetCodings returns the codings found in value that belong to system.
//
// value may be a CodeableConcept, a list of CodeableConcepts, a single
// Coding or a list of Codings. An empty system keeps every coding.
func GetCodings(value any, system string) []models.Coding {
	var out []models.Coding
	collectCodings(value, system, &out)
	return out
}

// GetCodes returns the code values of [GetCodings].
func GetCodes(value any, system string) []string {
	codings := GetCodings(value, system)
	codes := make([]string, 0, len(codings))
	for _, c := range codings {
		if c.Code != "" {
			codes = append(codes, c.Code)
		}
	}
	return codes
}

func collectCodings(value any, system string, out *[]models.Coding) {
	switch v := value.(type) {
	case []any:
		for _, item := range v {
			collectCodings(item, system, out)
		}
	case map[string]any:
		if list, ok := v["coding"]; ok {
			collectCodings(list, system, out)
			return
		}
		if _, ok := v["code"]; !ok {
			if _, ok := v["system"]; !ok {
				return
			}
		}
		coding := toCoding(v)
		if system == "" || coding.System == system {
			*out = append(*out, coding)
		}
	}
}

func toCoding(m map[string]any) models.Coding {
	return models.Coding{
		System:  asString(m["system"]),
		Code:    asString(m["code"]),
		Display: asString(m["display"]),
	}
}

// FirstCoding returns the first coding of a CodeableConcept regardless of
// its system.
func FirstCoding(concept any) (models.Coding, bool) {
	codings := GetCodings(concept, "")
	if len(codings) == 0 {
		return models.Coding{}, false
	}
	return codings[0], true
}
