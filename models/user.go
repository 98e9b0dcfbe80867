// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// User is a LIMS account the sync and task commands act as.
type User struct {
	// UserID is the database primary key.
	UserID int64 `json:"user_id"`
	// Name is the unique login name (e.g. "tamanu").
	Name string `json:"name"`
	// Fullname is the display name used in remarks and logs.
	Fullname string `json:"fullname"`
	// Roles are the global roles granted to the user.
	Roles []string `json:"roles"`
}
