// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "slices"

// Roles known to the LIMS.
const (
	RoleManager    = "Manager"
	RoleLabManager = "LabManager"
	RoleLabClerk   = "LabClerk"
	RoleAnalyst    = "Analyst"
	RoleVerifier   = "Verifier"
	RoleOwner      = "Owner"
)

// Permissions checked on edits.
const (
	PermissionModifyPortalContent  = "Modify portal content"
	PermissionFieldEditDateSampled = "Field: Edit Date Sampled"
	PermissionFieldEditPriority    = "Field: Edit Priority"
	PermissionFieldEditRemarks     = "Field: Edit Remarks"
)

// DefaultPermissionRoles lists the roles granted each permission when an
// object carries no local override.
var DefaultPermissionRoles = map[string][]string{
	PermissionModifyPortalContent:  {RoleManager, RoleLabManager, RoleLabClerk, RoleOwner},
	PermissionFieldEditDateSampled: {RoleManager, RoleLabManager, RoleLabClerk},
	PermissionFieldEditPriority:    {RoleManager, RoleLabManager, RoleLabClerk},
	PermissionFieldEditRemarks:     {RoleManager, RoleLabManager, RoleLabClerk, RoleAnalyst, RoleVerifier},
}

// Security holds the object-level role assignments and permission
// overrides.
type Security struct {
	// LocalRoles maps a user name to the roles granted on this object only.
	LocalRoles map[string][]string `json:"local_roles,omitempty"`
	// Permissions maps a permission to the roles allowed, replacing the
	// default mapping for this object.
	Permissions map[string][]string `json:"permissions,omitempty"`
}

// GrantLocalRoles adds roles to user on this object.
func (s *Security) GrantLocalRoles(user string, roles ...string) {
	if s.LocalRoles == nil {
		s.LocalRoles = make(map[string][]string)
	}
	current := s.LocalRoles[user]
	for _, role := range roles {
		if !slices.Contains(current, role) {
			current = append(current, role)
		}
	}
	s.LocalRoles[user] = current
}

// RevokeLocalRoles removes roles from user on this object.
func (s *Security) RevokeLocalRoles(user string, roles ...string) {
	current, ok := s.LocalRoles[user]
	if !ok {
		return
	}
	current = slices.DeleteFunc(current, func(r string) bool {
		return slices.Contains(roles, r)
	})
	if len(current) == 0 {
		delete(s.LocalRoles, user)
		return
	}
	s.LocalRoles[user] = current
}

// ManagePermission restricts permission to roles on this object.
func (s *Security) ManagePermission(permission string, roles ...string) {
	if s.Permissions == nil {
		s.Permissions = make(map[string][]string)
	}
	s.Permissions[permission] = slices.Clone(roles)
}

// AllowedRoles returns the roles that hold permission on this object.
func (s Security) AllowedRoles(permission string) []string {
	if roles, ok := s.Permissions[permission]; ok {
		return roles
	}
	return DefaultPermissionRoles[permission]
}

// CheckPermission reports whether user, holding the global roles given,
// has permission on an object with this security.
func (s Security) CheckPermission(permission string, user User) bool {
	allowed := s.AllowedRoles(permission)
	roles := append(slices.Clone(user.Roles), s.LocalRoles[user.Name]...)
	for _, role := range roles {
		if slices.Contains(allowed, role) {
			return true
		}
	}
	return false
}
