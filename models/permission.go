// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Role is a named permission tier stored on the user record.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleContributor Role = "contributor"
	RoleViewer      Role = "viewer"
)

// DefaultRole is assigned to every self-registered account.
const DefaultRole = RoleContributor

// Valid reports whether r is one of the known tiers.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleContributor, RoleViewer:
		return true
	}
	return false
}

// Permission is a capability checked at an enforcement point.
type Permission string

const (
	// PermManageUsers guards account activation and role changes.
	PermManageUsers Permission = "can_manage_users"
	// PermViewAnalytics guards the user statistics endpoint.
	PermViewAnalytics Permission = "can_view_analytics"
	// PermUploadFiles guards file uploads.
	PermUploadFiles Permission = "can_upload_files"
)
