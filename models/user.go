// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account entity used for authentication and authorization.
// Only identity fields are serialized; credential and flag fields never leave
// the server.
type User struct {
	// ID is the internal unique identifier of the user. Read-only for clients.
	ID int64 `json:"id"`

	// Username is the unique login name. Read-only after registration.
	Username string `json:"username"`

	// Email is unique across users and format-validated on every write.
	Email string `json:"email"`

	// FirstName and LastName are optional, user-editable profile fields.
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// Password stores the salted password hash in PHC string format.
	// It is never the plaintext value.
	Password string `json:"-"`

	// IsActive reports whether the account may authenticate. Deactivation is
	// a soft flag flip; users are never hard-deleted.
	IsActive bool `json:"-"`

	// IsStaff and IsSuperuser are administrative flags. Superusers hold every
	// permission regardless of Role.
	IsStaff     bool `json:"-"`
	IsSuperuser bool `json:"-"`

	// Role selects the permission tier for non-superusers.
	Role Role `json:"-"`

	DateJoined time.Time  `json:"-"`
	LastLogin  *time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// UserStats is the aggregate account breakdown shown to analytics viewers.
type UserStats struct {
	TotalUsers    int64 `json:"total_users"`
	ActiveUsers   int64 `json:"active_users"`
	InactiveUsers int64 `json:"inactive_users"`
	StaffUsers    int64 `json:"staff_users"`
}
