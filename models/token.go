// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// AuthToken is an opaque bearer credential bound to exactly one user.
//
// The key carries no signature and no expiry: possession of the string is the
// only proof of identity, and it stays valid until logout, refresh or account
// deactivation removes the row.
type AuthToken struct {
	// Key is the 40-character lowercase hex credential sent as
	// "Authorization: Token <key>".
	Key string `json:"token"`

	// UserID is the owner of the token. At most one token exists per user.
	UserID int64 `json:"-"`

	// CreatedAt is when the key was issued or last rotated.
	CreatedAt time.Time `json:"-"`
}

// String returns the token key.
// It implements the [fmt.Stringer] interface.
func (t AuthToken) String() string {
	return t.Key
}
