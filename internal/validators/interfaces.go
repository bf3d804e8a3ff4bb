// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides abstractions for input validation and
// enforcement of business rules across the application.
//
// Core concepts:
//   - Validator: generic interface to validate arbitrary values or structures.
//     Supports optional field-level scoping for targeted validation.
//   - FieldErrors: per-field failure messages collected by a single Validate
//     call. Cross-field problems are reported under [FieldNonField].
//
// Validators never touch storage. Rules that need the database (username and
// email uniqueness) are checked by the services, which merge their findings
// into the same FieldErrors value.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
// Implementations may perform structural validation, semantic checks
// and cross-field rules. Field-level failures are returned as [FieldErrors].
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
