// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrUnsupportedAuthScheme is returned when the header uses a scheme
	// other than "Token" or "Bearer". Such a header is treated as carrying
	// no credentials.
	ErrUnsupportedAuthScheme = errors.New("unsupported `Authorization` scheme")

	// ErrInvalidAuthorizationHeader is returned when the header has the
	// right scheme but not exactly one key after it.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the "Authorization" header contains the
	// expected scheme prefix but the token value itself is an empty string.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)

var (
	errInvalidID         = errors.New("invalid id in path")
	errNoUserInContext   = errors.New("no authenticated user in request context")
	errMultipartRequired = errors.New("multipart/form-data body required")
)
