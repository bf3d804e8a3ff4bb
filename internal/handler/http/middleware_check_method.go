// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-upload-desk/internal/app"
)

// notFound replaces chi's plain-text 404 with the JSON error envelope.
func notFound(w http.ResponseWriter, _ *http.Request) {
	writeDetail(w, http.StatusNotFound, app.MsgNotFound)
}

// methodNotAllowed replaces chi's empty 405 with the JSON error envelope.
// chi has already set the Allow header for the matched route.
func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeDetail(w, http.StatusMethodNotAllowed, app.MsgMethodNotAllowed)
}
