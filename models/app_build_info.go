// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// AppBuildInfo carries immutable build-time metadata embedded into binaries.
//
// Values are injected by linker flags during CI/CD, printed at server start
// and served by GET /api/version/.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

// NewAppBuildInfo constructs [AppBuildInfo] from the provided build metadata.
// Empty values are reported as "N/A".
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: orNA(buildVersion),
		buildDate:    orNA(buildDate),
		buildCommit:  orNA(buildCommit),
	}
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}

// BuildVersion returns the semantic version string of the build.
func (a AppBuildInfo) BuildVersion() string {
	return a.buildVersion
}

// BuildDate returns the build timestamp string.
func (a AppBuildInfo) BuildDate() string {
	return a.buildDate
}

// BuildCommit returns the source-control commit hash used for the build.
func (a AppBuildInfo) BuildCommit() string {
	return a.buildCommit
}

type buildInfoJSON struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}

// MarshalJSON exposes the unexported build fields.
func (a AppBuildInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(buildInfoJSON{a.buildVersion, a.buildDate, a.buildCommit})
}

// UnmarshalJSON reads the shape written by MarshalJSON.
func (a *AppBuildInfo) UnmarshalJSON(b []byte) error {
	var v buildInfoJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*a = NewAppBuildInfo(v.Version, v.Date, v.Commit)
	return nil
}
