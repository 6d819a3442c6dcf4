// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AppBuildInfo carries build-time metadata injected with -ldflags and shown
// on the about screen of the TUI.
type AppBuildInfo struct {
	version string
	date    string
	commit  string
}

// NewAppBuildInfo constructs [AppBuildInfo]; empty values are shown as "N/A".
func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{
		version: orNA(version),
		date:    orNA(date),
		commit:  orNA(commit),
	}
}

func (a AppBuildInfo) BuildVersion() string { return a.version }

func (a AppBuildInfo) BuildDate() string { return a.date }

func (a AppBuildInfo) BuildCommit() string { return a.commit }

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
