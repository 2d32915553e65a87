// ============================================================================
// tagscript - Tag Document Toolkit
// ============================================================================
//
// Package:     version
// Description: Central version management for the toolkit and its components
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants for the toolkit components
const (
	// Toolkit version
	Toolkit = "0.1.0"

	// Component versions
	Parser  = "0.1.0"
	Store   = "0.1.0"
	Catalog = "0.1.0"
	Browser = "0.1.0"
)

// Build information, set with -ldflags "-X ..."
var (
	GitCommit = "development"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "parser":
		return Parser
	case "store":
		return Store
	case "catalog", "i18n":
		return Catalog
	case "browser", "tui":
		return Browser
	default:
		return Toolkit
	}
}

// Info describes the running binary
type Info struct {
	Version   string `json:"version" yaml:"version"`
	GitCommit string `json:"git_commit" yaml:"git_commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Get returns the build information
func Get() Info {
	return Info{
		Version:   Toolkit,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns a one-line summary
func (i Info) String() string {
	return fmt.Sprintf("tagscript v%s (%s, built %s, %s %s)", i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.Platform)
}
