// Package version provides centralized version information management.
//
// The version variables are typically set during build using ldflags:
//
//	-ldflags "-X connstring/internal/version.version=v1.0.0 -X connstring/internal/version.commit=abc123 -X connstring/internal/version.buildTime=2025-01-01T00:00:00Z"
package version

import (
	"fmt"
	"io"
	"strings"
)

// These variables are set via ldflags during build.
//
//nolint:gochecknoglobals // Required for build-time injection via ldflags.
var (
	version   string
	commit    string
	buildTime string
)

// ApplicationName is the name of the application displayed in version output.
const ApplicationName = "ConnString CLI"

// Default values used when version information is not available.
const (
	DefaultVersion   = "dev"
	DefaultCommit    = "unknown"
	DefaultBuildTime = "unknown"
)

// VersionInfo encapsulates all version-related information with proper defaults.
type VersionInfo struct {
	Version   string
	Commit    string
	BuildTime string
}

// NewVersionInfo creates a new VersionInfo instance with values from
// build-time variables and appropriate defaults for empty values.
func NewVersionInfo() *VersionInfo {
	return &VersionInfo{
		Version:   withDefault(version, DefaultVersion),
		Commit:    withDefault(commit, DefaultCommit),
		BuildTime: withDefault(buildTime, DefaultBuildTime),
	}
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// FormatShort returns a single-line output containing only the version number.
func (vi *VersionInfo) FormatShort() string {
	return vi.Version
}

// FormatFull returns a multi-line output with complete version information.
func (vi *VersionInfo) FormatFull() string {
	var builder strings.Builder

	builder.WriteString(ApplicationName)
	builder.WriteString("\n")
	builder.WriteString("Version: ")
	builder.WriteString(vi.Version)
	builder.WriteString("\n")
	builder.WriteString("Commit: ")
	builder.WriteString(vi.Commit)
	builder.WriteString("\n")
	builder.WriteString("Built: ")
	builder.WriteString(vi.BuildTime)
	builder.WriteString("\n")

	return builder.String()
}

// Write formats the version based on the short flag and writes to the
// provided writer.
func (vi *VersionInfo) Write(w io.Writer, short bool) error {
	if short {
		_, err := fmt.Fprintln(w, vi.FormatShort())
		return err
	}
	_, err := fmt.Fprint(w, vi.FormatFull())
	return err
}

// IsDevelopment returns true if the version indicates a development build.
func (vi *VersionInfo) IsDevelopment() bool {
	return vi.Version == DefaultVersion
}

// GetVersion returns the current version information.
func GetVersion() *VersionInfo {
	return NewVersionInfo()
}

// SetBuildVars allows setting the build-time variables.
// This is primarily used for testing purposes.
func SetBuildVars(ver, com, bt string) {
	version = ver
	commit = com
	buildTime = bt
}

// ResetBuildVars resets all build variables to empty values.
// This is primarily used for testing to ensure clean state.
func ResetBuildVars() {
	version = ""
	commit = ""
	buildTime = ""
}
