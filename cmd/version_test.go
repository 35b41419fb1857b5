package cmd

import (
	"bytes"
	"strings"
	"testing"

	"connstring/internal/version"
)

func executeVersion(t *testing.T, args ...string) string {
	t.Helper()
	cmd := newVersionCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	return buf.String()
}

func TestVersionCommand(t *testing.T) {
	defer version.ResetBuildVars()
	version.ResetBuildVars()

	output := executeVersion(t)

	if !strings.Contains(output, version.ApplicationName) {
		t.Errorf("output missing application name:\n%s", output)
	}
	if !strings.Contains(output, version.DefaultVersion) {
		t.Errorf("output missing default version:\n%s", output)
	}
}

func TestVersionCommand_Short(t *testing.T) {
	defer version.ResetBuildVars()
	version.SetBuildVars("v9.9.9", "abc", "2025-01-01T00:00:00Z")

	output := executeVersion(t, "--short")

	if got := strings.TrimSpace(output); got != "v9.9.9" {
		t.Errorf("short output = %q, want v9.9.9", got)
	}
}

func TestVersionCommand_LegacyVarsSync(t *testing.T) {
	defer func() {
		Version, Commit, BuildTime = "", "", ""
		version.ResetBuildVars()
	}()

	Version = "v1.1.1"
	output := executeVersion(t, "--short")

	if got := strings.TrimSpace(output); got != "v1.1.1" {
		t.Errorf("legacy var not synced, output = %q, want v1.1.1", got)
	}
}
