package cmd

import (
	"connstring/internal/version"

	"github.com/spf13/cobra"
)

// Version information variables that will be set via ldflags during build.
// These are kept for backward compatibility with existing build processes.
//
//nolint:gochecknoglobals // Required for backward compatibility with existing build systems.
var (
	// Version is the application version (e.g., v1.0.0).
	Version string
	// Commit is the git commit hash (e.g., abc123def456).
	Commit string
	// BuildTime is the build timestamp (e.g., 2025-01-01T12:00:00Z).
	BuildTime string
)

// newVersionCmd creates and returns the version command.
func newVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show version information for the connstring application.

This command displays the current version of the connstring CLI tool,
including version number, commit, and build time.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(cmd, short)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Show only version number")
	return cmd
}

// runVersion implements the version command output.
func runVersion(cmd *cobra.Command, short bool) error {
	syncLegacyVersionVars()

	versionInfo := version.GetVersion()
	return versionInfo.Write(cmd.OutOrStdout(), short)
}

// syncLegacyVersionVars synchronizes the legacy version variables with the
// version package, for build processes that still set them directly.
func syncLegacyVersionVars() {
	if Version != "" || Commit != "" || BuildTime != "" {
		version.SetBuildVars(Version, Commit, BuildTime)
	}
}

func init() { //nolint:gochecknoinits // Standard Cobra CLI pattern for command registration
	rootCmd.AddCommand(newVersionCmd())
}
