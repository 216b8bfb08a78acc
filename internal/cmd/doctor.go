package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/kustodian/kustodian/internal/preflight"
	"github.com/kustodian/kustodian/internal/ui"
)

// doctorCmd represents the doctor command.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Pre-flight checks - config, binaries, roots",
	Long: `Check that kustodian can run against the current project.

Verifies the kustomize binary works, git is available for repo URL
detection, and the configured search roots and discovery root exist.`,
	Run: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		ui.Error("Failed to load config: %v", err)
		os.Exit(1)
	}

	checks := preflight.Run(context.Background(), cfg)

	for _, check := range checks {
		switch check.Status {
		case preflight.StatusPass:
			ui.Success("%s: %s", check.Name, check.Detail)
		case preflight.StatusWarn:
			ui.Warning("%s: %s", check.Name, check.Detail)
		case preflight.StatusFail:
			ui.Error("%s: %s", check.Name, check.Detail)
		}
	}

	if preflight.Failed(checks) {
		os.Exit(1)
	}
}
