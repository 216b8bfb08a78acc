package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kustodian/kustodian/internal/ui"
	"github.com/kustodian/kustodian/internal/update"
)

var checkOnly bool

var updateCmd = &cobra.Command{
	Use:     "update",
	Aliases: []string{"upgrade", "selfupdate"},
	Short:   "Update kustodian to the latest version",
	Long: `Update kustodian to the latest version from GitHub releases.

Examples:
  kustodian update           # Update to latest version
  kustodian update --check   # Check for updates without installing`,
	Run: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().BoolVar(&checkOnly, "check", false, "Only check for updates, don't install")
}

func runUpdate(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	ui.Blue.Printf("Current version: %s (%s)\n", version, update.GetPlatformInfo())

	if checkOnly {
		checkForUpdate(ctx)
		return
	}
	performUpdate(ctx)
}

func checkForUpdate(ctx context.Context) {
	ui.Blue.Println("Checking for updates...")

	release, available, err := update.CheckForUpdate(ctx, version)
	if err != nil {
		ui.Error("Failed to check for updates: %v", err)
		return
	}
	if !available {
		ui.Success("kustodian is up to date")
		return
	}

	ui.Header("New version available: %s (published %s)", release.Version, release.PublishedAt)
	ui.Info("Release: %s", release.ReleaseURL)
	ui.Info("Run 'kustodian update' to install")
}

func performUpdate(ctx context.Context) {
	ui.Blue.Println("Checking for updates...")

	release, err := update.Update(ctx, version)
	if err != nil {
		ui.Error("Update failed: %v", err)
		return
	}
	if release == nil {
		ui.Success("kustodian is up to date")
		return
	}

	ui.Success("Updated to %s", release.Version)
	if release.Changelog != "" {
		ui.Info("\n%s", release.Changelog)
	}
}
