package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/kustodian/kustodian/internal/discovery"
	"github.com/kustodian/kustodian/internal/site"
	"github.com/kustodian/kustodian/internal/ui"
)

var (
	discoverPages  bool
	discoverOutput string
)

// discoverCmd represents the discover command.
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "List auto-discovered kustomize directories",
	Long: `List kustomize directories discovered under auto_nav_path.

A directory qualifies when it contains kustomization.yaml (or .yml) next to
a README.md. With --pages, the generated documentation section (index page
plus one page per directory) is written to the output directory.

Examples:
  kustodian discover
  kustodian discover --pages -o docs`,
	Run: runDiscover,
}

func init() {
	discoverCmd.Flags().BoolVar(&discoverPages, "pages", false, "Generate the documentation section pages")
	discoverCmd.Flags().StringVarP(&discoverOutput, "output", "o", "docs", "Output directory for --pages")

	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	logger := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		ui.Error("Failed to load config: %v", err)
		os.Exit(1)
	}
	if cfg.AutoNavPath == "" {
		ui.Warning("auto_nav_path is not configured; nothing to discover")
		return
	}

	table, err := discovery.BuildTable(cfg.AutoNavPath)
	if err != nil {
		ui.Error("Discovery failed: %v", err)
		os.Exit(1)
	}

	if len(table) == 0 {
		ui.Warning("No kustomize directories found under %s", cfg.AutoNavPath)
		return
	}

	ui.Header("Discovered %d kustomize directories under %s", len(table), cfg.AutoNavPath)
	for _, key := range table.Keys() {
		ui.Info("  %-40s %s", key, discovery.DirTitle(table[key], key))
	}

	if !discoverPages {
		return
	}

	gen := site.New(cfg, table, logger)
	n, err := gen.Write(ctx, discoverOutput)
	if err != nil {
		ui.Error("Page generation failed: %v", err)
		os.Exit(1)
	}
	ui.Success("Wrote %d pages to %s", n, discoverOutput)
}
