// Package cmd provides the CLI commands for kustodian.
package cmd

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	verbose    bool
	configPath string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "kustodian",
	Short: "Embed rendered kustomize manifests in your documentation",
	Long: `kustodian - kustomize output, rendered into your docs

Scans Markdown pages for fenced kustomize directives, builds the referenced
directory with kustomize, and splices the output back in - as raw YAML or as
a resource-analysis table. Auto-discovers documented kustomize directories
and generates a browsable section for them.

DIRECTIVE SYNTAX
  ` + "```" + `kustomize path/to/dir [analyze=true]
  <optional YAML override, merged by kind + name>
  ` + "```" + `

COMMANDS
  render [paths...]     Render directives in Markdown files
    --output, -o <dir>  Write rendered files to a directory
    --write, -w         Rewrite files in place
  discover              List auto-discovered kustomize directories
    --pages             Generate the section pages
  doctor                Pre-flight checks - config, binaries, roots
  update                Update kustodian to the latest release
    --check             Check only, don't install

CONFIGURATION
  kustodian.yaml at the project root: enabled, kustomize_path,
  kustomize_dirs, auto_nav_path, nav_title, repo_url, build_timeout.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger builds the CLI logger, honoring --verbose.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "kustodian",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: kustodian.yaml found upward from CWD)")

	// Version template
	rootCmd.SetVersionTemplate("kustodian version {{.Version}}\n")
}
