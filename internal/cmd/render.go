package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kustodian/kustodian/internal/discovery"
	"github.com/kustodian/kustodian/internal/fileutil"
	"github.com/kustodian/kustodian/internal/kustomize"
	"github.com/kustodian/kustodian/internal/renderer"
	"github.com/kustodian/kustodian/internal/ui"
)

var (
	renderOutput string
	renderWrite  bool
)

// renderCmd represents the render command.
var renderCmd = &cobra.Command{
	Use:   "render [paths...]",
	Short: "Render kustomize directives in Markdown files",
	Long: `Render kustomize directives embedded in Markdown files.

Each path may be a Markdown file or a directory, which is walked for *.md
files. By default the rendered result goes to stdout; use --output to write
to a directory or --write to rewrite the files in place.

A failing directive becomes a visible error block in the output and never
aborts the rest of the page or run.

Examples:
  # Render one page to stdout
  kustodian render docs/apps.md

  # Render a whole docs tree into a build directory
  kustodian render -o site docs/

  # Rewrite pages in place
  kustodian render -w docs/`,
	Args: cobra.MinimumNArgs(1),
	Run:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output directory (prints to stdout if not set)")
	renderCmd.Flags().BoolVarP(&renderWrite, "write", "w", false, "Rewrite files in place")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	logger := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		ui.Error("Failed to load config: %v", err)
		os.Exit(1)
	}

	table := discovery.Table{}
	if cfg.AutoNavPath != "" {
		table, err = discovery.BuildTable(cfg.AutoNavPath)
		if err != nil {
			ui.Error("Discovery failed: %v", err)
			os.Exit(1)
		}
		logger.Debug("discovery table built", "entries", len(table))
	}

	files, err := collectMarkdownFiles(args)
	if err != nil {
		ui.Error("%v", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		ui.Warning("No Markdown files found under %s", strings.Join(args, ", "))
		return
	}

	runID := uuid.New().String()[:8]
	logger.Info("rendering", "run", runID, "files", len(files))

	invoker := kustomize.NewInvoker(cfg.KustomizePath, cfg.Timeout())
	r := renderer.New(cfg, table, invoker, logger)

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			ui.Error("Failed to read %s: %v", file, err)
			os.Exit(1)
		}

		rendered := r.Render(ctx, string(data))

		switch {
		case renderOutput != "":
			dst := filepath.Join(renderOutput, outputRelPath(file))
			if err := fileutil.WriteFile(dst, []byte(rendered), 0644); err != nil {
				ui.Error("Failed to write %s: %v", dst, err)
				os.Exit(1)
			}
		case renderWrite:
			if err := fileutil.WriteFile(file, []byte(rendered), 0644); err != nil {
				ui.Error("Failed to write %s: %v", file, err)
				os.Exit(1)
			}
		default:
			fmt.Print(rendered)
		}
	}

	if renderOutput != "" || renderWrite {
		ui.Success("Rendered %d file(s)", len(files))
	}
}

// collectMarkdownFiles expands file and directory arguments into a list of
// Markdown files.
func collectMarkdownFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}

		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".md") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
	}

	return files, nil
}

// outputRelPath maps an input path into the output directory, keeping
// relative structure and flattening absolute paths to their base name.
func outputRelPath(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Base(path)
	}
	return filepath.Clean(path)
}
