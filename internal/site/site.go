// Package site generates the auto-discovered documentation section: an
// index page plus one page per discovered kustomize directory, each ending
// in a directive for the renderer to expand.
package site

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/charmbracelet/log"

	"github.com/kustodian/kustodian/internal/config"
	"github.com/kustodian/kustodian/internal/discovery"
	"github.com/kustodian/kustodian/internal/fileutil"
)

// SectionDir is the directory generated pages live under.
const SectionDir = "kustomize"

// Page is one generated markdown page.
type Page struct {
	// SrcPath is the page path relative to the docs root, forward slashes.
	SrcPath string

	// Title is the display title used in navigation.
	Title string

	// Content is the full markdown body.
	Content string
}

// Generator produces the section pages for a discovery table.
type Generator struct {
	cfg    *config.Config
	table  discovery.Table
	logger *log.Logger
}

// New creates a Generator.
func New(cfg *config.Config, table discovery.Table, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.Default()
	}
	return &Generator{cfg: cfg, table: table, logger: logger}
}

type pageData struct {
	Readme  string
	RelPath string
	RepoURL string
}

type indexEntry struct {
	Title   string
	RelPath string
}

type indexData struct {
	Title   string
	Entries []indexEntry
}

// Pages generates the index page followed by one page per discovered
// directory, sorted by path.
func (g *Generator) Pages(ctx context.Context) ([]Page, error) {
	repoURL := g.cfg.RepoURL
	if repoURL == "" {
		detected, err := DetectRepoURL(ctx, g.cfg.Root)
		if err != nil {
			g.logger.Debug("repo URL detection failed", "err", err)
		} else {
			repoURL = detected
		}
	}

	var pages []Page
	var entries []indexEntry

	for _, rel := range g.table.Keys() {
		dir := g.table[rel]
		title := discovery.DirTitle(dir, rel)

		readme := ""
		if data, err := os.ReadFile(filepath.Join(dir, "README.md")); err == nil {
			readme = string(data)
		} else {
			g.logger.Warn("could not read README", "dir", dir, "err", err)
		}

		content, err := renderTemplate(pageTmpl, pageData{
			Readme:  readme,
			RelPath: rel,
			RepoURL: repoURL,
		})
		if err != nil {
			return nil, fmt.Errorf("render page for %s: %w", rel, err)
		}

		pages = append(pages, Page{
			SrcPath: SectionDir + "/" + rel + ".md",
			Title:   title,
			Content: content,
		})
		entries = append(entries, indexEntry{Title: title, RelPath: rel})
	}

	index, err := renderTemplate(indexTmpl, indexData{
		Title:   g.cfg.NavTitle,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("render index page: %w", err)
	}

	return append([]Page{{
		SrcPath: SectionDir + "/index.md",
		Title:   g.cfg.NavTitle,
		Content: index,
	}}, pages...), nil
}

// Write renders all pages into outDir, mirroring their source paths.
// Returns the number of pages written.
func (g *Generator) Write(ctx context.Context, outDir string) (int, error) {
	pages, err := g.Pages(ctx)
	if err != nil {
		return 0, err
	}

	for _, page := range pages {
		dst := filepath.Join(outDir, filepath.FromSlash(page.SrcPath))
		if err := fileutil.WriteFile(dst, []byte(page.Content), 0644); err != nil {
			return 0, fmt.Errorf("write %s: %w", page.SrcPath, err)
		}
		g.logger.Debug("wrote page", "path", page.SrcPath, "title", page.Title)
	}

	return len(pages), nil
}

func renderTemplate(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var pageTmpl = template.Must(template.New("page").Funcs(sprig.FuncMap()).Parse(
	`{{- if .Readme }}{{ .Readme | trimSuffix "\n" }}

{{ end -}}
## Usage

If you have cloned this repository, you can install by running from the root directory:

` + "```sh" + `
kubectl apply -k {{ .RelPath }}
` + "```" + `
{{- if .RepoURL }}

Or, without cloning:

` + "```sh" + `
kubectl apply -k {{ .RepoURL }}/{{ .RelPath }}
` + "```" + `

As part of a different overlay in your own GitOps repo:

` + "```yaml" + `
apiVersion: kustomize.config.k8s.io/v1beta1
kind: Kustomization
resources:
    - {{ .RepoURL }}/{{ .RelPath }}?ref=main
` + "```" + `
{{- end }}

` + "```kustomize {{ .RelPath }} [analyze=true]\n```" + `
`))

var indexTmpl = template.Must(template.New("index").Funcs(sprig.FuncMap()).Parse(
	`# {{ .Title | default "Kustomize" }}

This section contains auto-discovered Kustomize configurations.

Found {{ len .Entries }} {{ len .Entries | plural "directory" "directories" }} with Kustomize configurations:

{{ range .Entries -}}
- **{{ .Title }}** (` + "`{{ .RelPath }}`" + `)
{{ end }}
Use the navigation menu to explore each configuration.
`))
