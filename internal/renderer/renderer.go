package renderer

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/kustodian/kustodian/internal/config"
	"github.com/kustodian/kustodian/internal/discovery"
)

// Builder produces a multi-document YAML stream for a kustomize directory.
// *kustomize.Invoker satisfies this; tests substitute fakes.
type Builder interface {
	Build(ctx context.Context, dir string) (string, error)
}

// Renderer expands kustomize directives embedded in page text.
//
// One Renderer serves a whole documentation build: the discovery table is
// built once up front and never mutated, so a Renderer is safe to share
// across page renders.
type Renderer struct {
	cfg     *config.Config
	table   discovery.Table
	builder Builder
	logger  *log.Logger
}

// New creates a Renderer. A nil table is treated as empty.
func New(cfg *config.Config, table discovery.Table, builder Builder, logger *log.Logger) *Renderer {
	if table == nil {
		table = discovery.Table{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Renderer{cfg: cfg, table: table, builder: builder, logger: logger}
}

// Render replaces every kustomize directive in text with its rendered
// output. Directives are independent: a failing directive becomes an
// inline error block and never aborts its siblings or the page. When
// rendering is disabled by configuration the text passes through unscanned.
func (r *Renderer) Render(ctx context.Context, text string) string {
	if !r.cfg.RenderingEnabled() {
		return text
	}

	directives := scanDirectives(text)
	if len(directives) == 0 {
		return text
	}

	var out strings.Builder
	out.Grow(len(text))

	last := 0
	for _, d := range directives {
		out.WriteString(text[last:d.Start])
		out.WriteString(r.renderDirective(ctx, d))
		last = d.End
	}
	out.WriteString(text[last:])

	return out.String()
}

func (r *Renderer) renderDirective(ctx context.Context, d Directive) string {
	dir, err := resolveDir(d.PathToken, r.table, r.cfg.KustomizeDirs)
	if err != nil {
		r.logger.Warn("directive references unknown directory", "path", d.PathToken)
		return fmt.Sprintf("```yaml\n# Error: Kustomize directory '%s' not found\n```", d.PathToken)
	}

	r.logger.Debug("building kustomize directory", "path", d.PathToken, "dir", dir)

	output, err := r.builder.Build(ctx, dir)
	if err != nil {
		r.logger.Warn("kustomize build failed", "dir", dir, "err", err)
		return fmt.Sprintf("```yaml\n# Error running kustomize: %s\n```", err)
	}

	if d.OverrideBody != "" {
		merged, err := mergeOverride(output, d.OverrideBody)
		if err != nil {
			r.logger.Warn("override merge failed", "dir", dir, "err", err)
			return fmt.Sprintf("```yaml\n# Error parsing YAML: %s\n%s\n```", err, d.OverrideBody)
		}
		output = merged
	}

	if d.Analyze() {
		docs, err := decodeStream(output)
		if err != nil {
			r.logger.Warn("analyze parse failed", "dir", dir, "err", err)
			return fmt.Sprintf("```yaml\n# Error parsing YAML: %s\n```", err)
		}
		return "## Resources Analysis\n\n" + analyzeResources(docs)
	}

	return fmt.Sprintf("```yaml\n%s\n```", output)
}
