package renderer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kustodian/kustodian/internal/config"
	"github.com/kustodian/kustodian/internal/discovery"
)

// fakeBuilder returns canned output per directory.
type fakeBuilder struct {
	output map[string]string
	err    error
	calls  []string
}

func (f *fakeBuilder) Build(_ context.Context, dir string) (string, error) {
	f.calls = append(f.calls, dir)
	if f.err != nil {
		return "", f.err
	}
	return f.output[dir], nil
}

func newTestRenderer(t *testing.T, table discovery.Table, builder Builder) *Renderer {
	t.Helper()
	cfg := &config.Config{KustomizePath: "kustomize"}
	return New(cfg, table, builder, log.New(io.Discard))
}

const configMapStream = "apiVersion: v1\nkind: ConfigMap\nmetadata:\n  name: cm"

func TestRender(t *testing.T) {
	t.Run("identity law: raw output wrapped verbatim", func(t *testing.T) {
		dir := t.TempDir()
		table := discovery.Table{"path/to/app": dir}
		builder := &fakeBuilder{output: map[string]string{dir: configMapStream}}
		r := newTestRenderer(t, table, builder)

		out := r.Render(context.Background(), "```kustomize path/to/app\n```")

		assert.Equal(t, fmt.Sprintf("```yaml\n%s\n```", configMapStream), out)
		assert.Equal(t, []string{dir}, builder.calls)
	})

	t.Run("surrounding text preserved", func(t *testing.T) {
		dir := t.TempDir()
		table := discovery.Table{"app": dir}
		builder := &fakeBuilder{output: map[string]string{dir: "kind: ConfigMap"}}
		r := newTestRenderer(t, table, builder)

		out := r.Render(context.Background(), "# Docs\n\n```kustomize app\n```\n\nTrailing prose.\n")

		assert.True(t, strings.HasPrefix(out, "# Docs\n\n```yaml\n"))
		assert.True(t, strings.HasSuffix(out, "\n\nTrailing prose.\n"))
	})

	t.Run("no directives passes through", func(t *testing.T) {
		r := newTestRenderer(t, nil, &fakeBuilder{})
		text := "# Plain page\n\n```yaml\nkey: value\n```\n"
		assert.Equal(t, text, r.Render(context.Background(), text))
	})

	t.Run("disabled config skips scanning", func(t *testing.T) {
		disabled := false
		cfg := &config.Config{Enabled: &disabled}
		builder := &fakeBuilder{}
		r := New(cfg, nil, builder, log.New(io.Discard))

		text := "```kustomize anything\n```"
		assert.Equal(t, text, r.Render(context.Background(), text))
		assert.Empty(t, builder.calls)
	})

	t.Run("unresolvable token renders error block", func(t *testing.T) {
		r := newTestRenderer(t, nil, &fakeBuilder{})

		out := r.Render(context.Background(), "```kustomize missing/app\n```")

		assert.Equal(t, "```yaml\n# Error: Kustomize directory 'missing/app' not found\n```", out)
	})

	t.Run("build failure renders error block", func(t *testing.T) {
		dir := t.TempDir()
		table := discovery.Table{"app": dir}
		builder := &fakeBuilder{err: errors.New("no kustomization file")}
		r := newTestRenderer(t, table, builder)

		out := r.Render(context.Background(), "```kustomize app\n```")

		assert.Equal(t, "```yaml\n# Error running kustomize: no kustomization file\n```", out)
	})

	t.Run("one broken directive does not abort siblings", func(t *testing.T) {
		dir := t.TempDir()
		table := discovery.Table{"good": dir}
		builder := &fakeBuilder{output: map[string]string{dir: "kind: ConfigMap"}}
		r := newTestRenderer(t, table, builder)

		out := r.Render(context.Background(), "```kustomize broken\n```\n\n```kustomize good\n```")

		assert.Contains(t, out, "# Error: Kustomize directory 'broken' not found")
		assert.Contains(t, out, "```yaml\nkind: ConfigMap\n```")
	})

	t.Run("override merged into output", func(t *testing.T) {
		dir := t.TempDir()
		table := discovery.Table{"app": dir}
		stream := configMapStream + "\ndata:\n  k: old\n  j: keep"
		builder := &fakeBuilder{output: map[string]string{dir: stream}}
		r := newTestRenderer(t, table, builder)

		text := "```kustomize app\nkind: ConfigMap\nmetadata:\n  name: cm\ndata:\n  k: new\n```"
		out := r.Render(context.Background(), text)

		assert.Contains(t, out, "k: new")
		assert.NotContains(t, out, "j: keep")
		assert.Contains(t, out, "apiVersion: v1")
	})

	t.Run("invalid override renders error with raw body", func(t *testing.T) {
		dir := t.TempDir()
		table := discovery.Table{"app": dir}
		builder := &fakeBuilder{output: map[string]string{dir: configMapStream}}
		r := newTestRenderer(t, table, builder)

		out := r.Render(context.Background(), "```kustomize app\nkind: [unclosed\n```")

		assert.Contains(t, out, "# Error parsing YAML:")
		// The raw override text is echoed for operator debugging.
		assert.Contains(t, out, "kind: [unclosed")
	})

	t.Run("analyze renders resource table", func(t *testing.T) {
		dir := t.TempDir()
		table := discovery.Table{"path/to/app": dir}
		builder := &fakeBuilder{output: map[string]string{dir: configMapStream}}
		r := newTestRenderer(t, table, builder)

		out := r.Render(context.Background(), "```kustomize path/to/app [analyze=true]\n```")

		assert.True(t, strings.HasPrefix(out, "## Resources Analysis\n\n"))
		assert.Contains(t, out, "<th>Kind</th>")
		assert.Contains(t, out, "<th>Name</th>")
		assert.Contains(t, out, "<th>Namespace</th>")
		assert.Contains(t, out, "<th>Details</th>")
		assert.Contains(t, out, `<td title=""></td>`)
		assert.Contains(t, out, "resource-1")
	})

	t.Run("analyze with override analyzes merged stream", func(t *testing.T) {
		dir := t.TempDir()
		table := discovery.Table{"app": dir}
		stream := configMapStream + "\ndata:\n  k: old"
		builder := &fakeBuilder{output: map[string]string{dir: stream}}
		r := newTestRenderer(t, table, builder)

		text := "```kustomize app [analyze=true]\nkind: ConfigMap\nmetadata:\n  name: cm\ndata:\n  k: new\n```"
		out := r.Render(context.Background(), text)

		assert.Contains(t, out, "## Resources Analysis")
		assert.Contains(t, out, "k: new")
		assert.NotContains(t, out, "k: old")
	})
}

func TestNewDefaults(t *testing.T) {
	r := New(&config.Config{}, nil, &fakeBuilder{}, nil)
	require.NotNil(t, r.table)
	require.NotNil(t, r.logger)
}
