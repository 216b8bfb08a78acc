package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectMarkdownFiles(t *testing.T) {
	t.Run("single file", func(t *testing.T) {
		dir := t.TempDir()
		page := filepath.Join(dir, "page.md")
		require.NoError(t, os.WriteFile(page, []byte("# Page\n"), 0644))

		files, err := collectMarkdownFiles([]string{page})
		require.NoError(t, err)
		assert.Equal(t, []string{page}, files)
	})

	t.Run("directory walked for markdown", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("a"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.MD"), []byte("b"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0644))

		files, err := collectMarkdownFiles([]string{dir})
		require.NoError(t, err)
		assert.Len(t, files, 2)
	})

	t.Run("missing path errors", func(t *testing.T) {
		_, err := collectMarkdownFiles([]string{filepath.Join(t.TempDir(), "gone")})
		assert.Error(t, err)
	})
}

func TestOutputRelPath(t *testing.T) {
	assert.Equal(t, filepath.Clean("docs/page.md"), outputRelPath("docs/page.md"))
	assert.Equal(t, "page.md", outputRelPath(string(filepath.Separator)+filepath.Join("abs", "path", "page.md")))
}
