package preflight

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kustodian/kustodian/internal/config"
)

func fakeKustomize(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake binary tests require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "kustomize")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\necho v5.4.1\n"), 0755))
	return path
}

func checkByName(checks []Check, name string) (Check, bool) {
	for _, c := range checks {
		if c.Name == name {
			return c, true
		}
	}
	return Check{}, false
}

func TestRun(t *testing.T) {
	t.Run("all pass", func(t *testing.T) {
		goodRoot := t.TempDir()
		cfg := &config.Config{
			KustomizePath: fakeKustomize(t),
			KustomizeDirs: []string{goodRoot},
			AutoNavPath:   goodRoot,
		}

		checks := Run(context.Background(), cfg)
		assert.False(t, Failed(checks))

		k, ok := checkByName(checks, "kustomize binary")
		require.True(t, ok)
		assert.Equal(t, StatusPass, k.Status)
		assert.Equal(t, "v5.4.1", k.Detail)
	})

	t.Run("missing kustomize fails", func(t *testing.T) {
		cfg := &config.Config{KustomizePath: filepath.Join(t.TempDir(), "nope")}

		checks := Run(context.Background(), cfg)
		assert.True(t, Failed(checks))

		k, ok := checkByName(checks, "kustomize binary")
		require.True(t, ok)
		assert.Equal(t, StatusFail, k.Status)
	})

	t.Run("missing search root warns", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "gone")
		cfg := &config.Config{
			KustomizePath: fakeKustomize(t),
			KustomizeDirs: []string{missing},
		}

		checks := Run(context.Background(), cfg)
		assert.False(t, Failed(checks))

		c, ok := checkByName(checks, "search root "+missing)
		require.True(t, ok)
		assert.Equal(t, StatusWarn, c.Status)
	})

	t.Run("missing discovery root fails", func(t *testing.T) {
		cfg := &config.Config{
			KustomizePath: fakeKustomize(t),
			AutoNavPath:   filepath.Join(t.TempDir(), "gone"),
		}

		checks := Run(context.Background(), cfg)
		assert.True(t, Failed(checks))
	})

	t.Run("unset discovery root passes", func(t *testing.T) {
		cfg := &config.Config{KustomizePath: fakeKustomize(t)}

		checks := Run(context.Background(), cfg)
		c, ok := checkByName(checks, "discovery root")
		require.True(t, ok)
		assert.Equal(t, StatusPass, c.Status)
	})
}
