package renderer

import (
	"fmt"
	"path/filepath"

	"github.com/kustodian/kustodian/internal/discovery"
	"github.com/kustodian/kustodian/internal/fileutil"
)

// resolveDir maps a directive's path token to a real directory.
//
// Resolution order matters: discovery-table keys are normalized and
// auto-generated, so they win over ad hoc filesystem probing that could
// otherwise pick a textually similar real path.
func resolveDir(token string, table discovery.Table, searchRoots []string) (string, error) {
	if dir, ok := table[token]; ok {
		return dir, nil
	}

	if filepath.IsAbs(token) && fileutil.IsDir(token) {
		return token, nil
	}

	if fileutil.IsDir(token) {
		return token, nil
	}

	for _, root := range searchRoots {
		candidate := filepath.Join(root, token)
		if fileutil.IsDir(candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("kustomize directory %q not found", token)
}
