package site

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// DetectRepoURL asks git for the origin remote of dir and normalizes it to
// a browsable https URL. Used when repo_url is not configured.
func DetectRepoURL(ctx context.Context, dir string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "-C", dir, "remote", "get-url", "origin")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git remote get-url failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return normalizeRemote(strings.TrimSpace(stdout.String())), nil
}

// normalizeRemote converts ssh-style remotes (git@host:owner/repo.git) to
// https form and strips the .git suffix.
func normalizeRemote(remote string) string {
	remote = strings.TrimSuffix(remote, ".git")

	if rest, ok := strings.CutPrefix(remote, "git@"); ok {
		host, path, found := strings.Cut(rest, ":")
		if found {
			return "https://" + host + "/" + path
		}
	}
	if rest, ok := strings.CutPrefix(remote, "ssh://git@"); ok {
		return "https://" + rest
	}
	return remote
}
