// Package kustomize wraps the external kustomize binary.
package kustomize

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Invoker runs the kustomize binary.
type Invoker struct {
	// Path is the kustomize binary to invoke.
	Path string

	// Timeout bounds a single invocation. Zero means no bound beyond the
	// caller's context.
	Timeout time.Duration
}

// NewInvoker creates an Invoker for the given binary path.
func NewInvoker(path string, timeout time.Duration) *Invoker {
	if path == "" {
		path = "kustomize"
	}
	return &Invoker{Path: path, Timeout: timeout}
}

// Build runs `kustomize build <dir>` and returns the multi-document YAML
// stream from stdout. On any failure the error message carries the captured
// stderr so callers can surface the diagnostic inline.
func (i *Invoker) Build(ctx context.Context, dir string) (string, error) {
	if i.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, i.Path, "build", dir)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("kustomize build timed out after %s for %s", i.Timeout, dir)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%s", msg)
	}
	return stdout.String(), nil
}

// Version runs `kustomize version` and returns its trimmed output.
// Used by preflight to verify the binary is installed and working.
func (i *Invoker) Version(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, i.Path, "version")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("kustomize version failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}
