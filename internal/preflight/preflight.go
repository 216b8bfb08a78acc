// Package preflight provides pre-flight validation for required binaries
// and project configuration.
package preflight

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/kustodian/kustodian/internal/config"
	"github.com/kustodian/kustodian/internal/fileutil"
	"github.com/kustodian/kustodian/internal/kustomize"
)

// Status classifies a check result.
type Status string

const (
	StatusPass Status = "pass"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// Check is one preflight result.
type Check struct {
	Name   string
	Status Status
	Detail string
}

// Run performs all preflight checks against the loaded configuration.
func Run(ctx context.Context, cfg *config.Config) []Check {
	checks := []Check{checkKustomize(ctx, cfg)}

	checks = append(checks, checkGit())
	checks = append(checks, checkSearchRoots(cfg)...)
	checks = append(checks, checkDiscoveryRoot(cfg))

	return checks
}

// Failed reports whether any check failed outright.
func Failed(checks []Check) bool {
	for _, c := range checks {
		if c.Status == StatusFail {
			return true
		}
	}
	return false
}

func checkKustomize(ctx context.Context, cfg *config.Config) Check {
	inv := kustomize.NewInvoker(cfg.KustomizePath, cfg.Timeout())
	version, err := inv.Version(ctx)
	if err != nil {
		return Check{
			Name:   "kustomize binary",
			Status: StatusFail,
			Detail: fmt.Sprintf("%q not working: install kustomize (https://kubectl.docs.kubernetes.io/installation/kustomize/)", cfg.KustomizePath),
		}
	}
	return Check{Name: "kustomize binary", Status: StatusPass, Detail: version}
}

func checkGit() Check {
	if _, err := exec.LookPath("git"); err != nil {
		return Check{
			Name:   "git binary",
			Status: StatusWarn,
			Detail: "git not found: repo URL detection for generated pages is disabled",
		}
	}
	return Check{Name: "git binary", Status: StatusPass, Detail: "found in PATH"}
}

func checkSearchRoots(cfg *config.Config) []Check {
	var checks []Check
	for _, root := range cfg.KustomizeDirs {
		if fileutil.IsDir(root) {
			checks = append(checks, Check{Name: "search root " + root, Status: StatusPass, Detail: "exists"})
		} else {
			checks = append(checks, Check{
				Name:   "search root " + root,
				Status: StatusWarn,
				Detail: "not a directory: directives relying on it will fail to resolve",
			})
		}
	}
	return checks
}

func checkDiscoveryRoot(cfg *config.Config) Check {
	if cfg.AutoNavPath == "" {
		return Check{Name: "discovery root", Status: StatusPass, Detail: "not configured (discovery disabled)"}
	}
	if !fileutil.IsDir(cfg.AutoNavPath) {
		return Check{
			Name:   "discovery root",
			Status: StatusFail,
			Detail: fmt.Sprintf("auto_nav_path %q is not a directory", cfg.AutoNavPath),
		}
	}
	return Check{Name: "discovery root", Status: StatusPass, Detail: cfg.AutoNavPath}
}
