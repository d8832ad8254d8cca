package runtimes

import (
	"context"
	"strings"

	"mac-bootstrap/internal/brew"
	"mac-bootstrap/internal/command"
	"mac-bootstrap/internal/logger"
	"mac-bootstrap/internal/shellcfg"
)

// Installer drives the shared version-manager state machine:
//  1. ensure the manager formula itself is installed;
//  2. initialize the manager in the run's environment context;
//  3. initialize the manager in the persistent shell profile;
//  4. pick the newest version on the configured release line and install it
//     (skipping an already-installed one), then set it as the global default;
//  5. run the runtime-specific extras (pip/npm/gem bits).
//
// Every failing step is a warning and the machine moves on, except a release
// line with no available version, which ends the task early.
type Installer struct {
	run    command.Runner
	brew   *brew.Client
	editor *shellcfg.Editor
}

// NewInstaller wires a runtime installer against the shared runner, brew
// client, and profile editor.
func NewInstaller(r command.Runner, b *brew.Client, e *shellcfg.Editor) *Installer {
	return &Installer{run: r, brew: b, editor: e}
}

// Install runs the state machine for one runtime and returns the environment
// context extended with the manager's root and shims, so later tasks in the
// same run can invoke the freshly selected runtime.
func (in *Installer) Install(ctx context.Context, env command.Env, spec Spec) command.Env {
	logger.Info("[INFO] Setting up %s via %s...\n", spec.Name, spec.Manager)

	// Step 1: the manager is just another formula.
	in.brew.InstallFormulae(ctx, env, []string{spec.Manager})

	// Step 2: manager visible to the rest of this process's run.
	env = env.
		WithVar(spec.RootVar, spec.Root).
		WithPath(spec.Root + "/shims").
		WithPath(spec.Root + "/bin")

	// Step 3: manager init in the persistent profile, appended after the
	// framework lines so it loads last.
	if _, err := in.editor.ApplyRules([]shellcfg.Rule{shellcfg.InitRule(spec.Manager, spec.InitLines)}); err != nil {
		logger.Warn("[WARN] Failed to update shell profile for %s: %v\n", spec.Manager, err)
	}

	// Step 4: resolve the newest version on the release line.
	listing, err := in.run.Run(ctx, env, spec.Manager, spec.ListArgs...)
	if err != nil {
		logger.Warn("[WARN] %s could not list installable versions: %v\n", spec.Manager, err)
		return env
	}
	version := LatestMatching(listing, spec.ReleaseLine)
	if version == "" {
		logger.Warn("[WARN] No %s version found for release line %q. Skipping install.\n", spec.Name, spec.ReleaseLine)
		return env
	}
	logger.Info("[INFO] Latest %s %s.x release: %s\n", spec.Name, spec.ReleaseLine, version)

	if in.isInstalled(ctx, env, spec, version) {
		logger.Info("[INFO] %s %s already installed. Skipping.\n", spec.Name, version)
	} else {
		logger.Info("[INFO] Installing %s %s (this can take a while)...\n", spec.Name, version)
		args := append(append([]string(nil), spec.InstallArgs...), version)
		if out, err := in.run.Run(ctx, env, spec.Manager, args...); err != nil {
			logger.Warn("[WARN] Failed to install %s %s: %v\nOutput: %s\n", spec.Name, version, err, out)
		}
	}

	globalArgs := append(append([]string(nil), spec.GlobalArgs...), version)
	if out, err := in.run.Run(ctx, env, spec.Manager, globalArgs...); err != nil {
		logger.Warn("[WARN] Failed to set global %s version: %v\nOutput: %s\n", spec.Name, err, out)
	} else {
		logger.Info("[INFO] %s %s set as global default.\n", spec.Name, version)
	}

	// Step 5: runtime-specific extras on top of the selected version.
	for _, extra := range spec.Extras {
		if out, err := in.run.Run(ctx, env, extra[0], extra[1:]...); err != nil {
			logger.Warn("[WARN] %s failed: %v\nOutput: %s\n", strings.Join(extra, " "), err, out)
		}
	}

	return env
}

// isInstalled checks the manager's installed list so present versions are
// never reinstalled.
func (in *Installer) isInstalled(ctx context.Context, env command.Env, spec Spec, version string) bool {
	out, err := in.run.Run(ctx, env, spec.Manager, spec.VersionsArgs...)
	if err != nil {
		return false
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == version {
			return true
		}
	}
	return false
}
