// Package setup defines the provisioning tasks and the menu dispatcher that
// sequences them. Each task is idempotent, independent, and callable
// standalone or as part of a sequence; failures inside a task surface as
// warnings and never stop the sequence.
package setup

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"mac-bootstrap/internal/brew"
	"mac-bootstrap/internal/command"
	"mac-bootstrap/internal/config"
	"mac-bootstrap/internal/fonts"
	"mac-bootstrap/internal/logger"
	"mac-bootstrap/internal/macos"
	"mac-bootstrap/internal/runtimes"
	"mac-bootstrap/internal/shellcfg"
	"mac-bootstrap/internal/sshkey"
	"mac-bootstrap/internal/state"
)

// ErrRerunLater signals that a task launched an external installer the user
// must finish by hand (the Command Line Tools GUI) and the run should stop
// cleanly with a re-run instruction.
var ErrRerunLater = errors.New("re-run after the external installer completes")

// Deps carries everything a task needs. Env is the explicit environment
// context: tasks that extend it (Homebrew's bin dir, version manager roots)
// write the updated copy back so later tasks in the same sequence see it.
type Deps struct {
	Run    command.Runner
	Brew   *brew.Client
	Cfg    config.Config
	State  *state.State
	Editor *shellcfg.Editor
	Env    command.Env
	Home   string

	// Decide answers a yes/no prompt. The dispatcher injects the real
	// terminal prompt; tests inject canned answers.
	Decide func(prompt string) bool
}

// Task is one provisioning step.
type Task struct {
	ID        string
	Title     string
	NeedsSudo bool
	Run       func(ctx context.Context, d *Deps) error
}

// taskCommandLineTools checks for the Xcode Command Line Tools and launches
// Apple's installer when they are missing. The install finishes in a GUI
// dialog outside this process, so the task asks for a clean re-run.
func taskCommandLineTools(ctx context.Context, d *Deps) error {
	if out, err := d.Run.Run(ctx, d.Env, "xcode-select", "-p"); err == nil {
		logger.Info("[INFO] Command Line Tools already installed at %s. Skipping.\n", strings.TrimSpace(out))
		return nil
	}

	logger.Info("[INFO] Installing Xcode Command Line Tools...\n")
	if out, err := d.Run.Run(ctx, d.Env, "xcode-select", "--install"); err != nil {
		logger.Warn("[WARN] Could not launch the Command Line Tools installer: %v\nOutput: %s\n", err, out)
		return nil
	}
	return ErrRerunLater
}

// taskHomebrew bootstraps Homebrew, refreshes the catalog and upgrades what
// is already installed, then installs the core formulae list.
// It extends the environment context with Homebrew's bin directory so the
// brew binary resolves for every later task in the same run.
func taskHomebrew(ctx context.Context, d *Deps) error {
	if err := d.Brew.Bootstrap(ctx, d.Env); err != nil {
		return nil
	}
	d.Env = d.Brew.Env(d.Env)
	d.Brew.Update(ctx, d.Env)
	d.Brew.Upgrade(ctx, d.Env)
	d.Brew.InstallFormulae(ctx, d.Env, d.Cfg.Packages.Formulae)
	return nil
}

// taskShell installs Oh My Zsh and edits ~/.zshrc into the configured end
// state.
func taskShell(ctx context.Context, d *Deps) error {
	_ = shellcfg.EnsureOhMyZsh(ctx, d.Run, d.Env, d.Home)
	changed, err := d.Editor.ApplyRules(shellcfg.ProfileRules(d.Cfg.Profile))
	if err != nil {
		logger.Warn("[WARN] Failed to update %s: %v\n", d.Editor.Path, err)
		return nil
	}
	if changed {
		logger.Info("[INFO] Updated %s\n", d.Editor.Path)
	} else {
		logger.Info("[INFO] %s already up to date.\n", d.Editor.Path)
	}
	return nil
}

// runtimeTask builds the task for one configured runtime by name.
func runtimeTask(name string) func(ctx context.Context, d *Deps) error {
	return func(ctx context.Context, d *Deps) error {
		for _, rt := range d.Cfg.Runtimes {
			if rt.Name != name {
				continue
			}
			spec, err := runtimes.SpecFor(rt, d.Home)
			if err != nil {
				logger.Warn("[WARN] %v\n", err)
				return nil
			}
			installer := runtimes.NewInstaller(d.Run, d.Brew, d.Editor)
			d.Env = installer.Install(ctx, d.Brew.Env(d.Env), spec)
			return nil
		}
		logger.Warn("[WARN] No %s runtime configured. Skipping.\n", name)
		return nil
	}
}

// taskDocker installs Docker Desktop as a cask.
func taskDocker(ctx context.Context, d *Deps) error {
	d.Brew.InstallCasks(ctx, d.Brew.Env(d.Env), []string{"docker"})
	return nil
}

// taskApps installs the configured GUI application casks.
func taskApps(ctx context.Context, d *Deps) error {
	d.Brew.InstallCasks(ctx, d.Brew.Env(d.Env), d.Cfg.Packages.Casks)
	return nil
}

// taskDefaults applies the macOS preference tweaks and restarts the UI
// processes that read them.
func taskDefaults(ctx context.Context, d *Deps) error {
	macos.ApplySettings(ctx, d.Run, d.Env, d.Cfg.Settings, d.State)
	macos.RestartUIProcesses(ctx, d.Run, d.Env)
	return nil
}

// taskSSHKey obtains the yes/no decisions up front and hands them to the key
// state machine, keeping the machine itself free of terminal reads.
func taskSSHKey(ctx context.Context, d *Deps) error {
	opts := sshkey.Options{
		Dir:     filepath.Join(d.Home, ".ssh"),
		Comment: d.Cfg.SSH.Comment,
	}
	dec := sshkey.Decisions{}
	if _, err := os.Stat(filepath.Join(opts.Dir, sshkey.KeyName)); err == nil {
		dec.ShowExisting = d.Decide("An SSH key already exists. Show the public key?")
	} else {
		dec.Generate = d.Decide("Generate a new SSH key?")
	}
	return sshkey.Ensure(ctx, d.Run, d.Env, opts, dec)
}

// taskFonts installs the configured Nerd Fonts.
func taskFonts(ctx context.Context, d *Deps) error {
	fonts.Sync(ctx, d.Cfg.Fonts, d.State, filepath.Join(d.Home, "Library", "Fonts"))
	return nil
}

// taskCleanup clears Homebrew's caches.
func taskCleanup(ctx context.Context, d *Deps) error {
	d.Brew.Cleanup(ctx, d.Brew.Env(d.Env))
	return nil
}
