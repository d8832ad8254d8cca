package brew

import (
	"context"
	"strings"

	"mac-bootstrap/internal/command"
	"mac-bootstrap/internal/logger"
)

// Prefix is the Homebrew installation prefix on Apple Silicon.
const Prefix = "/opt/homebrew"

// BinDir is where Homebrew links executables on Apple Silicon.
const BinDir = Prefix + "/bin"

// installScriptURL is Homebrew's official one-shot bootstrap script.
const installScriptURL = "https://raw.githubusercontent.com/Homebrew/install/HEAD/install.sh"

// Client wraps every Homebrew operation the provisioning tasks need.
// All install loops follow the same contract: check the installed set first,
// skip what is present, warn on individual failures, and never abort the
// task because one package failed.
type Client struct {
	run command.Runner
	api *API
}

// New creates a Homebrew client. The API client is optional metadata sugar;
// pass nil to skip formula descriptions entirely.
func New(r command.Runner, api *API) *Client {
	return &Client{run: r, api: api}
}

// Env returns base extended with the Homebrew bin directory so the brew
// binary resolves in the same run that installed it.
func (c *Client) Env(base command.Env) command.Env {
	return base.WithPath(BinDir)
}

// IsInstalled reports whether the brew executable is resolvable.
func (c *Client) IsInstalled() bool {
	_, err := c.run.LookPath("brew")
	return err == nil
}

// Bootstrap installs Homebrew itself via the official install script.
// The script prompts, so it runs attached to the terminal. No-op when brew
// is already present.
func (c *Client) Bootstrap(ctx context.Context, env command.Env) error {
	if c.IsInstalled() {
		logger.Info("[INFO] Homebrew already installed. Skipping.\n")
		return nil
	}

	logger.Info("[INFO] Installing Homebrew...\n")
	// The outer bash performs the command substitution, so the inner bash
	// receives the fetched script body as its -c argument.
	err := c.run.Interactive(ctx, env, "/bin/bash", "-c",
		`/bin/bash -c "$(curl -fsSL `+installScriptURL+`)"`)
	if err != nil {
		logger.Warn("[WARN] Homebrew install script failed: %v\n", err)
		return err
	}
	logger.Info("[INFO] Homebrew installed.\n")
	return nil
}

// installedSet runs a brew listing command and returns the names as a set.
// A failed listing yields an empty set, which just means install attempts
// will rely on brew's own already-installed handling.
func (c *Client) installedSet(ctx context.Context, env command.Env, args ...string) map[string]bool {
	out, err := c.run.Run(ctx, env, "brew", args...)
	if err != nil {
		logger.Debug("[DEBUG] brew %s failed: %v\n", strings.Join(args, " "), err)
		return map[string]bool{}
	}
	set := make(map[string]bool)
	for _, line := range strings.Split(out, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			set[name] = true
		}
	}
	return set
}

// InstalledFormulae returns the set of installed formula names.
func (c *Client) InstalledFormulae(ctx context.Context, env command.Env) map[string]bool {
	return c.installedSet(ctx, env, "list", "--formula", "-1")
}

// InstalledCasks returns the set of installed cask tokens.
func (c *Client) InstalledCasks(ctx context.Context, env command.Env) map[string]bool {
	return c.installedSet(ctx, env, "list", "--cask", "-1")
}

// InstallFormulae installs each formula in declared order, skipping ones
// already present. Individual failures are warnings.
func (c *Client) InstallFormulae(ctx context.Context, env command.Env, names []string) {
	installed := c.InstalledFormulae(ctx, env)
	for _, name := range names {
		if installed[name] {
			logger.Info("[INFO] %s already installed. Skipping.\n", name)
			continue
		}
		c.describeFormula(ctx, name)
		logger.Info("[INFO] Installing %s...\n", name)
		if out, err := c.run.Run(ctx, env, "brew", "install", name); err != nil {
			logger.Warn("[WARN] Failed to install %s: %v\nOutput: %s\n", name, err, out)
			continue
		}
		logger.Info("[INFO] Installed %s\n", name)
	}
}

// InstallCasks installs each cask in declared order, skipping ones already
// present. Individual failures are warnings.
func (c *Client) InstallCasks(ctx context.Context, env command.Env, names []string) {
	installed := c.InstalledCasks(ctx, env)
	for _, name := range names {
		if installed[name] {
			logger.Info("[INFO] %s already installed. Skipping.\n", name)
			continue
		}
		c.describeCask(ctx, name)
		logger.Info("[INFO] Installing %s...\n", name)
		if out, err := c.run.Run(ctx, env, "brew", "install", "--cask", name); err != nil {
			logger.Warn("[WARN] Failed to install %s: %v\nOutput: %s\n", name, err, out)
			continue
		}
		logger.Info("[INFO] Installed %s\n", name)
	}
}

// describeFormula prints a one-line description from the formulae API ahead
// of the install. Purely informational; lookup failures stay at debug level.
func (c *Client) describeFormula(ctx context.Context, name string) {
	if c.api == nil {
		return
	}
	info, err := c.api.FormulaInfo(ctx, name)
	if err != nil {
		logger.Debug("[DEBUG] formulae API lookup for %s failed: %v\n", name, err)
		return
	}
	logger.Info("[INFO] %s %s: %s\n", info.Name, info.Versions.Stable, info.Desc)
}

// describeCask prints a one-line description from the formulae API ahead of
// the install.
func (c *Client) describeCask(ctx context.Context, token string) {
	if c.api == nil {
		return
	}
	info, err := c.api.CaskInfo(ctx, token)
	if err != nil {
		logger.Debug("[DEBUG] formulae API lookup for %s failed: %v\n", token, err)
		return
	}
	logger.Info("[INFO] %s %s: %s\n", info.Token, info.Version, info.Desc)
}

// Update refreshes the formula catalog. Warning-only.
func (c *Client) Update(ctx context.Context, env command.Env) {
	logger.Info("[INFO] Updating Homebrew...\n")
	if out, err := c.run.Run(ctx, env, "brew", "update"); err != nil {
		logger.Warn("[WARN] brew update failed: %v\nOutput: %s\n", err, out)
	}
}

// Upgrade upgrades all outdated formulae. Warning-only.
func (c *Client) Upgrade(ctx context.Context, env command.Env) {
	logger.Info("[INFO] Upgrading installed packages...\n")
	if out, err := c.run.Run(ctx, env, "brew", "upgrade"); err != nil {
		logger.Warn("[WARN] brew upgrade failed: %v\nOutput: %s\n", err, out)
	}
}

// Cleanup removes stale downloads and old versions from Homebrew's cache.
// This only touches Homebrew's own cache, never files this tool created.
func (c *Client) Cleanup(ctx context.Context, env command.Env) {
	logger.Info("[INFO] Cleaning up Homebrew caches...\n")
	if out, err := c.run.Run(ctx, env, "brew", "cleanup"); err != nil {
		logger.Warn("[WARN] brew cleanup failed: %v\nOutput: %s\n", err, out)
		return
	}
	logger.Info("[INFO] Cleanup complete.\n")
}
