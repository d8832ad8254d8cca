package shellcfg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mac-bootstrap/internal/command"
	"mac-bootstrap/internal/config"
	"mac-bootstrap/internal/logger"
)

// ohMyZshInstallURL is the official one-shot bootstrap script.
const ohMyZshInstallURL = "https://raw.githubusercontent.com/ohmyzsh/ohmyzsh/master/tools/install.sh"

// Block markers for the append-if-absent sections. The marker line is the
// presence check that keeps repeated runs from duplicating the block.
const (
	aliasesMarker = "# mac-bootstrap aliases"
	exportsMarker = "# mac-bootstrap environment"
)

// ZshrcPath returns the profile path for a home directory.
func ZshrcPath(home string) string {
	return filepath.Join(home, ".zshrc")
}

// EnsureOhMyZsh installs the Oh My Zsh framework when ~/.oh-my-zsh is
// absent. The installer script is interactive-ish, so it runs attached to
// the terminal with the flags that keep it from hijacking the shell or
// overwriting the profile this tool is about to edit.
func EnsureOhMyZsh(ctx context.Context, r command.Runner, env command.Env, home string) error {
	dir := filepath.Join(home, ".oh-my-zsh")
	if _, err := os.Stat(dir); err == nil {
		logger.Info("[INFO] Oh My Zsh already installed. Skipping.\n")
		return nil
	}

	logger.Info("[INFO] Installing Oh My Zsh...\n")
	installEnv := env.WithVar("RUNZSH", "no").WithVar("CHSH", "no").WithVar("KEEP_ZSHRC", "yes")
	err := r.Interactive(ctx, installEnv, "sh", "-c",
		`sh -c "$(curl -fsSL `+ohMyZshInstallURL+`)"`)
	if err != nil {
		logger.Warn("[WARN] Oh My Zsh install failed: %v\n", err)
		return err
	}
	logger.Info("[INFO] Oh My Zsh installed.\n")
	return nil
}

// ProfileRules builds the ordered edit rules that transform ~/.zshrc into
// the configured end state:
//  1. theme line: replace wherever it is, insert before the oh-my-zsh source
//     line when missing (the theme must be set before the framework loads);
//  2. plugin list: full-line replace-if-present-else-append;
//  3. aliases block, environment block: append-if-absent.
//
// Version-manager init lines are separate (InitRule) and always appended
// after these so they load last.
func ProfileRules(p config.Profile) []Rule {
	rules := []Rule{
		{
			Name:    "theme",
			Action:  ReplaceLine,
			Match:   "ZSH_THEME=",
			Anchor:  "source $ZSH/oh-my-zsh.sh",
			Payload: []string{fmt.Sprintf("ZSH_THEME=%q", p.Theme)},
		},
		{
			Name:    "plugins",
			Action:  ReplaceLine,
			Match:   "plugins=",
			Payload: []string{fmt.Sprintf("plugins=(%s)", strings.Join(p.Plugins, " "))},
		},
	}

	if len(p.Aliases) > 0 {
		payload := []string{aliasesMarker}
		for _, a := range p.Aliases {
			payload = append(payload, fmt.Sprintf("alias %s=%q", a.Name, a.Value))
		}
		rules = append(rules, Rule{
			Name:    "aliases",
			Action:  AppendIfAbsent,
			Match:   aliasesMarker,
			Payload: payload,
		})
	}

	if len(p.Exports) > 0 {
		payload := append([]string{exportsMarker}, p.Exports...)
		rules = append(rules, Rule{
			Name:    "exports",
			Action:  AppendIfAbsent,
			Match:   exportsMarker,
			Payload: payload,
		})
	}

	return rules
}

// InitRule builds the append-if-absent rule for a version manager's shell
// init lines. The first payload line doubles as the presence marker.
func InitRule(name string, lines []string) Rule {
	return Rule{
		Name:    name + " init",
		Action:  AppendIfAbsent,
		Match:   lines[0],
		Payload: append([]string{"# " + name + " init"}, lines...),
	}
}
