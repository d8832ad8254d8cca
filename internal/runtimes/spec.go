package runtimes

import (
	"fmt"
	"path/filepath"

	"mac-bootstrap/internal/config"
)

// Spec is the full command shape for one runtime/version-manager pair.
// The three supported managers follow the same rbenv-style conventions, so
// one state machine drives all of them.
type Spec struct {
	Name        string // Runtime name for log lines ("python")
	Manager     string // Manager binary and Homebrew formula ("pyenv")
	ReleaseLine string // Release line to track ("3.12")

	Root    string // Manager root directory
	RootVar string // Environment variable naming the root ("PYENV_ROOT")

	ListArgs     []string // Lists installable versions, one per line
	VersionsArgs []string // Lists installed versions, one per line
	InstallArgs  []string // Installs a version (version appended)
	GlobalArgs   []string // Sets the global version (version appended)

	InitLines []string   // Shell profile init lines
	Extras    [][]string // Post-install commands run through the manager
}

// SpecFor resolves a configured runtime into its full command shape.
// Unknown managers are an error at task start rather than a half-run task.
func SpecFor(rt config.Runtime, home string) (Spec, error) {
	switch rt.Manager {
	case "pyenv":
		root := filepath.Join(home, ".pyenv")
		return Spec{
			Name:         rt.Name,
			Manager:      "pyenv",
			ReleaseLine:  rt.ReleaseLine,
			Root:         root,
			RootVar:      "PYENV_ROOT",
			ListArgs:     []string{"install", "--list"},
			VersionsArgs: []string{"versions", "--bare"},
			InstallArgs:  []string{"install"},
			GlobalArgs:   []string{"global"},
			InitLines: []string{
				`export PYENV_ROOT="$HOME/.pyenv"`,
				`eval "$(pyenv init -)"`,
			},
			Extras: [][]string{
				{"pyenv", "exec", "pip", "install", "--upgrade", "pip"},
			},
		}, nil

	case "nodenv":
		root := filepath.Join(home, ".nodenv")
		return Spec{
			Name:         rt.Name,
			Manager:      "nodenv",
			ReleaseLine:  rt.ReleaseLine,
			Root:         root,
			RootVar:      "NODENV_ROOT",
			ListArgs:     []string{"install", "-l"},
			VersionsArgs: []string{"versions", "--bare"},
			InstallArgs:  []string{"install"},
			GlobalArgs:   []string{"global"},
			InitLines: []string{
				`eval "$(nodenv init -)"`,
			},
			Extras: [][]string{
				{"nodenv", "exec", "npm", "install", "-g", "npm"},
				{"nodenv", "exec", "npm", "install", "-g", "yarn"},
			},
		}, nil

	case "rbenv":
		root := filepath.Join(home, ".rbenv")
		return Spec{
			Name:         rt.Name,
			Manager:      "rbenv",
			ReleaseLine:  rt.ReleaseLine,
			Root:         root,
			RootVar:      "RBENV_ROOT",
			ListArgs:     []string{"install", "-l"},
			VersionsArgs: []string{"versions", "--bare"},
			InstallArgs:  []string{"install"},
			GlobalArgs:   []string{"global"},
			InitLines: []string{
				`eval "$(rbenv init - zsh)"`,
			},
			Extras: [][]string{
				{"rbenv", "exec", "gem", "install", "bundler"},
			},
		}, nil
	}

	return Spec{}, fmt.Errorf("unknown version manager %q for runtime %q", rt.Manager, rt.Name)
}
