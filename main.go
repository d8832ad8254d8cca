package main

import (
	"mac-bootstrap/cmd" // Import the cmd package which contains the CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// The mac-bootstrap project provisions a fresh Apple Silicon machine:
//   - Verifies the host is actually an arm64 Mac before touching anything
//   - Installs the Xcode Command Line Tools, Homebrew, and a curated set of
//     formulae and casks
//   - Sets up Oh My Zsh and edits ~/.zshrc into a known end state via
//     idempotent text edits (theme, plugins, aliases, exports, tool init)
//   - Installs Python, Node, and Ruby through their version managers, picking
//     the newest release of a configured line by explicit numeric comparison
//   - Applies macOS `defaults` tweaks and restarts the UI processes that
//     read them
//   - Generates an ed25519 SSH key pair and wires it into the agent and
//     ~/.ssh/config
//   - Optionally installs Nerd Fonts from GitHub releases
//
// Error handling strategy:
//   - Individual install or configuration failures are logged as warnings and
//     the run continues; a single broken formula never aborts provisioning
//   - Only a wrong host architecture or an invalid menu selection terminates
//     the process with a non-zero status
//
// All external tools (brew, pyenv, nodenv, rbenv, defaults, ssh-keygen,
// ssh-add, pbcopy, killall) are treated as opaque commands invoked by name.
func main() {
	cmd.Execute()
}
