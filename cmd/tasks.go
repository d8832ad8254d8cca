package cmd

import (
	"github.com/spf13/cobra"
)

// Granular subcommands for running one provisioning task without the menu.
// Each maps straight onto a task from the dispatcher registry, so menu runs
// and subcommand runs go through identical code.

var packagesCmd = &cobra.Command{
	Use:   "packages",
	Short: "Install Homebrew and the core formulae",
	Run: func(cmd *cobra.Command, args []string) {
		runTask("homebrew")
	},
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Install Oh My Zsh and configure the zsh profile",
	Run: func(cmd *cobra.Command, args []string) {
		runTask("shell")
	},
}

var pythonCmd = &cobra.Command{
	Use:   "python",
	Short: "Install the Python runtime via pyenv",
	Run: func(cmd *cobra.Command, args []string) {
		runTask("python")
	},
}

var nodeCmd = &cobra.Command{
	Use:   "node",
	Short: "Install the Node runtime via nodenv",
	Run: func(cmd *cobra.Command, args []string) {
		runTask("node")
	},
}

var rubyCmd = &cobra.Command{
	Use:   "ruby",
	Short: "Install the Ruby runtime via rbenv",
	Run: func(cmd *cobra.Command, args []string) {
		runTask("ruby")
	},
}

var dockerCmd = &cobra.Command{
	Use:   "docker",
	Short: "Install Docker Desktop",
	Run: func(cmd *cobra.Command, args []string) {
		runTask("docker")
	},
}

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "Install GUI applications",
	Run: func(cmd *cobra.Command, args []string) {
		runTask("apps")
	},
}

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Apply macOS preference tweaks",
	Run: func(cmd *cobra.Command, args []string) {
		runTask("defaults")
	},
}

var sshKeyCmd = &cobra.Command{
	Use:   "ssh-key",
	Short: "Generate or show the SSH key",
	Run: func(cmd *cobra.Command, args []string) {
		runTask("sshkey")
	},
}

var fontsCmd = &cobra.Command{
	Use:   "fonts",
	Short: "Install Nerd Fonts",
	Run: func(cmd *cobra.Command, args []string) {
		runTask("fonts")
	},
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Clean Homebrew caches",
	Run: func(cmd *cobra.Command, args []string) {
		runTask("cleanup")
	},
}

func init() {
	rootCmd.AddCommand(packagesCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(pythonCmd)
	rootCmd.AddCommand(nodeCmd)
	rootCmd.AddCommand(rubyCmd)
	rootCmd.AddCommand(dockerCmd)
	rootCmd.AddCommand(appsCmd)
	rootCmd.AddCommand(defaultsCmd)
	rootCmd.AddCommand(sshKeyCmd)
	rootCmd.AddCommand(fontsCmd)
	rootCmd.AddCommand(cleanupCmd)
}
