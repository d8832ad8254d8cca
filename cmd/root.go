package cmd

import (
	"github.com/spf13/cobra"

	"mac-bootstrap/internal/logger"
)

// debug indicates whether debug logging should be enabled.
// It can be toggled via the `--debug` command-line flag.
var debug bool

// configPath optionally points at a YAML file overriding the built-in
// provisioning lists.
var configPath string

// rootCmd is the base command for the CLI tool `mac-bootstrap`.
// Running it with no subcommand presents the interactive numbered menu;
// subcommands run individual provisioning tasks directly.
var rootCmd = &cobra.Command{
	Use:   "mac-bootstrap",
	Short: "Provision a fresh Apple Silicon Mac",

	// PersistentPreRun runs before any subcommand and initializes the
	// logger based on the debug flag.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(debug)
	},

	Run: runMenu,
}

// Execute initializes flags, registers subcommands, and starts command
// execution. It is the entry point for the CLI when invoked by the user.
func Execute() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to an optional configuration file")

	_ = rootCmd.Execute()
}
