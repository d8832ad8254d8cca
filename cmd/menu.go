package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"mac-bootstrap/internal/brew"
	"mac-bootstrap/internal/command"
	"mac-bootstrap/internal/config"
	"mac-bootstrap/internal/logger"
	"mac-bootstrap/internal/setup"
	"mac-bootstrap/internal/shellcfg"
	"mac-bootstrap/internal/state"
	"mac-bootstrap/internal/system"
)

// stdin is shared so the menu selection and later yes/no prompts don't
// fight over buffered input.
var stdin = bufio.NewReader(os.Stdin)

// runMenu is the interactive entry point: architecture guard, numbered
// menu, one selection, then the mapped task sequence.
func runMenu(cmd *cobra.Command, args []string) {
	if err := system.CheckHost(); err != nil {
		logger.Error("[ERROR] %v\n", err)
		os.Exit(1)
	}

	fmt.Println("mac-bootstrap - Apple Silicon Mac provisioning")
	fmt.Println()
	for _, opt := range setup.Menu {
		fmt.Printf("  %2s) %s\n", opt.Key, opt.Title)
	}
	fmt.Printf("  %2s) Quit\n", setup.QuitKey)
	fmt.Println()
	fmt.Print("Select an option: ")

	line, err := readLine(stdin)
	if err != nil {
		logger.Error("[ERROR] Failed to read selection: %v\n", err)
		os.Exit(1)
	}
	selection := strings.TrimSpace(line)

	if selection == setup.QuitKey {
		return
	}

	tasks, err := setup.Sequence(selection)
	if err != nil {
		logger.Error("[ERROR] %v\n", err)
		os.Exit(1)
	}

	runTasks(tasks)
}

// runTask runs a single task by ID; shared by the granular subcommands.
func runTask(id string) {
	if err := system.CheckHost(); err != nil {
		logger.Error("[ERROR] %v\n", err)
		os.Exit(1)
	}
	task, err := setup.TaskByID(id)
	if err != nil {
		logger.Error("[ERROR] %v\n", err)
		os.Exit(1)
	}
	runTasks([]setup.Task{task})
}

// runTasks builds the shared dependencies, starts the privilege session when
// the sequence needs it, executes the tasks in order, persists state, and
// prints the completion banner.
func runTasks(tasks []setup.Task) {
	deps, statePath, err := buildDeps()
	if err != nil {
		logger.Error("[ERROR] %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if setup.NeedsSudo(tasks) {
		system.StartPrivilegeSession(ctx, deps.Run, deps.Env)
	}

	err = setup.RunSequence(ctx, deps, tasks)
	state.Save(statePath, deps.State)

	if errors.Is(err, setup.ErrRerunLater) {
		logger.Info("[INFO] Finish the installer dialog, then run mac-bootstrap again to continue.\n")
		return
	}

	logger.Info("[INFO] Done. Restart your terminal for shell changes to take effect.\n")
}

// buildDeps assembles the shared task dependencies: config, state, runner,
// Homebrew client, profile editor, and terminal prompts.
func buildDeps() (*setup.Deps, string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve home directory: %w", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, "", err
	}

	statePath := filepath.Join(home, ".mac-bootstrap", "state.json")
	runner := command.NewExecRunner()

	deps := &setup.Deps{
		Run:    runner,
		Brew:   brew.New(runner, brew.NewAPI()),
		Cfg:    cfg,
		State:  state.Load(statePath),
		Editor: shellcfg.NewEditor(shellcfg.ZshrcPath(home)),
		Env:    command.Env{Vars: map[string]string{}},
		Home:   home,
		Decide: promptYesNo,
	}
	return deps, statePath, nil
}

// promptYesNo asks a y/n question on the terminal. Anything other than an
// explicit yes is a no.
func promptYesNo(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := readLine(stdin)
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// readLine reads one line of input. Piped input often ends without a trailing
// newline, so EOF with a partial line still counts as an answer.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if errors.Is(err, io.EOF) && line != "" {
		return line, nil
	}
	return line, err
}
