package setup

import (
	"context"
	"errors"
	"fmt"

	"mac-bootstrap/internal/logger"
)

// QuitKey is the explicit exit selection; choosing it is a successful run.
const QuitKey = "q"

// registry holds every task keyed by ID. Sequences reference IDs so the
// menu table below stays a readable static mapping.
var registry = map[string]Task{
	"clt":      {ID: "clt", Title: "Xcode Command Line Tools", Run: taskCommandLineTools},
	"homebrew": {ID: "homebrew", Title: "Homebrew + core packages", NeedsSudo: true, Run: taskHomebrew},
	"shell":    {ID: "shell", Title: "Shell (Oh My Zsh + profile)", Run: taskShell},
	"python":   {ID: "python", Title: "Python runtime", Run: runtimeTask("python")},
	"node":     {ID: "node", Title: "Node runtime", Run: runtimeTask("node")},
	"ruby":     {ID: "ruby", Title: "Ruby runtime", Run: runtimeTask("ruby")},
	"docker":   {ID: "docker", Title: "Docker Desktop", NeedsSudo: true, Run: taskDocker},
	"apps":     {ID: "apps", Title: "GUI applications", NeedsSudo: true, Run: taskApps},
	"defaults": {ID: "defaults", Title: "macOS preferences", Run: taskDefaults},
	"sshkey":   {ID: "sshkey", Title: "SSH key", Run: taskSSHKey},
	"cleanup":  {ID: "cleanup", Title: "Homebrew cleanup", Run: taskCleanup},
	"fonts":    {ID: "fonts", Title: "Nerd Fonts", Run: taskFonts},
}

// MenuOption is one numbered menu entry mapping to an ordered task sequence.
type MenuOption struct {
	Key     string
	Title   string
	TaskIDs []string
}

// Menu is the static selection table presented to the user. Option 1 runs
// the whole provisioning sequence in its fixed order, with cleanup before
// the SSH generator so the interactive key step comes last.
var Menu = []MenuOption{
	{Key: "1", Title: "Full setup", TaskIDs: []string{
		"clt", "homebrew", "shell", "python", "node", "ruby",
		"docker", "apps", "defaults", "cleanup", "sshkey",
	}},
	{Key: "2", Title: "Xcode Command Line Tools", TaskIDs: []string{"clt"}},
	{Key: "3", Title: "Homebrew + core packages", TaskIDs: []string{"homebrew"}},
	{Key: "4", Title: "Shell (Oh My Zsh + profile)", TaskIDs: []string{"shell"}},
	{Key: "5", Title: "Python runtime", TaskIDs: []string{"python"}},
	{Key: "6", Title: "Node runtime", TaskIDs: []string{"node"}},
	{Key: "7", Title: "Ruby runtime", TaskIDs: []string{"ruby"}},
	{Key: "8", Title: "Docker Desktop", TaskIDs: []string{"docker"}},
	{Key: "9", Title: "GUI applications", TaskIDs: []string{"apps"}},
	{Key: "10", Title: "macOS preferences", TaskIDs: []string{"defaults"}},
	{Key: "11", Title: "SSH key", TaskIDs: []string{"sshkey"}},
}

// TaskByID resolves a single task, for the granular subcommands.
func TaskByID(id string) (Task, error) {
	t, ok := registry[id]
	if !ok {
		return Task{}, fmt.Errorf("unknown task %q", id)
	}
	return t, nil
}

// Sequence maps a menu selection to its ordered task list.
// An unknown selection (including out-of-range numbers like "0" or "12") is
// an error and nothing runs.
func Sequence(selection string) ([]Task, error) {
	for _, opt := range Menu {
		if opt.Key != selection {
			continue
		}
		tasks := make([]Task, 0, len(opt.TaskIDs))
		for _, id := range opt.TaskIDs {
			tasks = append(tasks, registry[id])
		}
		return tasks, nil
	}
	return nil, fmt.Errorf("invalid selection %q", selection)
}

// NeedsSudo reports whether any task in the sequence wants the privilege
// session started up front.
func NeedsSudo(tasks []Task) bool {
	for _, t := range tasks {
		if t.NeedsSudo {
			return true
		}
	}
	return false
}

// RunSequence executes tasks in order. Task-internal failures have already
// been downgraded to warnings, so the only error that stops a sequence is
// ErrRerunLater, which the caller turns into a clean early exit.
func RunSequence(ctx context.Context, d *Deps, tasks []Task) error {
	for _, t := range tasks {
		logger.Info("[INFO] ==> %s\n", t.Title)
		if err := t.Run(ctx, d); err != nil {
			if errors.Is(err, ErrRerunLater) {
				return err
			}
			logger.Warn("[WARN] %s finished with a problem: %v\n", t.Title, err)
		}
	}
	return nil
}
