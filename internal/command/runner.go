package command

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"mac-bootstrap/internal/logger"
)

// Env is the explicit environment context threaded through every task.
// Version managers need PATH prepends and root variables (PYENV_ROOT,
// NODENV_ROOT, ...) visible to later commands in the same run; instead of
// mutating the process environment, each installer returns an updated copy
// of this value and the dispatcher threads it into the next task.
type Env struct {
	// PathPrepend entries are joined in front of the inherited PATH,
	// first entry wins.
	PathPrepend []string
	// Vars are extra environment variables layered over os.Environ().
	Vars map[string]string
}

// WithPath returns a copy of the Env with dir prepended to the PATH,
// skipping duplicates so repeated installer runs stay stable.
func (e Env) WithPath(dir string) Env {
	for _, p := range e.PathPrepend {
		if p == dir {
			return e
		}
	}
	out := e.clone()
	out.PathPrepend = append([]string{dir}, out.PathPrepend...)
	return out
}

// WithVar returns a copy of the Env with an extra variable set.
func (e Env) WithVar(key, value string) Env {
	out := e.clone()
	out.Vars[key] = value
	return out
}

func (e Env) clone() Env {
	out := Env{
		PathPrepend: append([]string(nil), e.PathPrepend...),
		Vars:        make(map[string]string, len(e.Vars)),
	}
	for k, v := range e.Vars {
		out.Vars[k] = v
	}
	return out
}

// Environ materializes the context into the KEY=VALUE form exec.Cmd expects,
// layered over the current process environment.
func (e Env) Environ() []string {
	environ := os.Environ()
	if len(e.PathPrepend) > 0 {
		path := strings.Join(e.PathPrepend, ":")
		if cur := os.Getenv("PATH"); cur != "" {
			path = path + ":" + cur
		}
		environ = append(environ, "PATH="+path)
	}
	for k, v := range e.Vars {
		environ = append(environ, k+"="+v)
	}
	return environ
}

// Runner abstracts invocation of external commands so task logic can be
// tested against a scripted transcript instead of a real machine.
type Runner interface {
	// Run executes a command and returns its combined output.
	Run(ctx context.Context, env Env, name string, args ...string) (string, error)
	// RunInput is Run with data piped to the command's stdin (pbcopy).
	RunInput(ctx context.Context, env Env, input, name string, args ...string) (string, error)
	// Interactive executes a command wired to the user's terminal, for
	// anything that prompts (sudo -v, the Oh My Zsh installer).
	Interactive(ctx context.Context, env Env, name string, args ...string) error
	// LookPath reports whether an executable is resolvable by name.
	LookPath(name string) (string, error)
}

// ExecRunner implements Runner on top of os/exec.
type ExecRunner struct{}

// NewExecRunner creates the real command runner used outside of tests.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command and captures both stdout and stderr.
// The combined output is returned even on failure so callers can include it
// in their warning lines.
func (r *ExecRunner) Run(ctx context.Context, env Env, name string, args ...string) (string, error) {
	logger.Debug("[DEBUG] Running command: %s %s\n", name, strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = env.Environ()
	output, err := cmd.CombinedOutput()
	return string(output), err
}

// RunInput executes the command with input piped to stdin.
func (r *ExecRunner) RunInput(ctx context.Context, env Env, input, name string, args ...string) (string, error) {
	logger.Debug("[DEBUG] Running command with stdin: %s %s\n", name, strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = env.Environ()
	cmd.Stdin = bytes.NewBufferString(input)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

// Interactive executes the command attached to the caller's terminal.
func (r *ExecRunner) Interactive(ctx context.Context, env Env, name string, args ...string) error {
	logger.Debug("[DEBUG] Running interactive command: %s %s\n", name, strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = env.Environ()
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// LookPath resolves an executable name against PATH.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
