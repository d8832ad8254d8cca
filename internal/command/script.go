package command

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// ScriptRunner is a Runner backed by canned responses, used by package tests
// to verify exactly which external commands a task issues without touching
// the machine. Responses are keyed by the joined command line; unmatched
// commands succeed with empty output unless Strict is set.
type ScriptRunner struct {
	mu sync.Mutex

	// Responses maps "name arg1 arg2" to canned output.
	Responses map[string]string
	// Failures marks command lines that should return an error.
	Failures map[string]bool
	// MissingBinaries makes LookPath fail for the named executables.
	MissingBinaries map[string]bool
	// Strict makes any command without a canned response an error.
	Strict bool

	// Calls records every command line issued, in order.
	Calls []string
	// Inputs records stdin payloads passed to RunInput, keyed by command line.
	Inputs map[string]string
}

// NewScriptRunner creates an empty scripted runner.
func NewScriptRunner() *ScriptRunner {
	return &ScriptRunner{
		Responses:       make(map[string]string),
		Failures:        make(map[string]bool),
		MissingBinaries: make(map[string]bool),
		Inputs:          make(map[string]string),
	}
}

func (s *ScriptRunner) record(line string) {
	s.mu.Lock()
	s.Calls = append(s.Calls, line)
	s.mu.Unlock()
}

// CalledWithPrefix reports whether any recorded command line starts with the
// given prefix.
func (s *ScriptRunner) CalledWithPrefix(prefix string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.Calls {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}

func (s *ScriptRunner) respond(line string) (string, error) {
	if s.Failures[line] {
		return "", fmt.Errorf("scripted failure for %q", line)
	}
	if out, ok := s.Responses[line]; ok {
		return out, nil
	}
	if s.Strict {
		return "", fmt.Errorf("no scripted response for %q", line)
	}
	return "", nil
}

// Run returns the canned response for the command line.
func (s *ScriptRunner) Run(ctx context.Context, env Env, name string, args ...string) (string, error) {
	line := strings.Join(append([]string{name}, args...), " ")
	s.record(line)
	return s.respond(line)
}

// RunInput records the stdin payload and returns the canned response.
func (s *ScriptRunner) RunInput(ctx context.Context, env Env, input, name string, args ...string) (string, error) {
	line := strings.Join(append([]string{name}, args...), " ")
	s.record(line)
	s.mu.Lock()
	s.Inputs[line] = input
	s.mu.Unlock()
	return s.respond(line)
}

// Interactive records the command line and returns the canned outcome.
func (s *ScriptRunner) Interactive(ctx context.Context, env Env, name string, args ...string) error {
	line := strings.Join(append([]string{name}, args...), " ")
	s.record(line)
	_, err := s.respond(line)
	return err
}

// LookPath fails only for executables listed in MissingBinaries.
func (s *ScriptRunner) LookPath(name string) (string, error) {
	if s.MissingBinaries[name] {
		return "", fmt.Errorf("executable %q not found in PATH", name)
	}
	return "/usr/bin/" + name, nil
}
