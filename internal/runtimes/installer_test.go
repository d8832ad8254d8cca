package runtimes

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mac-bootstrap/internal/brew"
	"mac-bootstrap/internal/command"
	"mac-bootstrap/internal/config"
	"mac-bootstrap/internal/shellcfg"
)

func testInstaller(t *testing.T, r *command.ScriptRunner) (*Installer, string) {
	t.Helper()
	home := t.TempDir()
	editor := shellcfg.NewEditor(filepath.Join(home, ".zshrc"))
	return NewInstaller(r, brew.New(r, nil), editor), home
}

func pythonSpec(t *testing.T, home, line string) Spec {
	t.Helper()
	spec, err := SpecFor(config.Runtime{Name: "python", Manager: "pyenv", ReleaseLine: line}, home)
	require.NoError(t, err)
	return spec
}

func TestInstallSelectsNewestOnReleaseLine(t *testing.T) {
	r := command.NewScriptRunner()
	r.Responses["brew list --formula -1"] = "pyenv\n"
	r.Responses["pyenv install --list"] = "3.11.9\n3.12.0\n3.12.4\n3.9.9\n"
	r.Responses["pyenv versions --bare"] = "3.11.9\n"

	in, home := testInstaller(t, r)
	env := in.Install(context.Background(), command.Env{Vars: map[string]string{}}, pythonSpec(t, home, "3.12"))

	// Manager was present, so no brew install was issued.
	assert.False(t, r.CalledWithPrefix("brew install"))
	// 3.12.4 beats 3.12.0; 3.9.9 is off the line.
	assert.Contains(t, r.Calls, "pyenv install 3.12.4")
	assert.Contains(t, r.Calls, "pyenv global 3.12.4")
	// Runtime-specific extra ran on the fresh version.
	assert.Contains(t, r.Calls, "pyenv exec pip install --upgrade pip")
	// The returned context carries the manager's environment.
	assert.Equal(t, filepath.Join(home, ".pyenv"), env.Vars["PYENV_ROOT"])
	assert.Contains(t, env.PathPrepend, filepath.Join(home, ".pyenv")+"/shims")
}

func TestInstallSkipsAlreadyInstalledVersion(t *testing.T) {
	r := command.NewScriptRunner()
	r.Responses["brew list --formula -1"] = "pyenv\n"
	r.Responses["pyenv install --list"] = "3.12.0\n3.12.4\n"
	r.Responses["pyenv versions --bare"] = "3.12.4\n"

	in, home := testInstaller(t, r)
	in.Install(context.Background(), command.Env{Vars: map[string]string{}}, pythonSpec(t, home, "3.12"))

	assert.NotContains(t, r.Calls, "pyenv install 3.12.4", "present version must not be reinstalled")
	assert.Contains(t, r.Calls, "pyenv global 3.12.4", "global default is still set")
}

func TestInstallStopsWhenNoVersionMatches(t *testing.T) {
	r := command.NewScriptRunner()
	r.Responses["brew list --formula -1"] = "pyenv\n"
	r.Responses["pyenv install --list"] = "3.11.9\n3.12.4\n"

	in, home := testInstaller(t, r)
	in.Install(context.Background(), command.Env{Vars: map[string]string{}}, pythonSpec(t, home, "4"))

	assert.False(t, r.CalledWithPrefix("pyenv install 3"), "no install without a matching version")
	assert.False(t, r.CalledWithPrefix("pyenv global"), "no global without a matching version")
	assert.False(t, r.CalledWithPrefix("pyenv exec"), "no extras without a matching version")
}

func TestInstallWritesProfileInitOnce(t *testing.T) {
	r := command.NewScriptRunner()
	r.Responses["brew list --formula -1"] = "pyenv\n"
	r.Responses["pyenv install --list"] = "3.12.4\n"
	r.Responses["pyenv versions --bare"] = "3.12.4\n"

	in, home := testInstaller(t, r)
	spec := pythonSpec(t, home, "3.12")
	ctx := context.Background()

	in.Install(ctx, command.Env{Vars: map[string]string{}}, spec)
	in.Install(ctx, command.Env{Vars: map[string]string{}}, spec)

	editor := shellcfg.NewEditor(filepath.Join(home, ".zshrc"))
	changed, err := editor.ApplyRules([]shellcfg.Rule{shellcfg.InitRule(spec.Manager, spec.InitLines)})
	require.NoError(t, err)
	assert.False(t, changed, "init lines must not accumulate across runs")
}

func TestSpecForUnknownManager(t *testing.T) {
	_, err := SpecFor(config.Runtime{Name: "elixir", Manager: "exenv"}, t.TempDir())
	assert.Error(t, err)
}
