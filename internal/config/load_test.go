package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Packages.Formulae)
	assert.NotEmpty(t, cfg.Packages.Casks)
	assert.Len(t, cfg.Runtimes, 3)
	assert.NotEmpty(t, cfg.Settings)
	assert.NotEmpty(t, cfg.Profile.Theme)
}

func TestLoadOverridesNamedSectionsOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
packages:
  formulae:
    - ripgrep
runtimes:
  - name: python
    manager: pyenv
    release_line: "3.13"
profile:
  theme: agnoster
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	// Named sections replaced wholesale.
	assert.Equal(t, []string{"ripgrep"}, cfg.Packages.Formulae)
	require.Len(t, cfg.Runtimes, 1)
	assert.Equal(t, "3.13", cfg.Runtimes[0].ReleaseLine)
	assert.Equal(t, "agnoster", cfg.Profile.Theme)

	// Omitted sections keep their defaults.
	defaults := Default()
	assert.Equal(t, defaults.Packages.Casks, cfg.Packages.Casks)
	assert.Equal(t, defaults.Settings, cfg.Settings)
	assert.Equal(t, defaults.Profile.Plugins, cfg.Profile.Plugins)
}

func TestLoadMissingFileIsAnError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("packages: ["), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
