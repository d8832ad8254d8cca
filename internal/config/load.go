package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load returns the effective configuration.
// With an empty path the built-in defaults are used. With a path, the YAML
// file is parsed and any section it names replaces the corresponding
// built-in section wholesale; sections it omits keep their defaults.
// A missing or unparsable file is an error so a typo'd --config never
// silently provisions the wrong lists.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var override Config
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if len(override.Packages.Formulae) > 0 {
		cfg.Packages.Formulae = override.Packages.Formulae
	}
	if len(override.Packages.Casks) > 0 {
		cfg.Packages.Casks = override.Packages.Casks
	}
	if len(override.Runtimes) > 0 {
		cfg.Runtimes = override.Runtimes
	}
	if len(override.Settings) > 0 {
		cfg.Settings = override.Settings
	}
	if override.Profile.Theme != "" {
		cfg.Profile.Theme = override.Profile.Theme
	}
	if len(override.Profile.Plugins) > 0 {
		cfg.Profile.Plugins = override.Profile.Plugins
	}
	if len(override.Profile.Aliases) > 0 {
		cfg.Profile.Aliases = override.Profile.Aliases
	}
	if len(override.Profile.Exports) > 0 {
		cfg.Profile.Exports = override.Profile.Exports
	}
	if len(override.Fonts) > 0 {
		cfg.Fonts = override.Fonts
	}
	if override.SSH.Comment != "" {
		cfg.SSH.Comment = override.SSH.Comment
	}

	return cfg, nil
}
