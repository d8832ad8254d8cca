package config

// Config is the full set of lists the provisioning tasks work from.
// The built-in defaults cover a fresh machine; an optional YAML file can
// override any section wholesale (see Load).
type Config struct {
	Packages Packages  `yaml:"packages"`
	Runtimes []Runtime `yaml:"runtimes"`
	Settings []Setting `yaml:"settings"`
	Profile  Profile   `yaml:"profile"`
	Fonts    []Font    `yaml:"fonts"`
	SSH      SSH       `yaml:"ssh"`
}

// Packages holds the Homebrew install lists.
// - Formulae: command line utilities installed with `brew install`.
// - Casks: GUI applications installed with `brew install --cask`.
// Order is the declared order; dependency resolution is Homebrew's problem.
type Packages struct {
	Formulae []string `yaml:"formulae"`
	Casks    []string `yaml:"casks"`
}

// Runtime describes one language runtime managed through a version manager.
// - Name: runtime name ("python").
// - Manager: the version manager formula/binary ("pyenv").
// - ReleaseLine: the release line to track ("3.12" means newest 3.12.x).
type Runtime struct {
	Name        string `yaml:"name"`
	Manager     string `yaml:"manager"`
	ReleaseLine string `yaml:"release_line"`
}

// Setting represents a macOS `defaults` system setting.
// - Domain: macOS domain (e.g., com.apple.finder).
// - Key: Specific setting key.
// - Value: Desired setting value as a string.
// - Type: Value type ("bool", "int", "string", "float").
type Setting struct {
	Domain string `yaml:"domain"`
	Key    string `yaml:"key"`
	Value  string `yaml:"value"`
	Type   string `yaml:"type"`
}

// Profile describes the desired end state of the zsh profile.
type Profile struct {
	Theme   string   `yaml:"theme"`
	Plugins []string `yaml:"plugins"`
	Aliases []Alias  `yaml:"aliases"`
	Exports []string `yaml:"exports"`
}

// Alias defines a single shell alias (e.g., ll = ls -al).
type Alias struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// Font represents a downloadable font archive published as a GitHub release
// asset (e.g. the Nerd Fonts repo).
type Font struct {
	Name  string `yaml:"name"`  // Font family name, e.g. "JetBrainsMono"
	Repo  string `yaml:"repo"`  // GitHub repo, e.g. ryanoasis/nerd-fonts
	Tag   string `yaml:"tag"`   // Release tag, e.g. v3.2.1
	Asset string `yaml:"asset"` // Asset filename within the release
}

// SSH configures the key generator.
type SSH struct {
	Comment string `yaml:"comment"` // Key comment, typically an email address
}
