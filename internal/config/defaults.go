package config

// Default returns the built-in provisioning lists used when no config file
// is supplied. These are the fixed lists the menu tasks install, in the
// order they are installed.
func Default() Config {
	return Config{
		Packages: Packages{
			Formulae: []string{
				"git",
				"wget",
				"curl",
				"jq",
				"tree",
				"htop",
				"gnupg",
				"coreutils",
			},
			Casks: []string{
				"google-chrome",
				"visual-studio-code",
				"iterm2",
				"rectangle",
				"slack",
			},
		},
		Runtimes: []Runtime{
			{Name: "python", Manager: "pyenv", ReleaseLine: "3.12"},
			{Name: "node", Manager: "nodenv", ReleaseLine: "22"},
			{Name: "ruby", Manager: "rbenv", ReleaseLine: "3.3"},
		},
		Settings: []Setting{
			// Finder visibility
			{Domain: "com.apple.finder", Key: "AppleShowAllFiles", Value: "true", Type: "bool"},
			{Domain: "com.apple.finder", Key: "ShowPathbar", Value: "true", Type: "bool"},
			{Domain: "com.apple.finder", Key: "ShowStatusBar", Value: "true", Type: "bool"},
			{Domain: "NSGlobalDomain", Key: "AppleShowAllExtensions", Value: "true", Type: "bool"},
			// Trackpad tap to click
			{Domain: "com.apple.AppleMultitouchTrackpad", Key: "Clicking", Value: "true", Type: "bool"},
			{Domain: "com.apple.driver.AppleBluetoothMultitouch.trackpad", Key: "Clicking", Value: "true", Type: "bool"},
			// Key repeat rates
			{Domain: "NSGlobalDomain", Key: "KeyRepeat", Value: "2", Type: "int"},
			{Domain: "NSGlobalDomain", Key: "InitialKeyRepeat", Value: "15", Type: "int"},
			// Menu bar battery percentage
			{Domain: "com.apple.menuextra.battery", Key: "ShowPercent", Value: "YES", Type: "string"},
			// Text autocorrection off
			{Domain: "NSGlobalDomain", Key: "NSAutomaticSpellingCorrectionEnabled", Value: "false", Type: "bool"},
			{Domain: "NSGlobalDomain", Key: "NSAutomaticCapitalizationEnabled", Value: "false", Type: "bool"},
			{Domain: "NSGlobalDomain", Key: "NSAutomaticPeriodSubstitutionEnabled", Value: "false", Type: "bool"},
		},
		Profile: Profile{
			Theme:   "robbyrussell",
			Plugins: []string{"git", "z", "zsh-autosuggestions", "docker"},
			Aliases: []Alias{
				{Name: "ll", Value: "ls -alh"},
				{Name: "gs", Value: "git status"},
				{Name: "gl", Value: "git log --oneline --graph"},
				{Name: "..", Value: "cd .."},
			},
			Exports: []string{
				`export EDITOR="vim"`,
				`export LANG="en_US.UTF-8"`,
			},
		},
		Fonts: []Font{
			{Name: "JetBrainsMono", Repo: "ryanoasis/nerd-fonts", Tag: "v3.2.1", Asset: "JetBrainsMono.zip"},
		},
		SSH: SSH{},
	}
}
