package state

import (
	"encoding/json" // For JSON encoding and decoding of the state file
	"os"            // For file system operations like reading and writing files
	"path/filepath"

	"mac-bootstrap/internal/logger"
)

// SettingState records a macOS system setting that was applied.
// It stores the domain and key for the `defaults` system, plus the string
// value last written, so unchanged settings are skipped on re-runs.
type SettingState struct {
	Domain string `json:"domain"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// FontState records a font installed by this tool.
type FontState struct {
	Name  string   `json:"name"`  // Font name (e.g., "JetBrainsMono")
	URL   string   `json:"url"`   // Download URL used
	Files []string `json:"files"` // Installed font file paths
}

// State is everything mac-bootstrap remembers between runs.
// Applied settings are keyed by "domain:key"; fonts by name. Package and
// runtime installs are not tracked here because the package manager and the
// version managers are themselves the source of truth for what is installed.
type State struct {
	Settings map[string]SettingState `json:"settings"`
	Fonts    map[string]FontState    `json:"fonts"`
}

// Load reads the saved state from a JSON file at the given path.
// A missing or unreadable file yields a fresh empty state; the maps are
// always non-nil.
func Load(path string) *State {
	file, err := os.ReadFile(path)
	if err != nil {
		return &State{
			Settings: make(map[string]SettingState),
			Fonts:    make(map[string]FontState),
		}
	}

	var st State
	_ = json.Unmarshal(file, &st)

	// Defensive: ensure maps are initialized if JSON contained null fields
	if st.Settings == nil {
		st.Settings = make(map[string]SettingState)
	}
	if st.Fonts == nil {
		st.Fonts = make(map[string]FontState)
	}

	return &st
}

// Save writes the state as indented JSON at the given path, creating parent
// directories as needed. Errors are logged but not propagated; losing state
// only costs redundant work on the next run.
func Save(path string, st *State) {
	file, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		logger.Error("[ERROR] Failed to marshal state: %v\n", err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		logger.Error("[ERROR] Failed to create state directory for %s: %v\n", path, err)
		return
	}

	logger.Debug("[DEBUG] Writing state to %s:\n%s\n", path, string(file))

	if err := os.WriteFile(path, file, 0644); err != nil {
		logger.Error("[ERROR] Failed to write state file %s: %v\n", path, err)
	}
}
