package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsEmptyState(t *testing.T) {
	st := Load(filepath.Join(t.TempDir(), "state.json"))

	assert.NotNil(t, st.Settings)
	assert.NotNil(t, st.Fonts)
	assert.Empty(t, st.Settings)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	st := Load(path)
	st.Settings["com.apple.finder:ShowPathbar"] = SettingState{
		Domain: "com.apple.finder", Key: "ShowPathbar", Value: "true",
	}
	st.Fonts["JetBrainsMono"] = FontState{
		Name:  "JetBrainsMono",
		URL:   "https://example.com/JetBrainsMono.zip",
		Files: []string{"/tmp/JetBrainsMono-Regular.ttf"},
	}
	Save(path, st)

	loaded := Load(path)
	assert.Equal(t, st.Settings, loaded.Settings)
	assert.Equal(t, st.Fonts, loaded.Fonts)
}

func TestLoadNullMapsAreInitialized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"settings": null, "fonts": null}`), 0644))

	st := Load(path)
	assert.NotNil(t, st.Settings)
	assert.NotNil(t, st.Fonts)
}
