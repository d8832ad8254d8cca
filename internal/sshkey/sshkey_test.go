package sshkey

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mac-bootstrap/internal/command"
)

func writeKeyPair(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, KeyName), []byte("PRIVATE"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, KeyName+".pub"), []byte("ssh-ed25519 AAAA test@example.com\n"), 0644))
}

// TestEnsureNeverRegeneratesExistingKey is the core safety property: with a
// private key on disk, no key-generation command is ever issued.
func TestEnsureNeverRegeneratesExistingKey(t *testing.T) {
	tests := []struct {
		name          string
		showExisting  bool
		wantClipboard bool
	}{
		{name: "declined display", showExisting: false, wantClipboard: false},
		{name: "confirmed display copies to clipboard", showExisting: true, wantClipboard: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), ".ssh")
			writeKeyPair(t, dir)
			r := command.NewScriptRunner()

			err := Ensure(context.Background(), r, command.Env{}, Options{Dir: dir}, Decisions{ShowExisting: tt.showExisting})
			require.NoError(t, err)

			assert.False(t, r.CalledWithPrefix("ssh-keygen"), "existing key must never be regenerated")
			assert.Equal(t, tt.wantClipboard, r.CalledWithPrefix("pbcopy"))

			// Private key untouched.
			raw, err := os.ReadFile(filepath.Join(dir, KeyName))
			require.NoError(t, err)
			assert.Equal(t, "PRIVATE", string(raw))
		})
	}
}

func TestEnsureDeclinedGeneration(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".ssh")
	r := command.NewScriptRunner()

	err := Ensure(context.Background(), r, command.Env{}, Options{Dir: dir}, Decisions{Generate: false})
	require.NoError(t, err)

	assert.Empty(t, r.Calls, "declining skips the whole component")
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestEnsureGeneratesNewKey(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".ssh")
	r := command.NewScriptRunner()
	priv := filepath.Join(dir, KeyName)

	err := Ensure(context.Background(), r, command.Env{}, Options{Dir: dir, Comment: "me@example.com"}, Decisions{Generate: true})
	require.NoError(t, err)

	assert.Contains(t, r.Calls, "ssh-keygen -t ed25519 -C me@example.com -f "+priv+" -N ")
	assert.Contains(t, r.Calls, "ssh-add --apple-use-keychain "+priv)

	// Directory is owner-only.
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())

	// Client config stanza references the key and is owner-only.
	cfgPath := filepath.Join(dir, "config")
	cfg, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.Contains(t, string(cfg), "Host *")
	assert.Contains(t, string(cfg), "IdentityFile ~/.ssh/"+KeyName)

	info, err = os.Stat(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestEnsureConfigStanzaIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".ssh")
	require.NoError(t, os.MkdirAll(dir, 0700))

	require.NoError(t, ensureConfigStanza(dir))
	once, err := os.ReadFile(filepath.Join(dir, "config"))
	require.NoError(t, err)

	require.NoError(t, ensureConfigStanza(dir))
	twice, err := os.ReadFile(filepath.Join(dir, "config"))
	require.NoError(t, err)

	assert.Equal(t, string(once), string(twice))
	assert.Equal(t, 1, strings.Count(string(twice), "IdentityFile"))
}

func TestEnsureConfigStanzaPreservesExistingContent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".ssh")
	require.NoError(t, os.MkdirAll(dir, 0700))
	existing := "Host work\n  HostName work.example.com\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config"), []byte(existing), 0600))

	require.NoError(t, ensureConfigStanza(dir))

	cfg, err := os.ReadFile(filepath.Join(dir, "config"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(cfg), existing), "existing stanzas stay untouched")
	assert.Contains(t, string(cfg), "IdentityFile ~/.ssh/"+KeyName)
}
