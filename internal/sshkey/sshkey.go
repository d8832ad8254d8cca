package sshkey

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mac-bootstrap/internal/command"
	"mac-bootstrap/internal/logger"
)

// KeyName is the fixed key filename; the algorithm is always ed25519.
const KeyName = "id_ed25519"

// Options locates and labels the key pair.
type Options struct {
	Dir     string // SSH directory, normally ~/.ssh
	Comment string // Key comment, typically an email address
}

// Decisions are the interactive yes/no answers, obtained by the caller and
// passed in so the state machine never reads the terminal itself.
type Decisions struct {
	Generate     bool // Generate a key when none exists
	ShowExisting bool // Print the existing public key when one exists
}

// Ensure runs the key state machine:
//   - existing private key: never regenerate; optionally print and copy the
//     public half;
//   - no key: create the directory owner-only, generate an ed25519 pair with
//     no passphrase, register it with the agent, ensure the client config
//     stanza exists, and surface the public key.
//
// Agent and clipboard failures are non-fatal throughout.
func Ensure(ctx context.Context, r command.Runner, env command.Env, opts Options, dec Decisions) error {
	privPath := filepath.Join(opts.Dir, KeyName)
	pubPath := privPath + ".pub"

	if _, err := os.Stat(privPath); err == nil {
		logger.Info("[INFO] SSH key already exists at %s. Not regenerating.\n", privPath)
		if !dec.ShowExisting {
			return nil
		}
		surfacePublicKey(ctx, r, env, pubPath)
		return nil
	}

	if !dec.Generate {
		logger.Warn("[WARN] SSH key generation skipped.\n")
		return nil
	}

	if err := os.MkdirAll(opts.Dir, 0700); err != nil {
		logger.Warn("[WARN] Could not create %s: %v\n", opts.Dir, err)
		return err
	}

	logger.Info("[INFO] Generating a new ed25519 SSH key...\n")
	out, err := r.Run(ctx, env, "ssh-keygen", "-t", "ed25519", "-C", opts.Comment, "-f", privPath, "-N", "")
	if err != nil {
		logger.Warn("[WARN] ssh-keygen failed: %v\nOutput: %s\n", err, out)
		return err
	}

	if out, err := r.Run(ctx, env, "ssh-add", "--apple-use-keychain", privPath); err != nil {
		logger.Warn("[WARN] Could not add key to ssh-agent: %v\nOutput: %s\n", err, out)
	}

	if err := ensureConfigStanza(opts.Dir); err != nil {
		logger.Warn("[WARN] Could not update SSH client config: %v\n", err)
	}

	surfacePublicKey(ctx, r, env, pubPath)
	logger.Info("[INFO] Add the key above to your remote hosting service (e.g. GitHub → Settings → SSH keys).\n")
	return nil
}

// ensureConfigStanza appends the host-wildcard stanza referencing the key to
// the SSH client config, gated on the identity line being absent, then
// restricts the file to owner-only permissions.
func ensureConfigStanza(dir string) error {
	cfgPath := filepath.Join(dir, "config")
	identityLine := "IdentityFile ~/.ssh/" + KeyName

	raw, err := os.ReadFile(cfgPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read %s: %w", cfgPath, err)
	}
	if strings.Contains(string(raw), identityLine) {
		logger.Debug("[DEBUG] SSH config already references %s\n", KeyName)
		return nil
	}

	stanza := strings.Join([]string{
		"Host *",
		"  AddKeysToAgent yes",
		"  UseKeychain yes",
		"  " + identityLine,
	}, "\n") + "\n"

	content := string(raw)
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if content != "" {
		content += "\n"
	}
	content += stanza

	if err := os.WriteFile(cfgPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", cfgPath, err)
	}
	if err := os.Chmod(cfgPath, 0600); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", cfgPath, err)
	}
	logger.Info("[INFO] Added %s to SSH client config.\n", KeyName)
	return nil
}

// surfacePublicKey prints the public key and copies it to the clipboard.
// A missing clipboard is a warning, not a failure.
func surfacePublicKey(ctx context.Context, r command.Runner, env command.Env, pubPath string) {
	pub, err := os.ReadFile(pubPath)
	if err != nil {
		logger.Warn("[WARN] Could not read public key %s: %v\n", pubPath, err)
		return
	}

	fmt.Println(strings.TrimSpace(string(pub)))

	if _, err := r.RunInput(ctx, env, string(pub), "pbcopy"); err != nil {
		logger.Warn("[WARN] Could not copy public key to clipboard: %v\n", err)
		return
	}
	logger.Info("[INFO] Public key copied to clipboard.\n")
}
