// Package fonts installs font families published as GitHub release archives
// (Nerd Fonts and friends) into the user's font directory.
package fonts

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"mac-bootstrap/internal/config"
	"mac-bootstrap/internal/logger"
	"mac-bootstrap/internal/state"
)

// Sync installs each configured font that the state file does not already
// record: download the release asset, extract it, and copy the font files
// into fontDir (~/Library/Fonts). Individual font failures are warnings.
func Sync(ctx context.Context, cfgFonts []config.Font, st *state.State, fontDir string) {
	for _, font := range cfgFonts {
		if prev, ok := st.Fonts[font.Name]; ok && len(prev.Files) > 0 {
			logger.Info("[INFO] Font %s already installed. Skipping.\n", font.Name)
			continue
		}
		if err := installFont(ctx, font, st, fontDir); err != nil {
			logger.Warn("[WARN] Failed to install font %s: %v\n", font.Name, err)
		}
	}
}

func installFont(ctx context.Context, font config.Font, st *state.State, fontDir string) error {
	url, err := resolveAssetURL(ctx, font.Repo, font.Tag, font.Asset)
	if err != nil {
		return err
	}

	tmpDir, err := os.MkdirTemp("", "mac-bootstrap-font-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	archive := filepath.Join(tmpDir, font.Asset)
	logger.Info("[INFO] Downloading %s...\n", font.Asset)
	if err := downloadFile(ctx, url, archive); err != nil {
		return err
	}

	extracted, err := extractArchive(archive, filepath.Join(tmpDir, "extracted"))
	if err != nil {
		return err
	}

	files, err := findFontFiles(extracted)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logger.Warn("[WARN] No font files found in %s\n", font.Asset)
		return nil
	}

	if err := os.MkdirAll(fontDir, 0755); err != nil {
		return err
	}

	var installed []string
	for _, src := range files {
		dst := filepath.Join(fontDir, filepath.Base(src))
		if err := copyFile(src, dst); err != nil {
			logger.Warn("[WARN] Failed to copy %s: %v\n", filepath.Base(src), err)
			continue
		}
		installed = append(installed, dst)
	}

	logger.Info("[INFO] Installed font %s (%d files)\n", font.Name, len(installed))
	st.Fonts[font.Name] = state.FontState{
		Name:  font.Name,
		URL:   url,
		Files: installed,
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
