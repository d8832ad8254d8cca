package system

import (
	"fmt"
	"runtime"
)

// Supported host platform. Everything this tool installs (Homebrew under
// /opt/homebrew, arm64 casks, Apple-silicon bottles) assumes it.
const (
	SupportedOS   = "darwin"
	SupportedArch = "arm64"
)

// VerifyHost checks a GOOS/GOARCH pair against the supported platform.
// Split out from CheckHost so the guard is testable on any builder.
func VerifyHost(goos, goarch string) error {
	if goos != SupportedOS || goarch != SupportedArch {
		return fmt.Errorf("unsupported platform %s/%s: this tool provisions Apple Silicon Macs (%s/%s) only",
			goos, goarch, SupportedOS, SupportedArch)
	}
	return nil
}

// CheckHost verifies the current process is running on an Apple Silicon Mac.
// It must be called before any mutating action; a mismatch is fatal.
func CheckHost() error {
	return VerifyHost(runtime.GOOS, runtime.GOARCH)
}
