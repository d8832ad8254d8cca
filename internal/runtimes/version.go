package runtimes

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// LatestMatching scans a version manager's `install --list` output and
// returns the newest stable version on the given release line.
//
// The listing output's order is deliberately not trusted: managers emit
// lexicographically sorted lists, and "3.9.9" sorts after "3.10.1" there.
// Every candidate is parsed and compared numerically instead.
//
// releaseLine narrows candidates by prefix component ("3.12" matches 3.12.x,
// "22" matches 22.x.y); an empty line matches everything. Pre-releases and
// non-numeric entries (pypy-..., graalpy-...) are skipped.
func LatestMatching(output, releaseLine string) string {
	var best *semver.Version
	var bestRaw string

	for _, line := range strings.Split(output, "\n") {
		raw := strings.TrimSpace(line)
		if raw == "" || !onReleaseLine(raw, releaseLine) {
			continue
		}
		v, err := semver.NewVersion(raw)
		if err != nil || v.Prerelease() != "" || v.Metadata() != "" {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best = v
			bestRaw = raw
		}
	}

	return bestRaw
}

// onReleaseLine reports whether raw is exactly the release line or a more
// specific version under it ("3.12" accepts "3.12" and "3.12.4", not
// "3.1.2").
func onReleaseLine(raw, releaseLine string) bool {
	if releaseLine == "" {
		return true
	}
	return raw == releaseLine || strings.HasPrefix(raw, releaseLine+".")
}
