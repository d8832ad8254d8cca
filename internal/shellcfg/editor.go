package shellcfg

import (
	"fmt"
	"os"
	"strings"
	"time"

	"mac-bootstrap/internal/logger"
)

// Action selects how a Rule mutates the profile.
type Action int

const (
	// ReplaceLine replaces the first line starting with Match, or inserts
	// the payload (before the Anchor line when one is set, else at the end)
	// when no line matches.
	ReplaceLine Action = iota
	// AppendIfAbsent appends the payload unless some line already contains
	// Match.
	AppendIfAbsent
)

// Rule is one declarative idempotent edit. Rules are applied in declared
// order because later blocks assume earlier ones exist: the framework source
// line must precede theme and plugin lines that reference it, and tool init
// lines go last so they load after everything else.
type Rule struct {
	Name    string   // For log lines
	Action  Action
	Match   string   // Prefix (ReplaceLine) or marker substring (AppendIfAbsent)
	Anchor  string   // ReplaceLine only: insert before first line containing this when Match is absent
	Payload []string // Lines to write
}

// Apply runs the rules against a profile held as lines and returns the
// resulting lines plus whether anything changed. Pure string work, so the
// whole editor is testable without touching the filesystem.
func Apply(lines []string, rules []Rule) ([]string, bool) {
	changed := false
	for _, rule := range rules {
		var ruleChanged bool
		lines, ruleChanged = applyRule(lines, rule)
		if ruleChanged {
			logger.Debug("[DEBUG] Profile rule %q applied\n", rule.Name)
			changed = true
		}
	}
	return lines, changed
}

func applyRule(lines []string, rule Rule) ([]string, bool) {
	switch rule.Action {
	case ReplaceLine:
		for i, line := range lines {
			if strings.HasPrefix(strings.TrimSpace(line), rule.Match) {
				if line == rule.Payload[0] {
					return lines, false
				}
				out := append([]string(nil), lines...)
				out[i] = rule.Payload[0]
				return out, true
			}
		}
		if rule.Anchor != "" {
			for i, line := range lines {
				if strings.Contains(line, rule.Anchor) {
					out := append([]string(nil), lines[:i]...)
					out = append(out, rule.Payload...)
					out = append(out, lines[i:]...)
					return out, true
				}
			}
		}
		return appendLines(lines, rule.Payload), true

	case AppendIfAbsent:
		for _, line := range lines {
			if strings.Contains(line, rule.Match) {
				return lines, false
			}
		}
		return appendLines(lines, rule.Payload), true
	}
	return lines, false
}

// appendLines adds payload at the end, separated from existing content by a
// single blank line.
func appendLines(lines, payload []string) []string {
	out := append([]string(nil), lines...)
	// Drop trailing empty lines so the separator is exactly one blank line
	// and repeated appends can't accumulate whitespace.
	for len(out) > 0 && strings.TrimSpace(out[len(out)-1]) == "" {
		out = out[:len(out)-1]
	}
	if len(out) > 0 {
		out = append(out, "")
	}
	return append(out, payload...)
}

// Editor applies rules to a profile file on disk, taking one timestamped
// backup per run before the first write.
type Editor struct {
	Path string

	backupDone bool
	now        func() time.Time
}

// NewEditor creates an editor for the given profile path.
func NewEditor(path string) *Editor {
	return &Editor{Path: path, now: time.Now}
}

// ApplyRules reads the profile (a missing file counts as empty), applies the
// rules, and writes the result back only when something changed. The first
// write of a run backs up the pre-existing file to Path.backup.<unix-ts>;
// the backup is never overwritten or read back.
func (e *Editor) ApplyRules(rules []Rule) (bool, error) {
	raw, err := os.ReadFile(e.Path)
	existed := err == nil
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to read %s: %w", e.Path, err)
	}

	lines := []string{}
	if len(raw) > 0 {
		lines = strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	}

	lines, changed := Apply(lines, rules)
	if !changed {
		return false, nil
	}

	if existed && !e.backupDone {
		backup := fmt.Sprintf("%s.backup.%d", e.Path, e.now().Unix())
		if _, err := os.Stat(backup); os.IsNotExist(err) {
			if err := os.WriteFile(backup, raw, 0644); err != nil {
				return false, fmt.Errorf("failed to back up %s: %w", e.Path, err)
			}
			logger.Info("[INFO] Backed up %s to %s\n", e.Path, backup)
		}
		e.backupDone = true
	}

	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(e.Path, []byte(content), 0644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", e.Path, err)
	}
	return true, nil
}
