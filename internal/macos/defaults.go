package macos

import (
	"context"
	"fmt"

	"mac-bootstrap/internal/command"
	"mac-bootstrap/internal/config"
	"mac-bootstrap/internal/logger"
	"mac-bootstrap/internal/state"
)

// uiProcesses are the processes restarted after settings are applied so the
// changes take visible effect immediately.
var uiProcesses = []string{"Finder", "Dock", "SystemUIServer"}

// ApplySettings writes each configured `defaults` key/value and records it in
// the state file so unchanged values are skipped on the next run. Writes are
// absolute overwrites; there is no read-modify-write. Individual failures
// are warnings.
func ApplySettings(ctx context.Context, r command.Runner, env command.Env, settings []config.Setting, st *state.State) {
	for _, s := range settings {
		key := fmt.Sprintf("%s:%s", s.Domain, s.Key)
		logger.Debug("[DEBUG] Considering setting %s = %s (%s)\n", key, s.Value, s.Type)

		if prev, ok := st.Settings[key]; ok && prev.Value == s.Value {
			logger.Info("[INFO] Skipping already applied setting %s = %s\n", key, s.Value)
			continue
		}

		args := []string{"write", s.Domain, s.Key}
		switch s.Type {
		case "bool":
			args = append(args, "-bool", s.Value)
		case "int":
			args = append(args, "-int", s.Value)
		case "float":
			args = append(args, "-float", s.Value)
		default:
			args = append(args, "-string", s.Value)
		}

		output, err := r.Run(ctx, env, "defaults", args...)
		if err != nil {
			logger.Warn("[WARN] Failed to apply setting %s: %v\nOutput: %s\n", key, err, output)
			continue
		}

		logger.Info("[INFO] Applied setting: %s = %s\n", key, s.Value)
		st.Settings[key] = state.SettingState{
			Domain: s.Domain,
			Key:    s.Key,
			Value:  s.Value,
		}
	}
}

// RestartUIProcesses kills the system UI processes that read the tweaked
// preferences. Failures are swallowed: the preference already took effect,
// it is just not visible until the process restarts on its own.
func RestartUIProcesses(ctx context.Context, r command.Runner, env command.Env) {
	for _, proc := range uiProcesses {
		if out, err := r.Run(ctx, env, "killall", proc); err != nil {
			logger.Debug("[DEBUG] killall %s: %v (%s)\n", proc, err, out)
		}
	}
	logger.Info("[INFO] Restarted Finder, Dock, and SystemUIServer.\n")
}
