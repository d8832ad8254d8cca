package macos

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"mac-bootstrap/internal/command"
	"mac-bootstrap/internal/config"
	"mac-bootstrap/internal/state"
)

func TestApplySettingsTypedArguments(t *testing.T) {
	tests := []struct {
		name     string
		setting  config.Setting
		wantCall string
	}{
		{
			name:     "bool setting",
			setting:  config.Setting{Domain: "com.apple.finder", Key: "AppleShowAllFiles", Value: "true", Type: "bool"},
			wantCall: "defaults write com.apple.finder AppleShowAllFiles -bool true",
		},
		{
			name:     "int setting",
			setting:  config.Setting{Domain: "NSGlobalDomain", Key: "KeyRepeat", Value: "2", Type: "int"},
			wantCall: "defaults write NSGlobalDomain KeyRepeat -int 2",
		},
		{
			name:     "float setting",
			setting:  config.Setting{Domain: "com.apple.dock", Key: "autohide-delay", Value: "0.2", Type: "float"},
			wantCall: "defaults write com.apple.dock autohide-delay -float 0.2",
		},
		{
			name:     "untyped setting defaults to string",
			setting:  config.Setting{Domain: "com.apple.menuextra.battery", Key: "ShowPercent", Value: "YES"},
			wantCall: "defaults write com.apple.menuextra.battery ShowPercent -string YES",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := command.NewScriptRunner()
			st := state.Load("") // empty state

			ApplySettings(context.Background(), r, command.Env{}, []config.Setting{tt.setting}, st)

			assert.Contains(t, r.Calls, tt.wantCall)
			key := tt.setting.Domain + ":" + tt.setting.Key
			assert.Equal(t, tt.setting.Value, st.Settings[key].Value)
		})
	}
}

func TestApplySettingsSkipsAlreadyApplied(t *testing.T) {
	r := command.NewScriptRunner()
	st := state.Load("")
	st.Settings["com.apple.finder:ShowPathbar"] = state.SettingState{
		Domain: "com.apple.finder", Key: "ShowPathbar", Value: "true",
	}

	ApplySettings(context.Background(), r, command.Env{}, []config.Setting{
		{Domain: "com.apple.finder", Key: "ShowPathbar", Value: "true", Type: "bool"},
	}, st)

	assert.Empty(t, r.Calls, "unchanged setting must not be rewritten")
}

func TestApplySettingsFailureDoesNotRecordState(t *testing.T) {
	r := command.NewScriptRunner()
	r.Failures["defaults write com.apple.finder ShowPathbar -bool true"] = true
	st := state.Load("")

	ApplySettings(context.Background(), r, command.Env{}, []config.Setting{
		{Domain: "com.apple.finder", Key: "ShowPathbar", Value: "true", Type: "bool"},
		{Domain: "com.apple.finder", Key: "ShowStatusBar", Value: "true", Type: "bool"},
	}, st)

	_, ok := st.Settings["com.apple.finder:ShowPathbar"]
	assert.False(t, ok, "failed write must not be recorded as applied")
	assert.Equal(t, "true", st.Settings["com.apple.finder:ShowStatusBar"].Value, "later settings still apply")
}

func TestRestartUIProcessesSwallowsFailures(t *testing.T) {
	r := command.NewScriptRunner()
	r.Failures["killall Finder"] = true

	RestartUIProcesses(context.Background(), r, command.Env{})

	assert.Equal(t, []string{"killall Finder", "killall Dock", "killall SystemUIServer"}, r.Calls)
}
