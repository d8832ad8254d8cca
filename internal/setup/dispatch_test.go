package setup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSequence verifies every menu selection maps to exactly the documented
// ordered subset of tasks and nothing else.
func TestSequence(t *testing.T) {
	tests := []struct {
		selection string
		wantIDs   []string
	}{
		{"1", []string{"clt", "homebrew", "shell", "python", "node", "ruby", "docker", "apps", "defaults", "cleanup", "sshkey"}},
		{"2", []string{"clt"}},
		{"3", []string{"homebrew"}},
		{"4", []string{"shell"}},
		{"5", []string{"python"}},
		{"6", []string{"node"}},
		{"7", []string{"ruby"}},
		{"8", []string{"docker"}},
		{"9", []string{"apps"}},
		{"10", []string{"defaults"}},
		{"11", []string{"sshkey"}},
	}

	for _, tt := range tests {
		t.Run("selection "+tt.selection, func(t *testing.T) {
			tasks, err := Sequence(tt.selection)
			require.NoError(t, err)

			got := make([]string, 0, len(tasks))
			for _, task := range tasks {
				got = append(got, task.ID)
			}
			assert.Equal(t, tt.wantIDs, got)
		})
	}
}

// TestSequenceInvalidSelection verifies out-of-range and garbage selections
// are errors and produce no tasks.
func TestSequenceInvalidSelection(t *testing.T) {
	for _, selection := range []string{"0", "12", "", "full", "-1", "1 2"} {
		t.Run("selection "+selection, func(t *testing.T) {
			tasks, err := Sequence(selection)
			assert.Error(t, err)
			assert.Nil(t, tasks)
		})
	}
}

// TestMenuKeysAreUnique guards the static table against copy-paste drift.
func TestMenuKeysAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, opt := range Menu {
		assert.False(t, seen[opt.Key], "duplicate menu key %s", opt.Key)
		seen[opt.Key] = true
		for _, id := range opt.TaskIDs {
			_, err := TaskByID(id)
			assert.NoError(t, err, "menu option %s references unknown task %s", opt.Key, id)
		}
	}
}

func TestNeedsSudo(t *testing.T) {
	full, err := Sequence("1")
	require.NoError(t, err)
	assert.True(t, NeedsSudo(full))

	shellOnly, err := Sequence("4")
	require.NoError(t, err)
	assert.False(t, NeedsSudo(shellOnly))
}

func TestTaskByIDUnknown(t *testing.T) {
	_, err := TaskByID("nope")
	assert.Error(t, err)
}
