package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewWithCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	st, err := New(path)
	if err != nil {
		t.Fatalf("New should recover from a corrupt file, got %v", err)
	}
	defer st.Close()

	// The broken file is preserved under a .corrupt suffix.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	found := false
	for _, e := range entries {
		if strings.Contains(e.Name(), ".corrupt.") {
			found = true
		}
	}
	if !found {
		t.Fatal("corrupt file was not moved aside")
	}

	// And the store starts empty, not broken.
	msgs, err := st.RoleMessages("g1")
	if err != nil {
		t.Fatalf("RoleMessages: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("want empty store, got %+v", msgs)
	}
}

func TestCommandHistoryTrimmed(t *testing.T) {
	st, _ := newTestStorage(t)

	for n := 0; n < commandHistoryLimit+5; n++ {
		err := st.AppendCommandHistory("g1", CommandHistoryRecord{
			Command:  fmt.Sprintf("cmd-%d", n),
			Datetime: time.Now(),
		})
		if err != nil {
			t.Fatalf("AppendCommandHistory: %v", err)
		}
	}

	history, err := st.CommandHistory("g1")
	if err != nil {
		t.Fatalf("CommandHistory: %v", err)
	}
	if len(history) != commandHistoryLimit {
		t.Fatalf("want %d entries, got %d", commandHistoryLimit, len(history))
	}
	// Oldest entries fall off the front.
	if history[0].Command != "cmd-5" {
		t.Fatalf("want cmd-5 first, got %s", history[0].Command)
	}
	if history[len(history)-1].Command != fmt.Sprintf("cmd-%d", commandHistoryLimit+4) {
		t.Fatalf("unexpected newest entry: %s", history[len(history)-1].Command)
	}
}

func TestGroupToggles(t *testing.T) {
	st, _ := newTestStorage(t)

	disabled, err := st.IsGroupDisabled("g1", "roll")
	if err != nil || disabled {
		t.Fatalf("fresh guild should have nothing disabled, got %v %v", disabled, err)
	}

	if err := st.DisableGroup("g1", "roll"); err != nil {
		t.Fatalf("DisableGroup: %v", err)
	}
	// Disabling twice is a no-op, not a duplicate.
	if err := st.DisableGroup("g1", "roll"); err != nil {
		t.Fatalf("DisableGroup again: %v", err)
	}

	groups, err := st.DisabledGroups("g1")
	if err != nil {
		t.Fatalf("DisabledGroups: %v", err)
	}
	if len(groups) != 1 || groups[0] != "roll" {
		t.Fatalf("unexpected disabled groups: %+v", groups)
	}

	if err := st.EnableGroup("g1", "roll"); err != nil {
		t.Fatalf("EnableGroup: %v", err)
	}
	disabled, _ = st.IsGroupDisabled("g1", "roll")
	if disabled {
		t.Fatal("group still disabled after enable")
	}
}

func TestTimezoneChannels(t *testing.T) {
	st, _ := newTestStorage(t)

	if _, err := st.RemoveTimezoneChannel("g1", "PST"); err == nil {
		t.Fatal("removing an unset binding should fail")
	}

	if err := st.SetTimezoneChannel("g1", "PST", "chan1"); err != nil {
		t.Fatalf("SetTimezoneChannel: %v", err)
	}
	if err := st.SetTimezoneChannel("g1", "EST", "chan2"); err != nil {
		t.Fatalf("SetTimezoneChannel: %v", err)
	}

	channels, err := st.TimezoneChannels("g1")
	if err != nil {
		t.Fatalf("TimezoneChannels: %v", err)
	}
	if len(channels) != 2 || channels["PST"] != "chan1" {
		t.Fatalf("unexpected bindings: %+v", channels)
	}

	gone, err := st.RemoveTimezoneChannel("g1", "PST")
	if err != nil {
		t.Fatalf("RemoveTimezoneChannel: %v", err)
	}
	if gone != "chan1" {
		t.Fatalf("want the unbound channel ID back, got %q", gone)
	}

	channels, _ = st.TimezoneChannels("g1")
	if _, ok := channels["PST"]; ok {
		t.Fatal("binding still present after removal")
	}
}
