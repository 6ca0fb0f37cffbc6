package storage

import (
	"errors"
	"path/filepath"
	"testing"
)

func newTestStorage(t *testing.T) (*Storage, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.json")
	st, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st, path
}

func TestCreateRoleMessage(t *testing.T) {
	st, _ := newTestStorage(t)

	first := RoleBinding{RoleID: "7", Emoji: "✅", Color: "green"}
	if err := st.CreateRoleMessage("g1", "m1", "c1", "Pick roles", "Click away", first); err != nil {
		t.Fatalf("CreateRoleMessage: %v", err)
	}

	t.Run("duplicate message rejected", func(t *testing.T) {
		err := st.CreateRoleMessage("g1", "m1", "c1", "Again", "Nope", first)
		if !errors.Is(err, ErrDuplicateEntry) {
			t.Fatalf("want ErrDuplicateEntry, got %v", err)
		}
	})

	t.Run("entry carries channel and metadata", func(t *testing.T) {
		msg, err := st.GetRoleMessage("g1", "m1")
		if err != nil {
			t.Fatalf("GetRoleMessage: %v", err)
		}
		if msg.ChannelID != "c1" || msg.Title != "Pick roles" {
			t.Fatalf("unexpected entry: %+v", msg)
		}
		if len(msg.Bindings) != 1 || msg.Bindings[0].RoleID != "7" {
			t.Fatalf("unexpected bindings: %+v", msg.Bindings)
		}
	})
}

func TestAddRoleBinding(t *testing.T) {
	st, _ := newTestStorage(t)

	if err := st.CreateRoleMessage("g1", "m1", "c1", "t", "d", RoleBinding{RoleID: "7", Emoji: "✅", Color: "green"}); err != nil {
		t.Fatalf("CreateRoleMessage: %v", err)
	}

	t.Run("untracked message", func(t *testing.T) {
		err := st.AddRoleBinding("g1", "nope", RoleBinding{RoleID: "8"})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})

	t.Run("appends in order", func(t *testing.T) {
		if err := st.AddRoleBinding("g1", "m1", RoleBinding{RoleID: "8", Emoji: "❌", Color: "red"}); err != nil {
			t.Fatalf("AddRoleBinding: %v", err)
		}
		bindings, err := st.ListRoleBindings("g1", "m1")
		if err != nil {
			t.Fatalf("ListRoleBindings: %v", err)
		}
		if len(bindings) != 2 || bindings[0].RoleID != "7" || bindings[1].RoleID != "8" {
			t.Fatalf("unexpected order: %+v", bindings)
		}
	})

	t.Run("duplicate role leaves list untouched", func(t *testing.T) {
		err := st.AddRoleBinding("g1", "m1", RoleBinding{RoleID: "8", Emoji: "🎲", Color: "blue"})
		if !errors.Is(err, ErrAlreadyBound) {
			t.Fatalf("want ErrAlreadyBound, got %v", err)
		}
		bindings, _ := st.ListRoleBindings("g1", "m1")
		if len(bindings) != 2 || bindings[1].Emoji != "❌" {
			t.Fatalf("list changed after rejected add: %+v", bindings)
		}
	})
}

func TestRemoveRoleBinding(t *testing.T) {
	st, _ := newTestStorage(t)

	_ = st.CreateRoleMessage("g1", "m1", "c1", "t", "d", RoleBinding{RoleID: "7", Emoji: "✅", Color: "green"})
	_ = st.AddRoleBinding("g1", "m1", RoleBinding{RoleID: "8", Emoji: "❌", Color: "red"})

	t.Run("unknown role", func(t *testing.T) {
		_, err := st.RemoveRoleBinding("g1", "m1", "999")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})

	t.Run("removes one binding", func(t *testing.T) {
		last, err := st.RemoveRoleBinding("g1", "m1", "7")
		if err != nil {
			t.Fatalf("RemoveRoleBinding: %v", err)
		}
		if last {
			t.Fatal("last=true with one binding remaining")
		}
		bindings, _ := st.ListRoleBindings("g1", "m1")
		if len(bindings) != 1 || bindings[0].RoleID != "8" {
			t.Fatalf("unexpected bindings: %+v", bindings)
		}
	})

	t.Run("last removal drops the entry", func(t *testing.T) {
		last, err := st.RemoveRoleBinding("g1", "m1", "8")
		if err != nil {
			t.Fatalf("RemoveRoleBinding: %v", err)
		}
		if !last {
			t.Fatal("want last=true for final binding")
		}
		if _, err := st.GetRoleMessage("g1", "m1"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("entry should be gone, got %v", err)
		}
		// Untracked again: removals now report not found, not empty.
		if _, err := st.RemoveRoleBinding("g1", "m1", "8"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("want ErrNotFound after entry deletion, got %v", err)
		}
	})
}

func TestRoleMessagesSurviveRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	st, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_ = st.CreateRoleMessage("g1", "m1", "c1", "Pick", "Click", RoleBinding{RoleID: "7", Emoji: "✅", Color: "green"})
	_ = st.AddRoleBinding("g1", "m1", RoleBinding{RoleID: "8", Emoji: "❌", Color: "red"})
	_ = st.CreateRoleMessage("g2", "m9", "c9", "Other", "Guild", RoleBinding{RoleID: "5", Emoji: "🎲", Color: "blue"})
	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	st2, err := New(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st2.Close()

	bindings, err := st2.ListRoleBindings("g1", "m1")
	if err != nil {
		t.Fatalf("ListRoleBindings: %v", err)
	}
	if len(bindings) != 2 {
		t.Fatalf("want 2 bindings after restart, got %d", len(bindings))
	}
	if bindings[0].RoleID != "7" || bindings[1].RoleID != "8" {
		t.Fatalf("ordering lost across restart: %+v", bindings)
	}
	if bindings[0].Emoji != "✅" || bindings[0].Color != "green" {
		t.Fatalf("binding fields lost across restart: %+v", bindings[0])
	}

	msg, err := st2.GetRoleMessage("g1", "m1")
	if err != nil {
		t.Fatalf("GetRoleMessage: %v", err)
	}
	if msg.ChannelID != "c1" {
		t.Fatalf("channel lost across restart: %+v", msg)
	}

	// Guilds stay isolated.
	other, err := st2.RoleMessages("g2")
	if err != nil {
		t.Fatalf("RoleMessages: %v", err)
	}
	if len(other) != 1 {
		t.Fatalf("want 1 message in g2, got %d", len(other))
	}
}

func TestListRoleBindingsUntracked(t *testing.T) {
	st, _ := newTestStorage(t)

	bindings, err := st.ListRoleBindings("g1", "nothing")
	if err != nil {
		t.Fatalf("ListRoleBindings: %v", err)
	}
	if len(bindings) != 0 {
		t.Fatalf("want empty list, got %+v", bindings)
	}
}

func TestListRoleBindingsReturnsCopy(t *testing.T) {
	st, _ := newTestStorage(t)

	_ = st.CreateRoleMessage("g1", "m1", "c1", "t", "d", RoleBinding{RoleID: "7", Emoji: "✅", Color: "green"})

	bindings, _ := st.ListRoleBindings("g1", "m1")
	bindings[0].RoleID = "tampered"

	again, _ := st.ListRoleBindings("g1", "m1")
	if again[0].RoleID != "7" {
		t.Fatal("ListRoleBindings leaked internal state")
	}
}
