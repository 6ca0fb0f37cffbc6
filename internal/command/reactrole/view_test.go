package reactrole

import (
	"fmt"
	"testing"

	"github.com/BubbleXIV/guild-steward/internal/storage"

	"github.com/bwmarrin/discordgo"
)

func namedResolver(names map[string]string) RoleNameResolver {
	return func(roleID string) (string, bool) {
		name, ok := names[roleID]
		return name, ok
	}
}

func TestParseButtonID(t *testing.T) {
	cases := []struct {
		in     string
		roleID string
		ok     bool
	}{
		{"reactrole_button_123", "123", true},
		{"reactrole_button_", "", false},
		{"purge_confirm_123", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		roleID, ok := ParseButtonID(c.in)
		if roleID != c.roleID || ok != c.ok {
			t.Errorf("ParseButtonID(%q) = %q, %v; want %q, %v", c.in, roleID, ok, c.roleID, c.ok)
		}
	}
}

func TestBuildButtons(t *testing.T) {
	resolve := namedResolver(map[string]string{"7": "Raider", "8": "Crafter"})

	t.Run("styles colors and custom ids", func(t *testing.T) {
		bindings := []storage.RoleBinding{
			{RoleID: "7", Emoji: "✅", Color: "green"},
			{RoleID: "8", Emoji: "❌", Color: "red"},
		}
		rows := BuildButtons(bindings, resolve)
		if len(rows) != 1 {
			t.Fatalf("want 1 row, got %d", len(rows))
		}
		row := rows[0].(discordgo.ActionsRow)
		if len(row.Components) != 2 {
			t.Fatalf("want 2 buttons, got %d", len(row.Components))
		}

		first := row.Components[0].(discordgo.Button)
		if first.CustomID != "reactrole_button_7" {
			t.Fatalf("unexpected custom id: %s", first.CustomID)
		}
		if first.Label != "Raider" || first.Style != discordgo.SuccessButton {
			t.Fatalf("unexpected button: %+v", first)
		}
		if first.Emoji == nil || first.Emoji.Name != "✅" {
			t.Fatalf("unexpected emoji: %+v", first.Emoji)
		}

		second := row.Components[1].(discordgo.Button)
		if second.Style != discordgo.DangerButton || second.Label != "Crafter" {
			t.Fatalf("unexpected button: %+v", second)
		}
	})

	t.Run("dangling role gets placeholder label", func(t *testing.T) {
		rows := BuildButtons([]storage.RoleBinding{{RoleID: "999", Color: "blue"}}, resolve)
		btn := rows[0].(discordgo.ActionsRow).Components[0].(discordgo.Button)
		if btn.Label != "Role 999" {
			t.Fatalf("want placeholder label, got %q", btn.Label)
		}
		if btn.Style != discordgo.PrimaryButton {
			t.Fatalf("want blue/primary style, got %v", btn.Style)
		}
		if btn.Emoji != nil {
			t.Fatalf("empty emoji should stay unset, got %+v", btn.Emoji)
		}
	})

	t.Run("packs five per row", func(t *testing.T) {
		var bindings []storage.RoleBinding
		for n := 0; n < 12; n++ {
			bindings = append(bindings, storage.RoleBinding{RoleID: fmt.Sprintf("r%d", n), Color: "blue"})
		}
		rows := BuildButtons(bindings, namedResolver(nil))
		if len(rows) != 3 {
			t.Fatalf("want 3 rows for 12 buttons, got %d", len(rows))
		}
		if n := len(rows[0].(discordgo.ActionsRow).Components); n != 5 {
			t.Fatalf("want 5 in first row, got %d", n)
		}
		if n := len(rows[2].(discordgo.ActionsRow).Components); n != 2 {
			t.Fatalf("want 2 in last row, got %d", n)
		}
	})

	t.Run("rebuild is deterministic", func(t *testing.T) {
		bindings := []storage.RoleBinding{
			{RoleID: "7", Emoji: "✅", Color: "green"},
			{RoleID: "8", Emoji: "❌", Color: "red"},
		}
		a := BuildButtons(bindings, resolve)
		b := BuildButtons(bindings, resolve)
		for idx := range a {
			ra := a[idx].(discordgo.ActionsRow)
			rb := b[idx].(discordgo.ActionsRow)
			for j := range ra.Components {
				ba := ra.Components[j].(discordgo.Button)
				bb := rb.Components[j].(discordgo.Button)
				if ba.CustomID != bb.CustomID || ba.Label != bb.Label {
					t.Fatalf("rebuild drifted: %+v vs %+v", ba, bb)
				}
			}
		}
	})
}
