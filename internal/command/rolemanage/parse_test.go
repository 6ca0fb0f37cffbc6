package rolemanage

import (
	"reflect"
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestSplitRefs(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"a,b c", []string{"a", "b", "c"}},
		{"  a ,, b  ", []string{"a", "b"}},
		{"", nil},
		{"<@&1> <@2>,<@!3>", []string{"<@&1>", "<@2>", "<@!3>"}},
	}
	for _, c := range cases {
		got := SplitRefs(c.in)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("SplitRefs(%q) = %v; want %v", c.in, got, c.want)
		}
	}
}

func TestStripMentions(t *testing.T) {
	if got := stripRoleMention("<@&123>"); got != "123" {
		t.Errorf("stripRoleMention = %q", got)
	}
	if got := stripRoleMention("123"); got != "123" {
		t.Errorf("stripRoleMention passthrough = %q", got)
	}
	if got := stripUserMention("<@123>"); got != "123" {
		t.Errorf("stripUserMention = %q", got)
	}
	if got := stripUserMention("<@!123>"); got != "123" {
		t.Errorf("stripUserMention nickname form = %q", got)
	}
	if got := stripUserMention("somename"); got != "somename" {
		t.Errorf("stripUserMention passthrough = %q", got)
	}
}

func TestResolveRoles(t *testing.T) {
	guild := &discordgo.Guild{
		Roles: []*discordgo.Role{
			{ID: "1", Name: "Raider"},
			{ID: "2", Name: "Crafter"},
		},
	}

	t.Run("by mention id and name", func(t *testing.T) {
		roles := ResolveRoles(guild, []string{"<@&1>", "2", "Raider"})
		if len(roles) != 3 {
			t.Fatalf("want 3 roles, got %d", len(roles))
		}
		if roles[0].ID != "1" || roles[1].ID != "2" || roles[2].ID != "1" {
			t.Fatalf("unexpected resolution: %v %v %v", roles[0].ID, roles[1].ID, roles[2].ID)
		}
	})

	t.Run("unknown refs skipped", func(t *testing.T) {
		roles := ResolveRoles(guild, []string{"Nobody", "<@&999>"})
		if len(roles) != 0 {
			t.Fatalf("want no roles, got %d", len(roles))
		}
	})
}
