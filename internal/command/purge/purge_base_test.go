package purge

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestChunkIDs(t *testing.T) {
	cases := []struct {
		n    int
		size int
		want []int // chunk lengths
	}{
		{0, 100, nil},
		{1, 100, []int{1}},
		{100, 100, []int{100}},
		{101, 100, []int{100, 1}},
		{250, 100, []int{100, 100, 50}},
	}
	for _, c := range cases {
		ids := make([]string, c.n)
		chunks := chunkIDs(ids, c.size)
		if len(chunks) != len(c.want) {
			t.Errorf("chunkIDs(%d, %d): %d chunks, want %d", c.n, c.size, len(chunks), len(c.want))
			continue
		}
		for idx, chunk := range chunks {
			if len(chunk) != c.want[idx] {
				t.Errorf("chunkIDs(%d, %d) chunk %d has %d, want %d", c.n, c.size, idx, len(chunk), c.want[idx])
			}
		}
	}
}

func TestMessageFilters(t *testing.T) {
	human := &discordgo.Message{Author: &discordgo.User{ID: "u1", Bot: false}}
	robot := &discordgo.Message{Author: &discordgo.User{ID: "u2", Bot: true}}
	orphan := &discordgo.Message{}

	if !Any(human) || !Any(orphan) {
		t.Fatal("Any should match everything")
	}

	byU1 := ByAuthor("u1")
	if !byU1(human) {
		t.Fatal("ByAuthor missed its author")
	}
	if byU1(robot) || byU1(orphan) {
		t.Fatal("ByAuthor matched the wrong message")
	}

	if !ByBots(robot) {
		t.Fatal("ByBots missed a bot")
	}
	if ByBots(human) || ByBots(orphan) {
		t.Fatal("ByBots matched a non-bot")
	}
}
