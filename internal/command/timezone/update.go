package timezone

import (
	"context"
	"log"
	"time"

	"github.com/BubbleXIV/guild-steward/internal/storage"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"
)

// JobName identifies the periodic refresh in the job manager.
const JobName = "timezone-refresh"

// Channel renames are aggressively rate limited by Discord (twice per
// 10 minutes per channel on top of the global bucket), so updates are
// paced and skipped when the name is already current.
var renameLimiter = rate.NewLimiter(rate.Every(time.Second), 1)

// UpdateAll walks every guild in the session state and renames its
// bound clock channels to the current time.
func UpdateAll(ctx context.Context, s *discordgo.Session, store *storage.Storage) error {
	now := time.Now()

	for _, guild := range s.State.Guilds {
		channels, err := store.TimezoneChannels(guild.ID)
		if err != nil {
			log.Printf("[WARN] Failed to load timezone channels for guild %s: %v", guild.ID, err)
			continue
		}

		for code, channelID := range channels {
			name, err := ChannelName(code, now)
			if err != nil {
				log.Printf("[WARN] Skipping timezone %s in guild %s: %v", code, guild.ID, err)
				continue
			}

			if current, err := s.State.Channel(channelID); err == nil && current.Name == name {
				continue
			}

			if err := renameLimiter.Wait(ctx); err != nil {
				return err
			}
			if _, err := s.ChannelEdit(channelID, &discordgo.ChannelEdit{Name: name}); err != nil {
				log.Printf("[WARN] Failed to rename timezone channel %s in guild %s: %v", channelID, guild.ID, err)
			}
		}
	}
	return nil
}
