package discord

import (
	"log"
	"sync"
	"time"

	"github.com/BubbleXIV/guild-steward/internal/command"

	"github.com/bwmarrin/discordgo"
)

// registerCommands syncs the guild's slash commands with the registry:
// obsolete ones are deleted, current ones are upserted. Creation is
// paced to stay inside Discord's burst limits.
func (b *Bot) registerCommands(guildID string) error {
	appID := b.dg.State.User.ID
	if appID == "" {
		user, err := b.dg.User("@me")
		if err != nil {
			return err
		}
		appID = user.ID
	}

	var wanted []*discordgo.ApplicationCommand
	wantedNames := make(map[string]bool)
	for _, cmd := range command.AllCommands() {
		if def := normalizeDefinition(cmd); def != nil {
			wanted = append(wanted, def)
			wantedNames[def.Name] = true
		}
	}

	existing, _ := b.dg.ApplicationCommands(appID, guildID)
	for _, old := range existing {
		if !wantedNames[old.Name] {
			log.Printf("[INFO] [%s] Deleting obsolete command: %s", guildID, old.Name)
			if err := b.dg.ApplicationCommandDelete(appID, guildID, old.ID); err != nil {
				log.Printf("[ERR] [%s] Failed to delete %s: %v", guildID, old.Name, err)
			}
		}
	}

	registerWithRateLimit(b.dg, appID, guildID, wanted)
	return nil
}

func normalizeDefinition(cmd command.Command) *discordgo.ApplicationCommand {
	if slash, ok := cmd.(command.SlashProvider); ok {
		if def := slash.SlashDefinition(); def != nil {
			if def.Type == 0 {
				def.Type = discordgo.ChatApplicationCommand
			}
			return def
		}
	}
	if menu, ok := cmd.(command.ContextMenuProvider); ok {
		if def := menu.ContextDefinition(); def != nil {
			if def.Type == 0 {
				def.Type = discordgo.MessageApplicationCommand
			}
			return def
		}
	}
	return nil
}

func registerWithRateLimit(dg *discordgo.Session, appID, guildID string, cmds []*discordgo.ApplicationCommand) {
	ticker := time.NewTicker(time.Second / 40)
	defer ticker.Stop()

	var wg sync.WaitGroup
	for _, def := range cmds {
		wg.Add(1)
		go func(def *discordgo.ApplicationCommand) {
			defer wg.Done()
			<-ticker.C

			if _, err := dg.ApplicationCommandCreate(appID, guildID, def); err != nil {
				log.Printf("[ERR] [%s] Can't create command %s: %v", guildID, def.Name, err)
			}
		}(def)
	}
	wg.Wait()
}
