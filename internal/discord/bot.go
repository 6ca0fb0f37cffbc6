package discord

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/BubbleXIV/guild-steward/internal/bot"
	"github.com/BubbleXIV/guild-steward/internal/command"
	"github.com/BubbleXIV/guild-steward/internal/command/reactrole"
	"github.com/BubbleXIV/guild-steward/internal/command/timezone"
	"github.com/BubbleXIV/guild-steward/internal/config"
	"github.com/BubbleXIV/guild-steward/internal/storage"
	"github.com/BubbleXIV/guild-steward/pkg/jobmgr"

	"github.com/bwmarrin/discordgo"
)

// Bot owns the Discord session and routes gateway events to commands.
type Bot struct {
	dg      *discordgo.Session
	storage *storage.Storage
	cfg     *config.Config

	mu         sync.Mutex
	registered map[string]bool // guilds whose slash commands were synced this process
	jobsOnce   sync.Once
}

// StartBot connects, serves events until ctx is cancelled, then tears
// everything down.
func StartBot(ctx context.Context, cfg *config.Config, store *storage.Storage) error {
	b := &Bot{
		cfg:        cfg,
		storage:    store,
		registered: make(map[string]bool),
	}
	if err := b.run(ctx, cfg.DiscordToken); err != nil {
		return fmt.Errorf("bot run error: %w", err)
	}
	return nil
}

func (b *Bot) run(ctx context.Context, token string) error {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	b.dg = dg

	b.configureIntents()
	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onGuildCreate)
	dg.AddHandler(b.onInteractionCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	log.Println("[INFO] ❎ Shutdown signal received. Cleaning up...")
	jobmgr.DefaultManager.StopAll()
	return nil
}

func (b *Bot) configureIntents() {
	b.dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildVoiceStates
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	botInfo, err := s.User("@me")
	if err != nil {
		log.Println("[WARN] Error retrieving bot user:", err)
		return
	}

	b.startJobs(s)

	log.Printf("[INFO] ✅ Discord bot %v is running in %d guilds.", botInfo.Username, len(r.Guilds))
}

// startJobs launches the background refreshers exactly once per process.
func (b *Bot) startJobs(s *discordgo.Session) {
	b.jobsOnce.Do(func() {
		interval := time.Duration(b.cfg.TimezoneUpdateMinutes) * time.Minute
		err := jobmgr.DefaultManager.StartPeriodic(timezone.JobName, interval, func(ctx context.Context) error {
			return timezone.UpdateAll(ctx, s, b.storage)
		})
		if err != nil {
			log.Println("[ERR] Failed to start timezone refresh job:", err)
			return
		}
		log.Printf("[INFO] Timezone channels refresh every %s", interval)
	})
}

// onGuildCreate fires for every guild on connect and again whenever the
// bot joins a new one. Both paths need the same treatment: sync the
// slash commands and repaint the persisted role-button messages.
func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	log.Printf("[INFO] Guild available: %s (%s)", g.Guild.ID, g.Guild.Name)

	if b.cfg.InitSlashCommands {
		b.mu.Lock()
		done := b.registered[g.Guild.ID]
		b.registered[g.Guild.ID] = true
		b.mu.Unlock()

		if !done {
			if err := b.registerCommands(g.Guild.ID); err != nil {
				log.Printf("[ERR] Failed to register commands for guild %s: %v", g.Guild.ID, err)
			}
		}
	}

	go reactrole.RestoreViews(s, b.storage, g.Guild.ID)
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		cmdName := i.ApplicationCommandData().Name
		cmd, ok := command.GetCommand(cmdName)
		if !ok {
			log.Printf("[WARN] Unknown command: %s", cmdName)
			return
		}

		switch i.ApplicationCommandData().CommandType {
		case discordgo.MessageApplicationCommand:
			ctx := &command.MessageApplicationCommandContext{
				Session: s,
				Event:   i,
				Storage: b.storage,
				Target:  i.Message,
			}
			if err := cmd.Run(ctx); err != nil {
				log.Println("[ERR] Error running context menu command:", err)
				_ = bot.RespondEmbedEphemeral(s, i, &discordgo.MessageEmbed{Description: fmt.Sprintf("Error running command: %v", err)})
			}
		default:
			ctx := &command.SlashInteractionContext{
				Session: s,
				Event:   i,
				Storage: b.storage,
			}
			if err := cmd.Run(ctx); err != nil {
				log.Println("[ERR] Error running slash command:", err)
				_ = bot.RespondEmbedEphemeral(s, i, &discordgo.MessageEmbed{Description: fmt.Sprintf("Error running command: %v", err)})
			}
		}

	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		matched := matchByCustomID(customID)
		if matched == nil {
			log.Printf("[WARN] No matching command for component: %s", customID)
			return
		}

		handler, ok := matched.(command.ComponentInteractionHandler)
		if !ok {
			log.Printf("[WARN] Command %s has components but no handler", matched.Name())
			return
		}

		ctx := &command.ComponentInteractionContext{
			Session: s,
			Event:   i,
			Storage: b.storage,
		}
		if err := handler.Component(ctx); err != nil {
			log.Printf("[ERR] Error running component of %s: %v", matched.Name(), err)
			_ = bot.RespondEmbedEphemeral(s, i, &discordgo.MessageEmbed{Description: fmt.Sprintf("Error running command: %v", err)})
		}

	case discordgo.InteractionModalSubmit:
		customID := i.ModalSubmitData().CustomID
		matched := matchByCustomID(customID)
		if matched == nil {
			log.Printf("[WARN] No matching command for modal: %s", customID)
			return
		}

		handler, ok := matched.(command.ModalSubmitHandler)
		if !ok {
			log.Printf("[WARN] Command %s has modals but no handler", matched.Name())
			return
		}

		ctx := &command.ModalSubmitContext{
			Session: s,
			Event:   i,
			Storage: b.storage,
		}
		if err := handler.ModalSubmit(ctx); err != nil {
			log.Printf("[ERR] Error running modal of %s: %v", matched.Name(), err)
			_ = bot.RespondEmbedEphemeral(s, i, &discordgo.MessageEmbed{Description: fmt.Sprintf("Error running command: %v", err)})
		}
	}
}

// matchByCustomID finds the command owning a component or modal by its
// custom ID prefix. Commands namespace their IDs as `<name>_<rest>`.
func matchByCustomID(customID string) command.Command {
	for _, cmd := range command.AllCommands() {
		if customID == cmd.Name() ||
			strings.HasPrefix(customID, cmd.Name()+"_") ||
			strings.HasPrefix(customID, cmd.Name()+":") {
			return cmd
		}
	}
	return nil
}
