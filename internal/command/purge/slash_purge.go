package purge

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/BubbleXIV/guild-steward/internal/bot"
	"github.com/BubbleXIV/guild-steward/internal/command"
	"github.com/BubbleXIV/guild-steward/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

const (
	confirmIDPrefix = "purge_confirm_"
	cancelIDPrefix  = "purge_cancel_"

	// Confirm buttons go stale after this; checked lazily on click.
	confirmTimeout = 30 * time.Second

	defaultLimit = 100
	maxLimit     = 1000
)

type PurgeCommand struct{}

func (c *PurgeCommand) Name() string        { return "purge" }
func (c *PurgeCommand) Description() string { return "Delete messages from this channel" }
func (c *PurgeCommand) Group() string       { return "purge" }
func (c *PurgeCommand) Category() string    { return "🧹 Cleanup" }

func (c *PurgeCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionManageMessages}
}

func limitOption() *discordgo.ApplicationCommandOption {
	minLimit := float64(1)
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "limit",
		Description: "How many recent messages to look through (default 100)",
		MinValue:    &minLimit,
		MaxValue:    maxLimit,
	}
}

func (c *PurgeCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "messages",
				Description: "Delete the most recent messages",
				Options:     []*discordgo.ApplicationCommandOption{limitOption()},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "user",
				Description: "Delete recent messages from one user",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "user",
						Description: "Whose messages to delete",
						Required:    true,
					},
					limitOption(),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "bots",
				Description: "Delete recent messages from bots",
				Options:     []*discordgo.ApplicationCommandOption{limitOption()},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "all",
				Description: "Wipe the entire channel history",
			},
		},
	}
}

func (c *PurgeCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	s := slash.Session
	i := slash.Event
	sub := i.ApplicationCommandData().Options[0]

	if !bot.BotHasChannelPermission(s, i.ChannelID, discordgo.PermissionManageMessages) {
		return bot.RespondEphemeral(s, i, "I need the **Manage Messages** permission in this channel.")
	}

	limit := defaultLimit
	var targetUser *discordgo.User
	for _, opt := range sub.Options {
		switch opt.Name {
		case "limit":
			limit = int(opt.IntValue())
		case "user":
			targetUser = opt.UserValue(s)
		}
	}

	switch sub.Name {
	case "messages":
		return c.runFiltered(s, i, limit, Any, "messages")
	case "user":
		if targetUser == nil {
			return bot.RespondEphemeral(s, i, "Missing user. Try again.")
		}
		return c.runFiltered(s, i, limit, ByAuthor(targetUser.ID), fmt.Sprintf("messages from **%s**", targetUser.Username))
	case "bots":
		return c.runFiltered(s, i, limit, ByBots, "bot messages")
	case "all":
		return c.runAllPrompt(s, i)
	default:
		return bot.RespondEphemeral(s, i, "Unknown subcommand.")
	}
}

func (c *PurgeCommand) runFiltered(s *discordgo.Session, i *discordgo.InteractionCreate, limit int, filter MessageFilter, what string) error {
	if err := bot.RespondDeferredEphemeral(s, i); err != nil {
		return err
	}

	deleted, err := DeleteMatching(s, i.ChannelID, limit, filter)
	if err != nil {
		return bot.FollowupEphemeral(s, i, fmt.Sprintf("Purge failed: `%s`", err.Error()))
	}

	return bot.FollowupEphemeral(s, i, fmt.Sprintf("🧹 Deleted **%d** %s (looked through the last %d).", deleted, what, limit))
}

func (c *PurgeCommand) runAllPrompt(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	// Custom ID carries the requester so only they can press the buttons.
	authorID := i.Member.User.ID

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "⚠️ This will delete **every message** in this channel. Are you sure?",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.Button{
							Label:    "Purge everything",
							Style:    discordgo.DangerButton,
							CustomID: confirmIDPrefix + authorID,
						},
						discordgo.Button{
							Label:    "Cancel",
							Style:    discordgo.SecondaryButton,
							CustomID: cancelIDPrefix + authorID,
						},
					},
				},
			},
		},
	})
}

// Component handles the purge-all confirmation buttons.
func (c *PurgeCommand) Component(ctx *command.ComponentInteractionContext) error {
	s := ctx.Session
	i := ctx.Event
	customID := i.MessageComponentData().CustomID

	var authorID string
	confirm := false
	switch {
	case strings.HasPrefix(customID, confirmIDPrefix):
		authorID = strings.TrimPrefix(customID, confirmIDPrefix)
		confirm = true
	case strings.HasPrefix(customID, cancelIDPrefix):
		authorID = strings.TrimPrefix(customID, cancelIDPrefix)
	default:
		return bot.RespondEphemeral(s, i, "That button no longer works.")
	}

	if i.Member == nil || i.Member.User.ID != authorID {
		return bot.RespondEphemeral(s, i, "Only the person who ran `/purge all` can press this.")
	}

	if i.Message != nil && time.Since(i.Message.Timestamp) > confirmTimeout {
		return disablePrompt(s, i, "⌛ Confirmation expired. Run `/purge all` again.")
	}

	if !confirm {
		return disablePrompt(s, i, "Purge cancelled.")
	}

	if err := disablePrompt(s, i, "☢️ Purging this channel..."); err != nil {
		return err
	}

	go func() {
		deleted, err := DeleteAll(s, i.ChannelID)
		if err != nil {
			log.Printf("[ERR] Purge-all in channel %s failed after %d deletions: %v", i.ChannelID, deleted, err)
			_ = bot.FollowupEphemeral(s, i, fmt.Sprintf("Purge stopped after **%d** messages: `%s`", deleted, err.Error()))
			return
		}
		log.Printf("[INFO] Purged %d messages from channel %s", deleted, i.ChannelID)
		_ = bot.FollowupEphemeral(s, i, fmt.Sprintf("🧹 Channel purged. **%d** messages deleted.", deleted))
	}()

	return nil
}

// disablePrompt replaces the confirmation message in place and strips
// its buttons.
func disablePrompt(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: []discordgo.MessageComponent{},
		},
	})
}

func init() {
	command.RegisterCommand(
		&PurgeCommand{},
		middleware.WithGroupAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
