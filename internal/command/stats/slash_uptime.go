package stats

import (
	"fmt"
	"time"

	"github.com/BubbleXIV/guild-steward/internal/bot"
	"github.com/BubbleXIV/guild-steward/internal/command"
	"github.com/BubbleXIV/guild-steward/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

type UptimeCommand struct{}

func (c *UptimeCommand) Name() string            { return "uptime" }
func (c *UptimeCommand) Description() string     { return "How long the bot has been running" }
func (c *UptimeCommand) Group() string           { return "core" }
func (c *UptimeCommand) Category() string        { return "🛠 Core" }
func (c *UptimeCommand) UserPermissions() []int64 { return nil }

func (c *UptimeCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *UptimeCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	var userID string
	if slash.Event.Member != nil {
		userID = slash.Event.Member.User.ID
	} else if slash.Event.User != nil {
		userID = slash.Event.User.ID
	}
	if !bot.IsDeveloper(userID) {
		return bot.RespondEphemeral(slash.Session, slash.Event, "This command is reserved for the bot developer.")
	}

	return bot.RespondEphemeral(slash.Session, slash.Event,
		fmt.Sprintf("⏱ Up for **%s**.", FormatUptime(time.Since(StartTime))))
}

func init() {
	command.RegisterCommand(
		&UptimeCommand{},
		middleware.WithCommandLogger(),
	)
}
