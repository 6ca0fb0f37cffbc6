package core

import (
	"fmt"
	"runtime"

	"github.com/BubbleXIV/guild-steward/internal/bot"
	"github.com/BubbleXIV/guild-steward/internal/command"
	"github.com/BubbleXIV/guild-steward/internal/middleware"
	"github.com/BubbleXIV/guild-steward/internal/version"

	"github.com/bwmarrin/discordgo"
)

type AboutCommand struct{}

func (c *AboutCommand) Name() string            { return "about" }
func (c *AboutCommand) Description() string     { return "What this bot is and what it runs on" }
func (c *AboutCommand) Group() string           { return "core" }
func (c *AboutCommand) Category() string        { return "🕯️ Information" }
func (c *AboutCommand) UserPermissions() []int64 { return nil }

func (c *AboutCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *AboutCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	built := version.BuildDate
	if built == "" {
		built = "unknown"
	}

	embed := &discordgo.MessageEmbed{
		Title: version.AppName,
		Description: "A guild housekeeping bot: self-assignable role buttons, bulk role management, " +
			"channel cleanup, dice and timezone clocks.",
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Version", Value: version.Version, Inline: true},
			{Name: "Built", Value: built, Inline: true},
			{Name: "Runtime", Value: fmt.Sprintf("%s / discordgo v%s", runtime.Version(), discordgo.VERSION), Inline: true},
		},
	}
	return bot.RespondEmbedEphemeral(slash.Session, slash.Event, embed)
}

func init() {
	command.RegisterCommand(
		&AboutCommand{},
		middleware.WithCommandLogger(),
	)
}
