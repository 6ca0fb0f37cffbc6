package stats

import (
	"fmt"

	"github.com/BubbleXIV/guild-steward/internal/bot"
	"github.com/BubbleXIV/guild-steward/internal/command"
	"github.com/BubbleXIV/guild-steward/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

type PingCommand struct{}

func (c *PingCommand) Name() string            { return "ping" }
func (c *PingCommand) Description() string     { return "Check the bot's gateway latency" }
func (c *PingCommand) Group() string           { return "core" }
func (c *PingCommand) Category() string        { return "🛠 Core" }
func (c *PingCommand) UserPermissions() []int64 { return nil }

func (c *PingCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *PingCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	latency := slash.Session.HeartbeatLatency()
	return bot.RespondEphemeral(slash.Session, slash.Event,
		fmt.Sprintf("🏓 Pong! Gateway latency: **%d ms**.", latency.Milliseconds()))
}

func init() {
	command.RegisterCommand(
		&PingCommand{},
		middleware.WithCommandLogger(),
	)
}
