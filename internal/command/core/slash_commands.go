package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BubbleXIV/guild-steward/internal/bot"
	"github.com/BubbleXIV/guild-steward/internal/command"
	"github.com/BubbleXIV/guild-steward/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

type CommandsCommand struct{}

func (c *CommandsCommand) Name() string        { return "commands" }
func (c *CommandsCommand) Description() string { return "Enable or disable command groups per server" }
func (c *CommandsCommand) Group() string       { return "core" }
func (c *CommandsCommand) Category() string    { return "⚙️ Settings" }

func (c *CommandsCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionManageGuild}
}

func uniqueGroups() []string {
	seen := map[string]bool{}
	var groups []string
	for _, cmd := range command.AllCommands() {
		if !seen[cmd.Group()] {
			seen[cmd.Group()] = true
			groups = append(groups, cmd.Group())
		}
	}
	sort.Strings(groups)
	return groups
}

func (c *CommandsCommand) SlashDefinition() *discordgo.ApplicationCommand {
	var groupChoices []*discordgo.ApplicationCommandOptionChoice
	for _, group := range uniqueGroups() {
		groupChoices = append(groupChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  group,
			Value: group,
		})
	}

	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "toggle",
				Description: "Enable or disable a command group",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "group",
						Description: "Command group to toggle",
						Required:    true,
						Choices:     groupChoices,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "state",
						Description: "Enable or disable",
						Required:    true,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "Enable", Value: "enable"},
							{Name: "Disable", Value: "disable"},
						},
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "status",
				Description: "Show which command groups are disabled here",
			},
		},
	}
}

func (c *CommandsCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	s := slash.Session
	i := slash.Event
	st := slash.Storage
	sub := i.ApplicationCommandData().Options[0]

	switch sub.Name {
	case "toggle":
		var group, state string
		for _, opt := range sub.Options {
			switch opt.Name {
			case "group":
				group = opt.StringValue()
			case "state":
				state = opt.StringValue()
			}
		}

		// The core group stays on; it holds this very command.
		if group == "core" && state == "disable" {
			return bot.RespondEphemeral(s, i, "The `core` group cannot be disabled.")
		}

		if state == "disable" {
			if err := st.DisableGroup(i.GuildID, group); err != nil {
				return bot.RespondEphemeral(s, i, fmt.Sprintf("Failed to disable the group: `%s`", err.Error()))
			}
			return bot.RespondEphemeral(s, i, fmt.Sprintf("🔇 Group `%s` disabled on this server.", group))
		}
		if err := st.EnableGroup(i.GuildID, group); err != nil {
			return bot.RespondEphemeral(s, i, fmt.Sprintf("Failed to enable the group: `%s`", err.Error()))
		}
		return bot.RespondEphemeral(s, i, fmt.Sprintf("🔊 Group `%s` enabled on this server.", group))

	case "status":
		disabled, err := st.DisabledGroups(i.GuildID)
		if err != nil {
			return bot.RespondEphemeral(s, i, fmt.Sprintf("Failed to load group status: `%s`", err.Error()))
		}

		var sb strings.Builder
		disabledSet := map[string]bool{}
		for _, g := range disabled {
			disabledSet[g] = true
		}
		for _, group := range uniqueGroups() {
			if disabledSet[group] {
				sb.WriteString(fmt.Sprintf("🔇 `%s` - disabled\n", group))
			} else {
				sb.WriteString(fmt.Sprintf("🔊 `%s` - enabled\n", group))
			}
		}

		embed := &discordgo.MessageEmbed{
			Title:       "Command Groups",
			Description: sb.String(),
		}
		return bot.RespondEmbedEphemeral(s, i, embed)

	default:
		return bot.RespondEphemeral(s, i, "Unknown subcommand.")
	}
}

func init() {
	command.RegisterCommand(
		&CommandsCommand{},
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
