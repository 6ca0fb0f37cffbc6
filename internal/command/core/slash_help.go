package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BubbleXIV/guild-steward/internal/bot"
	"github.com/BubbleXIV/guild-steward/internal/command"
	"github.com/BubbleXIV/guild-steward/internal/config"
	"github.com/BubbleXIV/guild-steward/internal/middleware"
	"github.com/BubbleXIV/guild-steward/internal/version"

	"github.com/bwmarrin/discordgo"
)

type HelpCommand struct{}

func (c *HelpCommand) Name() string            { return "help" }
func (c *HelpCommand) Description() string     { return "Get a list of available commands" }
func (c *HelpCommand) Group() string           { return "core" }
func (c *HelpCommand) Category() string        { return "🕯️ Information" }
func (c *HelpCommand) UserPermissions() []int64 { return nil }

func (c *HelpCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *HelpCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	embed := &discordgo.MessageEmbed{
		Title:       version.AppName + " Help",
		Description: buildHelpByCategory(),
	}
	return bot.RespondEmbedEphemeral(slash.Session, slash.Event, embed)
}

func buildHelpByCategory() string {
	categoryMap := make(map[string][]command.Command)
	for _, cmd := range command.AllCommands() {
		categoryMap[cmd.Category()] = append(categoryMap[cmd.Category()], cmd)
	}

	categories := make([]string, 0, len(categoryMap))
	for cat := range categoryMap {
		categories = append(categories, cat)
	}
	sort.Slice(categories, func(i, j int) bool {
		wi, wj := config.CategoryWeights[categories[i]], config.CategoryWeights[categories[j]]
		if wi != wj {
			return wi < wj
		}
		return categories[i] < categories[j]
	})

	var sb strings.Builder
	for _, cat := range categories {
		sb.WriteString(fmt.Sprintf("**%s**\n", cat))
		cmds := categoryMap[cat]
		sort.Slice(cmds, func(i, j int) bool {
			return cmds[i].Name() < cmds[j].Name()
		})
		for _, cmd := range cmds {
			sb.WriteString(fmt.Sprintf("`/%s` - %s\n", cmd.Name(), cmd.Description()))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func init() {
	command.RegisterCommand(
		&HelpCommand{},
		middleware.WithCommandLogger(),
	)
}
