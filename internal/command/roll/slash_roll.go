package roll

import (
	"fmt"
	"math/rand"

	"github.com/BubbleXIV/guild-steward/internal/bot"
	"github.com/BubbleXIV/guild-steward/internal/command"
	"github.com/BubbleXIV/guild-steward/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

const defaultFormula = "1d100"

type RollCommand struct{}

func (c *RollCommand) Name() string            { return "roll" }
func (c *RollCommand) Description() string     { return "Roll dice like `2d20+1d6-2`" }
func (c *RollCommand) Group() string           { return "roll" }
func (c *RollCommand) Category() string        { return "🎲 Game Mechanics" }
func (c *RollCommand) UserPermissions() []int64 { return nil }

func (c *RollCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "formula",
				Description: "Supports `2d6+1d4*2-3` and similar math (default 1d100)",
			},
		},
	}
}

func (c *RollCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	s := slash.Session
	i := slash.Event

	formula := defaultFormula
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "formula" && opt.StringValue() != "" {
			formula = opt.StringValue()
		}
	}

	res, err := Evaluate(formula, rand.New(rand.NewSource(rand.Int63())))
	if err != nil {
		return bot.RespondEphemeral(s, i, fmt.Sprintf("%v. Try something like `2d6+1d4*2-3`.", err))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎲 Dice Roll",
		Description: fmt.Sprintf("**Input**:\t`%s`\n**Rolls**:\t%s\n**Result**:\t**%d**", formula, res.Pretty, res.Total),
	}
	if footer := flavor(res); footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: footer}
	}

	return bot.RespondEmbed(s, i, embed)
}

// flavor comments on notable rolls. Only single-die results against big
// dice get the dramatic lines.
func flavor(res *Result) string {
	switch {
	case res.DiceMax >= 20 && res.Crit && !res.Fumble:
		return "Critical! The dice favor you today."
	case res.DiceMax >= 20 && res.Fumble && !res.Crit:
		return "Ouch. A natural 1 lurks in there."
	default:
		return ""
	}
}

func init() {
	command.RegisterCommand(
		&RollCommand{},
		middleware.WithGroupAccessCheck(),
		middleware.WithCommandLogger(),
	)
}
