package testmodal

import (
	"fmt"

	"github.com/BubbleXIV/guild-steward/internal/bot"
	"github.com/BubbleXIV/guild-steward/internal/command"
	"github.com/BubbleXIV/guild-steward/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

const (
	openButtonID  = "testmodal_open"
	modalID       = "testmodal_answer"
	answerInputID = "answer"
)

// TestModalCommand is a tiny component playground: a button that opens
// a modal and echoes the submitted text back.
type TestModalCommand struct{}

func (c *TestModalCommand) Name() string            { return "testmodal" }
func (c *TestModalCommand) Description() string     { return "Try out buttons and modals" }
func (c *TestModalCommand) Group() string           { return "testmodal" }
func (c *TestModalCommand) Category() string        { return "🎲 Game Mechanics" }
func (c *TestModalCommand) UserPermissions() []int64 { return nil }

func (c *TestModalCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *TestModalCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	return slash.Session.InteractionRespond(slash.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "Press the button to open a modal.",
			Flags:   discordgo.MessageFlagsEphemeral,
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.Button{
							Label:    "Open modal",
							Style:    discordgo.PrimaryButton,
							CustomID: openButtonID,
						},
					},
				},
			},
		},
	})
}

func (c *TestModalCommand) Component(ctx *command.ComponentInteractionContext) error {
	s := ctx.Session
	i := ctx.Event

	if i.MessageComponentData().CustomID != openButtonID {
		return bot.RespondEphemeral(s, i, "That button no longer works.")
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: modalID,
			Title:    "Tell me something",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    answerInputID,
							Label:       "Your answer",
							Style:       discordgo.TextInputShort,
							Placeholder: "Type anything",
							Required:    true,
							MaxLength:   200,
						},
					},
				},
			},
		},
	})
}

func (c *TestModalCommand) ModalSubmit(ctx *command.ModalSubmitContext) error {
	s := ctx.Session
	i := ctx.Event
	data := i.ModalSubmitData()

	if data.CustomID != modalID {
		return bot.RespondEphemeral(s, i, "That modal no longer works.")
	}

	answer := ""
	for _, row := range data.Components {
		ar, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, comp := range ar.Components {
			if input, ok := comp.(*discordgo.TextInput); ok && input.CustomID == answerInputID {
				answer = input.Value
			}
		}
	}

	return bot.RespondEphemeral(s, i, fmt.Sprintf("You said: **%s**", answer))
}

func init() {
	command.RegisterCommand(
		&TestModalCommand{},
		middleware.WithGroupAccessCheck(),
		middleware.WithCommandLogger(),
	)
}
