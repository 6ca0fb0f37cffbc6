package command

import (
	"github.com/BubbleXIV/guild-steward/internal/storage"

	"github.com/bwmarrin/discordgo"
)

type Command interface {
	Name() string
	Description() string
	Group() string
	Category() string
	UserPermissions() []int64
	Run(ctx interface{}) error
}

// Middleware decorates a command. Applied inside-out by RegisterCommand.
type Middleware func(Command) Command

// Providers — how a command is registered with Discord.

type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

type ContextMenuProvider interface {
	ContextDefinition() *discordgo.ApplicationCommand
}

// Hooks beyond Run.

type ComponentInteractionHandler interface {
	Component(*ComponentInteractionContext) error
}

type ModalSubmitHandler interface {
	ModalSubmit(*ModalSubmitContext) error
}

// Contexts — what the runtime hands a command when executing it.

type SlashInteractionContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Storage *storage.Storage
}

type ComponentInteractionContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Storage *storage.Storage
}

type ModalSubmitContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Storage *storage.Storage
}

type MessageApplicationCommandContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Storage *storage.Storage
	Target  *discordgo.Message
}
