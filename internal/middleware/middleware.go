package middleware

import (
	"github.com/BubbleXIV/guild-steward/internal/command"

	"github.com/bwmarrin/discordgo"
)

type wrappedCommand struct {
	command.Command
	wrap func(ctx interface{}) error
}

func (w *wrappedCommand) Run(ctx interface{}) error {
	if w.wrap != nil {
		return w.wrap(ctx)
	}
	return w.Command.Run(ctx)
}

func (w *wrappedCommand) Component(ctx *command.ComponentInteractionContext) error {
	if w.wrap != nil {
		return w.wrap(ctx)
	}
	return invoke(w.Command, ctx)
}

func (w *wrappedCommand) ModalSubmit(ctx *command.ModalSubmitContext) error {
	if w.wrap != nil {
		return w.wrap(ctx)
	}
	return invoke(w.Command, ctx)
}

func (w *wrappedCommand) SlashDefinition() *discordgo.ApplicationCommand {
	if sp, ok := w.Command.(command.SlashProvider); ok {
		return sp.SlashDefinition()
	}
	return nil
}

func (w *wrappedCommand) ContextDefinition() *discordgo.ApplicationCommand {
	if cp, ok := w.Command.(command.ContextMenuProvider); ok {
		return cp.ContextDefinition()
	}
	return nil
}

// invoke dispatches to the hook matching the context type, so a
// middleware chain works for buttons and modals the same way it does
// for slash commands.
func invoke(cmd command.Command, ctx interface{}) error {
	switch v := ctx.(type) {
	case *command.ComponentInteractionContext:
		if ch, ok := cmd.(command.ComponentInteractionHandler); ok {
			return ch.Component(v)
		}
		return nil
	case *command.ModalSubmitContext:
		if mh, ok := cmd.(command.ModalSubmitHandler); ok {
			return mh.ModalSubmit(v)
		}
		return nil
	default:
		return cmd.Run(ctx)
	}
}
