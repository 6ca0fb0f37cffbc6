package middleware

import (
	"github.com/BubbleXIV/guild-steward/internal/command"
)

// WithGuildOnly silently drops invocations that arrive outside a guild.
func WithGuildOnly() command.Middleware {
	return func(cmd command.Command) command.Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				switch v := ctx.(type) {
				case *command.SlashInteractionContext:
					if v.Event.GuildID == "" {
						return nil
					}
				case *command.ComponentInteractionContext:
					if v.Event.GuildID == "" {
						return nil
					}
				case *command.ModalSubmitContext:
					if v.Event.GuildID == "" {
						return nil
					}
				}
				return invoke(cmd, ctx)
			},
		}
	}
}
