package middleware

import (
	"log"

	"github.com/BubbleXIV/guild-steward/internal/bot"
	"github.com/BubbleXIV/guild-steward/internal/command"
)

// WithCommandLogger records each invocation in the guild's command history.
func WithCommandLogger() command.Middleware {
	return func(cmd command.Command) command.Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				err := invoke(cmd, ctx)

				switch v := ctx.(type) {
				case *command.SlashInteractionContext:
					if v.Event.Member != nil {
						user := v.Event.Member.User
						if e := bot.LogCommand(v.Session, v.Storage, v.Event.GuildID, v.Event.ChannelID, user.ID, user.Username, cmd.Name()); e != nil {
							log.Printf("[WARN] Failed to log command /%s: %v", cmd.Name(), e)
						}
					}
				case *command.ComponentInteractionContext:
					if v.Event.Member != nil {
						user := v.Event.Member.User
						if e := bot.LogCommand(v.Session, v.Storage, v.Event.GuildID, v.Event.ChannelID, user.ID, user.Username, cmd.Name()); e != nil {
							log.Printf("[WARN] Failed to log component command /%s: %v", cmd.Name(), e)
						}
					}
				}

				return err
			},
		}
	}
}
