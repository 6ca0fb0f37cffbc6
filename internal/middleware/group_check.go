package middleware

import (
	"github.com/BubbleXIV/guild-steward/internal/bot"
	"github.com/BubbleXIV/guild-steward/internal/command"
	"github.com/BubbleXIV/guild-steward/internal/storage"

	"github.com/bwmarrin/discordgo"
)

// WithGroupAccessCheck wraps a command to skip execution when its group
// has been disabled for the guild.
func WithGroupAccessCheck() command.Middleware {
	return func(cmd command.Command) command.Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				var (
					guildID string
					store   *storage.Storage
					respond func(string)
				)

				switch v := ctx.(type) {
				case *command.SlashInteractionContext:
					guildID, store = v.Event.GuildID, v.Storage
					respond = func(msg string) {
						bot.RespondEmbedEphemeral(v.Session, v.Event, &discordgo.MessageEmbed{Description: msg})
					}
				case *command.ComponentInteractionContext:
					guildID, store = v.Event.GuildID, v.Storage
					respond = func(msg string) {
						bot.RespondEmbedEphemeral(v.Session, v.Event, &discordgo.MessageEmbed{Description: msg})
					}
				case *command.ModalSubmitContext:
					guildID, store = v.Event.GuildID, v.Storage
					respond = func(msg string) {
						bot.RespondEmbedEphemeral(v.Session, v.Event, &discordgo.MessageEmbed{Description: msg})
					}
				case *command.MessageApplicationCommandContext:
					guildID, store = v.Event.GuildID, v.Storage
					respond = func(msg string) {
						bot.RespondEmbedEphemeral(v.Session, v.Event, &discordgo.MessageEmbed{Description: msg})
					}
				default:
					return invoke(cmd, ctx)
				}

				if disabledGroup(cmd, guildID, store, respond) {
					return nil
				}
				return invoke(cmd, ctx)
			},
		}
	}
}

func disabledGroup(cmd command.Command, guildID string, store *storage.Storage, respond func(string)) bool {
	if cmd.Group() == "" || guildID == "" {
		return false
	}
	disabled, err := store.IsGroupDisabled(guildID, cmd.Group())
	if err != nil {
		return false
	}
	if disabled {
		respond("This command is disabled on this server.\nUse `/commands status` to check which groups are disabled.")
		return true
	}
	return false
}
