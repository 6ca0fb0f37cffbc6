package middleware

import (
	"fmt"
	"strings"

	"github.com/BubbleXIV/guild-steward/internal/bot"
	"github.com/BubbleXIV/guild-steward/internal/command"

	"github.com/bwmarrin/discordgo"
)

var permissionNames = map[int64]string{
	discordgo.PermissionAdministrator:  "Administrator",
	discordgo.PermissionManageGuild:    "Manage Server",
	discordgo.PermissionManageRoles:    "Manage Roles",
	discordgo.PermissionManageChannels: "Manage Channels",
	discordgo.PermissionManageMessages: "Manage Messages",
	discordgo.PermissionKickMembers:    "Kick Members",
	discordgo.PermissionBanMembers:     "Ban Members",
}

// WithUserPermissionCheck enforces the command's UserPermissions list.
// Empty list means open command; admins always bypass; any one of the
// listed permissions suffices.
func WithUserPermissionCheck() command.Middleware {
	return func(cmd command.Command) command.Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				var s *discordgo.Session
				var m *discordgo.Member
				var guildID, channelID string
				var event *discordgo.InteractionCreate

				// Components are not gated here: buttons are self-service
				// (role toggles), and destructive ones lock to their author
				// in the command itself.
				switch v := ctx.(type) {
				case *command.SlashInteractionContext:
					s, m, guildID, channelID, event = v.Session, v.Event.Member, v.Event.GuildID, v.Event.ChannelID, v.Event
				case *command.MessageApplicationCommandContext:
					s, m, guildID, channelID, event = v.Session, v.Event.Member, v.Event.GuildID, v.Event.ChannelID, v.Event
				default:
					return invoke(cmd, ctx)
				}

				if guildID == "" || m == nil {
					return invoke(cmd, ctx)
				}

				memberPerms, err := s.UserChannelPermissions(m.User.ID, channelID)
				if err != nil {
					return fmt.Errorf("failed to get user permissions: %w", err)
				}

				if memberPerms&discordgo.PermissionAdministrator != 0 {
					return invoke(cmd, ctx)
				}

				required := cmd.UserPermissions()
				if len(required) == 0 {
					return invoke(cmd, ctx)
				}

				for _, p := range required {
					if memberPerms&p != 0 {
						return invoke(cmd, ctx)
					}
				}

				var allowed []string
				for _, p := range required {
					name := permissionNames[p]
					if name == "" {
						name = fmt.Sprintf("0x%x", p)
					}
					allowed = append(allowed, name)
				}
				bot.RespondEphemeral(s, event, fmt.Sprintf(
					"You need at least one of the following permissions to run this command:\n`%s`",
					strings.Join(allowed, "`, `"),
				))
				return nil
			},
		}
	}
}
