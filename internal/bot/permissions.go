package bot

import (
	"github.com/bwmarrin/discordgo"
)

var developerID string

// SetDeveloperID records the bot owner's user ID for developer-only checks.
func SetDeveloperID(id string) {
	developerID = id
}

func IsDeveloper(userID string) bool {
	return developerID != "" && userID == developerID
}

func IsAdministrator(s *discordgo.Session, guildID string, member *discordgo.Member) bool {
	if member == nil {
		return false
	}
	if IsDeveloper(member.User.ID) {
		return true
	}

	guild, err := s.State.Guild(guildID)
	if err != nil || guild == nil {
		guild, err = s.Guild(guildID)
		if err != nil {
			return false
		}
	}

	if member.User.ID == guild.OwnerID {
		return true
	}

	for _, r := range member.Roles {
		role, _ := s.State.Role(guildID, r)
		if role != nil && role.Permissions&discordgo.PermissionAdministrator != 0 {
			return true
		}
	}

	return false
}

// BotHasChannelPermission reports whether the bot holds the permission in
// the channel.
func BotHasChannelPermission(s *discordgo.Session, channelID string, permission int64) bool {
	botID := s.State.User.ID
	perms, err := s.UserChannelPermissions(botID, channelID)
	if err != nil {
		return false
	}
	return perms&permission != 0
}

// BotTopRolePosition returns the highest role position the bot holds in
// the guild. Role buttons may only hand out roles below this.
func BotTopRolePosition(s *discordgo.Session, guildID string) int {
	guild, err := s.State.Guild(guildID)
	if err != nil || guild == nil {
		guild, err = s.Guild(guildID)
		if err != nil {
			return 0
		}
	}

	member, err := s.State.Member(guildID, s.State.User.ID)
	if err != nil || member == nil {
		member, err = s.GuildMember(guildID, s.State.User.ID)
		if err != nil {
			return 0
		}
	}

	top := 0
	for _, roleID := range member.Roles {
		for _, role := range guild.Roles {
			if role.ID == roleID && role.Position > top {
				top = role.Position
			}
		}
	}
	return top
}

// MemberTopRolePosition returns the highest role position a member holds.
func MemberTopRolePosition(guild *discordgo.Guild, member *discordgo.Member) int {
	top := 0
	for _, roleID := range member.Roles {
		for _, role := range guild.Roles {
			if role.ID == roleID && role.Position > top {
				top = role.Position
			}
		}
	}
	return top
}
