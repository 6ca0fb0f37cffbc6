package reactrole

import (
	"fmt"
	"slices"

	"github.com/bwmarrin/discordgo"
)

// ToggleRole grants the role if the member lacks it, revokes it
// otherwise. Rapid double-clicks are serialized by Discord's own
// per-member role mutation handling, not here.
func ToggleRole(s *discordgo.Session, guildID string, member *discordgo.Member, roleID string) (added bool, roleName string, err error) {
	role, stateErr := s.State.Role(guildID, roleID)
	if stateErr != nil || role == nil {
		return false, "", fmt.Errorf("role %s not found in guild %s", roleID, guildID)
	}

	if slices.Contains(member.Roles, roleID) {
		if err := s.GuildMemberRoleRemove(guildID, member.User.ID, roleID); err != nil {
			return false, role.Name, err
		}
		return false, role.Name, nil
	}

	if err := s.GuildMemberRoleAdd(guildID, member.User.ID, roleID); err != nil {
		return false, role.Name, err
	}
	return true, role.Name, nil
}
