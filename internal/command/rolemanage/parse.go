package rolemanage

import (
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"
)

var refSeparator = regexp.MustCompile(`[,\s]+`)

// SplitRefs breaks a comma or space separated input into individual
// references, dropping empties.
func SplitRefs(input string) []string {
	var refs []string
	for _, item := range refSeparator.Split(input, -1) {
		if item != "" {
			refs = append(refs, item)
		}
	}
	return refs
}

// stripRoleMention turns <@&123> into 123; other inputs pass through.
func stripRoleMention(ref string) string {
	if strings.HasPrefix(ref, "<@&") && strings.HasSuffix(ref, ">") {
		return strings.TrimSuffix(strings.TrimPrefix(ref, "<@&"), ">")
	}
	return ref
}

// stripUserMention turns <@123> or <@!123> into 123; other inputs pass
// through.
func stripUserMention(ref string) string {
	if strings.HasPrefix(ref, "<@") && strings.HasSuffix(ref, ">") {
		ref = strings.TrimSuffix(strings.TrimPrefix(ref, "<@"), ">")
		return strings.TrimPrefix(ref, "!")
	}
	return ref
}

// ResolveRoles maps each reference (mention, ID or exact name) to a
// guild role. Unresolvable references are silently skipped, matching
// how the summary only reports what was actually acted on.
func ResolveRoles(guild *discordgo.Guild, refs []string) []*discordgo.Role {
	var roles []*discordgo.Role
	for _, ref := range refs {
		id := stripRoleMention(ref)
		var found *discordgo.Role
		for _, r := range guild.Roles {
			if r.ID == id || r.Name == ref {
				found = r
				break
			}
		}
		if found != nil {
			roles = append(roles, found)
		}
	}
	return roles
}

// ResolveMembers maps each reference (mention, ID or username) to a
// guild member, fetching from the API when the state cache misses an ID.
func ResolveMembers(s *discordgo.Session, guild *discordgo.Guild, refs []string) []*discordgo.Member {
	var members []*discordgo.Member
	for _, ref := range refs {
		id := stripUserMention(ref)

		if m, err := s.State.Member(guild.ID, id); err == nil && m != nil {
			members = append(members, m)
			continue
		}
		if m, err := s.GuildMember(guild.ID, id); err == nil && m != nil {
			members = append(members, m)
			continue
		}

		for _, m := range guild.Members {
			if m.User != nil && m.User.Username == ref {
				members = append(members, m)
				break
			}
		}
	}
	return members
}
