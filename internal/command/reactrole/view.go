package reactrole

import (
	"fmt"
	"log"
	"strings"

	"github.com/BubbleXIV/guild-steward/internal/storage"

	"github.com/bwmarrin/discordgo"
)

const buttonIDPrefix = "reactrole_button_"

const maxBindingsPerMessage = 25 // 5 rows x 5 buttons, the component grid limit

func buttonCustomID(roleID string) string {
	return buttonIDPrefix + roleID
}

// ParseButtonID extracts the role ID from a role-button custom ID.
func ParseButtonID(customID string) (string, bool) {
	if !strings.HasPrefix(customID, buttonIDPrefix) {
		return "", false
	}
	roleID := strings.TrimPrefix(customID, buttonIDPrefix)
	return roleID, roleID != ""
}

// RoleNameResolver maps a role ID to its current display name. The
// second return is false when the role no longer exists in the guild.
type RoleNameResolver func(roleID string) (string, bool)

// GuildRoleResolver resolves role names against the live guild roster.
func GuildRoleResolver(s *discordgo.Session, guildID string) RoleNameResolver {
	return func(roleID string) (string, bool) {
		role, err := s.State.Role(guildID, roleID)
		if err == nil && role != nil {
			return role.Name, true
		}
		roles, err := s.GuildRoles(guildID)
		if err != nil {
			return "", false
		}
		for _, r := range roles {
			if r.ID == roleID {
				return r.Name, true
			}
		}
		return "", false
	}
}

// ButtonLabel is the label shown for a binding: the live role name, or a
// placeholder when the role is gone. Dangling bindings are never pruned,
// only surfaced with the degraded label.
func ButtonLabel(roleID string, resolve RoleNameResolver) string {
	if name, ok := resolve(roleID); ok {
		return name
	}
	return fmt.Sprintf("Role %s", roleID)
}

func buttonStyle(color string) discordgo.ButtonStyle {
	switch color {
	case "red":
		return discordgo.DangerButton
	case "green":
		return discordgo.SuccessButton
	case "blue":
		return discordgo.PrimaryButton
	default:
		return discordgo.SecondaryButton
	}
}

// ValidColor reports whether the color is one of the accepted button colors.
func ValidColor(color string) bool {
	return color == "red" || color == "green" || color == "blue"
}

// BuildButtons renders one button per binding, packed into action rows
// of five. Rebuilding from the same bindings yields the same
// role-to-label mapping every time; only the live role names vary.
func BuildButtons(bindings []storage.RoleBinding, resolve RoleNameResolver) []discordgo.MessageComponent {
	var rows []discordgo.MessageComponent
	var current []discordgo.MessageComponent

	for _, b := range bindings {
		btn := discordgo.Button{
			Label:    ButtonLabel(b.RoleID, resolve),
			Style:    buttonStyle(b.Color),
			CustomID: buttonCustomID(b.RoleID),
		}
		if b.Emoji != "" {
			btn.Emoji = &discordgo.ComponentEmoji{Name: b.Emoji}
		}
		current = append(current, btn)

		if len(current) == 5 {
			rows = append(rows, discordgo.ActionsRow{Components: current})
			current = nil
		}
	}
	if len(current) > 0 {
		rows = append(rows, discordgo.ActionsRow{Components: current})
	}
	return rows
}

// RestoreViews re-renders every tracked role message of the guild so
// button labels match the current roster. Safe to call repeatedly;
// called on every GuildCreate after connect.
func RestoreViews(s *discordgo.Session, store *storage.Storage, guildID string) {
	messages, err := store.RoleMessages(guildID)
	if err != nil {
		log.Printf("[ERR] Failed to load role messages for guild %s: %v", guildID, err)
		return
	}
	if len(messages) == 0 {
		return
	}

	resolve := GuildRoleResolver(s, guildID)
	for messageID, msg := range messages {
		components := BuildButtons(msg.Bindings, resolve)
		_, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
			Channel:    msg.ChannelID,
			ID:         messageID,
			Components: &components,
		})
		if err != nil {
			log.Printf("[WARN] Failed to restore role buttons on message %s in guild %s: %v", messageID, guildID, err)
			continue
		}
		log.Printf("[INFO] Restored role buttons for message %s in guild %s", messageID, guildID)
	}
}
