package rolemanage

import (
	"fmt"
	"slices"
	"strings"

	"github.com/BubbleXIV/guild-steward/internal/bot"
	"github.com/BubbleXIV/guild-steward/internal/command"
	"github.com/BubbleXIV/guild-steward/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

const summaryLineCap = 10

type RoleManageCommand struct{}

func (c *RoleManageCommand) Name() string        { return "rolemanage" }
func (c *RoleManageCommand) Description() string { return "Add or remove roles from members in bulk" }
func (c *RoleManageCommand) Group() string       { return "roles" }
func (c *RoleManageCommand) Category() string    { return "🎭 Roles" }

func (c *RoleManageCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionManageRoles}
}

func (c *RoleManageCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "action",
				Description: "What to do with the roles",
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Add roles to members", Value: "add"},
					{Name: "Remove roles from members", Value: "remove"},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "roles",
				Description: "Roles to manage (mention, ID or name, comma or space separated)",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "members",
				Description: "Members to manage (mention, ID or name, comma or space separated)",
				Required:    true,
			},
		},
	}
}

func (c *RoleManageCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	s := slash.Session
	i := slash.Event

	var action, roleInput, memberInput string
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "action":
			action = opt.StringValue()
		case "roles":
			roleInput = opt.StringValue()
		case "members":
			memberInput = opt.StringValue()
		}
	}

	if err := bot.RespondDeferredEphemeral(s, i); err != nil {
		return err
	}

	guild, err := s.State.Guild(i.GuildID)
	if err != nil || guild == nil {
		guild, err = s.Guild(i.GuildID)
		if err != nil {
			return bot.FollowupEphemeral(s, i, "Failed to fetch this server. Try again.")
		}
	}

	roles := ResolveRoles(guild, SplitRefs(roleInput))
	if len(roles) == 0 {
		return bot.FollowupEphemeral(s, i, "No valid roles found. Check your input.")
	}
	members := ResolveMembers(s, guild, SplitRefs(memberInput))
	if len(members) == 0 {
		return bot.FollowupEphemeral(s, i, "No valid members found. Check your input.")
	}

	botTop := bot.BotTopRolePosition(s, i.GuildID)
	userTop := bot.MemberTopRolePosition(guild, i.Member)
	isOwner := i.Member.User.ID == guild.OwnerID

	var successes, failures []string
	for _, member := range members {
		for _, role := range roles {
			if role.Position >= botTop {
				failures = append(failures, fmt.Sprintf("Cannot manage %s, it sits at or above my highest role.", role.Mention()))
				continue
			}
			if role.Position >= userTop && !isOwner {
				failures = append(failures, fmt.Sprintf("You cannot manage %s, it sits at or above your highest role.", role.Mention()))
				continue
			}

			hasRole := slices.Contains(member.Roles, role.ID)
			switch action {
			case "add":
				if hasRole {
					continue
				}
				if err := s.GuildMemberRoleAdd(i.GuildID, member.User.ID, role.ID); err != nil {
					failures = append(failures, fmt.Sprintf("Failed to add %s to %s: `%s`", role.Mention(), member.Mention(), err.Error()))
				} else {
					successes = append(successes, fmt.Sprintf("Added %s to %s.", role.Mention(), member.Mention()))
				}
			case "remove":
				if !hasRole {
					continue
				}
				if err := s.GuildMemberRoleRemove(i.GuildID, member.User.ID, role.ID); err != nil {
					failures = append(failures, fmt.Sprintf("Failed to remove %s from %s: `%s`", role.Mention(), member.Mention(), err.Error()))
				} else {
					successes = append(successes, fmt.Sprintf("Removed %s from %s.", role.Mention(), member.Mention()))
				}
			}
		}
	}

	return bot.FollowupEmbedEphemeral(s, i, summaryEmbed(action, successes, failures))
}

func summaryEmbed(action string, successes, failures []string) *discordgo.MessageEmbed {
	color := 0xf1c40f
	switch {
	case len(failures) == 0 && len(successes) > 0:
		color = 0x2ecc71
	case len(successes) == 0 && len(failures) > 0:
		color = 0xe74c3c
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Role Management Results - %s", capitalize(action)),
		Color: color,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "Summary",
				Value: fmt.Sprintf("✅ Successful operations: %d\n❌ Failed operations: %d", len(successes), len(failures)),
			},
		},
	}
	if len(successes) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "✅ Successful Operations",
			Value: capLines(successes),
		})
	}
	if len(failures) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "❌ Failed Operations",
			Value: capLines(failures),
		})
	}
	return embed
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func capLines(lines []string) string {
	if len(lines) > summaryLineCap {
		return strings.Join(lines[:summaryLineCap], "\n") + fmt.Sprintf("\n... and %d more.", len(lines)-summaryLineCap)
	}
	return strings.Join(lines, "\n")
}

func init() {
	command.RegisterCommand(
		&RoleManageCommand{},
		middleware.WithGroupAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
