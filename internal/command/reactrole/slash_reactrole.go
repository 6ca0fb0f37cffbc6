package reactrole

import (
	"errors"
	"fmt"
	"log"

	"github.com/BubbleXIV/guild-steward/internal/bot"
	"github.com/BubbleXIV/guild-steward/internal/command"
	"github.com/BubbleXIV/guild-steward/internal/middleware"
	"github.com/BubbleXIV/guild-steward/internal/storage"

	"github.com/bwmarrin/discordgo"
)

const (
	defaultTitle       = "Role Assignment"
	defaultDescription = "Click a button to toggle roles"
)

var colorChoices = []*discordgo.ApplicationCommandOptionChoice{
	{Name: "Red", Value: "red"},
	{Name: "Green", Value: "green"},
	{Name: "Blue", Value: "blue"},
}

type ReactRoleCommand struct{}

func (c *ReactRoleCommand) Name() string        { return "reactrole" }
func (c *ReactRoleCommand) Description() string { return "Set up self-assignable role buttons" }
func (c *ReactRoleCommand) Group() string       { return "roles" }
func (c *ReactRoleCommand) Category() string    { return "🎭 Roles" }

func (c *ReactRoleCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionManageRoles}
}

func (c *ReactRoleCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "create",
				Description: "Post a new role message with its first button",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:         discordgo.ApplicationCommandOptionChannel,
						Name:         "channel",
						Description:  "Channel to post the role message in",
						Required:     true,
						ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
					},
					{
						Type:        discordgo.ApplicationCommandOptionRole,
						Name:        "role",
						Description: "Role handed out by the first button",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "emoji",
						Description: "Emoji shown on the button",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "color",
						Description: "Button color",
						Required:    true,
						Choices:     colorChoices,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "title",
						Description: "Embed title (default: Role Assignment)",
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "description",
						Description: "Embed description",
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "add",
				Description: "Add a button to an existing role message",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:         discordgo.ApplicationCommandOptionChannel,
						Name:         "channel",
						Description:  "Channel containing the role message",
						Required:     true,
						ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "message_id",
						Description: "ID of the role message",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionRole,
						Name:        "role",
						Description: "Role handed out by the new button",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "emoji",
						Description: "Emoji shown on the button",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "color",
						Description: "Button color",
						Required:    true,
						Choices:     colorChoices,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "remove",
				Description: "Remove a role button from a message",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:         discordgo.ApplicationCommandOptionChannel,
						Name:         "channel",
						Description:  "Channel containing the role message",
						Required:     true,
						ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "message_id",
						Description: "ID of the role message",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionRole,
						Name:        "role",
						Description: "Role whose button should be removed",
						Required:    true,
					},
				},
			},
		},
	}
}

func (c *ReactRoleCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	s := slash.Session
	i := slash.Event
	st := slash.Storage
	sub := i.ApplicationCommandData().Options[0]

	switch sub.Name {
	case "create":
		return c.runCreate(s, i, st, sub.Options)
	case "add":
		return c.runAdd(s, i, st, sub.Options)
	case "remove":
		return c.runRemove(s, i, st, sub.Options)
	default:
		return bot.RespondEphemeral(s, i, "Unknown subcommand.")
	}
}

func (c *ReactRoleCommand) runCreate(s *discordgo.Session, i *discordgo.InteractionCreate, st *storage.Storage, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	var channel *discordgo.Channel
	var role *discordgo.Role
	var emoji, color string
	title := defaultTitle
	description := defaultDescription

	for _, opt := range opts {
		switch opt.Name {
		case "channel":
			channel = opt.ChannelValue(s)
		case "role":
			role = opt.RoleValue(s, i.GuildID)
		case "emoji":
			emoji = opt.StringValue()
		case "color":
			color = opt.StringValue()
		case "title":
			title = opt.StringValue()
		case "description":
			description = opt.StringValue()
		}
	}

	if channel == nil || role == nil {
		return bot.RespondEphemeral(s, i, "Missing parameters. Try again.")
	}
	if !ValidColor(color) {
		return bot.RespondEphemeral(s, i, "Color must be one of `red`, `green`, `blue`.")
	}
	if msg := c.checkAssignable(s, i.GuildID, channel.ID, role); msg != "" {
		return bot.RespondEphemeral(s, i, msg)
	}

	binding := storage.RoleBinding{RoleID: role.ID, Emoji: emoji, Color: color}
	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       bot.EmbedColor,
	}

	posted, err := s.ChannelMessageSendComplex(channel.ID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: BuildButtons([]storage.RoleBinding{binding}, GuildRoleResolver(s, i.GuildID)),
	})
	if err != nil {
		return bot.RespondEphemeral(s, i, fmt.Sprintf("Failed to post the role message: `%s`", err.Error()))
	}

	if err := st.CreateRoleMessage(i.GuildID, posted.ID, channel.ID, title, description, binding); err != nil {
		log.Printf("[ERR] Failed to save role message %s: %v", posted.ID, err)
		return bot.RespondEphemeral(s, i, fmt.Sprintf("Posted the message but failed to save it: `%s`", err.Error()))
	}

	return bot.RespondEphemeral(s, i, fmt.Sprintf(
		"✅ Role message created in %s with a button for **%s**.\nUse `/reactrole add` with message ID `%s` to add more.",
		channel.Mention(), role.Name, posted.ID,
	))
}

func (c *ReactRoleCommand) runAdd(s *discordgo.Session, i *discordgo.InteractionCreate, st *storage.Storage, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	var channel *discordgo.Channel
	var role *discordgo.Role
	var messageID, emoji, color string

	for _, opt := range opts {
		switch opt.Name {
		case "channel":
			channel = opt.ChannelValue(s)
		case "message_id":
			messageID = opt.StringValue()
		case "role":
			role = opt.RoleValue(s, i.GuildID)
		case "emoji":
			emoji = opt.StringValue()
		case "color":
			color = opt.StringValue()
		}
	}

	if channel == nil || role == nil || messageID == "" {
		return bot.RespondEphemeral(s, i, "Missing parameters. Try again.")
	}
	if !ValidColor(color) {
		return bot.RespondEphemeral(s, i, "Color must be one of `red`, `green`, `blue`.")
	}
	if msg := c.checkAssignable(s, i.GuildID, channel.ID, role); msg != "" {
		return bot.RespondEphemeral(s, i, msg)
	}

	if _, err := s.ChannelMessage(channel.ID, messageID); err != nil {
		return bot.RespondEphemeral(s, i, "Message not found in that channel. Check the message ID.")
	}

	if existing, err := st.GetRoleMessage(i.GuildID, messageID); err == nil && len(existing.Bindings) >= maxBindingsPerMessage {
		return bot.RespondEphemeral(s, i, fmt.Sprintf("This message already has the maximum of %d role buttons.", maxBindingsPerMessage))
	}

	err := st.AddRoleBinding(i.GuildID, messageID, storage.RoleBinding{RoleID: role.ID, Emoji: emoji, Color: color})
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return bot.RespondEphemeral(s, i, "That message is not set up for role buttons. Use `/reactrole create` first.")
	case errors.Is(err, storage.ErrAlreadyBound):
		return bot.RespondEphemeral(s, i, fmt.Sprintf("**%s** already has a button on this message.", role.Name))
	case err != nil:
		return bot.RespondEphemeral(s, i, fmt.Sprintf("Failed to save the button: `%s`", err.Error()))
	}

	if err := c.refreshMessage(s, st, i.GuildID, channel.ID, messageID); err != nil {
		log.Printf("[WARN] Failed to refresh role message %s: %v", messageID, err)
		return bot.RespondEphemeral(s, i, "Saved the button but failed to update the message. It will refresh on next restart.")
	}

	return bot.RespondEphemeral(s, i, fmt.Sprintf("✅ Added a button for **%s**.", role.Name))
}

func (c *ReactRoleCommand) runRemove(s *discordgo.Session, i *discordgo.InteractionCreate, st *storage.Storage, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	var channel *discordgo.Channel
	var role *discordgo.Role
	var messageID string

	for _, opt := range opts {
		switch opt.Name {
		case "channel":
			channel = opt.ChannelValue(s)
		case "message_id":
			messageID = opt.StringValue()
		case "role":
			role = opt.RoleValue(s, i.GuildID)
		}
	}

	if channel == nil || role == nil || messageID == "" {
		return bot.RespondEphemeral(s, i, "Missing parameters. Try again.")
	}

	last, err := st.RemoveRoleBinding(i.GuildID, messageID, role.ID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return bot.RespondEphemeral(s, i, "No button for that role on this message.")
	case err != nil:
		return bot.RespondEphemeral(s, i, fmt.Sprintf("Failed to remove the button: `%s`", err.Error()))
	}

	if last {
		if err := s.ChannelMessageDelete(channel.ID, messageID); err != nil {
			log.Printf("[WARN] Failed to delete emptied role message %s: %v", messageID, err)
			return bot.RespondEphemeral(s, i, "Removed the last button, but I could not delete the message. Delete it manually.")
		}
		return bot.RespondEphemeral(s, i, fmt.Sprintf("✅ Removed **%s** — that was the last button, so the message was deleted.", role.Name))
	}

	if err := c.refreshMessage(s, st, i.GuildID, channel.ID, messageID); err != nil {
		log.Printf("[WARN] Failed to refresh role message %s: %v", messageID, err)
		return bot.RespondEphemeral(s, i, "Removed the button but failed to update the message. It will refresh on next restart.")
	}

	return bot.RespondEphemeral(s, i, fmt.Sprintf("✅ Removed the button for **%s**.", role.Name))
}

// checkAssignable returns a user-facing refusal, or "" when the bot can
// actually hand out the role in that channel.
func (c *ReactRoleCommand) checkAssignable(s *discordgo.Session, guildID, channelID string, role *discordgo.Role) string {
	if !bot.BotHasChannelPermission(s, channelID, discordgo.PermissionManageRoles) {
		return "I don't have the **Manage Roles** permission in that channel."
	}
	if role.Managed {
		return fmt.Sprintf("**%s** is managed by an integration and cannot be assigned.", role.Name)
	}
	if role.Position >= bot.BotTopRolePosition(s, guildID) {
		return fmt.Sprintf("**%s** is above my highest role, so I cannot assign it. Move my role up first.", role.Name)
	}
	return ""
}

func (c *ReactRoleCommand) refreshMessage(s *discordgo.Session, st *storage.Storage, guildID, channelID, messageID string) error {
	bindings, err := st.ListRoleBindings(guildID, messageID)
	if err != nil {
		return err
	}
	components := BuildButtons(bindings, GuildRoleResolver(s, guildID))
	_, err = s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    channelID,
		ID:         messageID,
		Components: &components,
	})
	return err
}

// Component toggles the clicked role on the clicking member.
func (c *ReactRoleCommand) Component(ctx *command.ComponentInteractionContext) error {
	s := ctx.Session
	i := ctx.Event

	roleID, ok := ParseButtonID(i.MessageComponentData().CustomID)
	if !ok {
		return bot.RespondEphemeral(s, i, "That button no longer works.")
	}
	if i.Member == nil {
		return bot.RespondEphemeral(s, i, "Role buttons only work inside a server.")
	}

	added, roleName, err := ToggleRole(s, i.GuildID, i.Member, roleID)
	if err != nil {
		log.Printf("[WARN] Role toggle failed for user %s role %s: %v", i.Member.User.ID, roleID, err)
		return bot.RespondEphemeral(s, i, "Couldn't toggle that role. It may have been deleted, or it sits above my highest role.")
	}

	if added {
		return bot.RespondEphemeral(s, i, fmt.Sprintf("✅ Added **%s** to you.", roleName))
	}
	return bot.RespondEphemeral(s, i, fmt.Sprintf("✅ Removed **%s** from you.", roleName))
}

func init() {
	command.RegisterCommand(
		&ReactRoleCommand{},
		middleware.WithGroupAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
