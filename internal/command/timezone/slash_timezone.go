package timezone

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/BubbleXIV/guild-steward/internal/bot"
	"github.com/BubbleXIV/guild-steward/internal/command"
	"github.com/BubbleXIV/guild-steward/internal/middleware"
	"github.com/BubbleXIV/guild-steward/internal/storage"
	"github.com/BubbleXIV/guild-steward/pkg/jobmgr"

	"github.com/bwmarrin/discordgo"
)

const minIntervalMinutes = 5

func zoneChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(Zones))
	for _, code := range ZoneCodes() {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  fmt.Sprintf("%s (%s)", code, Zones[code].Display),
			Value: code,
		})
	}
	return choices
}

type TimezoneCommand struct{}

func (c *TimezoneCommand) Name() string        { return "timezone" }
func (c *TimezoneCommand) Description() string { return "Voice channels that show the current time" }
func (c *TimezoneCommand) Group() string       { return "timezone" }
func (c *TimezoneCommand) Category() string    { return "🕒 Time" }

func (c *TimezoneCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionManageChannels}
}

func (c *TimezoneCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "set",
				Description: "Bind a voice channel to a timezone clock",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "zone",
						Description: "Timezone to display",
						Required:    true,
						Choices:     zoneChoices(),
					},
					{
						Type:         discordgo.ApplicationCommandOptionChannel,
						Name:         "channel",
						Description:  "Voice channel to rename",
						Required:     true,
						ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildVoice},
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "remove",
				Description: "Unbind a timezone clock",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "zone",
						Description: "Timezone to unbind",
						Required:    true,
						Choices:     zoneChoices(),
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "list",
				Description: "List the configured timezone channels",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "interval",
				Description: "Change how often the clocks refresh",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "minutes",
						Description: fmt.Sprintf("Refresh interval in minutes (minimum %d)", minIntervalMinutes),
						Required:    true,
					},
				},
			},
		},
	}
}

func (c *TimezoneCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	s := slash.Session
	i := slash.Event
	st := slash.Storage
	sub := i.ApplicationCommandData().Options[0]

	switch sub.Name {
	case "set":
		return c.runSet(s, i, st, sub.Options)
	case "remove":
		return c.runRemove(s, i, st, sub.Options)
	case "list":
		return c.runList(s, i, st)
	case "interval":
		return c.runInterval(s, i, sub.Options)
	default:
		return bot.RespondEphemeral(s, i, "Unknown subcommand.")
	}
}

func (c *TimezoneCommand) runSet(s *discordgo.Session, i *discordgo.InteractionCreate, st *storage.Storage, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	var code string
	var channel *discordgo.Channel
	for _, opt := range opts {
		switch opt.Name {
		case "zone":
			code = strings.ToUpper(opt.StringValue())
		case "channel":
			channel = opt.ChannelValue(s)
		}
	}

	if channel == nil {
		return bot.RespondEphemeral(s, i, "Missing channel. Try again.")
	}
	if _, ok := Zones[code]; !ok {
		return bot.RespondEphemeral(s, i, fmt.Sprintf("Invalid timezone code. Available: %s", strings.Join(ZoneCodes(), ", ")))
	}
	if !bot.BotHasChannelPermission(s, channel.ID, discordgo.PermissionManageChannels) {
		return bot.RespondEphemeral(s, i, "I need the **Manage Channels** permission on that channel.")
	}

	if err := st.SetTimezoneChannel(i.GuildID, code, channel.ID); err != nil {
		return bot.RespondEphemeral(s, i, fmt.Sprintf("Failed to save the binding: `%s`", err.Error()))
	}

	// Rename right away so the channel doesn't sit stale until next tick.
	name, err := ChannelName(code, time.Now())
	if err == nil {
		_, err = s.ChannelEdit(channel.ID, &discordgo.ChannelEdit{Name: name})
	}
	if err != nil {
		return bot.RespondEphemeral(s, i, fmt.Sprintf("⚠️ Saved, but the first rename failed: `%s`", err.Error()))
	}

	return bot.RespondEphemeral(s, i, fmt.Sprintf("✅ %s now shows **%s** time.", channel.Mention(), code))
}

func (c *TimezoneCommand) runRemove(s *discordgo.Session, i *discordgo.InteractionCreate, st *storage.Storage, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	var code string
	for _, opt := range opts {
		if opt.Name == "zone" {
			code = strings.ToUpper(opt.StringValue())
		}
	}

	channelID, err := st.RemoveTimezoneChannel(i.GuildID, code)
	if errors.Is(err, storage.ErrNotFound) {
		return bot.RespondEphemeral(s, i, fmt.Sprintf("No channel is configured for **%s** on this server.", code))
	}
	if err != nil {
		return bot.RespondEphemeral(s, i, fmt.Sprintf("Failed to remove the binding: `%s`", err.Error()))
	}

	return bot.RespondEphemeral(s, i, fmt.Sprintf("✅ Removed the **%s** clock from <#%s>.", code, channelID))
}

func (c *TimezoneCommand) runList(s *discordgo.Session, i *discordgo.InteractionCreate, st *storage.Storage) error {
	channels, err := st.TimezoneChannels(i.GuildID)
	if err != nil {
		return bot.RespondEphemeral(s, i, fmt.Sprintf("Failed to load bindings: `%s`", err.Error()))
	}
	if len(channels) == 0 {
		return bot.RespondEphemeral(s, i, "No timezone channels are configured on this server.")
	}

	codes := make([]string, 0, len(channels))
	for code := range channels {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	embed := &discordgo.MessageEmbed{
		Title:       "Timezone Channels",
		Description: "Voice channels showing the current time:",
	}
	for _, code := range codes {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s - %s", code, Zones[code].Display),
			Value: fmt.Sprintf("<#%s>", channels[code]),
		})
	}

	return bot.RespondEmbedEphemeral(s, i, embed)
}

func (c *TimezoneCommand) runInterval(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	minutes := 0
	for _, opt := range opts {
		if opt.Name == "minutes" {
			minutes = int(opt.IntValue())
		}
	}

	note := ""
	if minutes < minIntervalMinutes {
		minutes = minIntervalMinutes
		note = fmt.Sprintf("\n⚠️ Clamped to the %d minute minimum to stay under rename rate limits.", minIntervalMinutes)
	}

	if err := jobmgr.DefaultManager.ChangeInterval(JobName, time.Duration(minutes)*time.Minute); err != nil {
		return bot.RespondEphemeral(s, i, fmt.Sprintf("Failed to change the interval: `%s`", err.Error()))
	}

	return bot.RespondEphemeral(s, i, fmt.Sprintf("✅ Timezone channels will now update every %d minutes.%s", minutes, note))
}

func init() {
	command.RegisterCommand(
		&TimezoneCommand{},
		middleware.WithGroupAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
