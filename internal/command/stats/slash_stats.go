package stats

import (
	"fmt"
	"runtime"
	"time"

	"github.com/BubbleXIV/guild-steward/internal/bot"
	"github.com/BubbleXIV/guild-steward/internal/command"
	"github.com/BubbleXIV/guild-steward/internal/middleware"
	"github.com/BubbleXIV/guild-steward/internal/version"

	"github.com/bwmarrin/discordgo"
)

// StartTime marks process boot; uptime is measured against it.
var StartTime = time.Now()

type StatsCommand struct{}

func (c *StatsCommand) Name() string            { return "stats" }
func (c *StatsCommand) Description() string     { return "Runtime statistics for the bot" }
func (c *StatsCommand) Group() string           { return "core" }
func (c *StatsCommand) Category() string        { return "🛠 Core" }
func (c *StatsCommand) UserPermissions() []int64 { return nil }

func (c *StatsCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *StatsCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	s := slash.Session
	i := slash.Event

	var userID string
	if i.Member != nil {
		userID = i.Member.User.ID
	} else if i.User != nil {
		userID = i.User.ID
	}
	if !bot.IsDeveloper(userID) {
		return bot.RespondEphemeral(s, i, "This command is reserved for the bot developer.")
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	guilds := len(s.State.Guilds)
	channels := 0
	for _, g := range s.State.Guilds {
		channels += len(g.Channels)
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📊 %s Stats", version.AppName),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Uptime", Value: FormatUptime(time.Since(StartTime)), Inline: true},
			{Name: "Guilds", Value: fmt.Sprintf("%d", guilds), Inline: true},
			{Name: "Channels", Value: fmt.Sprintf("%d", channels), Inline: true},
			{Name: "Memory", Value: fmt.Sprintf("%.1f MB alloc / %.1f MB sys", float64(mem.Alloc)/1024/1024, float64(mem.Sys)/1024/1024), Inline: true},
			{Name: "Goroutines", Value: fmt.Sprintf("%d", runtime.NumGoroutine()), Inline: true},
			{Name: "GC Cycles", Value: fmt.Sprintf("%d", mem.NumGC), Inline: true},
			{Name: "Go", Value: runtime.Version(), Inline: true},
			{Name: "discordgo", Value: "v" + discordgo.VERSION, Inline: true},
			{Name: "Version", Value: version.Version, Inline: true},
		},
	}

	return bot.RespondEmbedEphemeral(s, i, embed)
}

// FormatUptime renders a duration as `1d 2h 3m 4s`, dropping leading
// zero units.
func FormatUptime(d time.Duration) string {
	d = d.Round(time.Second)
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

func init() {
	command.RegisterCommand(
		&StatsCommand{},
		middleware.WithCommandLogger(),
	)
}
