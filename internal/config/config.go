package config

import (
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, falling back to system environment variables")
	}
}

type Config struct {
	DiscordToken          string `env:"DISCORD_TOKEN,required"`
	StoragePath           string `env:"STORAGE_PATH" envDefault:"./data/steward.json"`
	DeveloperID           string `env:"DEVELOPER_ID"`
	InitSlashCommands     bool   `env:"INIT_SLASH_COMMANDS" envDefault:"true"`
	TimezoneUpdateMinutes int    `env:"TIMEZONE_UPDATE_MINUTES" envDefault:"5"`
}

func New() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if cfg.TimezoneUpdateMinutes < 5 {
		// Channel renames are rate limited hard by Discord.
		cfg.TimezoneUpdateMinutes = 5
	}
	return cfg, nil
}
