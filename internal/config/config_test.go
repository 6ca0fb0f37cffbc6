package config

import "testing"

func TestNew(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "test-token")

	t.Run("defaults", func(t *testing.T) {
		cfg, err := New()
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if cfg.DiscordToken != "test-token" {
			t.Fatalf("unexpected token: %q", cfg.DiscordToken)
		}
		if cfg.StoragePath != "./data/steward.json" {
			t.Fatalf("unexpected storage path: %q", cfg.StoragePath)
		}
		if !cfg.InitSlashCommands {
			t.Fatal("InitSlashCommands should default to true")
		}
		if cfg.TimezoneUpdateMinutes != 5 {
			t.Fatalf("unexpected timezone interval: %d", cfg.TimezoneUpdateMinutes)
		}
	})

	t.Run("interval floor enforced", func(t *testing.T) {
		t.Setenv("TIMEZONE_UPDATE_MINUTES", "1")
		cfg, err := New()
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if cfg.TimezoneUpdateMinutes != 5 {
			t.Fatalf("interval not clamped: %d", cfg.TimezoneUpdateMinutes)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("STORAGE_PATH", "/tmp/other.json")
		t.Setenv("INIT_SLASH_COMMANDS", "false")
		cfg, err := New()
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if cfg.StoragePath != "/tmp/other.json" {
			t.Fatalf("unexpected storage path: %q", cfg.StoragePath)
		}
		if cfg.InitSlashCommands {
			t.Fatal("InitSlashCommands override ignored")
		}
	})
}
