// cmd/discord/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/BubbleXIV/guild-steward/internal/command/core"
	_ "github.com/BubbleXIV/guild-steward/internal/command/purge"
	_ "github.com/BubbleXIV/guild-steward/internal/command/reactrole"
	_ "github.com/BubbleXIV/guild-steward/internal/command/rolemanage"
	_ "github.com/BubbleXIV/guild-steward/internal/command/roll"
	_ "github.com/BubbleXIV/guild-steward/internal/command/stats"
	_ "github.com/BubbleXIV/guild-steward/internal/command/testmodal"
	_ "github.com/BubbleXIV/guild-steward/internal/command/timezone"

	"github.com/BubbleXIV/guild-steward/internal/bot"
	"github.com/BubbleXIV/guild-steward/internal/config"
	"github.com/BubbleXIV/guild-steward/internal/discord"
	"github.com/BubbleXIV/guild-steward/internal/storage"
	v "github.com/BubbleXIV/guild-steward/internal/version"
)

func main() {
	log.Printf("[INFO] Starting %v bot...", v.AppName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New()
	if err != nil {
		log.Fatal("[ERR] Config error: ", err)
	}

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatal("[ERR] Storage error: ", err)
	}
	defer store.Close()

	bot.SetDeveloperID(cfg.DeveloperID)

	errCh := make(chan error, 1)
	go func() {
		if err := discord.StartBot(ctx, cfg, store); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Printf("[INFO] Received signal %s, shutting down...", s)
		cancel()
	case err := <-errCh:
		if err != nil {
			log.Println("[ERR] Discord bot error:", err)
		}
		cancel()
	}

	log.Println("[INFO] Discord bot exited cleanly")
}
