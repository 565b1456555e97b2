// registercmds 는 전역 슬래시 커맨드를 Discord 에 일괄 등록하는 단발 도구다.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/park285/dominator-discord-go/internal/config"
	"github.com/park285/dominator-discord-go/internal/di"
	"github.com/park285/dominator-discord-go/internal/metrics"
	"github.com/park285/dominator-discord-go/internal/registration"
)

func main() {
	cfg, err := config.ProvideConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger, err := di.ProvideLogger(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	if cfg.Discord.BotToken == "" || cfg.Discord.ApplicationID == "" {
		logger.Error("missing_discord_credentials")
		os.Exit(1)
	}

	client := di.ProvideDiscordClient(cfg, metrics.NewStore(), logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := registration.Register(ctx, client, logger); err != nil {
		logger.Error("command_registration_failed", "err", err)
		os.Exit(1)
	}
	logger.Info("command_registration_complete")
}
