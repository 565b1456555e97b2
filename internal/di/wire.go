//go:build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/park285/dominator-discord-go/internal/config"
	"github.com/park285/dominator-discord-go/internal/handler"
	"github.com/park285/dominator-discord-go/internal/llm"
	"github.com/park285/dominator-discord-go/internal/metrics"
	"github.com/park285/dominator-discord-go/internal/server"
)

func InitializeApp() (*App, error) {
	wire.Build(
		config.ProvideConfig,
		ProvideLogger,
		metrics.NewStore,
		ProvideVerifier,
		llm.NewPrompt,
		ProvideLLMClient,
		ProvideGuildService,
		ProvideDiscordClient,
		ProvideTaskTracker,
		handler.NewInteractionHandler,
		handler.NewRouter,
		server.NewHTTPServer,
		NewApp,
	)
	return nil, nil
}
