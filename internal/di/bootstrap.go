package di

import (
	"fmt"

	"github.com/park285/dominator-discord-go/internal/config"
	"github.com/park285/dominator-discord-go/internal/handler"
	"github.com/park285/dominator-discord-go/internal/llm"
	"github.com/park285/dominator-discord-go/internal/metrics"
	"github.com/park285/dominator-discord-go/internal/server"
)

// InitializeApp 은 애플리케이션 의존성을 초기화하고 App 인스턴스를 반환한다.
func InitializeApp() (*App, error) {
	cfg, err := config.ProvideConfig()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger, err := ProvideLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	metricsStore := metrics.NewStore()

	verifier, err := ProvideVerifier(cfg)
	if err != nil {
		return nil, fmt.Errorf("verifier: %w", err)
	}

	prompt, err := llm.NewPrompt()
	if err != nil {
		return nil, fmt.Errorf("prompt: %w", err)
	}

	llmClient, err := ProvideLLMClient(cfg, prompt, metricsStore, logger)
	if err != nil {
		return nil, fmt.Errorf("llm client: %w", err)
	}

	guilds, err := ProvideGuildService(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("guild service: %w", err)
	}

	rest := ProvideDiscordClient(cfg, metricsStore, logger)
	tasks := ProvideTaskTracker(logger)

	interactions := handler.NewInteractionHandler(cfg, verifier, llmClient, guilds, rest, metricsStore, logger, tasks)
	router := handler.NewRouter(cfg, logger, metricsStore, interactions)
	httpServer := server.NewHTTPServer(cfg, router)

	return NewApp(httpServer, logger, cfg, guilds, tasks), nil
}
