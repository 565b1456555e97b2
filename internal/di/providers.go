package di

import (
	"fmt"
	"log/slog"

	"github.com/park285/dominator-discord-go/internal/config"
	"github.com/park285/dominator-discord-go/internal/discord"
	"github.com/park285/dominator-discord-go/internal/gemini"
	"github.com/park285/dominator-discord-go/internal/guild"
	"github.com/park285/dominator-discord-go/internal/handler"
	"github.com/park285/dominator-discord-go/internal/llm"
	"github.com/park285/dominator-discord-go/internal/logging"
	"github.com/park285/dominator-discord-go/internal/metrics"
	"github.com/park285/dominator-discord-go/internal/verify"
	"github.com/park285/dominator-discord-go/internal/workersai"
)

// ProvideLogger 는 로거를 구성해 반환한다.
func ProvideLogger(cfg *config.Config) (*slog.Logger, error) {
	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}

// ProvideVerifier 는 서명 검증기를 생성한다. 공개 키 없이 서버는 뜰 수 없다.
func ProvideVerifier(cfg *config.Config) (*verify.Verifier, error) {
	verifier, err := verify.NewVerifier(cfg.Discord.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("discord public key: %w", err)
	}
	return verifier, nil
}

// ProvideLLMClient 는 설정된 백엔드의 분류 클라이언트를 생성한다.
// 선택은 기동 시 한 번이며 이후 불변이다.
func ProvideLLMClient(
	cfg *config.Config,
	prompt *llm.Prompt,
	store *metrics.Store,
	logger *slog.Logger,
) (llm.Client, error) {
	switch cfg.LLM.Provider {
	case config.ProviderGemini:
		return gemini.NewClient(cfg.LLM.Gemini, prompt, store, logger), nil
	case config.ProviderWorkersAI:
		return workersai.NewClient(cfg.LLM.WorkersAI, prompt, store, logger), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %q", cfg.LLM.Provider)
	}
}

// ProvideGuildService 는 허용 목록 서비스를 조립한다.
func ProvideGuildService(cfg *config.Config, logger *slog.Logger) (*guild.Service, error) {
	repo := guild.NewRepository(cfg, logger)
	cache, err := guild.NewCache(cfg.AllowlistCache, logger)
	if err != nil {
		return nil, fmt.Errorf("allowlist cache: %w", err)
	}
	return guild.NewService(repo, cache, logger), nil
}

// ProvideDiscordClient 는 Discord REST 클라이언트를 생성한다.
func ProvideDiscordClient(cfg *config.Config, store *metrics.Store, logger *slog.Logger) *discord.Client {
	return discord.NewClient(cfg.Discord, store, logger)
}

// ProvideTaskTracker 는 지연 작업 추적기를 생성한다.
func ProvideTaskTracker(logger *slog.Logger) *handler.TaskTracker {
	return handler.NewTaskTracker(logger)
}
