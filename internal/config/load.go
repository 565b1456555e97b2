package config

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	defaultAPIBaseURL       = "https://discord.com/api/v10"
	defaultWorkersAIBaseURL = "https://api.cloudflare.com/client/v4"
)

var (
	configOnce  sync.Once
	configValue *Config
)

// Load 는 환경 변수 기반 설정을 로드한다.
func Load() *Config {
	configOnce.Do(func() {
		_ = godotenv.Load()
		configValue = buildConfig()
	})
	return configValue
}

// ProvideConfig 는 설정을 로드하고 검증한다.
func ProvideConfig() (*Config, error) {
	cfg := Load()
	if cfg == nil {
		return nil, errors.New("config not initialized")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 는 설정 유효성을 검사한다.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LogEnvStatus 는 환경 설정 상태를 로그로 남긴다.
func LogEnvStatus(cfg *Config, logger *slog.Logger) {
	if logger == nil || cfg == nil {
		return
	}

	envFilePresent := fileExists(".env")
	logger.Debug(
		"env_status",
		"env_file", envFilePresent,
		"provider", cfg.LLM.Provider,
		"gemini_key", maskSecret(cfg.LLM.Gemini.APIKey),
		"gemini_model", cfg.LLM.Gemini.Model,
		"workersai_token", maskSecret(cfg.LLM.WorkersAI.APIToken),
		"workersai_model", cfg.LLM.WorkersAI.Model,
		"bot_token", maskSecret(cfg.Discord.BotToken),
		"public_key", maskSecret(cfg.Discord.PublicKey),
		"db_host", cfg.Database.Host,
		"db_name", cfg.Database.Name,
		"allowlist_cache", cfg.AllowlistCache.Enabled,
	)

	if cfg.Discord.PublicKey == "" {
		logger.Error("env_missing_discord_public_key")
	}
	if cfg.Discord.BotToken == "" {
		logger.Error("env_missing_discord_bot_token")
	}
}

func buildConfig() *Config {
	return &Config{
		Discord: DiscordConfig{
			PublicKey:      getEnvString("DISCORD_PUBLIC_KEY", ""),
			ApplicationID:  getEnvString("DISCORD_APPLICATION_ID", ""),
			BotToken:       getEnvString("DISCORD_BOT_TOKEN", ""),
			OperatorUserID: getEnvString("OPERATOR_USER_ID", ""),
			APIBaseURL:     getEnvString("DISCORD_API_BASE_URL", defaultAPIBaseURL),
		},
		LLM: LLMConfig{
			Provider: getEnvString("LLM_PROVIDER", ProviderGemini),
			Gemini: GeminiConfig{
				APIKey:         getEnvString("GEMINI_API_KEY", ""),
				Model:          getEnvString("GEMINI_MODEL", "gemini-2.0-flash"),
				TimeoutSeconds: getEnvInt("GEMINI_TIMEOUT", 60),
			},
			WorkersAI: WorkersAIConfig{
				AccountID:      getEnvString("CF_ACCOUNT_ID", ""),
				APIToken:       getEnvString("CF_API_TOKEN", ""),
				Model:          getEnvString("WORKERS_AI_MODEL", "@cf/google/gemma-3-12b-it"),
				BaseURL:        getEnvString("WORKERS_AI_BASE_URL", defaultWorkersAIBaseURL),
				TimeoutSeconds: getEnvInt("WORKERS_AI_TIMEOUT", 60),
			},
		},
		Logging: LoggingConfig{
			Level:      getEnvString("LOG_LEVEL", "info"),
			LogDir:     getEnvString("LOG_DIR", ""),
			MaxSizeMB:  getEnvInt("LOG_FILE_MAX_SIZE_MB", 1),
			MaxBackups: getEnvInt("LOG_FILE_MAX_BACKUPS", 30),
			MaxAgeDays: getEnvInt("LOG_FILE_MAX_AGE_DAYS", 7),
			Compress:   getEnvBool("LOG_FILE_COMPRESS", true),
		},
		HTTP: HTTPConfig{
			Host:         getEnvString("HTTP_HOST", "127.0.0.1"),
			Port:         getEnvInt("HTTP_PORT", 40311),
			HTTP2Enabled: getEnvBool("HTTP2_ENABLED", true),
		},
		Database: DatabaseConfig{
			Host:                   getEnvString("DB_HOST", "localhost"),
			Port:                   getEnvInt("DB_PORT", 5432),
			Name:                   getEnvString("DB_NAME", "dominator"),
			User:                   getEnvString("DB_USER", "dominator"),
			Password:               getEnvString("DB_PASSWORD", ""),
			MinPool:                getEnvInt("DB_MIN_POOL", 1),
			MaxPool:                getEnvInt("DB_MAX_POOL", 5),
			ConnMaxLifetimeMinutes: getEnvNonNegativeInt("DB_CONN_MAX_LIFETIME_MINUTES", 60),
			ConnMaxIdleTimeMinutes: getEnvNonNegativeInt("DB_CONN_MAX_IDLE_TIME_MINUTES", 10),
		},
		AllowlistCache: AllowlistCacheConfig{
			URL:        getEnvString("ALLOWLIST_CACHE_URL", "redis://localhost:6379"),
			Enabled:    getEnvBool("ALLOWLIST_CACHE_ENABLED", false),
			TTLSeconds: max(1, getEnvNonNegativeInt("ALLOWLIST_CACHE_TTL_SECONDS", 60)),
		},
	}
}
