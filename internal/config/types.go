package config

import (
	"net"
	"net/url"
	"strconv"
)

// ProviderGemini / ProviderWorkersAI 는 지원하는 LLM 백엔드 종류다.
const (
	ProviderGemini    = "gemini"
	ProviderWorkersAI = "workersai"
)

// DiscordConfig 는 Discord 연동 설정이다.
type DiscordConfig struct {
	PublicKey      string `validate:"omitempty,hexadecimal,len=64"`
	ApplicationID  string
	BotToken       string
	OperatorUserID string
	APIBaseURL     string `validate:"required,url"`
}

// GeminiConfig 는 Gemini 백엔드 설정이다.
type GeminiConfig struct {
	APIKey         string
	Model          string
	TimeoutSeconds int
}

// WorkersAIConfig 는 Cloudflare Workers AI 백엔드 설정이다.
type WorkersAIConfig struct {
	AccountID      string
	APIToken       string
	Model          string
	BaseURL        string `validate:"required,url"`
	TimeoutSeconds int
}

// LLMConfig 는 분류기 백엔드 선택 및 파라미터다.
// Provider 는 기동 시 한 번 읽혀 불변으로 유지된다.
type LLMConfig struct {
	Provider  string `validate:"oneof=gemini workersai"`
	Gemini    GeminiConfig
	WorkersAI WorkersAIConfig
}

// LoggingConfig 는 로깅 설정이다.
type LoggingConfig struct {
	Level      string
	LogDir     string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// HTTPConfig 는 HTTP 서버 설정이다.
type HTTPConfig struct {
	Host         string
	Port         int `validate:"min=1,max=65535"`
	HTTP2Enabled bool
}

// DatabaseConfig 는 허용 목록 DB 연결 설정이다.
type DatabaseConfig struct {
	Host                   string
	Port                   int
	Name                   string
	User                   string
	Password               string
	MinPool                int
	MaxPool                int
	ConnMaxLifetimeMinutes int
	ConnMaxIdleTimeMinutes int
}

// DSN 은 DB 접속 문자열을 반환한다.
func (d DatabaseConfig) DSN() string {
	host := net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
	u := &url.URL{
		Scheme: "postgresql",
		Host:   host,
		Path:   "/" + d.Name,
	}
	if d.Password == "" {
		u.User = url.User(d.User)
	} else {
		u.User = url.UserPassword(d.User, d.Password)
	}
	return u.String()
}

// AllowlistCacheConfig 는 허용 목록 캐시(Valkey) 설정이다.
type AllowlistCacheConfig struct {
	URL        string
	Enabled    bool
	TTLSeconds int
}

// Config 는 애플리케이션 전체 설정이다.
type Config struct {
	Discord        DiscordConfig
	LLM            LLMConfig
	Logging        LoggingConfig
	HTTP           HTTPConfig
	Database       DatabaseConfig
	AllowlistCache AllowlistCacheConfig
}
