package config

import (
	"strings"
	"testing"
)

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db.internal",
		Port: 5432,
		Name: "dominator",
		User: "bot",
	}
	dsn := cfg.DSN()
	if dsn != "postgresql://bot@db.internal:5432/dominator" {
		t.Fatalf("unexpected dsn: %s", dsn)
	}

	cfg.Password = "p@ss"
	dsn = cfg.DSN()
	if !strings.Contains(dsn, "bot:p%40ss@") {
		t.Fatalf("expected escaped password in dsn: %s", dsn)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := buildConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}

	cfg.LLM.Provider = "openai"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
	cfg.LLM.Provider = ProviderWorkersAI

	cfg.Discord.PublicKey = "not-hex"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for malformed public key")
	}
	cfg.Discord.PublicKey = strings.Repeat("ab", 32)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("64 hex chars should validate: %v", err)
	}

	cfg.HTTP.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for port 0")
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("DOMINATOR_TEST_INT", " 42 ")
	if got := getEnvInt("DOMINATOR_TEST_INT", 7); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	t.Setenv("DOMINATOR_TEST_INT", "not-a-number")
	if got := getEnvInt("DOMINATOR_TEST_INT", 7); got != 7 {
		t.Fatalf("expected default 7, got %d", got)
	}

	t.Setenv("DOMINATOR_TEST_NEG", "-5")
	if got := getEnvNonNegativeInt("DOMINATOR_TEST_NEG", 3); got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}

	t.Setenv("DOMINATOR_TEST_BOOL", "YES")
	if !getEnvBool("DOMINATOR_TEST_BOOL", false) {
		t.Fatalf("expected true for YES")
	}
}

func TestMaskSecret(t *testing.T) {
	if maskSecret("") != "<missing>" {
		t.Fatalf("expected <missing> for empty secret")
	}
	if maskSecret("abc") != "***" {
		t.Fatalf("expected full mask for short secret")
	}
	masked := maskSecret("abcdef123456")
	if masked != "ab***56" {
		t.Fatalf("unexpected mask: %s", masked)
	}
}
