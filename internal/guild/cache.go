package guild

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/park285/dominator-discord-go/internal/config"
)

// Cache 는 허용 목록 판정의 Valkey 캐시다. 비활성화 상태면 모든 조회가 미스다.
// 캐시 오류는 판정을 막지 않고 DB 조회로 넘어간다.
type Cache struct {
	client valkey.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCache 는 설정에 따라 캐시를 생성한다. 비활성화면 nil 클라이언트로 동작한다.
func NewCache(cfg config.AllowlistCacheConfig, logger *slog.Logger) (*Cache, error) {
	cache := &Cache{
		ttl:    time.Duration(cfg.TTLSeconds) * time.Second,
		logger: logger,
	}
	if cache.ttl <= 0 {
		cache.ttl = time.Minute
	}
	if !cfg.Enabled {
		return cache, nil
	}

	option, err := valkey.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse allowlist cache url: %w", err)
	}
	client, err := valkey.NewClient(option)
	if err != nil {
		return nil, fmt.Errorf("connect allowlist cache: %w", err)
	}

	cache.client = client
	return cache, nil
}

// NewCacheWithClient 는 준비된 클라이언트로 캐시를 생성한다. 테스트용.
func NewCacheWithClient(client valkey.Client, ttl time.Duration, logger *slog.Logger) *Cache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Cache{client: client, ttl: ttl, logger: logger}
}

func (c *Cache) key(guildID string) string {
	return fmt.Sprintf("guild:%s:allowed", guildID)
}

// GetAllowed 는 캐시된 판정을 반환한다. 두 번째 반환값은 히트 여부다.
func (c *Cache) GetAllowed(ctx context.Context, guildID string) (bool, bool) {
	if c == nil || c.client == nil {
		return false, false
	}

	cmd := c.client.B().Get().Key(c.key(guildID)).Build()
	value, err := c.client.Do(ctx, cmd).ToString()
	if err != nil {
		if !valkey.IsValkeyNil(err) && c.logger != nil {
			c.logger.Warn("allowlist_cache_get_failed", slog.String("error", err.Error()))
		}
		return false, false
	}
	return value == "1", true
}

// SetAllowed 는 판정을 TTL 과 함께 저장한다.
func (c *Cache) SetAllowed(ctx context.Context, guildID string, allowed bool) {
	if c == nil || c.client == nil {
		return
	}

	value := "0"
	if allowed {
		value = "1"
	}
	cmd := c.client.B().Set().Key(c.key(guildID)).Value(value).Ex(c.ttl).Build()
	if err := c.client.Do(ctx, cmd).Error(); err != nil && c.logger != nil {
		c.logger.Warn("allowlist_cache_set_failed", slog.String("error", err.Error()))
	}
}

// Invalidate 는 등록 상태 변경 직후 캐시 항목을 제거한다.
func (c *Cache) Invalidate(ctx context.Context, guildID string) {
	if c == nil || c.client == nil {
		return
	}

	cmd := c.client.B().Del().Key(c.key(guildID)).Build()
	if err := c.client.Do(ctx, cmd).Error(); err != nil && !valkey.IsValkeyNil(err) && c.logger != nil {
		c.logger.Warn("allowlist_cache_del_failed", slog.String("error", err.Error()))
	}
}

// Close 는 캐시 연결을 종료한다.
func (c *Cache) Close() {
	if c == nil || c.client == nil {
		return
	}
	c.client.Close()
}
