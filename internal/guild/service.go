package guild

import (
	"context"
	"log/slog"
)

// Service 는 허용 목록 조회와 등록 변경을 묶는다.
type Service struct {
	repo   *Repository
	cache  *Cache
	logger *slog.Logger
}

// NewService 는 허용 목록 서비스를 생성한다.
func NewService(repo *Repository, cache *Cache, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// IsAllowed 는 길드 허용 여부를 판정한다. 캐시 히트 시 DB 를 건드리지 않는다.
func (s *Service) IsAllowed(ctx context.Context, guildID string) (bool, error) {
	if allowed, hit := s.cache.GetAllowed(ctx, guildID); hit {
		return allowed, nil
	}

	allowed, err := s.repo.IsActive(ctx, guildID)
	if err != nil {
		return false, err
	}
	s.cache.SetAllowed(ctx, guildID, allowed)
	return allowed, nil
}

// Register 는 길드를 등록한다. 이미 행이 있으면 등록자 정보를 덮어쓴다.
func (s *Service) Register(ctx context.Context, guildID, userID, channelID string) error {
	if err := s.repo.Register(ctx, guildID, userID, channelID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, guildID)
	if s.logger != nil {
		s.logger.Info("guild_registered",
			slog.String("guild_id", guildID),
			slog.String("user_id", userID),
		)
	}
	return nil
}

// Unregister 는 길드를 해제한다. 활성 상태가 아니었으면 false 를 반환한다.
func (s *Service) Unregister(ctx context.Context, guildID, userID string) (bool, error) {
	unregistered, err := s.repo.Unregister(ctx, guildID, userID)
	if err != nil {
		return false, err
	}
	if unregistered {
		s.cache.Invalidate(ctx, guildID)
		if s.logger != nil {
			s.logger.Info("guild_unregistered",
				slog.String("guild_id", guildID),
				slog.String("user_id", userID),
			)
		}
	}
	return unregistered, nil
}

// Close 는 저장소와 캐시 연결을 정리한다.
func (s *Service) Close() {
	if s == nil {
		return
	}
	if s.repo != nil {
		s.repo.Close()
	}
	s.cache.Close()
}
