package guild

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/park285/dominator-discord-go/internal/config"
)

// Repository 는 guilds 테이블 접근을 담당한다. 연결은 첫 사용 시 수립된다.
type Repository struct {
	cfg    *config.Config
	logger *slog.Logger
	mu     sync.Mutex
	db     *gorm.DB
	sqlDB  *sql.DB
}

// NewRepository 는 허용 목록 저장소를 생성한다.
func NewRepository(cfg *config.Config, logger *slog.Logger) *Repository {
	return &Repository{
		cfg:    cfg,
		logger: logger,
	}
}

// NewRepositoryWithDB 는 준비된 gorm 연결로 저장소를 생성한다. 테스트용.
func NewRepositoryWithDB(db *gorm.DB, logger *slog.Logger) (*Repository, error) {
	if db == nil {
		return nil, errors.New("db is nil")
	}
	if err := db.AutoMigrate(&Guild{}); err != nil {
		return nil, fmt.Errorf("migrate guilds: %w", err)
	}
	return &Repository{db: db, logger: logger}, nil
}

// IsActive 는 길드가 현재 허용 목록에 있는지 조회한다.
func (r *Repository) IsActive(ctx context.Context, guildID string) (bool, error) {
	db, err := r.getDB(ctx)
	if err != nil {
		return false, err
	}

	var row Guild
	result := db.WithContext(ctx).Where("guild_id = ?", guildID).First(&row)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if result.Error != nil {
		return false, result.Error
	}
	return row.IsActive, nil
}

// Register 는 길드를 허용 목록에 추가한다. 기존 행이 있으면 등록자 정보를
// 최신 호출로 덮어쓰고 재활성화한다. 중복 행은 만들지 않는다.
func (r *Repository) Register(ctx context.Context, guildID, userID, channelID string) error {
	db, err := r.getDB(ctx)
	if err != nil {
		return err
	}

	row := Guild{
		GuildID:             guildID,
		IsActive:            true,
		RegisteredByUserID:  userID,
		RegisteredChannelID: channelID,
		RegisteredAt:        time.Now(),
	}
	err = db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "guild_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"is_active":               true,
			"registered_by_user_id":   row.RegisteredByUserID,
			"registered_channel_id":   row.RegisteredChannelID,
			"registered_at":           row.RegisteredAt,
			"unregistered_at":         nil,
			"unregistered_by_user_id": nil,
		}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("register guild: %w", err)
	}
	return nil
}

// Unregister 는 길드를 비활성화한다. 활성 상태가 아니었으면 false 를 반환한다.
func (r *Repository) Unregister(ctx context.Context, guildID, userID string) (bool, error) {
	db, err := r.getDB(ctx)
	if err != nil {
		return false, err
	}

	now := time.Now()
	result := db.WithContext(ctx).Model(&Guild{}).
		Where("guild_id = ? AND is_active = ?", guildID, true).
		Updates(map[string]any{
			"is_active":               false,
			"unregistered_at":         now,
			"unregistered_by_user_id": userID,
		})
	if result.Error != nil {
		return false, fmt.Errorf("unregister guild: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Close 는 DB 연결을 닫는다.
func (r *Repository) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sqlDB == nil {
		return
	}
	_ = r.sqlDB.Close()
	r.sqlDB = nil
	r.db = nil
}

func (r *Repository) getDB(ctx context.Context) (*gorm.DB, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db != nil {
		return r.db, nil
	}
	if r.cfg == nil {
		return nil, errors.New("database config is nil")
	}

	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}
	db, err := gorm.Open(postgres.Open(r.cfg.Database.DSN()), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open guild db: %w", err)
	}

	if err := db.AutoMigrate(&Guild{}); err != nil {
		return nil, fmt.Errorf("prepare guild db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get guild db handle: %w", err)
	}

	sqlDB.SetMaxIdleConns(r.cfg.Database.MinPool)
	sqlDB.SetMaxOpenConns(r.cfg.Database.MaxPool)
	if r.cfg.Database.ConnMaxLifetimeMinutes > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(r.cfg.Database.ConnMaxLifetimeMinutes) * time.Minute)
	}
	if r.cfg.Database.ConnMaxIdleTimeMinutes > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(r.cfg.Database.ConnMaxIdleTimeMinutes) * time.Minute)
	}

	if r.logger != nil {
		r.logger.Info("guild_db_connected",
			slog.String("host", r.cfg.Database.Host),
			slog.String("name", r.cfg.Database.Name),
		)
	}

	r.db = db
	r.sqlDB = sqlDB
	return db, nil
}
