// Package guild 는 길드 허용 목록 저장소다.
package guild

import "time"

// Guild 는 허용 목록 레코드다. 해제 이력은 행 삭제 대신 비활성화로 남긴다.
type Guild struct {
	GuildID              string     `gorm:"column:guild_id;primaryKey"`
	IsActive             bool       `gorm:"column:is_active;not null"`
	RegisteredByUserID   string     `gorm:"column:registered_by_user_id"`
	RegisteredChannelID  string     `gorm:"column:registered_channel_id"`
	RegisteredAt         time.Time  `gorm:"column:registered_at"`
	UnregisteredAt       *time.Time `gorm:"column:unregistered_at"`
	UnregisteredByUserID *string    `gorm:"column:unregistered_by_user_id"`
}

// TableName 은 gorm 테이블명을 고정한다.
func (Guild) TableName() string {
	return "guilds"
}
