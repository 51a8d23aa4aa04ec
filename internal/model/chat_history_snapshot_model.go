package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ChatHistorySnapshot stores a full client-side conversation as one JSON
// document. The per-turn log lives in chat_messages; this table backs the
// bulk save/restore endpoint.
type ChatHistorySnapshot struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Messages  datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (ChatHistorySnapshot) TableName() string {
	return "chat_history_snapshots"
}
