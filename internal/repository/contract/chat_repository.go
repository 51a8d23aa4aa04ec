package contract

import (
	"context"

	"sales-assistant-be/internal/entity"
	"sales-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error
}

type ChatHistorySnapshotRepository interface {
	Upsert(ctx context.Context, snapshot *entity.ChatHistorySnapshot) error
	FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.ChatHistorySnapshot, error)
}
