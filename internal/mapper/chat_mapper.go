package mapper

import (
	"sales-assistant-be/internal/entity"
	"sales-assistant-be/internal/model"

	"gorm.io/datatypes"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) MessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:        msg.Id,
		UserId:    msg.UserId,
		Role:      msg.Role,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}
	return &model.ChatMessage{
		Id:        msg.Id,
		UserId:    msg.UserId,
		Role:      msg.Role,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *ChatMapper) SnapshotToEntity(s *model.ChatHistorySnapshot) *entity.ChatHistorySnapshot {
	if s == nil {
		return nil
	}
	return &entity.ChatHistorySnapshot{
		Id:        s.Id,
		UserId:    s.UserId,
		Messages:  []byte(s.Messages),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *ChatMapper) SnapshotToModel(s *entity.ChatHistorySnapshot) *model.ChatHistorySnapshot {
	if s == nil {
		return nil
	}
	return &model.ChatHistorySnapshot{
		Id:        s.Id,
		UserId:    s.UserId,
		Messages:  datatypes.JSON(s.Messages),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
