package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Role      string
	Content   string
	CreatedAt time.Time
}

// ChatHistorySnapshot is a client-posted copy of a full conversation,
// stored as one JSON document per user.
type ChatHistorySnapshot struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Messages  []byte // raw JSON array of {role, content, timestamp}
	CreatedAt time.Time
	UpdatedAt time.Time
}
