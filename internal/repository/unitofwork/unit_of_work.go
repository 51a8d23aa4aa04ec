package unitofwork

import (
	"context"

	"sales-assistant-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ProductRepository() contract.ProductRepository
	ChatMessageRepository() contract.ChatMessageRepository
	ChatHistorySnapshotRepository() contract.ChatHistorySnapshotRepository
}
