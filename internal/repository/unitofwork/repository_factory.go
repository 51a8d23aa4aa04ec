package unitofwork

import "context"

// RepositoryFactory hands out one UnitOfWork per request.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
