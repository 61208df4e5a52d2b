package unitofwork

import "context"

// RepositoryFactory is what services depend on instead of *gorm.DB, so the
// identity store can be absent.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
