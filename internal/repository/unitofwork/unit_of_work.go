package unitofwork

import (
	"context"

	"career-assistant-be/internal/repository/contract"
)

// UnitOfWork scopes repositories to one operation. Outside Begin/Commit the
// repositories run in autocommit mode.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	// Rollback after Commit is a no-op so it can always be deferred.
	Rollback() error

	UserRepository() contract.UserRepository
}

// WithinTransaction runs fn inside a transaction, committing when fn returns
// nil and rolling back on error or panic.
func WithinTransaction(ctx context.Context, factory RepositoryFactory, fn func(uow UnitOfWork) error) error {
	uow := factory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := fn(uow); err != nil {
		return err
	}
	return uow.Commit()
}
