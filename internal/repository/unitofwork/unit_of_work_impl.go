package unitofwork

import (
	"context"
	"errors"

	"career-assistant-be/internal/repository/contract"
	"career-assistant-be/internal/repository/implementation"

	"gorm.io/gorm"
)

var (
	ErrTransactionActive   = errors.New("unit of work: transaction already started")
	ErrNoActiveTransaction = errors.New("unit of work: no active transaction")
)

type gormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db}
}

func (u *gormUnitOfWork) conn() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *gormUnitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return ErrTransactionActive
	}
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	u.tx = tx
	return nil
}

func (u *gormUnitOfWork) Commit() error {
	if u.tx == nil {
		return ErrNoActiveTransaction
	}
	tx := u.tx
	u.tx = nil
	return tx.Commit().Error
}

func (u *gormUnitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}
	tx := u.tx
	u.tx = nil
	return tx.Rollback().Error
}

func (u *gormUnitOfWork) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.conn())
}
