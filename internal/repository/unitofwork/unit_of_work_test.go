package unitofwork

import (
	"context"
	"errors"
	"testing"

	"career-assistant-be/internal/repository/contract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingUoW struct {
	beginErr error
	calls    []string
}

func (u *recordingUoW) Begin(ctx context.Context) error {
	u.calls = append(u.calls, "begin")
	return u.beginErr
}

func (u *recordingUoW) Commit() error {
	u.calls = append(u.calls, "commit")
	return nil
}

func (u *recordingUoW) Rollback() error {
	u.calls = append(u.calls, "rollback")
	return nil
}

func (u *recordingUoW) UserRepository() contract.UserRepository { return nil }

type singleFactory struct{ uow *recordingUoW }

func (f singleFactory) NewUnitOfWork(ctx context.Context) UnitOfWork { return f.uow }

func TestWithinTransaction(t *testing.T) {
	t.Run("commits on success", func(t *testing.T) {
		uow := &recordingUoW{}
		err := WithinTransaction(context.Background(), singleFactory{uow}, func(UnitOfWork) error { return nil })

		require.NoError(t, err)
		assert.Equal(t, []string{"begin", "commit", "rollback"}, uow.calls)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		uow := &recordingUoW{}
		boom := errors.New("duplicate nickname")
		err := WithinTransaction(context.Background(), singleFactory{uow}, func(UnitOfWork) error { return boom })

		assert.ErrorIs(t, err, boom)
		assert.Equal(t, []string{"begin", "rollback"}, uow.calls)
	})

	t.Run("begin failure skips fn", func(t *testing.T) {
		uow := &recordingUoW{beginErr: errors.New("conn refused")}
		called := false
		err := WithinTransaction(context.Background(), singleFactory{uow}, func(UnitOfWork) error {
			called = true
			return nil
		})

		assert.Error(t, err)
		assert.False(t, called)
	})

	t.Run("rolls back on panic", func(t *testing.T) {
		uow := &recordingUoW{}
		assert.Panics(t, func() {
			_ = WithinTransaction(context.Background(), singleFactory{uow}, func(UnitOfWork) error { panic("bad row") })
		})
		assert.Equal(t, []string{"begin", "rollback"}, uow.calls)
	})
}
