package implementation

import (
	"context"
	"errors"
	"time"

	"career-assistant-be/internal/entity"
	"career-assistant-be/internal/mapper"
	"career-assistant-be/internal/model"
	"career-assistant-be/internal/repository/contract"
	"career-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

// NewUserRepository binds the repository to db, which may be a transaction.
func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &userRepository{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *userRepository) users(ctx context.Context, specs ...specification.Specification) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.User{})
	for _, spec := range specs {
		q = spec.Apply(q)
	}
	return q
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	row := r.mapper.ToModel(user)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	// Pick up CreatedAt and friends set by the database.
	*user = *r.mapper.ToEntity(row)
	return nil
}

// FindOne returns nil, nil when nothing matches: an unknown visitor is not an error.
func (r *userRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	var row model.User
	err := r.users(ctx, specs...).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntity(&row), nil
}

func (r *userRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var n int64
	err := r.users(ctx, specs...).Count(&n).Error
	return n, err
}

func (r *userRepository) UpdateNickname(ctx context.Context, id uuid.UUID, nickname string) error {
	return r.users(ctx, specification.ByID{ID: id}).Update("nickname", nickname).Error
}

func (r *userRepository) UpdatePreferences(ctx context.Context, id uuid.UUID, prefs entity.Preferences) error {
	return r.users(ctx, specification.ByID{ID: id}).Update("preferences", r.mapper.PreferencesToModel(prefs)).Error
}

// TouchLastSeen skips hooks so updated_at keeps tracking real profile edits.
func (r *userRepository) TouchLastSeen(ctx context.Context, id uuid.UUID) error {
	return r.users(ctx, specification.ByID{ID: id}).UpdateColumn("last_seen_at", time.Now()).Error
}
