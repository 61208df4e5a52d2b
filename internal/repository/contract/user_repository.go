package contract

import (
	"context"

	"career-assistant-be/internal/entity"
	"career-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

// UserRepository persists the nickname and preferences of returning visitors.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	UpdateNickname(ctx context.Context, id uuid.UUID, nickname string) error
	UpdatePreferences(ctx context.Context, id uuid.UUID, prefs entity.Preferences) error
	TouchLastSeen(ctx context.Context, id uuid.UUID) error
}
