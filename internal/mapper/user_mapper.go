package mapper

import (
	"career-assistant-be/internal/entity"
	"career-assistant-be/internal/model"

	"gorm.io/datatypes"
)

const prefDarkMode = "dark_mode"

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:          u.Id,
		Nickname:    u.Nickname,
		Preferences: m.PreferencesToEntity(u.Preferences),
		LastSeenAt:  u.LastSeenAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:          u.Id,
		Nickname:    u.Nickname,
		Preferences: m.PreferencesToModel(u.Preferences),
		LastSeenAt:  u.LastSeenAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// PreferencesToEntity tolerates missing or mistyped keys; unknown keys are ignored.
func (m *UserMapper) PreferencesToEntity(raw datatypes.JSONMap) entity.Preferences {
	var p entity.Preferences
	if v, ok := raw[prefDarkMode].(bool); ok {
		p.DarkMode = v
	}
	return p
}

func (m *UserMapper) PreferencesToModel(p entity.Preferences) datatypes.JSONMap {
	return datatypes.JSONMap{prefDarkMode: p.DarkMode}
}
