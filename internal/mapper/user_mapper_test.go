package mapper

import (
	"testing"

	"career-assistant-be/internal/entity"
	"career-assistant-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestUserMapper_Preferences(t *testing.T) {
	m := NewUserMapper()

	tests := []struct {
		name string
		raw  datatypes.JSONMap
		want entity.Preferences
	}{
		{"empty", nil, entity.Preferences{}},
		{"dark", datatypes.JSONMap{"dark_mode": true}, entity.Preferences{DarkMode: true}},
		{"wrong type ignored", datatypes.JSONMap{"dark_mode": "yes"}, entity.Preferences{}},
		{"unknown keys ignored", datatypes.JSONMap{"font": "large", "dark_mode": false}, entity.Preferences{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.PreferencesToEntity(tt.raw))
		})
	}
}

func TestUserMapper_ToModelCarriesNickname(t *testing.T) {
	m := NewUserMapper()
	id := uuid.New()

	got := m.ToModel(&entity.User{Id: id, Nickname: "Ada", Preferences: entity.Preferences{DarkMode: true}})

	assert.Equal(t, id, got.Id)
	assert.Equal(t, "Ada", got.Nickname)
	assert.Equal(t, true, got.Preferences["dark_mode"])
	assert.Nil(t, m.ToEntity((*model.User)(nil)))
}
