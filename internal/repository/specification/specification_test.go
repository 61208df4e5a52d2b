package specification

import (
	"testing"
	"time"

	"career-assistant-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=test dbname=test sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func buildSQL(db *gorm.DB, specs ...Specification) string {
	q := db.Model(&model.User{})
	for _, s := range specs {
		q = s.Apply(q)
	}
	var users []model.User
	return q.Find(&users).Statement.SQL.String()
}

func TestSpecifications_SQL(t *testing.T) {
	db := dryRunDB(t)

	tests := []struct {
		name  string
		specs []Specification
		want  []string
	}{
		{"by id", []Specification{ByID{ID: uuid.New()}}, []string{"id = $1"}},
		{"by nickname", []Specification{ByNickname{Nickname: "Ada"}}, []string{"nickname = $1"}},
		{"seen since", []Specification{SeenSince{Since: time.Now()}}, []string{"last_seen_at >= $1"}},
		{"returning visitor", []Specification{ByNickname{Nickname: "Ada"}, SeenSince{Since: time.Now()}}, []string{"nickname = $1", "last_seen_at >= $2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql := buildSQL(db, tt.specs...)
			for _, fragment := range tt.want {
				assert.Contains(t, sql, fragment)
			}
			assert.Contains(t, sql, `"users"."deleted_at" IS NULL`)
		})
	}
}
