package sqlite

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/pautinka/internal/models"
)

func setupTestStorage(t *testing.T) (*Storage, func()) {
	t.Helper()

	s, err := New(context.Background(), ":memory:")
	require.NoError(t, err)

	return s, func() {
		_ = s.Close()
	}
}

// createTestUser создает пользователя с уникальным email
func createTestUser(t *testing.T, ctx context.Context, s *Storage, name string) *models.User {
	t.Helper()

	user := &models.User{
		Name:           name,
		Surname:        "Testov",
		Email:          fmt.Sprintf("%s@example.com", name),
		HashedPassword: "$2a$10$hash",
	}
	require.NoError(t, s.CreateUser(ctx, user))

	return user
}

func TestNew_RunsMigrations(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	for _, table := range []string{"users", "tags", "tags_users", "subscriptions", "work_reviews", "vacancies"} {
		var name string
		err := s.DB().QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, "table %s", table)
		assert.Equal(t, table, name)
	}

	assert.NoError(t, s.Ping(context.Background()))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", placeholders(0))
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?, ?, ?", placeholders(3))
}
