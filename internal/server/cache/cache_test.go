package cache

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/pautinka/internal/models"
)

func TestSearchKey(t *testing.T) {
	assert.Equal(t, "pautinka:search:go,sql", SearchKey([]string{"go", "sql"}))
	assert.NotEqual(t, SearchKey([]string{"go"}), SearchKey([]string{"go", "sql"}))
}

func TestNop(t *testing.T) {
	ctx := context.Background()
	var c SearchCache = Nop{}

	require.NoError(t, c.SetUsers(ctx, []string{"go"}, []models.User{{ID: 1}}))

	users, found, err := c.GetUsers(ctx, []string{"go"})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, users)
	assert.NoError(t, c.Invalidate(ctx))
}

// Интеграционный тест, запускается при PAUTINKA_TEST_REDIS_ADDR
func TestRedis(t *testing.T) {
	addr := os.Getenv("PAUTINKA_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("PAUTINKA_TEST_REDIS_ADDR is not set")
	}

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	c, err := NewRedis(ctx, RedisConfig{Addr: addr, TTL: time.Minute}, logger)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Invalidate(ctx))

	tags := []string{"go", "sql"}
	_, found, err := c.GetUsers(ctx, tags)
	require.NoError(t, err)
	assert.False(t, found)

	want := []models.User{{ID: 1, Name: "Anna", Surname: "Ivanova", HashedPassword: "secret"}}
	require.NoError(t, c.SetUsers(ctx, tags, want))

	// Каждая запись ограничена TTL, поэтому устаревший результат не живет дольше него
	ttl, err := c.client.TTL(ctx, SearchKey(tags)).Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)
	assert.LessOrEqual(t, ttl, time.Minute)

	got, found, err := c.GetUsers(ctx, tags)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, got, 1)
	assert.Equal(t, "Anna", got[0].Name)
	// Хеш пароля в кеш не попадает
	assert.Empty(t, got[0].HashedPassword)

	require.NoError(t, c.Invalidate(ctx))
	_, found, err = c.GetUsers(ctx, tags)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNewRedis_Unavailable(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	_, err := NewRedis(context.Background(), RedisConfig{Addr: "127.0.0.1:1"}, logger)
	assert.Error(t, err)
}
