// Package cache хранит результаты поиска по тегам.
package cache

import (
	"context"
	"strings"

	"github.com/iudanet/pautinka/internal/models"
)

// SearchCache кеш результатов поиска пользователей по тегам
type SearchCache interface {
	// GetUsers возвращает закешированный результат. found=false при промахе.
	GetUsers(ctx context.Context, tags []string) (users []models.User, found bool, err error)
	// SetUsers сохраняет результат поиска
	SetUsers(ctx context.Context, tags []string, users []models.User) error
	// Invalidate сбрасывает все результаты поиска
	Invalidate(ctx context.Context) error
}

// SearchKey строит ключ кеша по нормализованному набору тегов.
// Порядок тегов должен быть зафиксирован вызывающей стороной.
func SearchKey(tags []string) string {
	return searchPrefix + strings.Join(tags, ",")
}

const searchPrefix = "pautinka:search:"

// Nop кеш, который ничего не хранит
type Nop struct{}

var _ SearchCache = Nop{}

// GetUsers always misses
func (Nop) GetUsers(context.Context, []string) ([]models.User, bool, error) {
	return nil, false, nil
}

// SetUsers discards users
func (Nop) SetUsers(context.Context, []string, []models.User) error {
	return nil
}

// Invalidate does nothing
func (Nop) Invalidate(context.Context) error {
	return nil
}
