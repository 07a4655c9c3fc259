package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/iudanet/pautinka/internal/models"
	"github.com/iudanet/pautinka/internal/server/cache"
	"github.com/iudanet/pautinka/internal/server/storage"
)

// SearchService поиск пользователей по тегам
type SearchService struct {
	tags   storage.TagStorage
	cache  cache.SearchCache
	logger *slog.Logger
}

// NewSearchService создает SearchService. searchCache может быть nil.
func NewSearchService(tags storage.TagStorage, searchCache cache.SearchCache, logger *slog.Logger) *SearchService {
	if searchCache == nil {
		searchCache = cache.Nop{}
	}
	return &SearchService{tags: tags, cache: searchCache, logger: logger}
}

// SearchByTags возвращает пользователей, у которых есть хотя бы один из тегов.
// Каждый пользователь встречается один раз, порядок по id.
func (s *SearchService) SearchByTags(ctx context.Context, tags []string) ([]models.User, error) {
	names := NormalizeTags(tags)
	if len(names) == 0 {
		return []models.User{}, nil
	}

	users, found, err := s.cache.GetUsers(ctx, names)
	if err != nil {
		s.logger.WarnContext(ctx, "Search cache read failed", slog.String("error", err.Error()))
	}
	if found {
		return users, nil
	}

	users, err = s.tags.SearchUsersByTags(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	// Invalidate между чтением из БД и этой записью не защищает от устаревшего
	// результата: он проживет в кеше не дольше TTL ключа.
	if err := s.cache.SetUsers(ctx, names, users); err != nil {
		s.logger.WarnContext(ctx, "Search cache write failed", slog.String("error", err.Error()))
	}

	return users, nil
}
