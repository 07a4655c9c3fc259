package postgres

import (
	"context"
	"fmt"

	"github.com/iudanet/pautinka/internal/models"
	"github.com/iudanet/pautinka/internal/server/storage"
)

// Subscribe создает подписку from -> to
func (s *Storage) Subscribe(ctx context.Context, from, to int64) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO subscriptions (user_id_from, user_id_to)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, from, to)
	if err != nil {
		if isForeignKeyViolation(err) {
			return storage.ErrUserNotFound
		}
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	return nil
}

// Unsubscribe удаляет подписку from -> to
func (s *Storage) Unsubscribe(ctx context.Context, from, to int64) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM subscriptions WHERE user_id_from = $1 AND user_id_to = $2`, from, to)
	if err != nil {
		return fmt.Errorf("failed to unsubscribe: %w", err)
	}

	return nil
}

// GetFollowers возвращает подписчиков пользователя
func (s *Storage) GetFollowers(ctx context.Context, userID int64) ([]models.User, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users u
		JOIN subscriptions sub ON sub.user_id_from = u.id
		WHERE sub.user_id_to = $1
		ORDER BY u.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query followers: %w", err)
	}

	return scanUsers(rows)
}

// GetFollowing возвращает пользователей, на которых подписан userID
func (s *Storage) GetFollowing(ctx context.Context, userID int64) ([]models.User, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users u
		JOIN subscriptions sub ON sub.user_id_to = u.id
		WHERE sub.user_id_from = $1
		ORDER BY u.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query following: %w", err)
	}

	return scanUsers(rows)
}
