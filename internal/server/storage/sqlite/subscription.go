package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/iudanet/pautinka/internal/models"
	"github.com/iudanet/pautinka/internal/server/storage"
)

// Subscribe создает подписку from -> to
func (s *Storage) Subscribe(ctx context.Context, from, to int64) error {
	query := `
		INSERT INTO subscriptions (user_id_from, user_id_to)
		VALUES (?, ?)
		ON CONFLICT DO NOTHING
	`

	if _, err := s.db.ExecContext(ctx, query, from, to); err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return storage.ErrUserNotFound
		}
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	return nil
}

// Unsubscribe удаляет подписку from -> to
func (s *Storage) Unsubscribe(ctx context.Context, from, to int64) error {
	query := `DELETE FROM subscriptions WHERE user_id_from = ? AND user_id_to = ?`

	if _, err := s.db.ExecContext(ctx, query, from, to); err != nil {
		return fmt.Errorf("failed to unsubscribe: %w", err)
	}

	return nil
}

// GetFollowers возвращает подписчиков пользователя
func (s *Storage) GetFollowers(ctx context.Context, userID int64) ([]models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		JOIN subscriptions sub ON sub.user_id_from = u.id
		WHERE sub.user_id_to = ?
		ORDER BY u.id
	`
	return s.queryUsers(ctx, query, userID)
}

// GetFollowing возвращает пользователей, на которых подписан userID
func (s *Storage) GetFollowing(ctx context.Context, userID int64) ([]models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		JOIN subscriptions sub ON sub.user_id_to = u.id
		WHERE sub.user_id_from = ?
		ORDER BY u.id
	`
	return s.queryUsers(ctx, query, userID)
}

func (s *Storage) queryUsers(ctx context.Context, query string, args ...any) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}
