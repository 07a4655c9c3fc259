package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/iudanet/pautinka/internal/models"
	"github.com/iudanet/pautinka/internal/server/storage"
)

// SetUserTags заменяет набор тегов пользователя в одной транзакции
func (s *Storage) SetUserTags(ctx context.Context, userID int64, names []string) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		// Блокируем строку пользователя, чтобы параллельные замены не перемешались
		var id int64
		err := tx.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return storage.ErrUserNotFound
			}
			return fmt.Errorf("failed to lock user: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM tags_users WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("failed to clear user tags: %w", err)
		}

		if len(names) == 0 {
			return nil
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO tags (name) SELECT unnest($1::text[]) ON CONFLICT (name) DO NOTHING`, names); err != nil {
			return fmt.Errorf("failed to insert tags: %w", err)
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO tags_users (user_id, tag_id)
			SELECT $1::bigint, id FROM tags WHERE name = ANY($2)
			ON CONFLICT DO NOTHING`, userID, names); err != nil {
			return fmt.Errorf("failed to link tags: %w", err)
		}

		return nil
	})
}

// GetUserTags возвращает имена тегов пользователя
func (s *Storage) GetUserTags(ctx context.Context, userID int64) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT t.name
		FROM tags t
		JOIN tags_users tu ON tu.tag_id = t.id
		WHERE tu.user_id = $1
		ORDER BY t.name`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user tags: %w", err)
	}

	tags, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect tags: %w", err)
	}
	if tags == nil {
		tags = []string{}
	}

	return tags, nil
}

// SearchUsersByTags ищет пользователей, у которых есть хотя бы один из тегов
func (s *Storage) SearchUsersByTags(ctx context.Context, names []string) ([]models.User, error) {
	if len(names) == 0 {
		return []models.User{}, nil
	}

	query := `
		SELECT ` + userColumns + `
		FROM users u
		WHERE u.id IN (
			SELECT tu.user_id
			FROM tags_users tu
			JOIN tags t ON t.id = tu.tag_id
			WHERE t.name = ANY($1)
		)
		ORDER BY u.id
	`

	rows, err := s.pool.Query(ctx, query, names)
	if err != nil {
		return nil, fmt.Errorf("failed to search users by tags: %w", err)
	}

	return scanUsers(rows)
}
