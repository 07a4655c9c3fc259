package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/pautinka/internal/models"
	"github.com/iudanet/pautinka/internal/server/storage"
)

// SetUserTags заменяет набор тегов пользователя
func (s *Storage) SetUserTags(ctx context.Context, userID int64, names []string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = ?`, userID).Scan(&exists)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return storage.ErrUserNotFound
			}
			return fmt.Errorf("failed to check user: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM tags_users WHERE user_id = ?`, userID); err != nil {
			return fmt.Errorf("failed to clear user tags: %w", err)
		}

		for _, name := range names {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO tags (name) VALUES (?) ON CONFLICT (name) DO NOTHING`, name); err != nil {
				return fmt.Errorf("failed to insert tag %q: %w", name, err)
			}

			if _, err := tx.ExecContext(ctx, `
				INSERT INTO tags_users (user_id, tag_id)
				SELECT ?, id FROM tags WHERE name = ?
				ON CONFLICT DO NOTHING`, userID, name); err != nil {
				return fmt.Errorf("failed to link tag %q: %w", name, err)
			}
		}

		return nil
	})
}

// GetUserTags возвращает имена тегов пользователя
func (s *Storage) GetUserTags(ctx context.Context, userID int64) ([]string, error) {
	query := `
		SELECT t.name
		FROM tags t
		JOIN tags_users tu ON tu.tag_id = t.id
		WHERE tu.user_id = ?
		ORDER BY t.name
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user tags: %w", err)
	}
	defer rows.Close()

	tags := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
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
			WHERE t.name IN (` + placeholders(len(names)) + `)
		)
		ORDER BY u.id
	`

	args := make([]any, len(names))
	for i, name := range names {
		args[i] = name
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search users by tags: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}
