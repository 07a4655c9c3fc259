package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/pautinka/internal/models"
	"github.com/iudanet/pautinka/internal/server/storage"
)

const userColumns = `u.id, u.name, u.surname, u.last_name, u.phone, u.email, u.university,
	u.birthdate, u.course, u.short_status, u.full_status, u.about_me, u.links,
	u.hashed_password, u.created_at, u.updated_at`

func scanUser(row scanner) (*models.User, error) {
	user := &models.User{}
	var phone, email sql.NullString

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Surname,
		&user.LastName,
		&phone,
		&email,
		&user.University,
		&user.Birthdate,
		&user.Course,
		&user.ShortStatus,
		&user.FullStatus,
		&user.AboutMe,
		&user.Links,
		&user.HashedPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Phone = phone.String
	user.Email = email.String

	return user, nil
}

func scanUsers(rows *sql.Rows) ([]models.User, error) {
	users := make([]models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return users, nil
}

// mapUniqueError переводит нарушение уникального индекса в ошибку хранилища
func mapUniqueError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed: users.email"):
		return storage.ErrEmailTaken
	case strings.Contains(msg, "UNIQUE constraint failed: users.phone"):
		return storage.ErrPhoneTaken
	default:
		return nil
	}
}

// CreateUser creates a new user in the storage
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (name, surname, last_name, phone, email, university, birthdate,
			course, short_status, full_status, about_me, links, hashed_password, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now().UTC()

	result, err := s.db.ExecContext(ctx, query,
		user.Name,
		user.Surname,
		user.LastName,
		nullString(user.Phone),
		nullString(user.Email),
		user.University,
		nullDate(user.Birthdate),
		user.Course,
		user.ShortStatus,
		user.FullStatus,
		user.AboutMe,
		user.Links,
		user.HashedPassword,
		now,
		now,
	)
	if err != nil {
		if mapped := mapUniqueError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get user id: %w", err)
	}

	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now

	return nil
}

// GetUserByID retrieves user by ID
func (s *Storage) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.getUser(ctx, "u.id = ?", id)
}

// GetUserByEmail retrieves user by email
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, "u.email = ?", email)
}

// GetUserByPhone retrieves user by phone
func (s *Storage) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	return s.getUser(ctx, "u.phone = ?", phone)
}

// GetUserByName retrieves the first user with given name and surname
func (s *Storage) GetUserByName(ctx context.Context, name, surname string) (*models.User, error) {
	return s.getUser(ctx, "u.name = ? AND u.surname = ?", name, surname)
}

func (s *Storage) getUser(ctx context.Context, where string, args ...any) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE ` + where + ` ORDER BY u.id LIMIT 1`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// PatchUser reads the current row and writes the merged profile back
// inside one transaction, so concurrent patches of different fields don't
// overwrite each other.
func (s *Storage) PatchUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	var updated models.User

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		current, err := scanUser(tx.QueryRowContext(ctx,
			`SELECT `+userColumns+` FROM users u WHERE u.id = ?`, id))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return storage.ErrUserNotFound
			}
			return fmt.Errorf("failed to get user: %w", err)
		}

		updated = models.ApplyPatch(*current, patch)
		updated.UpdatedAt = time.Now().UTC()

		_, err = tx.ExecContext(ctx, `
			UPDATE users
			SET name = ?, surname = ?, last_name = ?, phone = ?, email = ?, university = ?,
				birthdate = ?, course = ?, short_status = ?, full_status = ?, about_me = ?,
				links = ?, updated_at = ?
			WHERE id = ?
		`,
			updated.Name,
			updated.Surname,
			updated.LastName,
			nullString(updated.Phone),
			nullString(updated.Email),
			updated.University,
			nullDate(updated.Birthdate),
			updated.Course,
			updated.ShortStatus,
			updated.FullStatus,
			updated.AboutMe,
			updated.Links,
			updated.UpdatedAt,
			id,
		)
		if err != nil {
			if mapped := mapUniqueError(err); mapped != nil {
				return mapped
			}
			return fmt.Errorf("failed to update user: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// DeleteUser deletes user by ID.
// Теги, подписки, отзывы и вакансии удаляются каскадно.
func (s *Storage) DeleteUser(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrUserNotFound
	}

	return nil
}
