package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/iudanet/pautinka/internal/models"
	"github.com/iudanet/pautinka/internal/server/storage"
)

const userColumns = `u.id, u.name, u.surname, u.last_name, u.phone, u.email, u.university,
	u.birthdate, u.course, u.short_status, u.full_status, u.about_me, u.links,
	u.hashed_password, u.created_at, u.updated_at`

func scanUser(row scanner) (*models.User, error) {
	user := &models.User{}
	var phone, email *string
	var birthdate *time.Time

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Surname,
		&user.LastName,
		&phone,
		&email,
		&user.University,
		&birthdate,
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

	if phone != nil {
		user.Phone = *phone
	}
	if email != nil {
		user.Email = *email
	}
	user.Birthdate = dateFromPtr(birthdate)

	return user, nil
}

func scanUsers(rows pgx.Rows) ([]models.User, error) {
	defer rows.Close()

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

// CreateUser creates a new user in the storage
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (name, surname, last_name, phone, email, university, birthdate,
			course, short_status, full_status, about_me, links, hashed_password)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`

	err := s.pool.QueryRow(ctx, query,
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
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if mapped := mapUniqueError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUserByID retrieves user by ID
func (s *Storage) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.getUser(ctx, "u.id = $1", id)
}

// GetUserByEmail retrieves user by email
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, "u.email = $1", email)
}

// GetUserByPhone retrieves user by phone
func (s *Storage) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	return s.getUser(ctx, "u.phone = $1", phone)
}

// GetUserByName retrieves the first user with given name and surname
func (s *Storage) GetUserByName(ctx context.Context, name, surname string) (*models.User, error) {
	return s.getUser(ctx, "u.name = $1 AND u.surname = $2", name, surname)
}

func (s *Storage) getUser(ctx context.Context, where string, args ...any) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE ` + where + ` ORDER BY u.id LIMIT 1`

	user, err := scanUser(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// PatchUser блокирует строку пользователя, накладывает patch и записывает результат
func (s *Storage) PatchUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	var updated models.User

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		current, err := scanUser(tx.QueryRow(ctx,
			`SELECT `+userColumns+` FROM users u WHERE u.id = $1 FOR UPDATE`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return storage.ErrUserNotFound
			}
			return fmt.Errorf("failed to get user: %w", err)
		}

		updated = models.ApplyPatch(*current, patch)

		err = tx.QueryRow(ctx, `
			UPDATE users
			SET name = $1, surname = $2, last_name = $3, phone = $4, email = $5, university = $6,
				birthdate = $7, course = $8, short_status = $9, full_status = $10, about_me = $11,
				links = $12, updated_at = now()
			WHERE id = $13
			RETURNING updated_at
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
			id,
		).Scan(&updated.UpdatedAt)
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

// DeleteUser deletes user by ID with all dependent rows (ON DELETE CASCADE)
func (s *Storage) DeleteUser(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return storage.ErrUserNotFound
	}

	return nil
}
