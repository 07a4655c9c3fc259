package storage

import (
	"context"

	"github.com/iudanet/pautinka/internal/models"
)

// UserStorage defines interface for user data persistence
type UserStorage interface {
	// CreateUser creates a new user and sets user.ID, CreatedAt and UpdatedAt.
	// Returns ErrEmailTaken or ErrPhoneTaken on uniqueness violation.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves user by ID
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, id int64) (*models.User, error)

	// GetUserByEmail retrieves user by email
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByPhone retrieves user by phone
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByPhone(ctx context.Context, phone string) (*models.User, error)

	// GetUserByName retrieves the first user with exact name and surname
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByName(ctx context.Context, name, surname string) (*models.User, error)

	// PatchUser applies patch to the stored row of user id in one transaction
	// and returns the updated user. Nil patch slots keep the stored value.
	// Returns ErrUserNotFound, ErrEmailTaken or ErrPhoneTaken.
	PatchUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error)

	// DeleteUser deletes user by ID together with all dependent rows
	// Returns ErrUserNotFound if user doesn't exist
	DeleteUser(ctx context.Context, id int64) error
}
