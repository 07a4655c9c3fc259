package storage

import (
	"context"

	"github.com/iudanet/pautinka/internal/models"
)

// TagStorage defines interface for tags and user-tag links
type TagStorage interface {
	// SetUserTags replaces all tags of the user in a single transaction.
	// Missing tags are created. Names must be normalized by the caller.
	SetUserTags(ctx context.Context, userID int64, names []string) error

	// GetUserTags returns tag names of the user ordered by name
	GetUserTags(ctx context.Context, userID int64) ([]string, error)

	// SearchUsersByTags returns users having at least one of the tags,
	// ordered by id, each user once. Empty names yields empty result.
	SearchUsersByTags(ctx context.Context, names []string) ([]models.User, error)
}
