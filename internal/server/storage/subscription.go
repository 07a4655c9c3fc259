package storage

import (
	"context"

	"github.com/iudanet/pautinka/internal/models"
)

// SubscriptionStorage defines interface for user subscriptions
type SubscriptionStorage interface {
	// Subscribe creates subscription from -> to. Repeated call is a no-op.
	Subscribe(ctx context.Context, from, to int64) error

	// Unsubscribe removes subscription from -> to. Missing subscription is a no-op.
	Unsubscribe(ctx context.Context, from, to int64) error

	// GetFollowers returns users subscribed to userID ordered by id
	GetFollowers(ctx context.Context, userID int64) ([]models.User, error)

	// GetFollowing returns users userID is subscribed to ordered by id
	GetFollowing(ctx context.Context, userID int64) ([]models.User, error)
}
