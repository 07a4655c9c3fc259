package storage

import (
	"context"

	"github.com/iudanet/pautinka/internal/models"
)

// ReviewStorage defines interface for work reviews persistence
type ReviewStorage interface {
	// CreateReview inserts review and sets review.ID
	CreateReview(ctx context.Context, review *models.WorkReview) error

	// GetUserReviews returns reviews of the user ordered by date_start, id
	GetUserReviews(ctx context.Context, userID int64) ([]models.WorkReview, error)
}
