package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/iudanet/pautinka/internal/models"
	"github.com/iudanet/pautinka/internal/server/storage"
)

// ReviewInput данные новой записи об опыте работы
type ReviewInput struct {
	DateStart      *models.Date // nil означает сегодня
	DateEnd        *models.Date
	Post           string
	CompanyName    string
	SubcompanyName string
}

// ReviewService записи об опыте работы
type ReviewService struct {
	users   storage.UserStorage
	reviews storage.ReviewStorage
	logger  *slog.Logger
	now     func() time.Time
}

// NewReviewService создает ReviewService
func NewReviewService(users storage.UserStorage, reviews storage.ReviewStorage, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		users:   users,
		reviews: reviews,
		logger:  logger,
		now:     time.Now,
	}
}

// Create сохраняет запись, владельцем всегда становится ownerID
func (s *ReviewService) Create(ctx context.Context, ownerID int64, in ReviewInput) (*models.WorkReview, error) {
	review := &models.WorkReview{
		UserID:         ownerID,
		Post:           strings.TrimSpace(in.Post),
		CompanyName:    strings.TrimSpace(in.CompanyName),
		SubcompanyName: strings.TrimSpace(in.SubcompanyName),
		DateEnd:        in.DateEnd,
	}

	if review.Post == "" || review.CompanyName == "" {
		return nil, validationError("post and company_name are required")
	}

	if in.DateStart != nil {
		review.DateStart = *in.DateStart
	} else {
		review.DateStart = models.NewDate(s.now())
	}

	if review.DateEnd != nil && review.DateEnd.Before(review.DateStart.Time) {
		return nil, validationError("date_end must not be before date_start")
	}

	if err := s.reviews.CreateReview(ctx, review); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create work review: %w", err)
	}

	s.logger.InfoContext(ctx, "Work review created",
		slog.Int64("user_id", ownerID),
		slog.Int64("review_id", review.ID),
	)

	return review, nil
}

// ListByUser возвращает записи пользователя
func (s *ReviewService) ListByUser(ctx context.Context, userID int64) ([]models.WorkReview, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	reviews, err := s.reviews.GetUserReviews(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list work reviews: %w", err)
	}
	return reviews, nil
}
