package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/pautinka/internal/models"
	"github.com/iudanet/pautinka/internal/server/storage"
)

// CreateReview сохраняет отзыв о месте работы
func (s *Storage) CreateReview(ctx context.Context, review *models.WorkReview) error {
	query := `
		INSERT INTO work_reviews (user_id, post, date_start, date_end, company_name, subcompany_name)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := s.pool.QueryRow(ctx, query,
		review.UserID,
		review.Post,
		review.DateStart.Time,
		nullDate(review.DateEnd),
		review.CompanyName,
		review.SubcompanyName,
	).Scan(&review.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return storage.ErrUserNotFound
		}
		return fmt.Errorf("failed to insert work review: %w", err)
	}

	return nil
}

// GetUserReviews возвращает отзывы пользователя
func (s *Storage) GetUserReviews(ctx context.Context, userID int64) ([]models.WorkReview, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, post, date_start, date_end, company_name, subcompany_name
		FROM work_reviews
		WHERE user_id = $1
		ORDER BY date_start, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query work reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]models.WorkReview, 0)
	for rows.Next() {
		var (
			r     models.WorkReview
			start time.Time
			end   *time.Time
		)
		if err := rows.Scan(&r.ID, &r.UserID, &r.Post, &start, &end, &r.CompanyName, &r.SubcompanyName); err != nil {
			return nil, fmt.Errorf("failed to scan work review: %w", err)
		}
		r.DateStart = models.NewDate(start)
		r.DateEnd = dateFromPtr(end)
		reviews = append(reviews, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return reviews, nil
}
