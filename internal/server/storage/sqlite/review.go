package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/iudanet/pautinka/internal/models"
	"github.com/iudanet/pautinka/internal/server/storage"
)

// CreateReview сохраняет отзыв о месте работы
func (s *Storage) CreateReview(ctx context.Context, review *models.WorkReview) error {
	query := `
		INSERT INTO work_reviews (user_id, post, date_start, date_end, company_name, subcompany_name)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		review.UserID,
		review.Post,
		review.DateStart.String(),
		nullDate(review.DateEnd),
		review.CompanyName,
		review.SubcompanyName,
	)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return storage.ErrUserNotFound
		}
		return fmt.Errorf("failed to insert work review: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get work review id: %w", err)
	}
	review.ID = id

	return nil
}

// GetUserReviews возвращает отзывы пользователя
func (s *Storage) GetUserReviews(ctx context.Context, userID int64) ([]models.WorkReview, error) {
	query := `
		SELECT id, user_id, post, date_start, date_end, company_name, subcompany_name
		FROM work_reviews
		WHERE user_id = ?
		ORDER BY date_start, id
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query work reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]models.WorkReview, 0)
	for rows.Next() {
		var r models.WorkReview
		if err := rows.Scan(
			&r.ID,
			&r.UserID,
			&r.Post,
			&r.DateStart,
			&r.DateEnd,
			&r.CompanyName,
			&r.SubcompanyName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan work review: %w", err)
		}
		reviews = append(reviews, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return reviews, nil
}
