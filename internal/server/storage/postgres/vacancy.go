package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/iudanet/pautinka/internal/models"
	"github.com/iudanet/pautinka/internal/server/storage"
)

const vacancyColumns = `id, title, description, price, conditions, related_project, vacancy_holder_id`

func scanVacancy(row scanner) (*models.Vacancy, error) {
	v := &models.Vacancy{}
	if err := row.Scan(
		&v.ID,
		&v.Title,
		&v.Description,
		&v.Price,
		&v.Conditions,
		&v.RelatedProject,
		&v.VacancyHolderID,
	); err != nil {
		return nil, err
	}
	return v, nil
}

// CreateVacancy сохраняет вакансию
func (s *Storage) CreateVacancy(ctx context.Context, vacancy *models.Vacancy) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO vacancies (title, description, price, conditions, related_project, vacancy_holder_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		vacancy.Title,
		vacancy.Description,
		vacancy.Price,
		vacancy.Conditions,
		vacancy.RelatedProject,
		vacancy.VacancyHolderID,
	).Scan(&vacancy.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return storage.ErrUserNotFound
		}
		return fmt.Errorf("failed to insert vacancy: %w", err)
	}

	return nil
}

// GetVacancy retrieves vacancy by ID
func (s *Storage) GetVacancy(ctx context.Context, id int64) (*models.Vacancy, error) {
	v, err := scanVacancy(s.pool.QueryRow(ctx, `SELECT `+vacancyColumns+` FROM vacancies WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrVacancyNotFound
		}
		return nil, fmt.Errorf("failed to get vacancy: %w", err)
	}

	return v, nil
}

// GetHolderVacancies возвращает вакансии пользователя
func (s *Storage) GetHolderVacancies(ctx context.Context, holderID int64) ([]models.Vacancy, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+vacancyColumns+` FROM vacancies WHERE vacancy_holder_id = $1 ORDER BY id`, holderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query vacancies: %w", err)
	}
	defer rows.Close()

	vacancies := make([]models.Vacancy, 0)
	for rows.Next() {
		v, err := scanVacancy(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vacancy: %w", err)
		}
		vacancies = append(vacancies, *v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return vacancies, nil
}

// DeleteVacancy deletes vacancy by ID
func (s *Storage) DeleteVacancy(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM vacancies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete vacancy: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return storage.ErrVacancyNotFound
	}

	return nil
}
