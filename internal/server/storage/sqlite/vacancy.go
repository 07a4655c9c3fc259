package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

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
	query := `
		INSERT INTO vacancies (title, description, price, conditions, related_project, vacancy_holder_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		vacancy.Title,
		vacancy.Description,
		vacancy.Price,
		vacancy.Conditions,
		vacancy.RelatedProject,
		vacancy.VacancyHolderID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return storage.ErrUserNotFound
		}
		return fmt.Errorf("failed to insert vacancy: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get vacancy id: %w", err)
	}
	vacancy.ID = id

	return nil
}

// GetVacancy retrieves vacancy by ID
func (s *Storage) GetVacancy(ctx context.Context, id int64) (*models.Vacancy, error) {
	query := `SELECT ` + vacancyColumns + ` FROM vacancies WHERE id = ?`

	v, err := scanVacancy(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrVacancyNotFound
		}
		return nil, fmt.Errorf("failed to get vacancy: %w", err)
	}

	return v, nil
}

// GetHolderVacancies возвращает вакансии пользователя
func (s *Storage) GetHolderVacancies(ctx context.Context, holderID int64) ([]models.Vacancy, error) {
	query := `SELECT ` + vacancyColumns + ` FROM vacancies WHERE vacancy_holder_id = ? ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, holderID)
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
	result, err := s.db.ExecContext(ctx, `DELETE FROM vacancies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete vacancy: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrVacancyNotFound
	}

	return nil
}
