package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/iudanet/pautinka/internal/models"
	"github.com/iudanet/pautinka/internal/server/storage"
)

// VacancyInput данные новой вакансии
type VacancyInput struct {
	Title          string
	Description    string
	Conditions     string
	RelatedProject string
	Price          float64
}

// VacancyService вакансии пользователей
type VacancyService struct {
	users     storage.UserStorage
	vacancies storage.VacancyStorage
	logger    *slog.Logger
}

// NewVacancyService создает VacancyService
func NewVacancyService(users storage.UserStorage, vacancies storage.VacancyStorage, logger *slog.Logger) *VacancyService {
	return &VacancyService{users: users, vacancies: vacancies, logger: logger}
}

// Create публикует вакансию от имени holderID
func (s *VacancyService) Create(ctx context.Context, holderID int64, in VacancyInput) (*models.Vacancy, error) {
	v := &models.Vacancy{
		Title:           strings.TrimSpace(in.Title),
		Description:     in.Description,
		Conditions:      in.Conditions,
		RelatedProject:  strings.TrimSpace(in.RelatedProject),
		Price:           in.Price,
		VacancyHolderID: holderID,
	}

	if v.Title == "" {
		return nil, validationError("title is required")
	}
	if v.Price < 0 {
		return nil, validationError("price must not be negative")
	}

	if err := s.vacancies.CreateVacancy(ctx, v); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create vacancy: %w", err)
	}

	s.logger.InfoContext(ctx, "Vacancy created",
		slog.Int64("vacancy_id", v.ID),
		slog.Int64("holder_id", holderID),
	)

	return v, nil
}

// Get возвращает вакансию по id
func (s *VacancyService) Get(ctx context.Context, id int64) (*models.Vacancy, error) {
	v, err := s.vacancies.GetVacancy(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrVacancyNotFound) {
			return nil, ErrVacancyNotFound
		}
		return nil, fmt.Errorf("failed to get vacancy: %w", err)
	}
	return v, nil
}

// ListByHolder возвращает вакансии пользователя
func (s *VacancyService) ListByHolder(ctx context.Context, holderID int64) ([]models.Vacancy, error) {
	if _, err := s.users.GetUserByID(ctx, holderID); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	list, err := s.vacancies.GetHolderVacancies(ctx, holderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vacancies: %w", err)
	}
	return list, nil
}

// Delete удаляет вакансию, если holderID ее автор
func (s *VacancyService) Delete(ctx context.Context, holderID, id int64) error {
	v, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if v.VacancyHolderID != holderID {
		return ErrNotVacancyHolder
	}

	if err := s.vacancies.DeleteVacancy(ctx, id); err != nil {
		if errors.Is(err, storage.ErrVacancyNotFound) {
			return ErrVacancyNotFound
		}
		return fmt.Errorf("failed to delete vacancy: %w", err)
	}

	s.logger.InfoContext(ctx, "Vacancy deleted", slog.Int64("vacancy_id", id))

	return nil
}
