package storage

import (
	"context"

	"github.com/iudanet/pautinka/internal/models"
)

// VacancyStorage defines interface for vacancies persistence
type VacancyStorage interface {
	// CreateVacancy inserts vacancy and sets vacancy.ID
	CreateVacancy(ctx context.Context, vacancy *models.Vacancy) error

	// GetVacancy retrieves vacancy by ID
	// Returns ErrVacancyNotFound if vacancy doesn't exist
	GetVacancy(ctx context.Context, id int64) (*models.Vacancy, error)

	// GetHolderVacancies returns vacancies of the holder ordered by id
	GetHolderVacancies(ctx context.Context, holderID int64) ([]models.Vacancy, error)

	// DeleteVacancy deletes vacancy by ID
	// Returns ErrVacancyNotFound if vacancy doesn't exist
	DeleteVacancy(ctx context.Context, id int64) error
}

// Storage объединяет все хранилища сервера
type Storage interface {
	UserStorage
	TagStorage
	ReviewStorage
	SubscriptionStorage
	VacancyStorage
	Close() error
}
