package handlers

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/pautinka/internal/server/service"
	"github.com/iudanet/pautinka/internal/validation"
	"github.com/iudanet/pautinka/pkg/api"
)

// VacancyHandler вакансии пользователей
type VacancyHandler struct {
	logger    *slog.Logger
	vacancies *service.VacancyService
	validator *validation.Validator
}

// NewVacancyHandler создает VacancyHandler
func NewVacancyHandler(logger *slog.Logger, vacancies *service.VacancyService, validator *validation.Validator) *VacancyHandler {
	return &VacancyHandler{
		logger:    logger,
		vacancies: vacancies,
		validator: validator,
	}
}

// Create обрабатывает POST /vacancies
func (h *VacancyHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req api.VacancyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.Validate(req); err != nil {
		writeServiceError(ctx, h.logger, w, err)
		return
	}

	v, err := h.vacancies.Create(ctx, user.ID, service.VacancyInput{
		Title:          req.Title,
		Description:    req.Description,
		Conditions:     req.Conditions,
		RelatedProject: req.RelatedProject,
		Price:          req.Price,
	})
	if err != nil {
		writeServiceError(ctx, h.logger, w, err)
		return
	}

	sendJSON(ctx, h.logger, w, toAPIVacancy(v), http.StatusCreated)
}

// Get обрабатывает GET /vacancies/{id}
func (h *VacancyHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	v, err := h.vacancies.Get(ctx, id)
	if err != nil {
		writeServiceError(ctx, h.logger, w, err)
		return
	}

	sendJSON(ctx, h.logger, w, toAPIVacancy(v), http.StatusOK)
}

// ListByHolder обрабатывает GET /users/{id}/vacancies
func (h *VacancyHandler) ListByHolder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	list, err := h.vacancies.ListByHolder(ctx, id)
	if err != nil {
		writeServiceError(ctx, h.logger, w, err)
		return
	}

	sendJSON(ctx, h.logger, w, toAPIVacancies(list), http.StatusOK)
}

// Delete обрабатывает DELETE /vacancies/{id}. Удалить может только автор.
func (h *VacancyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.vacancies.Delete(ctx, user.ID, id); err != nil {
		writeServiceError(ctx, h.logger, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
