package handlers

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/pautinka/internal/server/service"
	"github.com/iudanet/pautinka/internal/validation"
	"github.com/iudanet/pautinka/pkg/api"
)

// ReviewHandler записи об опыте работы
type ReviewHandler struct {
	logger    *slog.Logger
	reviews   *service.ReviewService
	validator *validation.Validator
}

// NewReviewHandler создает ReviewHandler
func NewReviewHandler(logger *slog.Logger, reviews *service.ReviewService, validator *validation.Validator) *ReviewHandler {
	return &ReviewHandler{
		logger:    logger,
		reviews:   reviews,
		validator: validator,
	}
}

// Create обрабатывает POST /user/workreview и POST /reviews/workreview.
// Запись всегда принадлежит текущему пользователю.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req api.WorkReviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode work review", slog.Any("error", err))
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.Validate(req); err != nil {
		writeServiceError(ctx, h.logger, w, err)
		return
	}

	dateStart, err := parseOptionalDate(req.DateStart)
	if err != nil {
		writeValidationError(w, fieldError("date_start", invalidDateMessage))
		return
	}
	dateEnd, err := parseOptionalDate(req.DateEnd)
	if err != nil {
		writeValidationError(w, fieldError("date_end", invalidDateMessage))
		return
	}

	_, err = h.reviews.Create(ctx, user.ID, service.ReviewInput{
		DateStart:      dateStart,
		DateEnd:        dateEnd,
		Post:           req.Post,
		CompanyName:    req.CompanyName,
		SubcompanyName: req.SubcompanyName,
	})
	if err != nil {
		writeServiceError(ctx, h.logger, w, err)
		return
	}

	sendJSON(ctx, h.logger, w, successMessage, http.StatusOK)
}

// ListByUser обрабатывает GET /users/{id}/workreviews
func (h *ReviewHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	reviews, err := h.reviews.ListByUser(ctx, id)
	if err != nil {
		writeServiceError(ctx, h.logger, w, err)
		return
	}

	sendJSON(ctx, h.logger, w, toAPIReviews(reviews), http.StatusOK)
}
