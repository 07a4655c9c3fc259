package handlers

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/pautinka/internal/models"
	"github.com/iudanet/pautinka/internal/server/service"
	"github.com/iudanet/pautinka/internal/validation"
	"github.com/iudanet/pautinka/pkg/api"
)

// UserHandler профиль текущего пользователя и публичные профили
type UserHandler struct {
	logger    *slog.Logger
	profiles  *service.ProfileService
	validator *validation.Validator
}

// NewUserHandler создает UserHandler
func NewUserHandler(logger *slog.Logger, profiles *service.ProfileService, validator *validation.Validator) *UserHandler {
	return &UserHandler{
		logger:    logger,
		profiles:  profiles,
		validator: validator,
	}
}

// Me обрабатывает GET /user/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	sendJSON(r.Context(), h.logger, w, toAPIUser(user), http.StatusOK)
}

// EditMe обрабатывает PATCH /user/me
// Переданные поля перезаписываются, отсутствующие остаются как есть
func (h *UserHandler) EditMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req api.ProfilePatch
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode profile patch", slog.Any("error", err))
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch, err := h.toUserPatch(req)
	if err != nil {
		writeServiceError(ctx, h.logger, w, err)
		return
	}

	if _, err := h.profiles.EditSelf(ctx, user, patch); err != nil {
		writeServiceError(ctx, h.logger, w, err)
		return
	}

	sendJSON(ctx, h.logger, w, successMessage, http.StatusOK)
}

// toUserPatch проверяет формат и длину переданных полей.
// Пустые email и телефон допустимы: они очищают значение.
func (h *UserHandler) toUserPatch(req api.ProfilePatch) (models.UserPatch, error) {
	if err := h.validator.Validate(req); err != nil {
		return models.UserPatch{}, err
	}
	if req.Email != nil && *req.Email != "" {
		if err := h.validator.Var("email", *req.Email, "email"); err != nil {
			return models.UserPatch{}, err
		}
	}

	patch := models.UserPatch{
		Name:        req.Name,
		Surname:     req.Surname,
		LastName:    req.LastName,
		Phone:       req.Phone,
		Email:       req.Email,
		University:  req.University,
		Course:      req.Course,
		ShortStatus: req.ShortStatus,
		FullStatus:  req.FullStatus,
		AboutMe:     req.AboutMe,
		Links:       req.Links,
	}

	if req.Birthdate != nil {
		d, err := models.ParseDate(*req.Birthdate)
		if err != nil {
			return models.UserPatch{}, fieldError("birthdate", invalidDateMessage)
		}
		patch.Birthdate = &d
	}

	return patch, nil
}

// DeleteMe обрабатывает DELETE /user/me
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.profiles.DeleteSelf(ctx, user.ID); err != nil {
		writeServiceError(ctx, h.logger, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MyTags обрабатывает GET /user/me/tags
func (h *UserHandler) MyTags(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	h.writeTags(w, r, user.ID)
}

// SetMyTags обрабатывает PUT /user/me/tags
// Набор тегов заменяется целиком
func (h *UserHandler) SetMyTags(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req api.TagsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tags, err := h.profiles.SetTags(ctx, user.ID, req.Tags)
	if err != nil {
		writeServiceError(ctx, h.logger, w, err)
		return
	}

	sendJSON(ctx, h.logger, w, tags, http.StatusOK)
}

// GetUser обрабатывает GET /user/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.profiles.GetByID(ctx, id)
	if err != nil {
		writeServiceError(ctx, h.logger, w, err)
		return
	}

	sendJSON(ctx, h.logger, w, toAPIUser(user), http.StatusOK)
}

// UserTags обрабатывает GET /users/{id}/tags
func (h *UserHandler) UserTags(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeTags(w, r, id)
}

func (h *UserHandler) writeTags(w http.ResponseWriter, r *http.Request, userID int64) {
	ctx := r.Context()

	tags, err := h.profiles.Tags(ctx, userID)
	if err != nil {
		writeServiceError(ctx, h.logger, w, err)
		return
	}

	sendJSON(ctx, h.logger, w, tags, http.StatusOK)
}
