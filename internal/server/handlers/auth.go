package handlers

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/pautinka/internal/models"
	"github.com/iudanet/pautinka/internal/server/service"
	"github.com/iudanet/pautinka/internal/validation"
	"github.com/iudanet/pautinka/pkg/api"
)

// AuthHandler обрабатывает регистрацию и вход
type AuthHandler struct {
	logger    *slog.Logger
	profiles  *service.ProfileService
	validator *validation.Validator
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, profiles *service.ProfileService, validator *validation.Validator) *AuthHandler {
	return &AuthHandler{
		logger:    logger,
		profiles:  profiles,
		validator: validator,
	}
}

// Register обрабатывает POST /user/register
// Регистрация нового пользователя, в ответе сразу выдается токен
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode register request", slog.Any("error", err))
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.Validate(req); err != nil {
		writeServiceError(ctx, h.logger, w, err)
		return
	}

	birthdate, err := parseOptionalDate(req.Birthdate)
	if err != nil {
		writeValidationError(w, fieldError("birthdate", invalidDateMessage))
		return
	}

	token, err := h.profiles.Register(ctx, service.RegisterInput{
		Password: req.Password,
		User: models.User{
			Name:        req.Name,
			Surname:     req.Surname,
			LastName:    req.LastName,
			Email:       req.Email,
			Phone:       req.Phone,
			University:  req.University,
			Birthdate:   birthdate,
			Course:      req.Course,
			ShortStatus: req.ShortStatus,
			FullStatus:  req.FullStatus,
			AboutMe:     req.AboutMe,
			Links:       req.Links,
		},
	})
	if err != nil {
		writeServiceError(ctx, h.logger, w, err)
		return
	}

	sendJSON(ctx, h.logger, w, toTokenResponse(token), http.StatusOK)
}

// Login обрабатывает POST /user/token
// Вход по email или телефону и паролю
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode login request", slog.Any("error", err))
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.profiles.Login(ctx, service.Credentials{
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(ctx, h.logger, w, err)
		return
	}

	sendJSON(ctx, h.logger, w, toTokenResponse(token), http.StatusOK)
}
