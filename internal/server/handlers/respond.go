package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/iudanet/pautinka/internal/server/auth"
	"github.com/iudanet/pautinka/internal/server/service"
	"github.com/iudanet/pautinka/internal/validation"
	"github.com/iudanet/pautinka/pkg/api"
)

// maxBodyBytes ограничение на размер тела запроса
const maxBodyBytes = 1 << 20

// successMessage тело ответа операций без полезных данных
const successMessage = "success"

// sendJSON отправляет JSON ответ
func sendJSON(ctx context.Context, logger *slog.Logger, w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.ErrorContext(ctx, "failed to encode JSON response", slog.Any("error", err))
	}
}

// WriteError отправляет JSON ответ с ошибкой.
// Для 401 добавляется WWW-Authenticate: Bearer.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	writeErrorResponse(w, statusCode, api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}

func writeErrorResponse(w http.ResponseWriter, statusCode int, resp api.ErrorResponse) {
	if statusCode == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

func writeValidationError(w http.ResponseWriter, verr *validation.ValidationError) {
	writeErrorResponse(w, http.StatusBadRequest, api.ErrorResponse{
		Error:   http.StatusText(http.StatusBadRequest),
		Message: "validation failed",
		Fields:  verr.Fields,
	})
}

// writeServiceError сопоставляет ошибку сервиса со статусом ответа.
// Неизвестные ошибки пишутся в лог, клиент получает 500 без подробностей.
func writeServiceError(ctx context.Context, logger *slog.Logger, w http.ResponseWriter, err error) {
	var verr *validation.ValidationError
	if errors.As(err, &verr) {
		writeValidationError(w, verr)
		return
	}

	var status int
	switch {
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, service.ErrUnauthorized), errors.Is(err, auth.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	default:
		logger.ErrorContext(ctx, "request failed", slog.Any("error", err))
		WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	message := err.Error()
	var serr *service.Error
	if errors.As(err, &serr) {
		message = serr.Msg
	}

	logger.DebugContext(ctx, "request rejected",
		slog.Int("status", status),
		slog.String("reason", message),
	)

	WriteError(w, status, message)
}

// decodeJSON читает тело запроса в dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// pathID разбирает числовой параметр пути
func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// fieldError ошибка валидации одного поля
func fieldError(field, message string) *validation.ValidationError {
	return &validation.ValidationError{Fields: map[string]string{field: message}}
}
