package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/pautinka/internal/models"
	"github.com/iudanet/pautinka/internal/server/auth"
	"github.com/iudanet/pautinka/internal/server/handlers"
)

// UserResolver разрешает bearer токен в пользователя
type UserResolver interface {
	Resolve(ctx context.Context, token string) (*models.User, error)
}

// AuthMiddleware создает middleware для проверки bearer токена.
// Пользователь сохраняется в контексте, см. handlers.UserFromContext.
func AuthMiddleware(logger *slog.Logger, resolver UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, err := auth.ParseBearer(r.Header.Get("Authorization"))
			if err != nil {
				logger.WarnContext(ctx, "Invalid Authorization header", slog.Any("error", err))
				handlers.WriteError(w, http.StatusUnauthorized, auth.ErrUnauthorized.Error())
				return
			}

			user, err := resolver.Resolve(ctx, token)
			if err != nil {
				if errors.Is(err, auth.ErrUnauthorized) {
					logger.WarnContext(ctx, "Invalid access token", slog.Any("error", err))
					handlers.WriteError(w, http.StatusUnauthorized, auth.ErrUnauthorized.Error())
					return
				}
				logger.ErrorContext(ctx, "Failed to resolve token owner", slog.Any("error", err))
				handlers.WriteError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			logger.DebugContext(ctx, "User authenticated", slog.Int64("user_id", user.ID))

			next.ServeHTTP(w, r.WithContext(handlers.WithUser(ctx, user)))
		})
	}
}
