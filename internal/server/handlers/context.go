package handlers

import (
	"context"
	"net/http"

	"github.com/iudanet/pautinka/internal/models"
)

// contextKey тип для ключей контекста
type contextKey string

// userKey ключ для хранения текущего пользователя в контексте
const userKey contextKey = "user"

// WithUser сохраняет аутентифицированного пользователя в контексте
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext извлекает пользователя, сохраненного middleware.AuthMiddleware
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok && user != nil
}

// currentUser возвращает пользователя запроса или пишет 401
func currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "could not validate credentials")
		return nil, false
	}
	return user, true
}
