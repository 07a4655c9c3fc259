// Package auth сопоставляет bearer токен с пользователем.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iudanet/pautinka/internal/models"
	"github.com/iudanet/pautinka/internal/server/storage"
)

// ErrUnauthorized любая ошибка аутентификации. Причина обернута внутри.
var ErrUnauthorized = errors.New("could not validate credentials")

// TokenVerifier проверяет токен и возвращает id пользователя
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

// UserDirectory ищет пользователя по id
type UserDirectory interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// Gate разрешает токен в текущего пользователя
type Gate struct {
	tokens TokenVerifier
	users  UserDirectory
}

// NewGate создает Gate
func NewGate(tokens TokenVerifier, users UserDirectory) *Gate {
	return &Gate{tokens: tokens, users: users}
}

// Resolve проверяет токен и загружает его владельца.
// Все ошибки удовлетворяют errors.Is(err, ErrUnauthorized), кроме сбоев хранилища.
func (g *Gate) Resolve(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrUnauthorized)
	}

	userID, err := g.tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	user, err := g.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: no such user", ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}

	return user, nil
}

// ParseBearer извлекает токен из заголовка "Authorization: Bearer <token>".
// Схема сравнивается без учета регистра.
func ParseBearer(header string) (string, error) {
	if header == "" {
		return "", fmt.Errorf("%w: missing authorization header", ErrUnauthorized)
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", fmt.Errorf("%w: invalid authorization header format", ErrUnauthorized)
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("%w: empty token", ErrUnauthorized)
	}

	return token, nil
}
