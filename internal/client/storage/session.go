// Package storage описывает локальное хранилище CLI клиента
package storage

import (
	"context"
	"time"
)

// SessionStorage хранит сессию текущего пользователя CLI
type SessionStorage interface {
	// SaveSession сохраняет сессию, заменяя предыдущую
	SaveSession(ctx context.Context, session *Session) error

	// GetSession возвращает сохраненную сессию.
	// Returns ErrSessionNotFound if no session exists
	GetSession(ctx context.Context) (*Session, error)

	// DeleteSession удаляет сессию (logout)
	DeleteSession(ctx context.Context) error

	// IsAuthenticated проверяет, что сессия есть и токен не истек
	IsAuthenticated(ctx context.Context) (bool, error)
}

// Session данные входа. Токен хранится как есть: он короткоживущий
// и файл базы создается с правами 0600.
type Session struct {
	ExpiresAt   time.Time `json:"expires_at"`
	Server      string    `json:"server"`
	Login       string    `json:"login"` // email или телефон, использованный при входе
	AccessToken string    `json:"access_token"`
	UserID      int64     `json:"user_id"`
}

// Expired сообщает, истек ли токен к моменту now
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
