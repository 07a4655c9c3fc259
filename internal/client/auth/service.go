// Package auth управляет сессией CLI клиента: регистрация, вход, выход
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/pautinka/internal/client/storage"
	pkgapi "github.com/iudanet/pautinka/pkg/api"
)

var (
	// ErrNotLoggedIn сохраненной сессии нет
	ErrNotLoggedIn = errors.New("not logged in, run 'pautinka login' first")
	// ErrSessionExpired токен сессии истек
	ErrSessionExpired = errors.New("session expired, run 'pautinka login' again")
)

// API запросы к серверу, нужные для входа
type API interface {
	Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.TokenResponse, error)
	Login(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.TokenResponse, error)
	Me(ctx context.Context, token string) (*pkgapi.User, error)
}

// Service предоставляет функции авторизации
type Service struct {
	apiClient API
	sessions  storage.SessionStorage
	now       func() time.Time
	server    string
}

// NewService создает новый сервис авторизации.
// server сохраняется в сессии, чтобы status показывал, куда выполнен вход.
func NewService(apiClient API, sessions storage.SessionStorage, server string) *Service {
	return &Service{
		apiClient: apiClient,
		sessions:  sessions,
		now:       time.Now,
		server:    server,
	}
}

// Register регистрирует пользователя и сразу сохраняет сессию
func (s *Service) Register(ctx context.Context, req pkgapi.RegisterRequest) (*storage.Session, error) {
	if strings.TrimSpace(req.Email) == "" && strings.TrimSpace(req.Phone) == "" {
		return nil, fmt.Errorf("email or phone is required to be able to log in later")
	}

	resp, err := s.apiClient.Register(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	login := req.Email
	if login == "" {
		login = req.Phone
	}
	return s.startSession(ctx, login, resp)
}

// Login выполняет вход по email или телефону.
// Строка с '@' считается email, иначе телефоном.
func (s *Service) Login(ctx context.Context, login, password string) (*storage.Session, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil, fmt.Errorf("login is required")
	}
	if password == "" {
		return nil, fmt.Errorf("password is required")
	}

	req := pkgapi.LoginRequest{Password: password}
	if strings.Contains(login, "@") {
		req.Email = login
	} else {
		req.Phone = login
	}

	resp, err := s.apiClient.Login(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	return s.startSession(ctx, login, resp)
}

// startSession узнает id пользователя по токену и сохраняет сессию
func (s *Service) startSession(ctx context.Context, login string, resp *pkgapi.TokenResponse) (*storage.Session, error) {
	me, err := s.apiClient.Me(ctx, resp.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	session := &storage.Session{
		Server:      s.server,
		Login:       login,
		AccessToken: resp.AccessToken,
		UserID:      me.ID,
		ExpiresAt:   s.now().Add(time.Duration(resp.ExpiresIn) * time.Second),
	}

	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}

// Logout удаляет локальную сессию. Токен на сервере не отзывается.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.sessions.DeleteSession(ctx); err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return ErrNotLoggedIn
		}
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Session возвращает сохраненную сессию, даже истекшую
func (s *Service) Session(ctx context.Context) (*storage.Session, error) {
	session, err := s.sessions.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil, ErrNotLoggedIn
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	return session, nil
}

// Token возвращает действующий access токен
func (s *Service) Token(ctx context.Context) (string, error) {
	session, err := s.Session(ctx)
	if err != nil {
		return "", err
	}
	if session.Expired(s.now()) {
		return "", ErrSessionExpired
	}
	return session.AccessToken, nil
}
