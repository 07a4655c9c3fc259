// Package service содержит бизнес-логику сервера: профили, отзывы, поиск,
// подписки и вакансии. Транспорт и хранилище подключаются через интерфейсы.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/iudanet/pautinka/internal/crypto"
	"github.com/iudanet/pautinka/internal/models"
	"github.com/iudanet/pautinka/internal/server/cache"
	"github.com/iudanet/pautinka/internal/server/storage"
)

// PasswordHasher хеширует и проверяет пароли
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// TokenIssuer выпускает access токены
type TokenIssuer interface {
	Issue(userID int64) (string, time.Time, error)
}

// Token выпущенный access токен
type Token struct {
	ExpiresAt   time.Time
	AccessToken string
}

// RegisterInput данные регистрации: профиль и пароль в открытом виде
type RegisterInput struct {
	Password string
	User     models.User
}

// Credentials данные для входа. Email имеет приоритет над телефоном.
type Credentials struct {
	Email    string
	Phone    string
	Password string
}

// RootUser учетная запись, создаваемая при старте сервера
type RootUser struct {
	Name     string
	Surname  string
	Password string
}

// ProfileService регистрация, вход и работа с профилем
type ProfileService struct {
	users  storage.UserStorage
	tags   storage.TagStorage
	hasher PasswordHasher
	tokens TokenIssuer
	cache  cache.SearchCache
	logger *slog.Logger
}

// NewProfileService создает ProfileService. searchCache может быть nil.
func NewProfileService(
	users storage.UserStorage,
	tags storage.TagStorage,
	hasher PasswordHasher,
	tokens TokenIssuer,
	searchCache cache.SearchCache,
	logger *slog.Logger,
) *ProfileService {
	if searchCache == nil {
		searchCache = cache.Nop{}
	}
	return &ProfileService{
		users:  users,
		tags:   tags,
		hasher: hasher,
		tokens: tokens,
		cache:  searchCache,
		logger: logger,
	}
}

// normalizeEmail приводит email к каноническому виду для хранения и поиска
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizePhone(phone string) string {
	return strings.TrimSpace(phone)
}

// Register создает пользователя и выпускает для него токен
func (s *ProfileService) Register(ctx context.Context, in RegisterInput) (Token, error) {
	user := in.User
	user.ID = 0
	user.Email = normalizeEmail(user.Email)
	user.Phone = normalizePhone(user.Phone)
	user.Name = strings.TrimSpace(user.Name)
	user.Surname = strings.TrimSpace(user.Surname)

	if user.Name == "" || user.Surname == "" {
		return Token{}, validationError("name and surname are required")
	}
	if in.Password == "" {
		return Token{}, validationError("password is required")
	}

	// Предварительная проверка дает понятную ошибку,
	// окончательно уникальность гарантируют индексы хранилища.
	if err := s.checkContactsFree(ctx, 0, user.Email, user.Phone); err != nil {
		return Token{}, err
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, crypto.ErrPasswordTooLong) {
			return Token{}, validationError(err.Error())
		}
		return Token{}, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = digest

	if err := s.users.CreateUser(ctx, &user); err != nil {
		return Token{}, mapUserWriteError(err)
	}

	s.logger.InfoContext(ctx, "New user registered",
		slog.Int64("user_id", user.ID),
		slog.String("name", user.Name),
	)

	return s.issue(user.ID)
}

// Login проверяет пароль и выпускает токен
func (s *ProfileService) Login(ctx context.Context, cred Credentials) (Token, error) {
	email := normalizeEmail(cred.Email)
	phone := normalizePhone(cred.Phone)

	var (
		user *models.User
		err  error
	)

	switch {
	case email != "":
		user, err = s.users.GetUserByEmail(ctx, email)
	case phone != "":
		user, err = s.users.GetUserByPhone(ctx, phone)
	default:
		return Token{}, ErrNotEnoughData
	}

	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return Token{}, ErrNoSuchLogin
		}
		return Token{}, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(cred.Password, user.HashedPassword) {
		s.logger.WarnContext(ctx, "Wrong password", slog.Int64("user_id", user.ID))
		return Token{}, ErrWrongPassword
	}

	s.logger.InfoContext(ctx, "User logged in", slog.Int64("user_id", user.ID))

	return s.issue(user.ID)
}

func (s *ProfileService) issue(userID int64) (Token, error) {
	token, expiresAt, err := s.tokens.Issue(userID)
	if err != nil {
		return Token{}, fmt.Errorf("failed to issue token: %w", err)
	}
	return Token{AccessToken: token, ExpiresAt: expiresAt}, nil
}

// GetByID возвращает пользователя или ErrUserNotFound
func (s *ProfileService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// EditSelf применяет patch к профилю user и сохраняет результат.
// Патч накладывается на текущую запись в хранилище, а не на снимок user:
// поля, которых нет в patch, остаются такими, какими их оставил последний запрос.
func (s *ProfileService) EditSelf(ctx context.Context, user *models.User, patch models.UserPatch) (*models.User, error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, validationError("name must not be empty")
		}
		patch.Name = &name
	}
	if patch.Surname != nil {
		surname := strings.TrimSpace(*patch.Surname)
		if surname == "" {
			return nil, validationError("surname must not be empty")
		}
		patch.Surname = &surname
	}

	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		patch.Email = &email
	}
	if patch.Phone != nil {
		phone := normalizePhone(*patch.Phone)
		patch.Phone = &phone
	}

	var email, phone string
	if patch.Email != nil && *patch.Email != user.Email {
		email = *patch.Email
	}
	if patch.Phone != nil && *patch.Phone != user.Phone {
		phone = *patch.Phone
	}
	if err := s.checkContactsFree(ctx, user.ID, email, phone); err != nil {
		return nil, err
	}

	updated, err := s.users.PatchUser(ctx, user.ID, patch)
	if err != nil {
		return nil, mapUserWriteError(err)
	}

	s.invalidateSearch(ctx)

	s.logger.InfoContext(ctx, "Profile updated", slog.Int64("user_id", user.ID))

	return updated, nil
}

// checkContactsFree проверяет, что email и телефон не заняты другим пользователем.
// Пустые значения не проверяются.
func (s *ProfileService) checkContactsFree(ctx context.Context, selfID int64, email, phone string) error {
	if email != "" {
		other, err := s.users.GetUserByEmail(ctx, email)
		switch {
		case err == nil && other.ID != selfID:
			return ErrEmailExists
		case err != nil && !errors.Is(err, storage.ErrUserNotFound):
			return fmt.Errorf("failed to check email: %w", err)
		}
	}

	if phone != "" {
		other, err := s.users.GetUserByPhone(ctx, phone)
		switch {
		case err == nil && other.ID != selfID:
			return ErrPhoneExists
		case err != nil && !errors.Is(err, storage.ErrUserNotFound):
			return fmt.Errorf("failed to check phone: %w", err)
		}
	}

	return nil
}

// mapUserWriteError переводит ошибки хранилища при записи пользователя
func mapUserWriteError(err error) error {
	switch {
	case errors.Is(err, storage.ErrEmailTaken):
		return ErrEmailExists
	case errors.Is(err, storage.ErrPhoneTaken):
		return ErrPhoneExists
	case errors.Is(err, storage.ErrUserNotFound):
		return ErrUserNotFound
	default:
		return fmt.Errorf("failed to save user: %w", err)
	}
}

// SetTags заменяет теги пользователя и возвращает итоговый набор
func (s *ProfileService) SetTags(ctx context.Context, userID int64, raw []string) ([]string, error) {
	names := NormalizeTags(raw)
	if len(names) > MaxTagsPerUser {
		return nil, validationError(fmt.Sprintf("too many tags, at most %d allowed", MaxTagsPerUser))
	}
	for _, name := range names {
		if len(name) > MaxTagLen {
			return nil, validationError(fmt.Sprintf("tag %q is longer than %d bytes", name, MaxTagLen))
		}
	}

	if err := s.tags.SetUserTags(ctx, userID, names); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to set tags: %w", err)
	}

	s.invalidateSearch(ctx)

	return names, nil
}

// Tags возвращает теги пользователя
func (s *ProfileService) Tags(ctx context.Context, userID int64) ([]string, error) {
	if _, err := s.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	tags, err := s.tags.GetUserTags(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	return tags, nil
}

// DeleteSelf удаляет пользователя вместе с тегами, подписками, отзывами и вакансиями
func (s *ProfileService) DeleteSelf(ctx context.Context, userID int64) error {
	if err := s.users.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.invalidateSearch(ctx)

	s.logger.InfoContext(ctx, "User deleted", slog.Int64("user_id", userID))

	return nil
}

// EnsureRootUser создает root пользователя, если его еще нет.
// Пустые имя или пароль отключают создание.
func (s *ProfileService) EnsureRootUser(ctx context.Context, root RootUser) (bool, error) {
	if root.Name == "" || root.Password == "" {
		s.logger.WarnContext(ctx, "Root user is not configured, skipping")
		return false, nil
	}

	_, err := s.users.GetUserByName(ctx, root.Name, root.Surname)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, storage.ErrUserNotFound) {
		return false, fmt.Errorf("failed to look up root user: %w", err)
	}

	digest, err := s.hasher.Hash(root.Password)
	if err != nil {
		return false, fmt.Errorf("failed to hash root password: %w", err)
	}

	user := models.User{
		Name:           root.Name,
		Surname:        root.Surname,
		HashedPassword: digest,
	}
	if err := s.users.CreateUser(ctx, &user); err != nil {
		return false, fmt.Errorf("failed to create root user: %w", err)
	}

	s.logger.InfoContext(ctx, "Root user created", slog.Int64("user_id", user.ID))

	return true, nil
}

// invalidateSearch сбрасывает кеш поиска. Ошибка кеша не прерывает операцию.
func (s *ProfileService) invalidateSearch(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.WarnContext(ctx, "Failed to invalidate search cache", slog.String("error", err.Error()))
	}
}
