package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordLen bcrypt учитывает только первые 72 байта пароля
const MaxPasswordLen = 72

// ErrPasswordTooLong возвращается для паролей длиннее MaxPasswordLen байт
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// Hasher хеширует и проверяет пароли пользователей с помощью bcrypt.
// Соль генерируется bcrypt для каждого хеша и хранится внутри digest.
type Hasher struct {
	cost int
}

// NewHasher создает Hasher с заданной стоимостью bcrypt.
// cost <= 0 означает bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash возвращает bcrypt digest пароля
func (h *Hasher) Hash(password string) (string, error) {
	if len(password) > MaxPasswordLen {
		return "", ErrPasswordTooLong
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(digest), nil
}

// Verify проверяет пароль против digest.
// Сравнение выполняется bcrypt за постоянное время; битый digest дает false.
func (h *Hasher) Verify(password, digest string) bool {
	if digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
