package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer значение claim iss во всех токенах
const Issuer = "pautinka"

// Ошибки проверки токена. Verify всегда возвращает одну из них (обернутую).
var (
	// ErrMalformed токен не разбирается, подписан другим алгоритмом или не содержит user-id
	ErrMalformed = errors.New("malformed token")
	// ErrExpired срок действия токена истек
	ErrExpired = errors.New("token expired")
	// ErrSignature подпись не совпадает с секретом сервера
	ErrSignature = errors.New("invalid token signature")
)

// Config содержит параметры подписи токенов
type Config struct {
	Secret    []byte
	Algorithm string        // HS256, HS384 или HS512
	TTL       time.Duration // время жизни access token
}

// Claims представляет JWT claims нашего приложения
type Claims struct {
	UserID int64 `json:"user-id"`
	gojwt.RegisteredClaims
}

// Service выпускает и проверяет access токены
type Service struct {
	method gojwt.SigningMethod
	secret []byte
	ttl    time.Duration
}

// NewService создает JWT сервис.
// Пустой секрет и алгоритмы кроме HMAC семейства запрещены.
func NewService(cfg Config) (*Service, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("jwt secret is empty")
	}

	method, ok := gojwt.GetSigningMethod(cfg.Algorithm).(*gojwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", cfg.Algorithm)
	}

	return &Service{
		method: method,
		secret: cfg.Secret,
		ttl:    cfg.TTL,
	}, nil
}

// Issue выпускает токен для пользователя с TTL из конфигурации
func (s *Service) Issue(userID int64) (string, time.Time, error) {
	return s.IssueWithTTL(userID, s.ttl)
}

// IssueWithTTL выпускает токен, истекающий через ttl.
// ttl <= 0 дает токен, который уже не пройдет Verify.
func (s *Service) IssueWithTTL(userID int64, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		UserID: userID,
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(expiresAt),
			IssuedAt:  gojwt.NewNumericDate(now),
			NotBefore: gojwt.NewNumericDate(now),
			Issuer:    Issuer,
			ID:        uuid.NewString(),
		},
	}

	token := gojwt.NewWithClaims(s.method, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// Verify проверяет подпись и срок действия токена и возвращает user-id
func (s *Service) Verify(tokenString string) (int64, error) {
	claims := &Claims{}

	_, err := gojwt.ParseWithClaims(tokenString, claims,
		func(token *gojwt.Token) (interface{}, error) {
			// Ошибка keyfunc оборачивается в ErrTokenUnverifiable и дает ErrMalformed
			if token.Method.Alg() != s.method.Alg() {
				return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
			}
			return s.secret, nil
		},
		gojwt.WithIssuer(Issuer),
		gojwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, gojwt.ErrTokenExpired):
			return 0, fmt.Errorf("%w: %v", ErrExpired, err)
		case errors.Is(err, gojwt.ErrTokenSignatureInvalid):
			return 0, fmt.Errorf("%w: %v", ErrSignature, err)
		default:
			return 0, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}

	if claims.UserID <= 0 {
		return 0, fmt.Errorf("%w: missing user-id claim", ErrMalformed)
	}

	return claims.UserID, nil
}
