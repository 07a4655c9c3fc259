package api

// TokenTypeBearer значение token_type в ответах аутентификации
const TokenTypeBearer = "bearer"

// RegisterRequest представляет запрос на регистрацию нового пользователя.
// Email и телефон необязательны, но каждый уникален среди пользователей.
type RegisterRequest struct {
	Name        string `json:"name" validate:"notblank,max=128"`
	Surname     string `json:"surname" validate:"notblank,max=128"`
	LastName    string `json:"last_name,omitempty" validate:"max=128"`
	Email       string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Phone       string `json:"phone,omitempty" validate:"omitempty,phone"`
	University  string `json:"university,omitempty" validate:"max=256"`
	Birthdate   string `json:"birthdate,omitempty"` // YYYY-MM-DD
	Course      string `json:"course,omitempty" validate:"max=64"`
	ShortStatus string `json:"short_status,omitempty" validate:"max=256"`
	FullStatus  string `json:"full_status,omitempty"`
	AboutMe     string `json:"about_me,omitempty"`
	Links       string `json:"links,omitempty"`
	Password    string `json:"password" validate:"required,maxbytes=72"`
}

// LoginRequest представляет запрос на аутентификацию.
// Если заданы оба идентификатора, используется email.
type LoginRequest struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

// TokenResponse представляет ответ с токеном доступа
type TokenResponse struct {
	AccessToken string `json:"access_token"` // JWT access token
	TokenType   string `json:"token_type"`   // всегда "bearer"
	ExpiresIn   int64  `json:"expires_in"`   // время жизни access token в секундах
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Fields  map[string]string `json:"fields,omitempty"`  // ошибки валидации по полям
	Error   string            `json:"error"`             // описание ошибки
	Message string            `json:"message,omitempty"` // дополнительное сообщение
}

// MessageResponse ответ корневого эндпоинта
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse ответ /health
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
