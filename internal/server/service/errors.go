package service

import "errors"

// Категории ошибок сервисного слоя. Транспорт сопоставляет их со статусами.
var (
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrValidation   = errors.New("validation failed")
)

// Конкретные ошибки с сообщениями для клиента
var (
	ErrEmailExists   = newError(ErrConflict, "email exists")
	ErrPhoneExists   = newError(ErrConflict, "phone exists")
	ErrNotEnoughData = newError(ErrUnauthorized, "not enough data")
	ErrNoSuchLogin   = newError(ErrUnauthorized, "no such login")
	ErrWrongPassword = newError(ErrUnauthorized, "wrong password")
	ErrUserNotFound  = newError(ErrNotFound, "user not found")

	ErrVacancyNotFound  = newError(ErrNotFound, "vacancy not found")
	ErrNotVacancyHolder = newError(ErrForbidden, "only the vacancy holder can do this")
)

// Error ошибка сервиса: категория (Kind) и сообщение, безопасное для клиента
type Error struct {
	Kind error
	Msg  string
}

func newError(kind error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Error implements error
func (e *Error) Error() string {
	return e.Msg
}

// Unwrap позволяет errors.Is(err, ErrConflict) и т.п.
func (e *Error) Unwrap() error {
	return e.Kind
}

// validationError ошибка входных данных с текстом для клиента
func validationError(msg string) error {
	return newError(ErrValidation, msg)
}
