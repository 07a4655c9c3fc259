package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken indicates that another user already has this email
	ErrEmailTaken = errors.New("email already taken")

	// ErrPhoneTaken indicates that another user already has this phone
	ErrPhoneTaken = errors.New("phone already taken")

	// ErrReviewNotFound indicates that work review was not found
	ErrReviewNotFound = errors.New("work review not found")

	// ErrVacancyNotFound indicates that vacancy was not found
	ErrVacancyNotFound = errors.New("vacancy not found")
)
