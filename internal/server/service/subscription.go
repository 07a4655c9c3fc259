package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/pautinka/internal/models"
	"github.com/iudanet/pautinka/internal/server/storage"
)

// SubscriptionService подписки пользователей друг на друга
type SubscriptionService struct {
	users storage.UserStorage
	subs  storage.SubscriptionStorage
}

// NewSubscriptionService создает SubscriptionService
func NewSubscriptionService(users storage.UserStorage, subs storage.SubscriptionStorage) *SubscriptionService {
	return &SubscriptionService{users: users, subs: subs}
}

// Follow подписывает fromID на toID. Повторная подписка не ошибка.
func (s *SubscriptionService) Follow(ctx context.Context, fromID, toID int64) error {
	if fromID == toID {
		return validationError("cannot subscribe to yourself")
	}
	if err := s.ensureUser(ctx, toID); err != nil {
		return err
	}

	if err := s.subs.Subscribe(ctx, fromID, toID); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to subscribe: %w", err)
	}
	return nil
}

// Unfollow отменяет подписку fromID на toID
func (s *SubscriptionService) Unfollow(ctx context.Context, fromID, toID int64) error {
	if fromID == toID {
		return validationError("cannot unsubscribe from yourself")
	}
	if err := s.ensureUser(ctx, toID); err != nil {
		return err
	}

	if err := s.subs.Unsubscribe(ctx, fromID, toID); err != nil {
		return fmt.Errorf("failed to unsubscribe: %w", err)
	}
	return nil
}

// Followers возвращает подписчиков userID
func (s *SubscriptionService) Followers(ctx context.Context, userID int64) ([]models.User, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	users, err := s.subs.GetFollowers(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get followers: %w", err)
	}
	return users, nil
}

// Following возвращает пользователей, на которых подписан userID
func (s *SubscriptionService) Following(ctx context.Context, userID int64) ([]models.User, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	users, err := s.subs.GetFollowing(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get following: %w", err)
	}
	return users, nil
}

func (s *SubscriptionService) ensureUser(ctx context.Context, id int64) error {
	if _, err := s.users.GetUserByID(ctx, id); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}
	return nil
}
