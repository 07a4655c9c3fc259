package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/iudanet/pautinka/internal/models"
	"github.com/iudanet/pautinka/internal/server/service"
)

// SubscriptionHandler подписки между пользователями
type SubscriptionHandler struct {
	logger *slog.Logger
	subs   *service.SubscriptionService
}

// NewSubscriptionHandler создает SubscriptionHandler
func NewSubscriptionHandler(logger *slog.Logger, subs *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{logger: logger, subs: subs}
}

// Follow обрабатывает POST /users/{id}/subscription
func (h *SubscriptionHandler) Follow(w http.ResponseWriter, r *http.Request) {
	h.change(w, r, h.subs.Follow)
}

// Unfollow обрабатывает DELETE /users/{id}/subscription
func (h *SubscriptionHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	h.change(w, r, h.subs.Unfollow)
}

func (h *SubscriptionHandler) change(
	w http.ResponseWriter,
	r *http.Request,
	apply func(ctx context.Context, fromID, toID int64) error,
) {
	ctx := r.Context()

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	targetID, err := pathID(r, "id")
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := apply(ctx, user.ID, targetID); err != nil {
		writeServiceError(ctx, h.logger, w, err)
		return
	}

	sendJSON(ctx, h.logger, w, successMessage, http.StatusOK)
}

// Followers обрабатывает GET /users/{id}/followers
func (h *SubscriptionHandler) Followers(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.subs.Followers)
}

// Following обрабатывает GET /users/{id}/following
func (h *SubscriptionHandler) Following(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.subs.Following)
}

func (h *SubscriptionHandler) list(
	w http.ResponseWriter,
	r *http.Request,
	load func(ctx context.Context, userID int64) ([]models.User, error),
) {
	ctx := r.Context()

	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	users, err := load(ctx, id)
	if err != nil {
		writeServiceError(ctx, h.logger, w, err)
		return
	}

	sendJSON(ctx, h.logger, w, toAPIUsers(users), http.StatusOK)
}
