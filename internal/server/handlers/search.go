package handlers

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/pautinka/internal/server/service"
)

// SearchHandler поиск пользователей по тегам
type SearchHandler struct {
	logger *slog.Logger
	search *service.SearchService
}

// NewSearchHandler создает SearchHandler
func NewSearchHandler(logger *slog.Logger, search *service.SearchService) *SearchHandler {
	return &SearchHandler{logger: logger, search: search}
}

// Search обрабатывает GET /user/search/{tags}.
// tags перечисляются через запятую, результат объединяет пользователей по любому из них.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.search.SearchByTags(ctx, service.ParseTags(r.PathValue("tags")))
	if err != nil {
		writeServiceError(ctx, h.logger, w, err)
		return
	}

	sendJSON(ctx, h.logger, w, toAPIUsers(users), http.StatusOK)
}
