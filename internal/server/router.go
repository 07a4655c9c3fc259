// Package server собирает HTTP маршруты и цепочку middleware.
package server

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/trace"

	"github.com/iudanet/pautinka/internal/server/handlers"
	"github.com/iudanet/pautinka/internal/server/middleware"
)

// Handlers набор обработчиков всех маршрутов
type Handlers struct {
	Auth         *handlers.AuthHandler
	User         *handlers.UserHandler
	Review       *handlers.ReviewHandler
	Search       *handlers.SearchHandler
	Subscription *handlers.SubscriptionHandler
	Vacancy      *handlers.VacancyHandler
	Health       *handlers.HealthHandler
}

// RouterConfig зависимости роутера
type RouterConfig struct {
	Logger         *slog.Logger
	Resolver       middleware.UserResolver
	TracerProvider trace.TracerProvider
	Handlers       Handlers
	CORSOrigins    []string
}

// route описание одного маршрута
type route struct {
	handler   http.HandlerFunc
	pattern   string
	protected bool // нужен bearer токен
}

func routes(h Handlers) []route {
	return []route{
		{pattern: "GET /{$}", handler: h.Health.Root},
		{pattern: "GET /ping", handler: h.Health.Ping},
		{pattern: "GET /health", handler: h.Health.Health},

		{pattern: "POST /user/register", handler: h.Auth.Register},
		{pattern: "POST /user/token", handler: h.Auth.Login},
		{pattern: "POST /auth/register", handler: h.Auth.Register},
		{pattern: "POST /auth/token", handler: h.Auth.Login},

		{pattern: "GET /user/me", handler: h.User.Me, protected: true},
		{pattern: "PATCH /user/me", handler: h.User.EditMe, protected: true},
		{pattern: "DELETE /user/me", handler: h.User.DeleteMe, protected: true},
		{pattern: "GET /user/me/tags", handler: h.User.MyTags, protected: true},
		{pattern: "PUT /user/me/tags", handler: h.User.SetMyTags, protected: true},
		{pattern: "GET /user/{id}", handler: h.User.GetUser},

		{pattern: "POST /user/workreview", handler: h.Review.Create, protected: true},
		{pattern: "POST /reviews/workreview", handler: h.Review.Create, protected: true},

		{pattern: "GET /user/search/{tags}", handler: h.Search.Search},
		{pattern: "GET /reviews/search/{tags}", handler: h.Search.Search},

		{pattern: "GET /users/{id}/tags", handler: h.User.UserTags},
		{pattern: "GET /users/{id}/workreviews", handler: h.Review.ListByUser},
		{pattern: "POST /users/{id}/subscription", handler: h.Subscription.Follow, protected: true},
		{pattern: "DELETE /users/{id}/subscription", handler: h.Subscription.Unfollow, protected: true},
		{pattern: "GET /users/{id}/followers", handler: h.Subscription.Followers},
		{pattern: "GET /users/{id}/following", handler: h.Subscription.Following},
		{pattern: "GET /users/{id}/vacancies", handler: h.Vacancy.ListByHolder},

		{pattern: "POST /vacancies", handler: h.Vacancy.Create, protected: true},
		{pattern: "GET /vacancies/{id}", handler: h.Vacancy.Get},
		{pattern: "DELETE /vacancies/{id}", handler: h.Vacancy.Delete, protected: true},
	}
}

// NewRouter регистрирует маршруты и оборачивает их в общую цепочку middleware:
// request id, логирование, recovery, трассировка, CORS.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	authenticate := middleware.AuthMiddleware(cfg.Logger, cfg.Resolver)

	for _, rt := range routes(cfg.Handlers) {
		var h http.Handler = rt.handler
		if rt.protected {
			h = authenticate(h)
		}
		mux.Handle(rt.pattern, h)
	}

	return chain(mux,
		middleware.RequestIDMiddleware(),
		middleware.LoggingWithSkip(cfg.Logger, []string{"/ping", "/health"}),
		middleware.RecoveryMiddleware(cfg.Logger),
		middleware.TracingMiddleware(cfg.TracerProvider),
		middleware.CORSMiddleware(cfg.CORSOrigins),
	)
}

// chain применяет middleware так, что первый в списке оказывается внешним
func chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
