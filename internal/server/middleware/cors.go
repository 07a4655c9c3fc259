package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/cors"
)

// corsMaxAge время кеширования preflight ответа браузером, секунды
const corsMaxAge = 600

// CORSMiddleware разрешает запросы с перечисленных origin с передачей credentials.
// "*" в списке разрешает любой origin: с credentials он отражается из запроса.
// Preflight запросы завершаются здесь же со статусом 204.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	allowAll := false
	origins := make([]string, 0, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		// Браузер присылает Origin без завершающего слеша
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		switch origin {
		case "":
		case "*":
			allowAll = true
		default:
			origins = append(origins, origin)
		}
	}

	opts := cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         corsMaxAge,
	}
	if allowAll {
		// С AllowedOrigins "*" библиотека отвечает буквальным "*",
		// который браузер не принимает вместе с credentials
		opts.AllowedOrigins = nil
		opts.AllowOriginFunc = func(string) bool { return true }
	}

	return cors.New(opts).Handler
}
