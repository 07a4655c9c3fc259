package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/pautinka/internal/crypto"
	"github.com/iudanet/pautinka/internal/models"
	"github.com/iudanet/pautinka/internal/server/auth"
	"github.com/iudanet/pautinka/internal/server/jwt"
	"github.com/iudanet/pautinka/internal/server/service"
	"github.com/iudanet/pautinka/internal/server/storage/sqlite"
	"github.com/iudanet/pautinka/internal/validation"
	"github.com/iudanet/pautinka/pkg/api"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// testEnv handlers поверх настоящих сервисов и SQLite в памяти
type testEnv struct {
	store        *sqlite.Storage
	gate         *auth.Gate
	profiles     *service.ProfileService
	auth         *AuthHandler
	user         *UserHandler
	review       *ReviewHandler
	search       *SearchHandler
	subscription *SubscriptionHandler
	vacancy      *VacancyHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	tokens, err := jwt.NewService(jwt.Config{Secret: []byte("handlers-secret"), Algorithm: "HS256", TTL: time.Hour})
	require.NoError(t, err)

	logger := setupTestLogger()
	v := validation.New()
	profiles := service.NewProfileService(store, store, crypto.NewHasher(bcrypt.MinCost), tokens, nil, logger)

	return &testEnv{
		store:        store,
		gate:         auth.NewGate(tokens, store),
		profiles:     profiles,
		auth:         NewAuthHandler(logger, profiles, v),
		user:         NewUserHandler(logger, profiles, v),
		review:       NewReviewHandler(logger, service.NewReviewService(store, store, logger), v),
		search:       NewSearchHandler(logger, service.NewSearchService(store, nil, logger)),
		subscription: NewSubscriptionHandler(logger, service.NewSubscriptionService(store, store)),
		vacancy:      NewVacancyHandler(logger, service.NewVacancyService(store, store, logger), v),
	}
}

// signUp регистрирует пользователя через сервис и возвращает его запись
func (e *testEnv) signUp(t *testing.T, name, email string) *models.User {
	t.Helper()
	ctx := context.Background()

	token, err := e.profiles.Register(ctx, service.RegisterInput{
		User:     models.User{Name: name, Surname: "Testov", Email: email},
		Password: "p1",
	})
	require.NoError(t, err)

	user, err := e.gate.Resolve(ctx, token.AccessToken)
	require.NoError(t, err)
	return user
}

// request описание запроса к handler в тестах
type request struct {
	body       any
	user       *models.User
	pathValues map[string]string
	method     string
	target     string
}

func serve(t *testing.T, h http.HandlerFunc, req request) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader = http.NoBody
	switch b := req.body.(type) {
	case nil:
	case string:
		body = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	method := req.method
	if method == "" {
		method = http.MethodGet
	}
	target := req.target
	if target == "" {
		target = "/"
	}

	r := httptest.NewRequest(method, target, body)
	for k, v := range req.pathValues {
		r.SetPathValue(k, v)
	}
	if req.user != nil {
		r = r.WithContext(WithUser(r.Context(), req.user))
	}

	w := httptest.NewRecorder()
	h(w, r)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	return decode[api.ErrorResponse](t, w)
}
