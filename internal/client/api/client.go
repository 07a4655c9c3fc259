// Package api HTTP клиент сервера Pautinka
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/iudanet/pautinka/pkg/api"
)

// ErrUnauthorized сервер отклонил токен или учетные данные
var ErrUnauthorized = errors.New("unauthorized")

// Error ответ сервера с кодом вне 2xx
type Error struct {
	Fields     map[string]string
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
	for field, reason := range e.Fields {
		msg += fmt.Sprintf("; %s: %s", field, reason)
	}
	return msg
}

// Is позволяет проверять 401 через errors.Is(err, ErrUnauthorized)
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	if err := c.doRequest(ctx, http.MethodPost, "/user/register", "", req, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Login выполняет аутентификацию пользователя
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	if err := c.doRequest(ctx, http.MethodPost, "/user/token", "", req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Me возвращает профиль владельца токена
func (c *Client) Me(ctx context.Context, token string) (*api.User, error) {
	var resp api.User
	if err := c.doRequest(ctx, http.MethodGet, "/user/me", token, nil, &resp); err != nil {
		return nil, fmt.Errorf("get profile failed: %w", err)
	}
	return &resp, nil
}

// EditMe применяет частичное изменение профиля
func (c *Client) EditMe(ctx context.Context, token string, patch api.ProfilePatch) error {
	if err := c.doRequest(ctx, http.MethodPatch, "/user/me", token, patch, nil); err != nil {
		return fmt.Errorf("edit profile failed: %w", err)
	}
	return nil
}

// DeleteMe удаляет учетную запись владельца токена
func (c *Client) DeleteMe(ctx context.Context, token string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/user/me", token, nil, nil); err != nil {
		return fmt.Errorf("delete profile failed: %w", err)
	}
	return nil
}

// GetUser возвращает публичный профиль пользователя
func (c *Client) GetUser(ctx context.Context, id int64) (*api.User, error) {
	var resp api.User
	if err := c.doRequest(ctx, http.MethodGet, "/user/"+strconv.FormatInt(id, 10), "", nil, &resp); err != nil {
		return nil, fmt.Errorf("get user failed: %w", err)
	}
	return &resp, nil
}

// MyTags возвращает теги владельца токена
func (c *Client) MyTags(ctx context.Context, token string) ([]string, error) {
	var resp []string
	if err := c.doRequest(ctx, http.MethodGet, "/user/me/tags", token, nil, &resp); err != nil {
		return nil, fmt.Errorf("get tags failed: %w", err)
	}
	return resp, nil
}

// SetMyTags заменяет теги владельца токена и возвращает итоговый набор
func (c *Client) SetMyTags(ctx context.Context, token string, tags []string) ([]string, error) {
	var resp []string
	if err := c.doRequest(ctx, http.MethodPut, "/user/me/tags", token, api.TagsRequest{Tags: tags}, &resp); err != nil {
		return nil, fmt.Errorf("set tags failed: %w", err)
	}
	return resp, nil
}

// UserTags возвращает теги пользователя
func (c *Client) UserTags(ctx context.Context, id int64) ([]string, error) {
	var resp []string
	if err := c.doRequest(ctx, http.MethodGet, userPath(id, "tags"), "", nil, &resp); err != nil {
		return nil, fmt.Errorf("get user tags failed: %w", err)
	}
	return resp, nil
}

// CreateReview добавляет запись об опыте работы владельцу токена
func (c *Client) CreateReview(ctx context.Context, token string, req api.WorkReviewRequest) error {
	if err := c.doRequest(ctx, http.MethodPost, "/user/workreview", token, req, nil); err != nil {
		return fmt.Errorf("create work review failed: %w", err)
	}
	return nil
}

// UserReviews возвращает записи об опыте работы пользователя
func (c *Client) UserReviews(ctx context.Context, id int64) ([]api.WorkReview, error) {
	var resp []api.WorkReview
	if err := c.doRequest(ctx, http.MethodGet, userPath(id, "workreviews"), "", nil, &resp); err != nil {
		return nil, fmt.Errorf("get work reviews failed: %w", err)
	}
	return resp, nil
}

// Search ищет пользователей, у которых есть хотя бы один из тегов
func (c *Client) Search(ctx context.Context, tags []string) ([]api.User, error) {
	escaped := make([]string, len(tags))
	for i, tag := range tags {
		escaped[i] = url.PathEscape(tag)
	}

	var resp []api.User
	if err := c.doRequest(ctx, http.MethodGet, "/user/search/"+strings.Join(escaped, ","), "", nil, &resp); err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return resp, nil
}

// Follow подписывает владельца токена на пользователя
func (c *Client) Follow(ctx context.Context, token string, id int64) error {
	if err := c.doRequest(ctx, http.MethodPost, userPath(id, "subscription"), token, nil, nil); err != nil {
		return fmt.Errorf("follow failed: %w", err)
	}
	return nil
}

// Unfollow отменяет подписку
func (c *Client) Unfollow(ctx context.Context, token string, id int64) error {
	if err := c.doRequest(ctx, http.MethodDelete, userPath(id, "subscription"), token, nil, nil); err != nil {
		return fmt.Errorf("unfollow failed: %w", err)
	}
	return nil
}

// Followers возвращает подписчиков пользователя
func (c *Client) Followers(ctx context.Context, id int64) ([]api.User, error) {
	var resp []api.User
	if err := c.doRequest(ctx, http.MethodGet, userPath(id, "followers"), "", nil, &resp); err != nil {
		return nil, fmt.Errorf("get followers failed: %w", err)
	}
	return resp, nil
}

func userPath(id int64, sub string) string {
	return "/users/" + strconv.FormatInt(id, 10) + "/" + sub
}

// doRequest выполняет HTTP запрос. Пустой token означает анонимный запрос.
func (c *Client) doRequest(ctx context.Context, method, path, token string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			apiErr.Message = errResp.Message
			if apiErr.Message == "" {
				apiErr.Message = errResp.Error
			}
			apiErr.Fields = errResp.Fields
		}
		return apiErr
	}

	// Декодируем успешный ответ
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
