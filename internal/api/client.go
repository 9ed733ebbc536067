package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client http-клиент к REST бэкенду платформы.
// Всё долговременное состояние живёт на бэкенде, клиент только читает и пишет.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient создаёт клиент для указанного базового URL
func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
	}
}

// Error типизированная ошибка бэкенда. Message берётся из тела ответа,
// чтобы payment/rebook могли показать его пользователю как есть.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend responded %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend responded %d", e.Status)
}

// BackendMessage возвращает сообщение бэкенда или fallback,
// если ошибка не содержит внятного текста.
func BackendMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// do выполняет запрос и декодирует JSON-ответ в out (если out != nil).
// Не-2xx статус превращается в *Error с сообщением бэкенда.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, token string, body, out interface{}) error {
	var reqBody *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode}

		// Бэкенд кладёт текст ошибки в {"message": "..."}
		var errBody struct {
			Message string `json:"message"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr == nil {
			apiErr.Message = errBody.Message
		}

		c.logger.Error("Backend returned error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message))
		return apiErr
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("Failed to decode backend response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}

	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, token string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, token, nil, out)
}

func (c *Client) post(ctx context.Context, path, token string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, token, body, out)
}

func (c *Client) delete(ctx context.Context, path, token string) error {
	return c.do(ctx, http.MethodDelete, path, nil, token, nil, nil)
}
