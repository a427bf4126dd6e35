package petapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pet-adoption-hub/internal/infra/metrics"
)

// ErrTokenRequired возвращается операциями, которым нужен bearer-токен.
var ErrTokenRequired = errors.New("bearer token is required")

// Client выполняет JSON-запросы к API магазина. Повторов и таймаутов нет:
// отменой управляет вызывающий через context.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	timeout    time.Duration
	log        zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout ограничивает длительность запроса. Нулевое значение оставляет запросы без лимита.
// Применяется после всех опций, поэтому порядок относительно WithHTTPClient не важен.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.log = logger
	}
}

// New создаёт клиента. Пустой baseURL означает запросы к тому же origin:
// URL запроса содержит только путь, и хост должен подставить транспорт.
func New(baseURL string, opts ...Option) (*Client, error) {
	client := &Client{
		httpClient: &http.Client{},
		log:        zerolog.Nop(),
	}
	if baseURL != "" {
		parsed, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("parse base url: %w", err)
		}
		if parsed.Scheme == "" {
			parsed, err = url.Parse("http://" + baseURL)
			if err != nil {
				return nil, fmt.Errorf("parse base url: %w", err)
			}
		}
		client.baseURL = parsed
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.timeout > 0 {
		clone := *client.httpClient
		clone.Timeout = client.timeout
		client.httpClient = &clone
	}
	return client, nil
}

// APIError описывает неуспешный запрос. Status равен 0 для сетевых ошибок.
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Status > 0 {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "request failed"
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// call описывает один запрос к API.
type call struct {
	op     string
	method string
	path   string
	token  string
	body   any
	out    any
}

func (c *Client) get(ctx context.Context, op, endpoint, token string, out any) error {
	return c.do(ctx, call{op: op, method: http.MethodGet, path: endpoint, token: token, out: out})
}

func (c *Client) post(ctx context.Context, op, endpoint, token string, body, out any) error {
	return c.do(ctx, call{op: op, method: http.MethodPost, path: endpoint, token: token, body: body, out: out})
}

func (c *Client) put(ctx context.Context, op, endpoint, token string, body, out any) error {
	return c.do(ctx, call{op: op, method: http.MethodPut, path: endpoint, token: token, body: body, out: out})
}

func (c *Client) delete(ctx context.Context, op, endpoint, token string) error {
	return c.do(ctx, call{op: op, method: http.MethodDelete, path: endpoint, token: token})
}

func (c *Client) resolve(endpoint string) string {
	if c.baseURL == nil {
		return endpoint
	}
	// endpoint приходит уже экранированным (url.PathEscape для идентификаторов).
	resolved := *c.baseURL
	basePath := strings.TrimSuffix(c.baseURL.EscapedPath(), "/")
	joined := path.Clean(basePath + endpoint)
	if strings.HasSuffix(endpoint, "/") && !strings.HasSuffix(joined, "/") {
		joined += "/"
	}
	unescaped, err := url.PathUnescape(joined)
	if err != nil {
		unescaped = joined
	}
	resolved.Path = unescaped
	resolved.RawPath = joined
	return resolved.String()
}

func (c *Client) target() string {
	if c.baseURL == nil {
		return "same-origin"
	}
	return c.baseURL.Host
}

func (c *Client) newRequest(ctx context.Context, rc call) (*http.Request, error) {
	var buf io.Reader
	if rc.body != nil {
		raw, err := json.Marshal(rc.body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		buf = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, rc.method, c.resolve(rc.path), buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if rc.token != "" {
		req.Header.Set("Authorization", "Bearer "+rc.token)
	}
	return req, nil
}

func (c *Client) do(ctx context.Context, rc call) (err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveNetworkRequest("petapi", rc.op, c.target(), start, err)
		if err != nil {
			c.log.Debug().Err(err).Str("op", rc.op).Str("method", rc.method).Str("path", rc.path).Msg("petapi: request failed")
		}
	}()

	req, err := c.newRequest(ctx, rc)
	if err != nil {
		return &APIError{Message: err.Error(), Err: err}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Message: fmt.Sprintf("network error: %v", err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return &APIError{Status: resp.StatusCode, Message: errorMessage(resp, data)}
	}
	if resp.StatusCode == http.StatusNoContent || rc.out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(rc.out); err != nil {
		return &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("invalid JSON response: %v", err), Err: err}
	}
	return nil
}

// errorMessage берёт поле error или message из тела ответа, иначе текст статуса.
// Неразборчивое тело трактуется как пустой объект.
func errorMessage(resp *http.Response, data []byte) string {
	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		body = map[string]any{}
	}
	for _, field := range []string{"error", "message"} {
		switch v := body[field].(type) {
		case string:
			if v != "" {
				return v
			}
		case map[string]any:
			if msg, ok := v["message"].(string); ok && msg != "" {
				return msg
			}
		}
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return strings.TrimSpace(strings.TrimPrefix(resp.Status, fmt.Sprint(resp.StatusCode)))
}
