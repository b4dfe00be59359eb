package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/gymrat/internal/domain/errors"
	"github.com/polkiloo/gymrat/internal/domain/repository"
)

const (
	membersTable  = "members"
	paymentsTable = "payments"
	apiPrefix     = "/rest/v1/"
)

// RateLimitedError carries the back-off hint of a throttled store.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e RateLimitedError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// APIError mirrors the error body of a PostgREST style endpoint.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Code != "" {
		return fmt.Sprintf("%s (code %s, status %d)", msg, e.Code, e.Status)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.Status)
}

// Client is a persistence gateway over a hosted REST table API.
type Client struct {
	baseURL    *url.URL
	key        string
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

var _ repository.Gateway = (*Client)(nil)

// New creates a REST gateway authenticated with the given key.
func New(baseURL, key string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse store url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("store url must be absolute")
	}
	if key == "" {
		return nil, fmt.Errorf("store key must be provided")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    parsed,
		key:        key,
		logger:     logger,
		now:        time.Now,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) Members() repository.MemberRepository {
	return &memberRepository{client: c}
}

func (c *Client) Payments() repository.PaymentRepository {
	return &paymentRepository{client: c}
}

// HealthCheck issues a minimal read against the members table.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	var rows []json.RawMessage
	query := url.Values{"select": {"id"}, "limit": {"1"}}
	return c.do(ctx, "health check", http.MethodGet, membersTable, query, nil, &rows, domainErrors.ErrStoreUnavailable)
}

// Close drops pooled connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// do performs one request and decodes the JSON array response into out.
// Every failure comes back as a *StoreError tagged with op.
func (c *Client) do(ctx context.Context, op, method, table string, query url.Values, body any, out any, noRows error) error {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, apiPrefix, table)
	endpoint.RawQuery = query.Encode()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return c.fail(op, domainErrors.ErrInvalidInput, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return c.fail(op, domainErrors.ErrStoreUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(op, domainErrors.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.fail(op, domainErrors.ErrStoreUnavailable, err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return c.fail(op, domainErrors.ErrStoreUnavailable, RateLimitedError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))})
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		if len(payload) > 0 {
			_ = json.Unmarshal(payload, apiErr)
		}
		return c.fail(op, classify(apiErr, noRows), apiErr)
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return c.fail(op, domainErrors.ErrStoreUnavailable, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func (c *Client) fail(op string, kind, err error) error {
	if c.logger != nil {
		c.logger.Warn("store operation failed", slog.String("op", op), slog.String("error", err.Error()))
	}
	return domainErrors.NewStoreError(op, kind, err)
}

// classify maps a store error body to an error kind. A malformed identifier
// in a filter means nothing can match, so it reports noRows.
func classify(apiErr *APIError, noRows error) error {
	code := apiErr.Code
	switch {
	case code == "23503":
		return domainErrors.ErrUnknownMember
	case code == "23505":
		return domainErrors.ErrAlreadyExists
	case code == "22P02" && !errors.Is(noRows, domainErrors.ErrStoreUnavailable):
		return noRows
	case code == "23502", code == "23514", strings.HasPrefix(code, "22"):
		return domainErrors.ErrInvalidInput
	case apiErr.Status == http.StatusBadRequest, apiErr.Status == http.StatusUnprocessableEntity:
		return domainErrors.ErrInvalidInput
	}
	return domainErrors.ErrStoreUnavailable
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}

func eq(value string) string {
	return "eq." + value
}
