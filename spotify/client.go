package spotify

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

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://api.spotify.com/v1"
	DefaultPageLimit = 50
	MaxPageLimit     = 50

	defaultTimeout = 15 * time.Second
)

// Client performs authenticated requests against the Web API.
// It carries no state between calls besides the pacing limiter.
type Client struct {
	httpClient *http.Client
	baseURL    string
	pageLimit  int
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

type Option func(*Client)

// WithBaseURL points the client at another API root (used by tests)
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithPageLimit sets the limit sent with every paginated request
func WithPageLimit(limit int) Option {
	return func(c *Client) {
		if limit > 0 && limit <= MaxPageLimit {
			c.pageLimit = limit
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRateLimit paces requests to at most rps per second; 0 disables pacing
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		} else {
			c.limiter = nil
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client sending token as an opaque bearer credential
func New(token string, opts ...Option) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	c := &Client{
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: &oauth2.Transport{Source: src, Base: http.DefaultTransport},
		},
		baseURL:   DefaultBaseURL,
		pageLimit: DefaultPageLimit,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PageLimit returns the number of items requested per page
func (c *Client) PageLimit() int {
	return c.pageLimit
}

func validMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

// Do sends one request and returns the parsed body.
// An empty body yields (nil, nil). A body carrying an error object yields *APIError.
func (c *Client) Do(ctx context.Context, method, rawURL string, body []byte) (json.RawMessage, error) {
	if !validMethod(method) {
		return nil, fmt.Errorf("%s %s: %w", method, rawURL, ErrInvalidMethod)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{Method: method, URL: rawURL, Cause: fmt.Errorf("rate limiter: %w", err)}
		}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, &TransportError{Method: method, URL: rawURL, Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, URL: rawURL, Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: rawURL, Status: resp.StatusCode, Cause: err}
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Int("bytes", len(data)).
		Msg("request completed")

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return nil, nil
	}
	if !json.Valid(data) {
		return nil, &TransportError{
			Method: method,
			URL:    rawURL,
			Status: resp.StatusCode,
			Cause:  errors.New("response body is not valid JSON"),
		}
	}

	if apiErr := apiErrorOf(data, resp.StatusCode); apiErr != nil {
		return nil, apiErr
	}
	return json.RawMessage(data), nil
}

// apiErrorOf returns the error object carried by data, if any.
// {"error": {"status": 404, "message": "..."}}
// A non-JSON-error body with a failing status still counts as an API error.
func apiErrorOf(data []byte, status int) *APIError {
	var envelope map[string]json.RawMessage
	if kindOf(data) == kindObject {
		_ = json.Unmarshal(data, &envelope)
	}
	raw, ok := envelope["error"]
	if !ok || kindOf(raw) != kindObject {
		if status >= http.StatusBadRequest {
			return &APIError{Status: status, Message: http.StatusText(status)}
		}
		return nil
	}

	var payload struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(raw, &payload)
	if payload.Status == 0 {
		payload.Status = status
	}
	return &APIError{Status: payload.Status, Message: payload.Message}
}

// endpoint joins path onto the base URL and appends the encoded query
func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// paged returns the limit/offset query of a paginated request
func (c *Client) paged(offset int) url.Values {
	return url.Values{
		"limit":  {strconv.Itoa(c.pageLimit)},
		"offset": {strconv.Itoa(offset)},
	}
}

func (c *Client) send(ctx context.Context, method, rawURL string, payload any) (json.RawMessage, error) {
	var body []byte
	if payload != nil {
		var err error
		if body, err = json.Marshal(payload); err != nil {
			return nil, fmt.Errorf("encoding %s body: %w", rawURL, err)
		}
	}
	return c.Do(ctx, method, rawURL, body)
}

// get fetches rawURL and decodes the response.
// An error object in the response is returned as-is so callers can treat it as an absent result.
func get[T any](ctx context.Context, c *Client, rawURL string, decode Decoder[T]) (T, error) {
	var zero T
	raw, err := c.Do(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return zero, err
	}
	v, err := decode(raw)
	if err != nil {
		return zero, fmt.Errorf("GET %s: %w", rawURL, err)
	}
	return v, nil
}

// getOne fetches a single record, returning nil with the *APIError when it is absent
func getOne[T any](ctx context.Context, c *Client, rawURL string, decode Decoder[T]) (*T, error) {
	v, err := get(ctx, c, rawURL, decode)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// snapshotOf reads the snapshot_id returned by a playlist mutation, "" when absent
func snapshotOf(raw json.RawMessage) string {
	if kindOf(raw) != kindObject {
		return ""
	}
	o, err := newObject("snapshot", raw)
	if err != nil {
		return ""
	}
	if s := o.optionalString("snapshot_id"); s != nil {
		return *s
	}
	return ""
}

// joinIDs renders ids as the comma separated list taken by the ids parameter
func joinIDs(ids []string) string {
	return strings.Join(ids, ",")
}
