// Package remoteapi is the HTTP client for the remote user administration
// service. Every call is a single JSON request/response; there is no retry.
package remoteapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/99minutos/admin-console/internal/core/domain"
	"github.com/99minutos/admin-console/internal/core/ports"
	"github.com/99minutos/admin-console/internal/pkg/metrics"
)

// DefaultBaseURL is the service the console was built against.
const DefaultBaseURL = "https://speedsoftware.site/administrator/InterviewApi"

const defaultTimeout = 30 * time.Second

// Client talks to the remote API. It satisfies ports.RemoteAPI.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ ports.RemoteAPI = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// New creates a client for baseURL. An empty baseURL selects DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured service root.
func (c *Client) BaseURL() string { return c.baseURL }

type dataEnvelope[T any] struct {
	Data []T `json:"data"`
}

// Login checks credentials. A well-formed answer with success=false is not an
// error at this layer; callers inspect LoginResult.Success.
func (c *Client) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	var out ports.LoginResult
	body := domain.Credentials{Username: username, Password: password}
	if err := c.do(ctx, "login", http.MethodPost, "/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// States returns the state lookup table.
func (c *Client) States(ctx context.Context) ([]domain.State, error) {
	var out dataEnvelope[domain.State]
	if err := c.do(ctx, "get_states", http.MethodGet, "/getStates", nil, &out); err != nil {
		return nil, err
	}
	return nonNil(out.Data), nil
}

// Cities returns the cities of one state.
func (c *Client) Cities(ctx context.Context, stateID domain.ID) ([]domain.City, error) {
	var out dataEnvelope[domain.City]
	body := map[string]domain.ID{"state_id": stateID}
	if err := c.do(ctx, "get_cities", http.MethodPost, "/getCities", body, &out); err != nil {
		return nil, err
	}
	return nonNil(out.Data), nil
}

// AddUser submits a self-registration.
func (c *Client) AddUser(ctx context.Context, reg domain.Registration) (*ports.RegisterResult, error) {
	var out ports.RegisterResult
	if err := c.do(ctx, "add_user", http.MethodPost, "/addUser", reg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers returns every user, in the order the service sends them.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var out dataEnvelope[domain.User]
	if err := c.do(ctx, "list_users", http.MethodGet, "/getUserList", nil, &out); err != nil {
		return nil, err
	}
	return nonNil(out.Data), nil
}

// EditUser sends the full record and returns the service's representation.
func (c *Client) EditUser(ctx context.Context, user domain.User) (*domain.User, error) {
	var out domain.User
	path := "/editUser/" + url.PathEscape(user.UserID.String())
	if err := c.do(ctx, "edit_user", http.MethodPut, path, user, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ping reports whether the remote service answers. It reads the state list
// and discards it, since the service has no dedicated health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, "ping", http.MethodGet, "/getStates", nil, nil)
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	start := time.Now()
	defer func() {
		metrics.RemoteRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RemoteRequestsTotal.WithLabelValues(op, "transport_error").Inc()
		return fmt.Errorf("%s: %w: %w", op, domain.ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RemoteRequestsTotal.WithLabelValues(op, "transport_error").Inc()
		return fmt.Errorf("%s: read response: %w: %w", op, domain.ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.RemoteRequestsTotal.WithLabelValues(op, "status_error").Inc()
		return parseError(resp.StatusCode, raw)
	}
	metrics.RemoteRequestsTotal.WithLabelValues(op, "ok").Inc()

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func parseError(status int, raw []byte) *domain.APIError {
	apiErr := &domain.APIError{StatusCode: status}
	if len(bytes.TrimSpace(raw)) > 0 {
		apiErr.Payload = raw
	}
	var eb errorBody
	if json.Unmarshal(raw, &eb) == nil {
		apiErr.Message = eb.Message
		if apiErr.Message == "" {
			apiErr.Message = eb.Error
		}
	}
	return apiErr
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
