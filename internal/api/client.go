package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/loganlanou/ciber-client/internal/auth"
	"github.com/loganlanou/ciber-client/internal/session"
)

const (
	DefaultBaseURL = "https://backend-spring-wgjc.onrender.com"
	defaultTimeout = 30 * time.Second

	HeaderRequestID = "X-Request-ID"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the transport; Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client talks to the ciber backend on behalf of the locally stored session.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   *session.Manager
	auth       *auth.Decorator
}

func NewClient(cfg Config, sessions *session.Manager) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		sessions:   sessions,
		auth:       auth.NewDecorator(sessions),
	}
}

func (c *Client) GetBaseURL() string {
	return c.baseURL
}

func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader, intent auth.Intent, contentType string) (*http.Response, error) {
	return c.do(ctx, method, path, body, intent, contentType, true)
}

// do sends one request. Anonymous requests never read the stored session.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, intent auth.Intent, contentType string, authenticated bool) (*http.Response, error) {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, &localError{fmt.Errorf("create request: %w", err)}
	}

	if authenticated {
		if err := c.auth.Apply(ctx, req, intent); err != nil {
			return nil, &localError{err}
		}
	}
	if contentType != "" {
		req.Header.Set(auth.HeaderContentType, contentType)
	} else if intent == auth.JSONBody && req.Header.Get(auth.HeaderContentType) == "" {
		req.Header.Set(auth.HeaderContentType, auth.MIMEApplicationJSON)
	}
	req.Header.Set("Accept", auth.MIMEApplicationJSON)

	requestID := uuid.NewString()
	req.Header.Set(HeaderRequestID, requestID)

	slog.Debug("api request", "method", method, "path", path, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	return resp, nil
}

// send issues one request. in is JSON-encoded when non-nil; out receives the
// decoded body when non-nil. mapErr may refine the error of a non-2xx reply.
func (c *Client) send(ctx context.Context, op, method, path string, in, out any, mapErr func(*Error)) error {
	return c.sendAs(ctx, true, op, method, path, in, out, mapErr)
}

// sendAnonymous is send without the session headers, for the auth endpoints.
func (c *Client) sendAnonymous(ctx context.Context, op, method, path string, in, out any, mapErr func(*Error)) error {
	return c.sendAs(ctx, false, op, method, path, in, out, mapErr)
}

func (c *Client) sendAs(ctx context.Context, authenticated bool, op, method, path string, in, out any, mapErr func(*Error)) error {
	var body io.Reader
	intent := auth.NoBody
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &localError{fmt.Errorf("%s: marshal request: %w", op, err)}
		}
		body = bytes.NewReader(data)
		intent = auth.JSONBody
	}

	resp, err := c.do(ctx, method, path, body, intent, "", authenticated)
	if err != nil {
		return wrapOp(op, err)
	}
	defer resp.Body.Close()

	return c.handle(op, resp, out, mapErr)
}

func (c *Client) handle(op string, resp *http.Response, out any, mapErr func(*Error)) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newError(op, resp)
		if mapErr != nil {
			mapErr(apiErr)
		}
		slog.Debug("api error", "op", op, "status", resp.StatusCode, "message", apiErr.Message)
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func wrapOp(op string, err error) error {
	if isLocal(err) {
		return &localError{fmt.Errorf("%s: %w", op, err)}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// requireSession returns the stored session or auth.ErrNotAuthenticated.
func (c *Client) requireSession(ctx context.Context, op string) (*session.Session, error) {
	s, err := c.sessions.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s, err = auth.RequireToken(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

// list fetches a collection. Any failure past the local checks degrades to
// an empty, non-nil slice; local failures (no session, corrupt session,
// cancelled context) are returned.
func list[T any](ctx context.Context, c *Client, op, path string) ([]T, error) {
	var items []T
	err := c.send(ctx, op, http.MethodGet, path, nil, &items, nil)
	if err == nil {
		if items == nil {
			items = []T{}
		}
		return items, nil
	}

	if isLocal(err) || ctx.Err() != nil {
		return nil, err
	}

	slog.Warn("list request failed, returning empty result", "op", op, "path", path, "error", err)
	return []T{}, nil
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
