// Package rest wraps the backend's JSON REST contract: verb-based calls,
// the {data, pagination} list envelope, and the HTTP-status-derived error
// taxonomy. Retry and interceptor behavior live in the transport layer
// behind the http.Client; this package never retries.
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
	"strings"

	"github.com/google/uuid"

	"github.com/slidelab/pathclient/internal/config"
	"github.com/slidelab/pathclient/pkg/ctxutil"
)

// Client is a thin typed JSON client over one backend base URL.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	log       *slog.Logger
}

// New builds a Client from configuration. The timeout applies per request.
func New(cfg config.APIConfig, log *slog.Logger) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("rest: parse base url: %w", err)
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
		log:       log.With("component", "rest"),
	}, nil
}

// NewWithHTTPClient builds a Client over a caller-supplied http.Client;
// used by tests and by callers that install transport interceptors.
func NewWithHTTPClient(baseURL string, httpClient *http.Client, log *slog.Logger) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("rest: parse base url: %w", err)
	}
	return &Client{
		baseURL:   base,
		http:      httpClient,
		userAgent: "pathclient",
		log:       log.With("component", "rest"),
	}, nil
}

// Get issues a GET and decodes the response body into out (unless nil).
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with a JSON body and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT with a JSON body and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Patch issues a PATCH with a JSON body. The backend's update endpoints
// return no body; out is usually nil.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

// Delete issues a DELETE. An optional body carries batch-delete id lists.
func (c *Client) Delete(ctx context.Context, path string, body any) error {
	return c.do(ctx, http.MethodDelete, path, nil, body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("rest: marshal %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("rest: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := ctxutil.AccessTokenFromCtx(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if actorID, ok := ctxutil.ActorIDFromCtx(ctx); ok {
		req.Header.Set("X-Actor-ID", actorID)
	}
	requestID := ctxutil.RequestIDFromCtx(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return c.classifyTransport(ctx, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.apiError(ctx, method, path, resp)
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("rest: decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) classifyTransport(ctx context.Context, method, path string, err error) error {
	kind := KindNetwork
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		kind = KindTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		kind = KindTimeout
	}
	apiErr := &APIError{Kind: kind, Message: err.Error()}
	c.log.DebugContext(ctx, "request failed",
		slog.String("method", method),
		slog.String("path", path),
		slog.String("kind", string(kind)),
	)
	return fmt.Errorf("rest: %s %s: %w", method, path, apiErr)
}

func (c *Client) apiError(ctx context.Context, method, path string, resp *http.Response) error {
	var raw rawError
	// A non-JSON error body is fine; classification rests on the status.
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&raw)

	message := raw.Message
	if message == "" {
		message = raw.Error
	}
	apiErr := &APIError{
		Kind:    classifyStatus(resp.StatusCode),
		Status:  resp.StatusCode,
		Message: message,
	}
	c.log.DebugContext(ctx, "request rejected",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.String("kind", string(apiErr.Kind)),
	)
	return fmt.Errorf("rest: %s %s: %w", method, path, apiErr)
}
