package hrapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/hrms-lite-console/pkg/errors"
	"github.com/noah-isme/hrms-lite-console/pkg/middleware/requestid"
)

const maxErrorBody = 64 << 10

// Observer receives one observation per upstream call.
type Observer interface {
	ObserveUpstreamRequest(method, route string, status int, duration time.Duration)
}

// Config tunes the HR API client.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Observer   Observer
	Logger     *zap.Logger
}

// Client performs JSON requests against the HR REST API.
type Client struct {
	baseURL  string
	http     *http.Client
	observer Observer
	logger   *zap.Logger
}

// Request describes one API call. Route is the templated path used as a
// metrics label; Path is the concrete, already escaped path.
type Request struct {
	Method string
	Route  string
	Path   string
	Query  url.Values
	Body   interface{}
}

// NewClient constructs a Client with sane defaults.
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		http:     httpClient,
		observer: cfg.Observer,
		logger:   logger,
	}
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do executes req and decodes a successful JSON response into dest (if non-nil).
// Non-2xx responses return an upstream *errors.Error carrying the API detail.
func (c *Client) Do(ctx context.Context, req Request, dest interface{}) error {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", req.Method, req.Route, err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", req.Method, req.Route, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if id := requestid.FromContext(ctx); id != "" {
		httpReq.Header.Set(requestid.HeaderKey, id)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.observe(req, 0, start)
		if errors.Is(err, context.Canceled) {
			return err
		}
		c.logger.Warn("hr api unreachable", zap.String("method", req.Method), zap.String("route", req.Route), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "")
	}
	defer resp.Body.Close()
	c.observe(req, resp.StatusCode, start)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		detail := DecodeDetail(raw)
		c.logger.Warn("hr api request failed",
			zap.String("method", req.Method),
			zap.String("route", req.Route),
			zap.Int("status", resp.StatusCode),
			zap.String("detail", detail),
		)
		return appErrors.Upstream(resp.StatusCode, detail, fmt.Errorf("%s %s: status %d", req.Method, req.Route, resp.StatusCode))
	}

	if dest == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return appErrors.Wrap(fmt.Errorf("decode %s %s: %w", req.Method, req.Route, err), appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "")
	}
	return nil
}

// Ping checks that the API root answers with a 2xx status.
func (c *Client) Ping(ctx context.Context) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Route: "/", Path: "/"}, nil)
}

func (c *Client) observe(req Request, status int, start time.Time) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveUpstreamRequest(req.Method, req.Route, status, time.Since(start))
}
