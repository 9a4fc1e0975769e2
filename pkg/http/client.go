package http

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
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/milan604/restbase/pkg/logger"
	"github.com/milan604/restbase/pkg/version"
)

// Client is the HTTP transport: a base URL, default headers and a timeout,
// plus request and response hooks run around every call.
type Client struct {
	httpClient *http.Client
	baseURL    string
	headers    http.Header
	timeout    time.Duration
	logger     logger.LogManager
	breaker    *gobreaker.CircuitBreaker[*http.Response]

	mu            sync.RWMutex
	requestHooks  []RequestHook
	responseHooks []ResponseHook
}

// RequestHook may modify a request before it's sent. Returning an error
// aborts the call with a KindConstruction error.
type RequestHook func(ctx context.Context, req *Request) error

// ResponseHook sees every outcome, successful or not, and returns the
// outcome passed to the next hook. Hooks run in registration order.
type ResponseHook func(ctx context.Context, resp *Response, err error) (*Response, error)

// ClientOption configures the HTTP client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom http.Client. The client is copied, so the
// configured timeout never leaks into the caller's instance.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		if c != nil {
			hc := *c
			cl.httpClient = &hc
		}
	}
}

// WithBaseURL sets the prefix for relative request URLs.
func WithBaseURL(base string) ClientOption {
	return func(c *Client) {
		c.baseURL = base
	}
}

// WithDefaultHeaders adds headers sent on every request unless the
// request sets the same header itself.
func WithDefaultHeaders(h map[string]string) ClientOption {
	return func(c *Client) {
		for k, v := range h {
			c.headers.Set(k, v)
		}
	}
}

// WithTimeout bounds each call, including reading the body.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger sets a logger for the client.
func WithLogger(l logger.LogManager) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRequestHook adds a hook that runs before each request.
func WithRequestHook(hook RequestHook) ClientOption {
	return func(c *Client) {
		c.requestHooks = append(c.requestHooks, hook)
	}
}

// WithResponseHook adds a hook that runs after each response.
func WithResponseHook(hook ResponseHook) ClientOption {
	return func(c *Client) {
		c.responseHooks = append(c.responseHooks, hook)
	}
}

// WithCircuitBreaker routes round trips through a gobreaker circuit
// breaker. Only transport failures count against it; an open breaker
// fails calls with KindConstruction since nothing was sent.
func WithCircuitBreaker(st gobreaker.Settings) ClientOption {
	return func(c *Client) {
		c.breaker = gobreaker.NewCircuitBreaker[*http.Response](st)
	}
}

// NewClient creates a new HTTP client with the given options.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{},
		headers:    http.Header{},
		timeout:    30 * time.Second,
		logger:     logger.NewNop(),
	}
	c.headers.Set("Accept", "application/json, text/plain, */*")
	c.headers.Set("User-Agent", version.UserAgent())

	for _, opt := range opts {
		opt(c)
	}

	if c.timeout > 0 {
		c.httpClient.Timeout = c.timeout
	}
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Timeout returns the per-call timeout.
func (c *Client) Timeout() time.Duration { return c.timeout }

// DefaultHeaders returns a copy of the headers sent on every request.
func (c *Client) DefaultHeaders() http.Header { return c.headers.Clone() }

// UseRequestHook registers a request hook after construction.
func (c *Client) UseRequestHook(hook RequestHook) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requestHooks = append(c.requestHooks, hook)
}

// UseResponseHook registers a response hook after construction.
func (c *Client) UseResponseHook(hook ResponseHook) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responseHooks = append(c.responseHooks, hook)
}

// Do sends req and runs the response hooks over the outcome. Every
// failure is an *Error.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, newConstructionError(nil, "nil request", nil)
	}

	resp, err := c.send(ctx, req)

	c.mu.RLock()
	hooks := append([]ResponseHook(nil), c.responseHooks...)
	c.mu.RUnlock()

	for _, hook := range hooks {
		resp, err = hook(ctx, resp, err)
	}
	return resp, err
}

func (c *Client) send(ctx context.Context, req *Request) (*Response, error) {
	req.canonicalizeHeaders()
	if err := c.applyRequestHooks(ctx, req); err != nil {
		return nil, newConstructionError(req, "request hook failed", err)
	}

	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, newConstructionError(req, err.Error(), err)
	}

	c.logger.DebugF("sending %s %s", httpReq.Method, httpReq.URL.Redacted())

	start := time.Now()
	httpResp, err := c.roundTrip(httpReq)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, newConstructionError(req, err.Error(), err)
		}
		return nil, newNetworkError(req, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, newNetworkError(req, fmt.Errorf("failed to read response body: %w", err))
	}

	resp := &Response{
		Data:       body,
		Status:     httpResp.StatusCode,
		StatusText: statusText(httpResp),
		Headers:    httpResp.Header,
		Request:    req,
		Duration:   time.Since(start),
	}
	c.logger.DebugF("%s %s -> %d in %v", httpReq.Method, httpReq.URL.Redacted(), resp.Status, resp.Duration)

	if !resp.OK() {
		return resp, newServerError(req, resp)
	}
	return resp, nil
}

// applyRequestHooks applies all request hooks.
func (c *Client) applyRequestHooks(ctx context.Context, req *Request) error {
	c.mu.RLock()
	hooks := append([]RequestHook(nil), c.requestHooks...)
	c.mu.RUnlock()

	for _, hook := range hooks {
		if err := hook(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) buildRequest(ctx context.Context, req *Request) (*http.Request, error) {
	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}

	// a reader is drained on send; keep its bytes so a resubmit sends them again
	if r, ok := req.Data.(io.Reader); ok {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read request body: %w", err)
		}
		req.Data = b
	}

	body, contentType, err := encodeBody(req.Data)
	if err != nil {
		return nil, err
	}

	target := appendQuery(joinURL(c.baseURL, req.URL), req.Params)
	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, vs := range c.headers {
		httpReq.Header[k] = append([]string(nil), vs...)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	for k, vs := range req.Headers {
		httpReq.Header[k] = append([]string(nil), vs...)
	}
	return httpReq, nil
}

func (c *Client) roundTrip(req *http.Request) (*http.Response, error) {
	if c.breaker == nil {
		return c.httpClient.Do(req)
	}
	return c.breaker.Execute(func() (*http.Response, error) {
		return c.httpClient.Do(req)
	})
}

// encodeBody mirrors the usual REST client rules: raw bytes and strings are
// sent as-is, url.Values as a form, anything else as JSON. Readers were
// already turned into bytes by buildRequest.
func encodeBody(data any) (io.Reader, string, error) {
	switch v := data.(type) {
	case nil:
		return nil, "", nil
	case []byte:
		return bytes.NewReader(v), "", nil
	case string:
		return strings.NewReader(v), "", nil
	case url.Values:
		return strings.NewReader(v.Encode()), "application/x-www-form-urlencoded", nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal request body: %w", err)
		}
		return bytes.NewReader(b), "application/json", nil
	}
}

func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
