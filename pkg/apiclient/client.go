// Package apiclient is a reusable REST client facade: configure a base URL,
// default headers, a timeout and a token storage key once, then call
// endpoints with Get, Post, Put, Patch and Delete. A stored bearer token is
// attached to every request and failures are classified and logged before
// they are returned.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	rbhttp "github.com/milan604/restbase/pkg/http"
	"github.com/milan604/restbase/pkg/logger"
	"github.com/milan604/restbase/pkg/metrics"
	"github.com/milan604/restbase/pkg/tokenstore"
)

// Client is the facade. It is safe for concurrent use.
type Client struct {
	cfg       Config
	transport *rbhttp.Client
	store     tokenstore.Store
	log       logger.LogManager
	validator SchemaValidator
}

type options struct {
	store           tokenstore.Store
	log             logger.LogManager
	validator       SchemaValidator
	transportOpts   []rbhttp.ClientOption
	metrics         *metrics.Collector
	requestID       bool
	requestIDHeader string
}

// Option configures New.
type Option func(*options)

// WithStore sets where the bearer token lives. Defaults to an in-memory store.
func WithStore(s tokenstore.Store) Option {
	return func(o *options) { o.store = s }
}

// WithLogger sets the diagnostic sink. Defaults to a no-op logger.
func WithLogger(l logger.LogManager) Option {
	return func(o *options) { o.log = l }
}

// WithValidator replaces the no-op schema validator.
func WithValidator(v SchemaValidator) Option {
	return func(o *options) { o.validator = v }
}

// WithTransportOptions passes extra options to the underlying transport,
// e.g. rbhttp.WithHTTPClient or rbhttp.WithCircuitBreaker. Request hooks
// added here run before token injection.
func WithTransportOptions(opts ...rbhttp.ClientOption) Option {
	return func(o *options) { o.transportOpts = append(o.transportOpts, opts...) }
}

// WithMetrics records every call on col.
func WithMetrics(col *metrics.Collector) Option {
	return func(o *options) { o.metrics = col }
}

// WithRequestID tags requests with a correlation header (X-Request-ID when
// header is empty).
func WithRequestID(header string) Option {
	return func(o *options) {
		o.requestID = true
		o.requestIDHeader = header
	}
}

// New builds a client from cfg; zero fields take the package defaults.
func New(cfg Config, opts ...Option) *Client {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.store == nil {
		o.store = tokenstore.NewMemoryStore()
	}
	if o.log == nil {
		o.log = logger.NewNop()
	}
	if o.validator == nil {
		o.validator = NopValidator{}
	}

	c := &Client{
		cfg:       cfg.withDefaults(),
		store:     o.store,
		log:       o.log,
		validator: o.validator,
	}

	topts := []rbhttp.ClientOption{
		rbhttp.WithBaseURL(c.cfg.BaseURL),
		rbhttp.WithDefaultHeaders(c.cfg.DefaultHeaders),
		rbhttp.WithTimeout(c.cfg.Timeout),
		rbhttp.WithLogger(c.log),
	}
	topts = append(topts, o.transportOpts...)
	if o.requestID {
		topts = append(topts, rbhttp.WithRequestHook(rbhttp.RequestIDHook(o.requestIDHeader)))
	}
	topts = append(topts,
		rbhttp.WithRequestHook(c.injectToken),
		rbhttp.WithResponseHook(c.logFailure),
	)
	if o.metrics != nil {
		topts = append(topts, rbhttp.WithResponseHook(o.metrics.ResponseHook()))
	}
	c.transport = rbhttp.NewClient(topts...)
	return c
}

// Config returns a copy of the effective configuration.
func (c *Client) Config() Config { return c.cfg.clone() }

// Transport exposes the underlying transport, e.g. to register hooks.
func (c *Client) Transport() *rbhttp.Client { return c.transport }

// Close releases the token store if it holds resources.
func (c *Client) Close() error {
	if closer, ok := c.store.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Request sends one call and returns the response payload. Failures are
// returned unchanged as *rbhttp.Error values.
func (c *Client) Request(ctx context.Context, method, endpoint string, data any, headers map[string]string) ([]byte, error) {
	return c.do(ctx, &rbhttp.Request{
		Method:  method,
		URL:     endpoint,
		Data:    data,
		Headers: toHeader(headers),
	})
}

// RequestJSON is Request followed by decoding the payload into out.
func (c *Client) RequestJSON(ctx context.Context, method, endpoint string, data any, headers map[string]string, out any) error {
	payload, err := c.Request(ctx, method, endpoint, data, headers)
	if err != nil {
		return err
	}
	return decodeInto(payload, out)
}

// Get sends a GET with params serialized into the query string.
func (c *Client) Get(ctx context.Context, endpoint string, params rbhttp.Params, headers map[string]string) ([]byte, error) {
	return c.do(ctx, &rbhttp.Request{
		Method:  http.MethodGet,
		URL:     endpoint,
		Params:  params,
		Headers: toHeader(headers),
	})
}

// GetJSON is Get followed by decoding the payload into out.
func (c *Client) GetJSON(ctx context.Context, endpoint string, params rbhttp.Params, headers map[string]string, out any) error {
	payload, err := c.Get(ctx, endpoint, params, headers)
	if err != nil {
		return err
	}
	return decodeInto(payload, out)
}

// Post sends data with POST.
func (c *Client) Post(ctx context.Context, endpoint string, data any, headers map[string]string) ([]byte, error) {
	return c.Request(ctx, http.MethodPost, endpoint, data, headers)
}

// Put sends data with PUT.
func (c *Client) Put(ctx context.Context, endpoint string, data any, headers map[string]string) ([]byte, error) {
	return c.Request(ctx, http.MethodPut, endpoint, data, headers)
}

// Patch sends data with PATCH.
func (c *Client) Patch(ctx context.Context, endpoint string, data any, headers map[string]string) ([]byte, error) {
	return c.Request(ctx, http.MethodPatch, endpoint, data, headers)
}

// Delete sends a DELETE without a body.
func (c *Client) Delete(ctx context.Context, endpoint string, headers map[string]string) ([]byte, error) {
	return c.Request(ctx, http.MethodDelete, endpoint, nil, headers)
}

func (c *Client) do(ctx context.Context, req *rbhttp.Request) ([]byte, error) {
	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func decodeInto(payload []byte, out any) error {
	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func toHeader(h map[string]string) http.Header {
	out := make(http.Header, len(h))
	for k, v := range h {
		out.Set(k, v)
	}
	return out
}
