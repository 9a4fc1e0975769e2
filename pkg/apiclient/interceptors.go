package apiclient

import (
	"context"
	"net/http"

	rbhttp "github.com/milan604/restbase/pkg/http"
	"github.com/milan604/restbase/pkg/utils"
)

// maxLoggedBody caps how much of an error body reaches the log.
const maxLoggedBody = 2048

// injectToken sets the bearer header from the store on every request,
// replacing any caller value. No stored token leaves the request untouched.
func (c *Client) injectToken(_ context.Context, req *rbhttp.Request) error {
	if token, ok := c.GetToken(); ok {
		req.Header().Set(utils.AuthorizationHeader, utils.BearerValue(token))
	}
	return nil
}

// logFailure logs each failure once by kind and returns it unchanged.
func (c *Client) logFailure(ctx context.Context, resp *rbhttp.Response, err error) (*rbhttp.Response, error) {
	if err == nil {
		return resp, nil
	}

	e, ok := rbhttp.AsError(err)
	if !ok {
		c.log.ErrorWCtx(ctx, "request failed", "error", err.Error())
		return resp, err
	}

	switch e.Kind {
	case rbhttp.KindServer:
		if e.Response == nil {
			c.log.ErrorWCtx(ctx, "server responded with an error", "error", e.Message)
			break
		}
		c.log.ErrorWCtx(ctx, "server responded with an error",
			"data", utils.Truncate(string(e.Response.Data), maxLoggedBody, true),
			"status", e.Response.Status,
			"headers", e.Response.Headers,
		)
	case rbhttp.KindNetwork:
		method, url := describe(e.Request)
		c.log.ErrorWCtx(ctx, "no response received",
			"method", method,
			"url", url,
			"error", e.Message,
		)
	default:
		c.log.ErrorWCtx(ctx, "request could not be sent", "error", e.Message)
	}
	return resp, err
}

func describe(req *rbhttp.Request) (string, string) {
	if req == nil {
		return "", ""
	}
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	return method, req.URL
}

// RefreshFunc would obtain a new token. TokenRefreshInterceptor accepts one
// but does not call it yet.
type RefreshFunc func(ctx context.Context) (string, error)

// TokenRefreshInterceptor registers a response hook on transport that
// resubmits a request once, unmodified, when it fails with 401. A request
// that already went through this retry is not retried again, so a second
// 401 reaches the caller. refreshToken is not invoked and the stored token
// is not rotated; the resubmitted request picks up whatever token the store
// holds at that moment.
func TokenRefreshInterceptor(transport *rbhttp.Client, refreshToken RefreshFunc) {
	transport.UseResponseHook(func(ctx context.Context, resp *rbhttp.Response, err error) (*rbhttp.Response, error) {
		if !rbhttp.IsStatus(err, http.StatusUnauthorized) {
			return resp, err
		}
		e, _ := rbhttp.AsError(err)
		if e.Request == nil || e.Request.Retried {
			return resp, err
		}
		e.Request.Retried = true
		return transport.Do(ctx, e.Request)
	})
}

// EnableTokenRefresh installs TokenRefreshInterceptor on this client's transport.
func (c *Client) EnableTokenRefresh(refreshToken RefreshFunc) {
	TokenRefreshInterceptor(c.transport, refreshToken)
}
