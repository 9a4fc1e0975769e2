package http

import (
	"net/http"
	"time"
)

// Params are query parameters serialized by SerializeParams.
type Params map[string]any

// Request describes one outbound call. It is built per call and may be
// resubmitted as-is by a response hook.
type Request struct {
	Method string
	// URL is either relative to the client base URL or absolute.
	URL     string
	Data    any
	Headers http.Header
	Params  Params
	// Retried is set once a response hook has resubmitted the request.
	Retried bool
}

// Header returns the request headers, allocating them on first use.
func (r *Request) Header() http.Header {
	if r.Headers == nil {
		r.Headers = http.Header{}
	}
	return r.Headers
}

// canonicalizeHeaders rewrites header keys to canonical form so hooks and
// callers agree on a single key. Values of keys differing only in case are
// merged.
func (r *Request) canonicalizeHeaders() {
	if len(r.Headers) == 0 {
		return
	}
	out := make(http.Header, len(r.Headers))
	for k, vs := range r.Headers {
		ck := http.CanonicalHeaderKey(k)
		out[ck] = append(out[ck], vs...)
	}
	r.Headers = out
}

// Response is a fully read server reply.
type Response struct {
	Data       []byte
	Status     int
	StatusText string
	Headers    http.Header
	Request    *Request
	Duration   time.Duration
}

// OK reports whether the status is in [200,300).
func (r *Response) OK() bool {
	return r != nil && r.Status >= 200 && r.Status < 300
}
