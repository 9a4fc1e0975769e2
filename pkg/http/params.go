package http

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// SerializeParams renders params as a &-joined key=value query string.
// Keys and values are percent-encoded with spaces as %20; values are
// stringified with fmt.Sprint. Keys are emitted in sorted order.
func SerializeParams(params Params) string {
	if len(params) == 0 {
		return ""
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, encodeComponent(k)+"="+encodeComponent(fmt.Sprint(params[k])))
	}
	return strings.Join(parts, "&")
}

// componentUnescaper turns QueryEscape output into encodeURIComponent form.
// QueryEscape already escapes a literal '+', so every remaining '+' stood
// for a space; !'()* are left literal.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func encodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// CheckStatus returns resp unchanged when its status is in [200,300) and
// an error carrying resp.StatusText otherwise.
func CheckStatus(resp *Response) (*Response, error) {
	if resp == nil {
		return nil, errors.New("nil response")
	}
	if resp.OK() {
		return resp, nil
	}
	return nil, errors.New(resp.StatusText)
}

// joinURL appends endpoint to base unless endpoint is already absolute.
func joinURL(base, endpoint string) string {
	if base == "" || isAbsoluteURL(endpoint) {
		return endpoint
	}
	if endpoint == "" {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(endpoint, "/")
}

func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func appendQuery(u string, params Params) string {
	q := SerializeParams(params)
	if q == "" {
		return u
	}
	if strings.Contains(u, "?") {
		return u + "&" + q
	}
	return u + "?" + q
}
