package apiclient

import (
	"encoding/json"
	"strings"

	rbhttp "github.com/milan604/restbase/pkg/http"
	"github.com/milan604/restbase/pkg/utils"
)

// ExtractErrorMessage prefers the "message" field of a JSON error body sent
// by the server and falls back to the error's own message.
func ExtractErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	e, ok := rbhttp.AsError(err)
	if !ok {
		return err.Error()
	}
	if e.Response != nil {
		var body struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(e.Response.Data, &body) == nil && body.Message != "" {
			return body.Message
		}
	}
	return e.Message
}

// LogRequest writes a one-line description of a call at info level.
func (c *Client) LogRequest(method, url string, data any) {
	c.log.InfoF("Requesting %s %s with data: %v", strings.ToUpper(method), url, data)
}

// DebounceRequest wraps fn so rapid calls collapse into one trailing call
// after the client's DebounceDelay, using the last call's argument.
func DebounceRequest[T any](c *Client, fn func(T)) func(T) {
	return utils.Debounce(fn, c.cfg.DebounceDelay)
}
